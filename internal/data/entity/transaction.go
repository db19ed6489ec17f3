package entity

import (
	"github.com/google/uuid"
)

type ReferenceType string

const (
	ReferenceBooking           ReferenceType = "booking"
	ReferenceListingFee        ReferenceType = "listing_fee"
	ReferenceBookingSplit      ReferenceType = "booking_split"
	ReferenceConsultationSplit ReferenceType = "consultation_split"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// TransactionRecord is one append-only money movement. Records are never
// deleted; after creation only the status may change.
type TransactionRecord struct {
	BaseVersioned
	ReferenceID   uuid.UUID         `db:"reference_id"`
	ReferenceType ReferenceType     `db:"reference_type"`
	FromUser      uuid.UUID         `db:"from_user"`
	ToUser        uuid.UUID         `db:"to_user"`
	Amount        int64             `db:"amount"`
	PaymentMethod string            `db:"payment_method"`
	Status        TransactionStatus `db:"status"`
	Notes         string            `db:"notes"`
	Metadata      map[string]string `db:"metadata"`
}

// CanTransitionTo encodes the ledger edges: pending→completed,
// pending→failed, completed→refunded. Failed and refunded are final.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case TransactionStatusPending:
		return next == TransactionStatusCompleted || next == TransactionStatusFailed
	case TransactionStatusCompleted:
		return next == TransactionStatusRefunded
	}
	return false
}
