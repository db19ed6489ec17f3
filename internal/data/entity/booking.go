package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodNetbanking PaymentMethod = "netbanking"
	PaymentMethodWallet     PaymentMethod = "wallet"
	PaymentMethodCOD        PaymentMethod = "cod"
)

// IsOnline reports whether the method settles at booking creation.
// Cash on delivery is collected later and marked paid explicitly.
func (m PaymentMethod) IsOnline() bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodNetbanking, PaymentMethodWallet:
		return true
	}
	return false
}

type CancelActor string

const (
	CancelActorNone     CancelActor = ""
	CancelActorPatient  CancelActor = "patient"
	CancelActorProvider CancelActor = "provider"
	CancelActorSystem   CancelActor = "system"
)

// Booking is a patient's rental of a listing for a date range and quantity.
// PricePerDay is a snapshot taken at creation and never changes afterwards,
// even if the listing is repriced. TotalDays and TotalAmount are derived.
type Booking struct {
	BaseVersioned
	PatientID          uuid.UUID     `db:"patient_id"`
	ProviderID         uuid.UUID     `db:"provider_id"`
	ListingID          uuid.UUID     `db:"listing_id"`
	ListingName        string        `db:"listing_name"`
	StartDate          time.Time     `db:"start_date"`
	EndDate            time.Time     `db:"end_date"`
	Quantity           int           `db:"quantity"`
	PricePerDay        int64         `db:"price_per_day"`
	TotalDays          int           `db:"total_days"`
	TotalAmount        int64         `db:"total_amount"`
	Status             BookingStatus `db:"status"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	PaymentMethod      PaymentMethod `db:"payment_method"`
	DeliveryAddress    string        `db:"delivery_address"`
	ContactPhone       string        `db:"contact_phone"`
	Notes              string        `db:"notes"`
	CancelledBy        CancelActor   `db:"cancelled_by"`
	CancellationReason string        `db:"cancellation_reason"`
	HasReview          bool          `db:"has_review"`
}

// Terminal reports whether no further status transition is legal.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo encodes the legal status edges:
// pending→confirmed, pending→cancelled, confirmed→in-progress,
// confirmed→cancelled, in-progress→completed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusInProgress || next == BookingStatusCancelled
	case BookingStatusInProgress:
		return next == BookingStatusCompleted
	}
	return false
}
