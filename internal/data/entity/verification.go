package entity

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationUnsubmitted VerificationStatus = "unsubmitted"
	VerificationPending     VerificationStatus = "pending"
	VerificationApproved    VerificationStatus = "approved"
	VerificationRejected    VerificationStatus = "rejected"
)

// ProviderVerification gates whether a provider's listings may go live.
// A rejected provider may resubmit; approved is terminal.
type ProviderVerification struct {
	BaseVersioned
	ProviderID      uuid.UUID          `db:"provider_id"`
	Status          VerificationStatus `db:"status"`
	DocumentRef     string             `db:"document_ref"`
	VerifiedBy      *uuid.UUID         `db:"verified_by"`
	VerifiedAt      *time.Time         `db:"verified_at"`
	RejectionReason string             `db:"rejection_reason"`
}

func (s VerificationStatus) CanSubmit() bool {
	return s == VerificationUnsubmitted || s == VerificationRejected
}
