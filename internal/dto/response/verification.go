package response

import (
	"time"

	"postjourney/internal/data/entity"
)

type VerificationResponse struct {
	ProviderID      string                    `json:"provider_id"`
	Status          entity.VerificationStatus `json:"status"`
	DocumentRef     string                    `json:"document_ref,omitempty"`
	VerifiedBy      string                    `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time                `json:"verified_at,omitempty"`
	RejectionReason string                    `json:"rejection_reason,omitempty"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

func VerificationToResponse(v *entity.ProviderVerification) VerificationResponse {
	resp := VerificationResponse{
		ProviderID:      v.ProviderID.String(),
		Status:          v.Status,
		DocumentRef:     v.DocumentRef,
		VerifiedAt:      v.VerifiedAt,
		RejectionReason: v.RejectionReason,
		UpdatedAt:       v.UpdatedAt,
	}
	if v.VerifiedBy != nil {
		resp.VerifiedBy = v.VerifiedBy.String()
	}
	return resp
}
