package response

import (
	"time"

	"postjourney/internal/data/entity"
)

type TransactionResponse struct {
	ID            string                   `json:"id"`
	ReferenceID   string                   `json:"reference_id"`
	ReferenceType entity.ReferenceType     `json:"reference_type"`
	FromUser      string                   `json:"from_user"`
	ToUser        string                   `json:"to_user"`
	Amount        int64                    `json:"amount"`
	PaymentMethod string                   `json:"payment_method"`
	Status        entity.TransactionStatus `json:"status"`
	Notes         string                   `json:"notes,omitempty"`
	Metadata      map[string]string        `json:"metadata,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

func TransactionToResponse(t *entity.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		ReferenceID:   t.ReferenceID.String(),
		ReferenceType: t.ReferenceType,
		FromUser:      t.FromUser.String(),
		ToUser:        t.ToUser.String(),
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		Status:        t.Status,
		Notes:         t.Notes,
		Metadata:      t.Metadata,
		CreatedAt:     t.CreatedAt,
	}
}
