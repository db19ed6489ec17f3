package request

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed failed refunded"`
}
