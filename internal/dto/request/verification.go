package request

type SubmitVerificationRequest struct {
	DocumentRef string `json:"document_ref" validate:"required"`
}

type DecideVerificationRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}
