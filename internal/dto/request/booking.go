package request

type CreateBookingRequest struct {
	ListingID       string `json:"listing_id" validate:"required,uuid4"`
	StartDate       string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Quantity        int    `json:"quantity" validate:"required,min=1"`
	DeliveryAddress string `json:"delivery_address" validate:"required"`
	ContactPhone    string `json:"contact_phone" validate:"required"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=upi card netbanking wallet cod"`
	Notes           string `json:"notes,omitempty"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed in-progress completed cancelled"`
	Reason string `json:"reason,omitempty"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=paid refunded"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}
