package response

import (
	"time"

	"postjourney/internal/data/entity"
)

type BookingResponse struct {
	ID                 string               `json:"id"`
	PatientID          string               `json:"patient_id"`
	ProviderID         string               `json:"provider_id"`
	ListingID          string               `json:"listing_id"`
	ListingName        string               `json:"listing_name"`
	StartDate          string               `json:"start_date"`
	EndDate            string               `json:"end_date"`
	Quantity           int                  `json:"quantity"`
	PricePerDay        int64                `json:"price_per_day"`
	TotalDays          int                  `json:"total_days"`
	TotalAmount        int64                `json:"total_amount"`
	Status             entity.BookingStatus `json:"status"`
	PaymentStatus      entity.PaymentStatus `json:"payment_status"`
	PaymentMethod      entity.PaymentMethod `json:"payment_method"`
	DeliveryAddress    string               `json:"delivery_address"`
	ContactPhone       string               `json:"contact_phone"`
	Notes              string               `json:"notes,omitempty"`
	CancelledBy        entity.CancelActor   `json:"cancelled_by,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	HasReview          bool                 `json:"has_review"`
	CreatedAt          time.Time            `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID.String(),
		PatientID:          b.PatientID.String(),
		ProviderID:         b.ProviderID.String(),
		ListingID:          b.ListingID.String(),
		ListingName:        b.ListingName,
		StartDate:          b.StartDate.Format("2006-01-02"),
		EndDate:            b.EndDate.Format("2006-01-02"),
		Quantity:           b.Quantity,
		PricePerDay:        b.PricePerDay,
		TotalDays:          b.TotalDays,
		TotalAmount:        b.TotalAmount,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		PaymentMethod:      b.PaymentMethod,
		DeliveryAddress:    b.DeliveryAddress,
		ContactPhone:       b.ContactPhone,
		Notes:              b.Notes,
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,
		HasReview:          b.HasReview,
		CreatedAt:          b.CreatedAt,
	}
}
