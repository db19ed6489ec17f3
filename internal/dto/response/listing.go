package response

import (
	"time"

	"postjourney/internal/data/entity"
)

type ListingResponse struct {
	ID               string                 `json:"id"`
	ProviderID       string                 `json:"provider_id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	PricePerDay      int64                  `json:"price_per_day"`
	Stock            int                    `json:"stock"`
	Category         entity.ListingCategory `json:"category"`
	ImageURL         string                 `json:"image_url,omitempty"`
	IsAvailable      bool                   `json:"is_available"`
	IsListed         bool                   `json:"is_listed"`
	ListingFeePaid   bool                   `json:"listing_fee_paid"`
	ListingFeeAmount int64                  `json:"listing_fee_amount,omitempty"`
	AverageRating    float64                `json:"average_rating"`
	TotalReviews     int                    `json:"total_reviews"`
	CreatedAt        time.Time              `json:"created_at"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListingDetailResponse struct {
	ListingResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// Helper converters
func ListingToResponse(l *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:               l.ID.String(),
		ProviderID:       l.ProviderID.String(),
		Name:             l.Name,
		Description:      l.Description,
		PricePerDay:      l.PricePerDay,
		Stock:            l.Stock,
		Category:         l.Category,
		ImageURL:         l.ImageURL,
		IsAvailable:      l.IsAvailable,
		IsListed:         l.IsListed,
		ListingFeePaid:   l.ListingFeePaid,
		ListingFeeAmount: l.ListingFeeAmount,
		AverageRating:    l.AverageRating,
		TotalReviews:     l.TotalReviews,
		CreatedAt:        l.CreatedAt,
	}
}

func ReviewToResponse(r *entity.ListingReview) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID.String(),
		ListingID: r.ListingID.String(),
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
