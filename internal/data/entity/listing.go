package entity

import (
	"github.com/google/uuid"
)

type ListingCategory string

const (
	CategoryMobility    ListingCategory = "mobility"
	CategoryRespiratory ListingCategory = "respiratory"
	CategoryDailyLiving ListingCategory = "daily-living"
	CategoryTherapeutic ListingCategory = "therapeutic"
	CategoryMonitoring  ListingCategory = "monitoring"
	CategoryBeds        ListingCategory = "beds"
	CategoryOther       ListingCategory = "other"
)

// Listing is a provider's rentable equipment entry. All amounts are in
// minor currency units. AverageRating, TotalReviews and IsAvailable are
// derived and only ever written together with the mutation that changes
// their inputs.
type Listing struct {
	BaseVersioned
	ProviderID       uuid.UUID       `db:"provider_id"`
	Name             string          `db:"name"`
	Description      string          `db:"description"`
	PricePerDay      int64           `db:"price_per_day"`
	Stock            int             `db:"stock"`
	Category         ListingCategory `db:"category"`
	ImageURL         string          `db:"image_url"`
	IsAvailable      bool            `db:"is_available"`
	IsListed         bool            `db:"is_listed"`
	ListingFeePaid   bool            `db:"listing_fee_paid"`
	ListingFeeAmount int64           `db:"listing_fee_amount"`
	AverageRating    float64         `db:"average_rating"`
	TotalReviews     int             `db:"total_reviews"`
}
