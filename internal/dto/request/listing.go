package request

type CreateListingRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"required,min=2"`
	PricePerDay int64  `json:"price_per_day" validate:"min=0"`
	Stock       int    `json:"stock" validate:"min=0"`
	Category    string `json:"category" validate:"required,oneof=mobility respiratory daily-living therapeutic monitoring beds other"`
	ImageURL    string `json:"image_url,omitempty"`
}

type PayListingFeeRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=upi card netbanking wallet"`
}

type SetListedStateRequest struct {
	Listed bool `json:"listed"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}
