package entity

import (
	"github.com/google/uuid"
)

// ListingReview is one review appended to a listing. Duplicate reviews from
// the same user are allowed here; the one-review-per-completed-booking rule
// is enforced by the booking side.
type ListingReview struct {
	BaseSimple
	ListingID uuid.UUID `db:"listing_id"`
	UserID    uuid.UUID `db:"user_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
}
