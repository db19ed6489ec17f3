package repository

import (
	"context"
	"fmt"

	"postjourney/internal/data/entity"
	"postjourney/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, q database.Querier, review *entity.ListingReview) error
	FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]*entity.ListingReview, error)
	CountByListingID(ctx context.Context, listingID uuid.UUID) (int64, error)

	// RatingsByListingID returns every rating for the listing, read inside
	// the same transaction as the append so the aggregate recompute can't
	// lose a concurrent review.
	RatingsByListingID(ctx context.Context, q database.Querier, listingID uuid.UUID) ([]int, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, q database.Querier, review *entity.ListingReview) error {
	query := `
		INSERT INTO listing_reviews (id, listing_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		review.ID,
		review.ListingID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("listing_id", review.ListingID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return fmt.Errorf("create review on listing %s: %w", review.ListingID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]*entity.ListingReview, error) {
	query := `
		SELECT id, listing_id, user_id, rating, comment, created_at
		FROM listing_reviews
		WHERE listing_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, listingID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find reviews by listing ID %s: %w", listingID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.ListingReview
	for rows.Next() {
		var review entity.ListingReview
		err := rows.Scan(
			&review.ID,
			&review.ListingID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) CountByListingID(ctx context.Context, listingID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM listing_reviews WHERE listing_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, listingID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return 0, fmt.Errorf("count reviews by listing ID %s: %w", listingID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) RatingsByListingID(ctx context.Context, q database.Querier, listingID uuid.UUID) ([]int, error) {
	query := `SELECT rating FROM listing_reviews WHERE listing_id = $1`

	rows, err := q.Query(ctx, query, listingID)
	if err != nil {
		r.log.Error("Failed to load ratings by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("load ratings by listing ID %s: %w", listingID.String(), err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}
