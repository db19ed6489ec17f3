package repository

import (
	"context"
	"fmt"

	"postjourney/internal/data/entity"
	"postjourney/pkg/apperror"
	"postjourney/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindByIDTx(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Listing, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Listing, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)
	FindListed(ctx context.Context, search string, limit, offset int) ([]*entity.Listing, error)
	CountListed(ctx context.Context, search string) (int64, error)

	// AdjustStock atomically applies stock += delta and recomputes
	// is_available in one statement. The WHERE clause refuses any delta
	// that would drive stock negative, so two concurrent reservations of
	// the last unit cannot both succeed.
	AdjustStock(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error

	UpdateListedState(ctx context.Context, id uuid.UUID, version int64, listed bool) error
	MarkListingFeePaid(ctx context.Context, q database.Querier, id uuid.UUID, version int64, amount int64) error
	UpdateReviewAggregates(ctx context.Context, q database.Querier, id uuid.UUID, average float64, total int) error
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

const listingColumns = `id, provider_id, name, description, price_per_day, stock, category,
	image_url, is_available, is_listed, listing_fee_paid, listing_fee_amount,
	average_rating, total_reviews, version, created_at, updated_at`

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var l entity.Listing
	err := row.Scan(
		&l.ID,
		&l.ProviderID,
		&l.Name,
		&l.Description,
		&l.PricePerDay,
		&l.Stock,
		&l.Category,
		&l.ImageURL,
		&l.IsAvailable,
		&l.IsListed,
		&l.ListingFeePaid,
		&l.ListingFeeAmount,
		&l.AverageRating,
		&l.TotalReviews,
		&l.Version,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (id, provider_id, name, description, price_per_day, stock, category,
			image_url, is_available, is_listed, listing_fee_paid, listing_fee_amount,
			average_rating, total_reviews, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.ProviderID,
		listing.Name,
		listing.Description,
		listing.PricePerDay,
		listing.Stock,
		listing.Category,
		listing.ImageURL,
		listing.IsAvailable,
		listing.IsListed,
		listing.ListingFeePaid,
		listing.ListingFeeAmount,
		listing.AverageRating,
		listing.TotalReviews,
		listing.Version,
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("provider_id", listing.ProviderID.String()),
			zap.String("name", listing.Name),
		)
		return fmt.Errorf("create listing %s: %w", listing.Name, err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *listingRepository) FindByIDTx(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id.String(), err)
	}

	return listing, nil
}

func (r *listingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE provider_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, providerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find listings by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find listings by provider ID %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	return collectListings(rows)
}

func (r *listingRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM listings WHERE provider_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, providerID).Scan(&count); err != nil {
		r.log.Error("Failed to count listings by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return 0, fmt.Errorf("count listings by provider ID %s: %w", providerID.String(), err)
	}

	return count, nil
}

func (r *listingRepository) FindListed(ctx context.Context, search string, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE is_listed = TRUE AND is_available = TRUE AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to find listed equipment", zap.Error(err))
		return nil, fmt.Errorf("find listed equipment: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

func (r *listingRepository) CountListed(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM listings WHERE is_listed = TRUE AND is_available = TRUE AND ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var count int64
	if err := r.db.QueryRow(ctx, query, search).Scan(&count); err != nil {
		r.log.Error("Failed to count listed equipment", zap.Error(err))
		return 0, fmt.Errorf("count listed equipment: %w", err)
	}

	return count, nil
}

func (r *listingRepository) AdjustStock(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error {
	query := `
		UPDATE listings
		SET stock = stock + $2,
		    is_available = (stock + $2) > 0,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
	`

	result, err := q.Exec(ctx, query, id, delta)
	if err != nil {
		r.log.Error("Failed to adjust stock",
			zap.Error(err),
			zap.String("listing_id", id.String()),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("adjust stock on listing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		// Either the listing is gone or the delta would oversell.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check listing %s exists: %w", id.String(), err)
		}
		if !exists {
			return apperror.NotFound("listing", id.String())
		}
		return apperror.InsufficientStock(id.String(), -delta)
	}

	return nil
}

func (r *listingRepository) UpdateListedState(ctx context.Context, id uuid.UUID, version int64, listed bool) error {
	query := `
		UPDATE listings
		SET is_listed = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, id, version, listed)
	if err != nil {
		r.log.Error("Failed to update listed state",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return fmt.Errorf("update listed state on listing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.Conflict("listing %s was modified concurrently", id.String())
	}

	return nil
}

func (r *listingRepository) MarkListingFeePaid(ctx context.Context, q database.Querier, id uuid.UUID, version int64, amount int64) error {
	query := `
		UPDATE listings
		SET listing_fee_paid = TRUE, listing_fee_amount = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2 AND listing_fee_paid = FALSE
	`

	result, err := q.Exec(ctx, query, id, version, amount)
	if err != nil {
		r.log.Error("Failed to mark listing fee paid",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return fmt.Errorf("mark listing fee paid on listing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.Conflict("listing fee already paid or listing %s was modified concurrently", id.String())
	}

	return nil
}

func (r *listingRepository) UpdateReviewAggregates(ctx context.Context, q database.Querier, id uuid.UUID, average float64, total int) error {
	query := `
		UPDATE listings
		SET average_rating = $2, total_reviews = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, id, average, total)
	if err != nil {
		r.log.Error("Failed to update review aggregates",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return fmt.Errorf("update review aggregates on listing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("listing", id.String())
	}

	return nil
}

func collectListings(rows pgx.Rows) ([]*entity.Listing, error) {
	var listings []*entity.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}
