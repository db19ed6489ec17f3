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

type BookingRepository interface {
	Create(ctx context.Context, q database.Querier, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByPatientID(ctx context.Context, patientID uuid.UUID) (int64, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)

	// UpdateCAS writes the mutable lifecycle fields guarded by the version
	// the caller loaded. A concurrent writer bumps the version first and
	// the loser's update matches zero rows.
	UpdateCAS(ctx context.Context, q database.Querier, booking *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, patient_id, provider_id, listing_id, listing_name, start_date, end_date,
	quantity, price_per_day, total_days, total_amount, status, payment_status, payment_method,
	delivery_address, contact_phone, notes, cancelled_by, cancellation_reason, has_review,
	version, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.PatientID,
		&b.ProviderID,
		&b.ListingID,
		&b.ListingName,
		&b.StartDate,
		&b.EndDate,
		&b.Quantity,
		&b.PricePerDay,
		&b.TotalDays,
		&b.TotalAmount,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.DeliveryAddress,
		&b.ContactPhone,
		&b.Notes,
		&b.CancelledBy,
		&b.CancellationReason,
		&b.HasReview,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, patient_id, provider_id, listing_id, listing_name, start_date, end_date,
			quantity, price_per_day, total_days, total_amount, status, payment_status, payment_method,
			delivery_address, contact_phone, notes, cancelled_by, cancellation_reason, has_review,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.PatientID,
		booking.ProviderID,
		booking.ListingID,
		booking.ListingName,
		booking.StartDate,
		booking.EndDate,
		booking.Quantity,
		booking.PricePerDay,
		booking.TotalDays,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentMethod,
		booking.DeliveryAddress,
		booking.ContactPhone,
		booking.Notes,
		booking.CancelledBy,
		booking.CancellationReason,
		booking.HasReview,
		booking.Version,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("patient_id", booking.PatientID.String()),
			zap.String("listing_id", booking.ListingID.String()),
		)
		return fmt.Errorf("create booking for listing %s: %w", booking.ListingID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by patient ID",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return nil, fmt.Errorf("find bookings by patient ID %s: %w", patientID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CountByPatientID(ctx context.Context, patientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE patient_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, patientID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by patient ID",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return 0, fmt.Errorf("count bookings by patient ID %s: %w", patientID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, providerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find bookings by provider ID %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE provider_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, providerID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return 0, fmt.Errorf("count bookings by provider ID %s: %w", providerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateCAS(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $3, payment_status = $4, cancelled_by = $5, cancellation_reason = $6,
		    has_review = $7, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := q.Exec(ctx, query,
		booking.ID,
		booking.Version,
		booking.Status,
		booking.PaymentStatus,
		booking.CancelledBy,
		booking.CancellationReason,
		booking.HasReview,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.Conflict("booking %s was modified concurrently", booking.ID.String())
	}

	booking.Version++
	return nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
