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

type VerificationRepository interface {
	Create(ctx context.Context, verification *entity.ProviderVerification) error
	FindByProviderID(ctx context.Context, providerID uuid.UUID) (*entity.ProviderVerification, error)
	FindPending(ctx context.Context, limit, offset int) ([]*entity.ProviderVerification, error)
	CountPending(ctx context.Context) (int64, error)
	UpdateCAS(ctx context.Context, verification *entity.ProviderVerification) error
}

type verificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVerificationRepository(db database.PgxIface, log *zap.Logger) VerificationRepository {
	return &verificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "verification")),
	}
}

const verificationColumns = `id, provider_id, status, document_ref, verified_by, verified_at,
	rejection_reason, version, created_at, updated_at`

func scanVerification(row pgx.Row) (*entity.ProviderVerification, error) {
	var v entity.ProviderVerification
	err := row.Scan(
		&v.ID,
		&v.ProviderID,
		&v.Status,
		&v.DocumentRef,
		&v.VerifiedBy,
		&v.VerifiedAt,
		&v.RejectionReason,
		&v.Version,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *verificationRepository) Create(ctx context.Context, verification *entity.ProviderVerification) error {
	query := `
		INSERT INTO provider_verifications (id, provider_id, status, document_ref, verified_by,
			verified_at, rejection_reason, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		verification.ID,
		verification.ProviderID,
		verification.Status,
		verification.DocumentRef,
		verification.VerifiedBy,
		verification.VerifiedAt,
		verification.RejectionReason,
		verification.Version,
		verification.CreatedAt,
		verification.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create provider verification",
			zap.Error(err),
			zap.String("provider_id", verification.ProviderID.String()),
		)
		return fmt.Errorf("create verification for provider %s: %w", verification.ProviderID.String(), err)
	}

	return nil
}

func (r *verificationRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) (*entity.ProviderVerification, error) {
	query := `SELECT ` + verificationColumns + ` FROM provider_verifications WHERE provider_id = $1`

	verification, err := scanVerification(r.db.QueryRow(ctx, query, providerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find verification by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find verification by provider ID %s: %w", providerID.String(), err)
	}

	return verification, nil
}

func (r *verificationRepository) FindPending(ctx context.Context, limit, offset int) ([]*entity.ProviderVerification, error) {
	query := `
		SELECT ` + verificationColumns + `
		FROM provider_verifications
		WHERE status = 'pending'
		ORDER BY updated_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find pending verifications", zap.Error(err))
		return nil, fmt.Errorf("find pending verifications: %w", err)
	}
	defer rows.Close()

	var verifications []*entity.ProviderVerification
	for rows.Next() {
		verification, err := scanVerification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification row: %w", err)
		}
		verifications = append(verifications, verification)
	}

	return verifications, rows.Err()
}

func (r *verificationRepository) CountPending(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM provider_verifications WHERE status = 'pending'`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count pending verifications", zap.Error(err))
		return 0, fmt.Errorf("count pending verifications: %w", err)
	}

	return count, nil
}

func (r *verificationRepository) UpdateCAS(ctx context.Context, verification *entity.ProviderVerification) error {
	query := `
		UPDATE provider_verifications
		SET status = $3, document_ref = $4, verified_by = $5, verified_at = $6,
		    rejection_reason = $7, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query,
		verification.ID,
		verification.Version,
		verification.Status,
		verification.DocumentRef,
		verification.VerifiedBy,
		verification.VerifiedAt,
		verification.RejectionReason,
	)

	if err != nil {
		r.log.Error("Failed to update provider verification",
			zap.Error(err),
			zap.String("provider_id", verification.ProviderID.String()),
		)
		return fmt.Errorf("update verification for provider %s: %w", verification.ProviderID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.Conflict("verification for provider %s was modified concurrently", verification.ProviderID.String())
	}

	verification.Version++
	return nil
}
