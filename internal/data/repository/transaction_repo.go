package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"postjourney/internal/data/entity"
	"postjourney/pkg/apperror"
	"postjourney/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	Create(ctx context.Context, q database.Querier, record *entity.TransactionRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionRecord, error)
	FindByReference(ctx context.Context, referenceID uuid.UUID, referenceType entity.ReferenceType) ([]*entity.TransactionRecord, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.TransactionRecord, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatusCAS(ctx context.Context, q database.Querier, id uuid.UUID, version int64, status entity.TransactionStatus) error
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

const transactionColumns = `id, reference_id, reference_type, from_user, to_user, amount,
	payment_method, status, notes, metadata, version, created_at, updated_at`

func scanTransaction(row pgx.Row) (*entity.TransactionRecord, error) {
	var t entity.TransactionRecord
	var metadata []byte
	err := row.Scan(
		&t.ID,
		&t.ReferenceID,
		&t.ReferenceType,
		&t.FromUser,
		&t.ToUser,
		&t.Amount,
		&t.PaymentMethod,
		&t.Status,
		&t.Notes,
		&metadata,
		&t.Version,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &t.Metadata); err != nil {
			return nil, fmt.Errorf("decode transaction metadata: %w", err)
		}
	}
	return &t, nil
}

func (r *transactionRepository) Create(ctx context.Context, q database.Querier, record *entity.TransactionRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("encode transaction metadata: %w", err)
	}

	query := `
		INSERT INTO transactions (id, reference_id, reference_type, from_user, to_user, amount,
			payment_method, status, notes, metadata, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = q.Exec(ctx, query,
		record.ID,
		record.ReferenceID,
		record.ReferenceType,
		record.FromUser,
		record.ToUser,
		record.Amount,
		record.PaymentMethod,
		record.Status,
		record.Notes,
		metadata,
		record.Version,
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create transaction record",
			zap.Error(err),
			zap.String("reference_id", record.ReferenceID.String()),
			zap.String("reference_type", string(record.ReferenceType)),
		)
		return fmt.Errorf("create transaction for %s %s: %w", string(record.ReferenceType), record.ReferenceID.String(), err)
	}

	return nil
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	record, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find transaction by ID",
			zap.Error(err),
			zap.String("transaction_id", id.String()),
		)
		return nil, fmt.Errorf("find transaction by ID %s: %w", id.String(), err)
	}

	return record, nil
}

func (r *transactionRepository) FindByReference(ctx context.Context, referenceID uuid.UUID, referenceType entity.ReferenceType) ([]*entity.TransactionRecord, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference_id = $1 AND reference_type = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, referenceID, referenceType)
	if err != nil {
		r.log.Error("Failed to find transactions by reference",
			zap.Error(err),
			zap.String("reference_id", referenceID.String()),
			zap.String("reference_type", string(referenceType)),
		)
		return nil, fmt.Errorf("find transactions by reference %s: %w", referenceID.String(), err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *transactionRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.TransactionRecord, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list transactions", zap.Error(err))
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count transactions", zap.Error(err))
		return 0, fmt.Errorf("count transactions: %w", err)
	}

	return count, nil
}

func (r *transactionRepository) UpdateStatusCAS(ctx context.Context, q database.Querier, id uuid.UUID, version int64, status entity.TransactionStatus) error {
	query := `
		UPDATE transactions
		SET status = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := q.Exec(ctx, query, id, version, status)
	if err != nil {
		r.log.Error("Failed to update transaction status",
			zap.Error(err),
			zap.String("transaction_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update transaction %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.Conflict("transaction %s was modified concurrently", id.String())
	}

	return nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.TransactionRecord, error) {
	var records []*entity.TransactionRecord
	for rows.Next() {
		record, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
