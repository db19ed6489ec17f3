package usecase

import (
	"context"
	"time"

	"postjourney/internal/data/entity"
	"postjourney/internal/data/repository"
	"postjourney/internal/dto/request"
	"postjourney/internal/dto/response"
	"postjourney/pkg/apperror"
	"postjourney/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordParams describes one money movement to append to the ledger.
type RecordParams struct {
	ReferenceID   uuid.UUID
	ReferenceType entity.ReferenceType
	FromUser      uuid.UUID
	ToUser        uuid.UUID
	Amount        int64
	PaymentMethod string
	Status        entity.TransactionStatus
	Notes         string
	Metadata      map[string]string
}

type LedgerService interface {
	// Record is the single write path for money movements. Other services
	// never insert transaction rows themselves; they hand Record the
	// caller's transaction so the record commits with the domain change.
	Record(ctx context.Context, q database.Querier, p RecordParams) (*entity.TransactionRecord, error)

	// MarkRefundedByReference flips every completed record under the
	// reference to refunded, on the caller's transaction so the flip
	// commits or rolls back with the cancellation itself.
	MarkRefundedByReference(ctx context.Context, q database.Querier, referenceID uuid.UUID, referenceType entity.ReferenceType) error

	GetTransaction(ctx context.Context, id string) (*response.TransactionResponse, error)
	GetByReference(ctx context.Context, referenceID string, referenceType entity.ReferenceType) ([]response.TransactionResponse, error)
	ListTransactions(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionResponse], error)
	UpdateStatus(ctx context.Context, id string, status entity.TransactionStatus) (*response.TransactionResponse, error)
}

type ledgerService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewLedgerService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) LedgerService {
	return &ledgerService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "ledger")),
	}
}

func (s *ledgerService) Record(ctx context.Context, q database.Querier, p RecordParams) (*entity.TransactionRecord, error) {
	if p.Amount < 0 {
		return nil, apperror.Validation("transaction amount must not be negative")
	}
	if p.Status == "" {
		p.Status = entity.TransactionStatusPending
	}

	now := time.Now()
	record := &entity.TransactionRecord{
		BaseVersioned: entity.BaseVersioned{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Version: 1,
		},
		ReferenceID:   p.ReferenceID,
		ReferenceType: p.ReferenceType,
		FromUser:      p.FromUser,
		ToUser:        p.ToUser,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		Notes:         p.Notes,
		Metadata:      p.Metadata,
	}

	if err := s.repo.Transaction.Create(ctx, q, record); err != nil {
		return nil, err
	}

	s.log.Info("Transaction recorded",
		zap.String("transaction_id", record.ID.String()),
		zap.String("reference_id", p.ReferenceID.String()),
		zap.String("reference_type", string(p.ReferenceType)),
		zap.Int64("amount", p.Amount),
		zap.String("status", string(record.Status)),
	)

	return record, nil
}

func (s *ledgerService) MarkRefundedByReference(ctx context.Context, q database.Querier, referenceID uuid.UUID, referenceType entity.ReferenceType) error {
	records, err := s.repo.Transaction.FindByReference(ctx, referenceID, referenceType)
	if err != nil {
		return err
	}

	for _, record := range records {
		if record.Status != entity.TransactionStatusCompleted {
			continue
		}
		if err := s.repo.Transaction.UpdateStatusCAS(ctx, q, record.ID, record.Version, entity.TransactionStatusRefunded); err != nil {
			return err
		}
		s.log.Info("Transaction refunded",
			zap.String("transaction_id", record.ID.String()),
			zap.String("reference_id", referenceID.String()),
			zap.Int64("amount", record.Amount),
		)
	}

	return nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, id string) (*response.TransactionResponse, error) {
	transactionID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid transaction ID format " + id)
	}

	record, err := s.repo.Transaction.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("transaction", id)
	}

	resp := response.TransactionToResponse(record)
	return &resp, nil
}

func (s *ledgerService) GetByReference(ctx context.Context, referenceID string, referenceType entity.ReferenceType) ([]response.TransactionResponse, error) {
	refID, err := uuid.Parse(referenceID)
	if err != nil {
		return nil, apperror.Validation("invalid reference ID format " + referenceID)
	}

	records, err := s.repo.Transaction.FindByReference(ctx, refID, referenceType)
	if err != nil {
		return nil, err
	}

	responses := make([]response.TransactionResponse, len(records))
	for i, record := range records {
		responses[i] = response.TransactionToResponse(record)
	}
	return responses, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionResponse], error) {
	records, err := s.repo.Transaction.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Transaction.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.TransactionResponse, len(records))
	for i, record := range records {
		responses[i] = response.TransactionToResponse(record)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *ledgerService) UpdateStatus(ctx context.Context, id string, status entity.TransactionStatus) (*response.TransactionResponse, error) {
	transactionID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid transaction ID format " + id)
	}

	record, err := s.repo.Transaction.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("transaction", id)
	}

	if !record.Status.CanTransitionTo(status) {
		return nil, apperror.Conflict("transaction %s cannot move from %s to %s", id, string(record.Status), string(status))
	}

	if err := s.repo.Transaction.UpdateStatusCAS(ctx, s.db, transactionID, record.Version, status); err != nil {
		return nil, err
	}

	s.log.Info("Transaction status updated",
		zap.String("transaction_id", id),
		zap.String("from", string(record.Status)),
		zap.String("to", string(status)),
	)

	record.Status = status
	record.Version++
	resp := response.TransactionToResponse(record)
	return &resp, nil
}
