package usecase

import (
	"context"
	"time"

	"postjourney/internal/data/entity"
	"postjourney/internal/data/repository"
	"postjourney/internal/dto/request"
	"postjourney/internal/dto/response"
	"postjourney/pkg/apperror"
	"postjourney/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VerificationService interface {
	Submit(ctx context.Context, providerID string, req *request.SubmitVerificationRequest) (*response.VerificationResponse, error)
	GetStatus(ctx context.Context, providerID string) (*response.VerificationResponse, error)
	ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VerificationResponse], error)
	Decide(ctx context.Context, adminID, providerID string, req *request.DecideVerificationRequest) (*response.VerificationResponse, error)
}

type verificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVerificationService(repo *repository.Repository, log *zap.Logger) VerificationService {
	return &verificationService{
		repo: repo,
		log:  log.With(zap.String("service", "verification")),
	}
}

func (s *verificationService) Submit(ctx context.Context, providerID string, req *request.SubmitVerificationRequest) (*response.VerificationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperror.Validation("invalid provider ID format " + providerID)
	}

	verification, err := s.repo.Verification.FindByProviderID(ctx, providerUUID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if verification == nil {
		verification = &entity.ProviderVerification{
			BaseVersioned: entity.BaseVersioned{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				Version: 1,
			},
			ProviderID:  providerUUID,
			Status:      entity.VerificationPending,
			DocumentRef: req.DocumentRef,
		}
		if err := s.repo.Verification.Create(ctx, verification); err != nil {
			return nil, err
		}
	} else {
		if !verification.Status.CanSubmit() {
			return nil, apperror.Conflict("provider %s verification is already %s", providerID, string(verification.Status))
		}

		// Resubmission resets the decision fields.
		verification.Status = entity.VerificationPending
		verification.DocumentRef = req.DocumentRef
		verification.VerifiedBy = nil
		verification.VerifiedAt = nil
		verification.RejectionReason = ""
		if err := s.repo.Verification.UpdateCAS(ctx, verification); err != nil {
			return nil, err
		}
	}

	s.log.Info("Verification submitted",
		zap.String("provider_id", providerID),
		zap.String("document_ref", req.DocumentRef),
	)

	resp := response.VerificationToResponse(verification)
	return &resp, nil
}

func (s *verificationService) GetStatus(ctx context.Context, providerID string) (*response.VerificationResponse, error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperror.Validation("invalid provider ID format " + providerID)
	}

	verification, err := s.repo.Verification.FindByProviderID(ctx, providerUUID)
	if err != nil {
		return nil, err
	}
	if verification == nil {
		// No row yet means the provider simply has not submitted.
		resp := response.VerificationResponse{
			ProviderID: providerID,
			Status:     entity.VerificationUnsubmitted,
		}
		return &resp, nil
	}

	resp := response.VerificationToResponse(verification)
	return &resp, nil
}

func (s *verificationService) ListPending(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VerificationResponse], error) {
	pending, err := s.repo.Verification.FindPending(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Verification.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.VerificationResponse, len(pending))
	for i, verification := range pending {
		responses[i] = response.VerificationToResponse(verification)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *verificationService) Decide(ctx context.Context, adminID, providerID string, req *request.DecideVerificationRequest) (*response.VerificationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}
	if !req.Approve && req.Reason == "" {
		return nil, apperror.Validation("rejection requires a reason")
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, apperror.Validation("invalid admin ID format " + adminID)
	}

	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperror.Validation("invalid provider ID format " + providerID)
	}

	verification, err := s.repo.Verification.FindByProviderID(ctx, providerUUID)
	if err != nil {
		return nil, err
	}
	if verification == nil {
		return nil, apperror.NotFound("verification", providerID)
	}

	if verification.Status != entity.VerificationPending {
		return nil, apperror.Conflict("provider %s verification is %s, not pending", providerID, string(verification.Status))
	}

	now := time.Now()
	verification.VerifiedBy = &adminUUID
	verification.VerifiedAt = &now
	if req.Approve {
		verification.Status = entity.VerificationApproved
		verification.RejectionReason = ""
	} else {
		verification.Status = entity.VerificationRejected
		verification.RejectionReason = req.Reason
	}

	if err := s.repo.Verification.UpdateCAS(ctx, verification); err != nil {
		return nil, err
	}

	s.log.Info("Verification decided",
		zap.String("provider_id", providerID),
		zap.String("admin_id", adminID),
		zap.String("status", string(verification.Status)),
	)

	resp := response.VerificationToResponse(verification)
	return &resp, nil
}
