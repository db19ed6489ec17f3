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
	"postjourney/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CatalogService interface {
	// Provider endpoints
	CreateListing(ctx context.Context, providerID string, req *request.CreateListingRequest) (*response.ListingResponse, error)
	GetProviderListings(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error)
	AdjustStock(ctx context.Context, providerID, listingID string, delta int) (*response.ListingResponse, error)
	PayListingFee(ctx context.Context, providerID, listingID string, req *request.PayListingFeeRequest) (*response.ListingResponse, error)
	SetListedState(ctx context.Context, providerID, listingID string, listed bool) (*response.ListingResponse, error)

	// Public endpoints
	BrowseListings(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error)
	GetListing(ctx context.Context, listingID string) (*response.ListingDetailResponse, error)

	// AddReview appends a review and recomputes the listing aggregates on
	// the caller's transaction. Callers own the one-review-per-booking
	// rule; this only guards the rating range.
	AddReview(ctx context.Context, q database.Querier, listingID, userID uuid.UUID, rating int, comment string) (*entity.ListingReview, error)
}

type catalogService struct {
	db     database.PgxIface
	repo   *repository.Repository
	ledger LedgerService
	config *utils.Config
	log    *zap.Logger
}

func NewCatalogService(db database.PgxIface, repo *repository.Repository, ledger LedgerService, config *utils.Config, log *zap.Logger) CatalogService {
	return &catalogService{
		db:     db,
		repo:   repo,
		ledger: ledger,
		config: config,
		log:    log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateListing(ctx context.Context, providerID string, req *request.CreateListingRequest) (*response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create listing validation failed", zap.Any("errors", errs))
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperror.Validation("invalid provider ID format " + providerID)
	}

	now := time.Now()
	listing := &entity.Listing{
		BaseVersioned: entity.BaseVersioned{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Version: 1,
		},
		ProviderID:  providerUUID,
		Name:        req.Name,
		Description: req.Description,
		PricePerDay: req.PricePerDay,
		Stock:       req.Stock,
		Category:    entity.ListingCategory(req.Category),
		ImageURL:    req.ImageURL,
		IsAvailable: entity.StockAvailable(req.Stock),
		// Not listed until the provider is verified and the listing fee
		// is recorded paid.
		IsListed: false,
	}

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("provider_id", providerID),
		zap.Int64("price_per_day", listing.PricePerDay),
		zap.Int("stock", listing.Stock),
	)

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *catalogService) GetProviderListings(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperror.Validation("invalid provider ID format " + providerID)
	}

	listings, err := s.repo.Listing.FindByProviderID(ctx, providerUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Listing.CountByProviderID(ctx, providerUUID)
	if err != nil {
		return nil, err
	}

	responses := make([]response.ListingResponse, len(listings))
	for i, listing := range listings {
		responses[i] = response.ListingToResponse(listing)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *catalogService) AdjustStock(ctx context.Context, providerID, listingID string, delta int) (*response.ListingResponse, error) {
	listing, err := s.loadOwnedListing(ctx, providerID, listingID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Listing.AdjustStock(ctx, s.db, listing.ID, delta); err != nil {
		return nil, err
	}

	updated, err := s.repo.Listing.FindByID(ctx, listing.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Stock adjusted",
		zap.String("listing_id", listingID),
		zap.Int("delta", delta),
		zap.Int("stock", updated.Stock),
	)

	resp := response.ListingToResponse(updated)
	return &resp, nil
}

func (s *catalogService) PayListingFee(ctx context.Context, providerID, listingID string, req *request.PayListingFeeRequest) (*response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	listing, err := s.loadOwnedListing(ctx, providerID, listingID)
	if err != nil {
		return nil, err
	}

	if listing.ListingFeePaid {
		return nil, apperror.Conflict("listing fee already paid for listing %s", listingID)
	}

	amount := s.config.Commission.ListingFeeAmount
	adminID := s.adminAccountID()

	// Fee record and flag flip commit together or not at all.
	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.ledger.Record(ctx, tx, RecordParams{
			ReferenceID:   listing.ID,
			ReferenceType: entity.ReferenceListingFee,
			FromUser:      listing.ProviderID,
			ToUser:        adminID,
			Amount:        amount,
			PaymentMethod: req.PaymentMethod,
			Status:        entity.TransactionStatusCompleted,
			Notes:         "listing fee for " + listing.Name,
		}); err != nil {
			return err
		}
		return s.repo.Listing.MarkListingFeePaid(ctx, tx, listing.ID, listing.Version, amount)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Listing.FindByID(ctx, listing.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Listing fee paid",
		zap.String("listing_id", listingID),
		zap.String("provider_id", providerID),
		zap.Int64("amount", amount),
	)

	resp := response.ListingToResponse(updated)
	return &resp, nil
}

func (s *catalogService) SetListedState(ctx context.Context, providerID, listingID string, listed bool) (*response.ListingResponse, error) {
	listing, err := s.loadOwnedListing(ctx, providerID, listingID)
	if err != nil {
		return nil, err
	}

	if listed {
		verification, err := s.repo.Verification.FindByProviderID(ctx, listing.ProviderID)
		if err != nil {
			return nil, err
		}
		if verification == nil || verification.Status != entity.VerificationApproved {
			return nil, apperror.Conflict("provider %s is not approved for listing", providerID)
		}
		if !listing.ListingFeePaid {
			return nil, apperror.Conflict("listing fee not paid for listing %s", listingID)
		}
	}

	if err := s.repo.Listing.UpdateListedState(ctx, listing.ID, listing.Version, listed); err != nil {
		return nil, err
	}

	updated, err := s.repo.Listing.FindByID(ctx, listing.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Listing listed state changed",
		zap.String("listing_id", listingID),
		zap.Bool("listed", listed),
	)

	resp := response.ListingToResponse(updated)
	return &resp, nil
}

func (s *catalogService) BrowseListings(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error) {
	listings, err := s.repo.Listing.FindListed(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Listing.CountListed(ctx, search)
	if err != nil {
		return nil, err
	}

	responses := make([]response.ListingResponse, len(listings))
	for i, listing := range listings {
		responses[i] = response.ListingToResponse(listing)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *catalogService) GetListing(ctx context.Context, listingID string) (*response.ListingDetailResponse, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, apperror.Validation("invalid listing ID format " + listingID)
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperror.NotFound("listing", listingID)
	}

	reviews, err := s.repo.Review.FindByListingID(ctx, id, 50, 0)
	if err != nil {
		return nil, err
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review)
	}

	return &response.ListingDetailResponse{
		ListingResponse: response.ListingToResponse(listing),
		Reviews:         reviewResponses,
	}, nil
}

func (s *catalogService) AddReview(ctx context.Context, q database.Querier, listingID, userID uuid.UUID, rating int, comment string) (*entity.ListingReview, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}

	listing, err := s.repo.Listing.FindByIDTx(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperror.NotFound("listing", listingID.String())
	}

	review := &entity.ListingReview{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ListingID: listingID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}

	if err := s.repo.Review.Create(ctx, q, review); err != nil {
		return nil, err
	}

	// Recompute from the full rating list inside the same transaction;
	// a failure here aborts the append rather than persisting a stale
	// aggregate.
	ratings, err := s.repo.Review.RatingsByListingID(ctx, q, listingID)
	if err != nil {
		return nil, err
	}

	average, total := entity.ReviewAggregate(ratings)
	if err := s.repo.Listing.UpdateReviewAggregates(ctx, q, listingID, average, total); err != nil {
		return nil, err
	}

	s.log.Info("Review added",
		zap.String("listing_id", listingID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("rating", rating),
		zap.Float64("average_rating", average),
		zap.Int("total_reviews", total),
	)

	return review, nil
}

func (s *catalogService) loadOwnedListing(ctx context.Context, providerID, listingID string) (*entity.Listing, error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperror.Validation("invalid provider ID format " + providerID)
	}

	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, apperror.Validation("invalid listing ID format " + listingID)
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperror.NotFound("listing", listingID)
	}

	if listing.ProviderID != providerUUID {
		return nil, apperror.Conflict("listing %s does not belong to provider %s", listingID, providerID)
	}

	return listing, nil
}

func (s *catalogService) adminAccountID() uuid.UUID {
	id, err := uuid.Parse(s.config.Commission.AdminAccountID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
