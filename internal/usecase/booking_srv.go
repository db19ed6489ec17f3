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

type BookingService interface {
	CreateBooking(ctx context.Context, patientID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, actorID, role, bookingID string) (*response.BookingResponse, error)
	GetPatientBookings(ctx context.Context, patientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetProviderBookings(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	TransitionStatus(ctx context.Context, actorID, role, bookingID string, req *request.TransitionStatusRequest) (*response.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, actorID, role, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error)
	SubmitReview(ctx context.Context, patientID, bookingID string, req *request.SubmitReviewRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	db      database.PgxIface
	repo    *repository.Repository
	catalog CatalogService
	ledger  LedgerService
	config  *utils.Config
	log     *zap.Logger
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, catalog CatalogService, ledger LedgerService, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		db:      db,
		repo:    repo,
		catalog: catalog,
		ledger:  ledger,
		config:  config,
		log:     log.With(zap.String("service", "booking")),
	}
}

const dateLayout = "2006-01-02"

func (s *bookingService) CreateBooking(ctx context.Context, patientID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, apperror.Validation("invalid patient ID format " + patientID)
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, apperror.Validation("invalid listing ID format " + req.ListingID)
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperror.Validation("invalid start date " + req.StartDate)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, apperror.Validation("invalid end date " + req.EndDate)
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperror.NotFound("listing", req.ListingID)
	}
	if !listing.IsListed {
		return nil, apperror.Conflict("listing %s is not available for booking", req.ListingID)
	}

	days := entity.RentalDays(startDate, endDate)
	totalAmount := entity.RentalTotal(days, listing.PricePerDay, req.Quantity)

	method := entity.PaymentMethod(req.PaymentMethod)
	paymentStatus := entity.PaymentStatusPending
	if method.IsOnline() {
		paymentStatus = entity.PaymentStatusPaid
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseVersioned: entity.BaseVersioned{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Version: 1,
		},
		PatientID:  patientUUID,
		ProviderID: listing.ProviderID,
		ListingID:  listing.ID,
		// Name and price are snapshots; later listing edits must not
		// rewrite history.
		ListingName:     listing.Name,
		StartDate:       startDate,
		EndDate:         endDate,
		Quantity:        req.Quantity,
		PricePerDay:     listing.PricePerDay,
		TotalDays:       days,
		TotalAmount:     totalAmount,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   method,
		DeliveryAddress: req.DeliveryAddress,
		ContactPhone:    req.ContactPhone,
		Notes:           req.Notes,
	}

	// Stock decrement and booking insert commit together. The conditional
	// stock update is what rejects oversell under concurrent bookings.
	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.repo.Listing.AdjustStock(ctx, tx, listing.ID, -req.Quantity); err != nil {
			return err
		}
		if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
			return err
		}
		if paymentStatus == entity.PaymentStatusPaid {
			_, err := s.ledger.Record(ctx, tx, RecordParams{
				ReferenceID:   booking.ID,
				ReferenceType: entity.ReferenceBooking,
				FromUser:      patientUUID,
				ToUser:        s.adminAccountID(),
				Amount:        totalAmount,
				PaymentMethod: req.PaymentMethod,
				Status:        entity.TransactionStatusCompleted,
				Notes:         "booking payment for " + listing.Name,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("patient_id", patientID),
		zap.String("listing_id", req.ListingID),
		zap.Int("quantity", req.Quantity),
		zap.Int("total_days", days),
		zap.Int64("total_amount", totalAmount),
		zap.String("payment_status", string(paymentStatus)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorID, role, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeActor(booking, actorID, role); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetPatientBookings(ctx context.Context, patientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, apperror.Validation("invalid patient ID format " + patientID)
	}

	bookings, err := s.repo.Booking.FindByPatientID(ctx, patientUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByPatientID(ctx, patientUUID)
	if err != nil {
		return nil, err
	}

	return paginateBookings(bookings, req, total), nil
}

func (s *bookingService) GetProviderBookings(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperror.Validation("invalid provider ID format " + providerID)
	}

	bookings, err := s.repo.Booking.FindByProviderID(ctx, providerUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByProviderID(ctx, providerUUID)
	if err != nil {
		return nil, err
	}

	return paginateBookings(bookings, req, total), nil
}

func (s *bookingService) TransitionStatus(ctx context.Context, actorID, role, bookingID string, req *request.TransitionStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeActor(booking, actorID, role); err != nil {
		return nil, err
	}

	target := entity.BookingStatus(req.Status)
	if !booking.Status.CanTransitionTo(target) {
		return nil, apperror.Conflict("booking %s cannot move from %s to %s", bookingID, string(booking.Status), string(target))
	}

	switch target {
	case entity.BookingStatusCancelled:
		return s.cancelBooking(ctx, booking, role, req.Reason)
	case entity.BookingStatusCompleted:
		return s.completeBooking(ctx, booking)
	default:
		// Patients only confirm by cancelling; forward movement belongs
		// to the provider side.
		if role == "patient" {
			return nil, apperror.Conflict("patients may only cancel bookings")
		}

		from := booking.Status
		booking.Status = target
		if err := s.repo.Booking.UpdateCAS(ctx, s.db, booking); err != nil {
			return nil, err
		}

		s.log.Info("Booking status updated",
			zap.String("booking_id", bookingID),
			zap.String("from", string(from)),
			zap.String("to", string(target)),
		)

		resp := response.BookingToResponse(booking)
		return &resp, nil
	}
}

// cancelBooking restocks the listing, flips the payment to refunded, and
// marks the payment records refunded in a single transaction.
func (s *bookingService) cancelBooking(ctx context.Context, booking *entity.Booking, role, reason string) (*response.BookingResponse, error) {
	wasPaid := booking.PaymentStatus == entity.PaymentStatusPaid

	booking.Status = entity.BookingStatusCancelled
	booking.CancelledBy = cancelActorFromRole(role)
	booking.CancellationReason = reason
	if wasPaid {
		booking.PaymentStatus = entity.PaymentStatusRefunded
	}

	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if wasPaid {
			if err := s.ledger.MarkRefundedByReference(ctx, tx, booking.ID, entity.ReferenceBooking); err != nil {
				return err
			}
		}
		if err := s.repo.Listing.AdjustStock(ctx, tx, booking.ListingID, booking.Quantity); err != nil {
			return err
		}
		return s.repo.Booking.UpdateCAS(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("cancelled_by", string(booking.CancelledBy)),
		zap.Bool("refunded", wasPaid),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// completeBooking records the provider/admin split exactly once; the CAS on
// the status transition is what makes a second completion lose. Completion
// does not require payment: cash-on-delivery bookings are marked paid after
// the rental ends.
func (s *bookingService) completeBooking(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	commission, share := entity.SplitFee(booking.TotalAmount, s.config.Commission.RateBps)

	booking.Status = entity.BookingStatusCompleted
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.repo.Booking.UpdateCAS(ctx, tx, booking); err != nil {
			return err
		}
		_, err := s.ledger.Record(ctx, tx, RecordParams{
			ReferenceID:   booking.ID,
			ReferenceType: entity.ReferenceBookingSplit,
			FromUser:      s.adminAccountID(),
			ToUser:        booking.ProviderID,
			Amount:        share,
			PaymentMethod: string(booking.PaymentMethod),
			Status:        entity.TransactionStatusCompleted,
			Notes:         "provider share for " + booking.ListingName,
			Metadata: map[string]string{
				"total_amount": utils.FormatInt(booking.TotalAmount),
				"commission":   utils.FormatInt(commission),
				"share":        utils.FormatInt(share),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking completed",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("total_amount", booking.TotalAmount),
		zap.Int64("commission", commission),
		zap.Int64("provider_share", share),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, actorID, role, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeActor(booking, actorID, role); err != nil {
		return nil, err
	}

	target := entity.PaymentStatus(req.PaymentStatus)
	switch target {
	case entity.PaymentStatusPaid:
		if booking.PaymentStatus != entity.PaymentStatusPending {
			return nil, apperror.Conflict("booking %s payment is already %s", bookingID, string(booking.PaymentStatus))
		}
	case entity.PaymentStatusRefunded:
		if booking.PaymentStatus != entity.PaymentStatusPaid {
			return nil, apperror.Conflict("booking %s payment is %s, cannot refund", bookingID, string(booking.PaymentStatus))
		}
	}

	booking.PaymentStatus = target
	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if target == entity.PaymentStatusRefunded {
			if err := s.ledger.MarkRefundedByReference(ctx, tx, booking.ID, entity.ReferenceBooking); err != nil {
				return err
			}
		}
		if err := s.repo.Booking.UpdateCAS(ctx, tx, booking); err != nil {
			return err
		}
		if target == entity.PaymentStatusPaid {
			_, err := s.ledger.Record(ctx, tx, RecordParams{
				ReferenceID:   booking.ID,
				ReferenceType: entity.ReferenceBooking,
				FromUser:      booking.PatientID,
				ToUser:        s.adminAccountID(),
				Amount:        booking.TotalAmount,
				PaymentMethod: string(booking.PaymentMethod),
				Status:        entity.TransactionStatusCompleted,
				Notes:         "booking payment for " + booking.ListingName,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking payment status updated",
		zap.String("booking_id", bookingID),
		zap.String("payment_status", string(target)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) SubmitReview(ctx context.Context, patientID, bookingID string, req *request.SubmitReviewRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, apperror.Validation("invalid patient ID format " + patientID)
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.PatientID != patientUUID {
		return nil, apperror.Conflict("booking %s does not belong to patient %s", bookingID, patientID)
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, apperror.Conflict("booking %s is not completed", bookingID)
	}
	if booking.HasReview {
		return nil, apperror.Conflict("booking %s already has a review", bookingID)
	}

	booking.HasReview = true
	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.catalog.AddReview(ctx, tx, booking.ListingID, patientUUID, req.Rating, req.Comment); err != nil {
			return err
		}
		return s.repo.Booking.UpdateCAS(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking review submitted",
		zap.String("booking_id", bookingID),
		zap.String("patient_id", patientID),
		zap.Int("rating", req.Rating),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.Validation("invalid booking ID format " + bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("booking", bookingID)
	}
	return booking, nil
}

func (s *bookingService) authorizeActor(booking *entity.Booking, actorID, role string) error {
	if role == "admin" {
		return nil
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return apperror.Validation("invalid actor ID format " + actorID)
	}
	if booking.PatientID != actorUUID && booking.ProviderID != actorUUID {
		return apperror.NotFound("booking", booking.ID.String())
	}
	return nil
}

func (s *bookingService) adminAccountID() uuid.UUID {
	id, err := uuid.Parse(s.config.Commission.AdminAccountID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func cancelActorFromRole(role string) entity.CancelActor {
	switch role {
	case "patient":
		return entity.CancelActorPatient
	case "provider":
		return entity.CancelActorProvider
	default:
		return entity.CancelActorSystem
	}
}

func paginateBookings(bookings []*entity.Booking, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking)
	}
	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total)
}
