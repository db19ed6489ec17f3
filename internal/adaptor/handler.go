package adaptor

import (
	"errors"
	"net/http"

	"postjourney/internal/dto/request"
	"postjourney/internal/usecase"
	"postjourney/pkg/apperror"
	"postjourney/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog      *CatalogHandler
	Booking      *BookingHandler
	Consultation *ConsultationHandler
	Verification *VerificationHandler
	Transaction  *TransactionHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Consultation: NewConsultationHandler(service.Consultation, log),
		Verification: NewVerificationHandler(service.Verification, log),
		Transaction:  NewTransactionHandler(service.Ledger, log),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Anything untyped is a 500 and logged at error level.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var validationErr *apperror.ValidationError
	var notFoundErr *apperror.NotFoundError
	var conflictErr *apperror.ConflictError
	var stockErr *apperror.InsufficientStockError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" failed - validation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, validationErr.Msg, validationErr.Fields)

	case errors.As(err, &notFoundErr):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &stockErr):
		log.Warn(operation+" failed - insufficient stock",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseJSON(w, http.StatusConflict, false, err.Error(), nil, nil)

	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseJSON(w, http.StatusConflict, false, err.Error(), nil, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
