package adaptor

import (
	"encoding/json"
	"net/http"

	"postjourney/internal/dto/request"
	"postjourney/internal/usecase"
	"postjourney/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (patient)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), userID, role, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetPatientBookings handles GET /api/patient/bookings
func (h *BookingHandler) GetPatientBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetPatientBookings(r.Context(), userID.String(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get patient bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetProviderBookings handles GET /api/provider/bookings
func (h *BookingHandler) GetProviderBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetProviderBookings(r.Context(), userID.String(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get provider bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// TransitionStatus handles PUT /api/bookings/{id}/status
func (h *BookingHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.TransitionStatus(r.Context(), userID, role, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "transition booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdatePaymentStatus handles PUT /api/bookings/{id}/payment
func (h *BookingHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdatePaymentStatus(r.Context(), userID, role, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update payment status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// SubmitReview handles POST /api/bookings/{id}/review (patient)
func (h *BookingHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.SubmitReview(r.Context(), userID.String(), bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "submit review")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

func identityFromContext(r *http.Request) (userID, role string, ok bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	roleVal, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	return id.String(), roleVal, true
}
