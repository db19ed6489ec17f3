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

type ConsultationHandler struct {
	service usecase.ConsultationService
	log     *zap.Logger
}

func NewConsultationHandler(service usecase.ConsultationService, log *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		service: service,
		log:     log.With(zap.String("handler", "consultation")),
	}
}

// ListDoctors handles GET /api/doctors (public)
func (h *ConsultationHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListDoctors(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list doctors")
		return
	}

	utils.ResponseSuccess(w, "success", doctors)
}

// GetDoctor handles GET /api/doctors/{id} (public)
func (h *ConsultationHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "Doctor ID is required", nil)
		return
	}

	doctor, err := h.service.GetDoctor(r.Context(), doctorID)
	if err != nil {
		handleServiceError(h.log, w, err, "get doctor")
		return
	}

	utils.ResponseSuccess(w, "success", doctor)
}

// CreateDoctor handles POST /api/admin/doctors (admin only)
func (h *ConsultationHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	doctor, err := h.service.CreateDoctor(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create doctor")
		return
	}

	utils.ResponseCreated(w, "success", doctor)
}

// BookConsultation handles POST /api/consultations (patient)
func (h *ConsultationHandler) BookConsultation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BookConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	consultation, err := h.service.BookConsultation(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "book consultation")
		return
	}

	utils.ResponseCreated(w, "success", consultation)
}

// GetConsultation handles GET /api/consultations/{id}
func (h *ConsultationHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	consultationID := chi.URLParam(r, "id")
	if consultationID == "" {
		utils.ResponseBadRequest(w, "Consultation ID is required", nil)
		return
	}

	consultation, err := h.service.GetConsultation(r.Context(), userID, role, consultationID)
	if err != nil {
		handleServiceError(h.log, w, err, "get consultation")
		return
	}

	utils.ResponseSuccess(w, "success", consultation)
}

// GetPatientConsultations handles GET /api/patient/consultations
func (h *ConsultationHandler) GetPatientConsultations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	consultations, err := h.service.GetPatientConsultations(r.Context(), userID.String(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get patient consultations")
		return
	}

	utils.ResponseSuccess(w, "success", consultations)
}

// UpdateStatus handles PUT /api/consultations/{id}/status
func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	consultationID := chi.URLParam(r, "id")
	if consultationID == "" {
		utils.ResponseBadRequest(w, "Consultation ID is required", nil)
		return
	}

	var req request.UpdateConsultationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	consultation, err := h.service.UpdateStatus(r.Context(), consultationID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update consultation status")
		return
	}

	utils.ResponseSuccess(w, "success", consultation)
}
