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

type VerificationHandler struct {
	service usecase.VerificationService
	log     *zap.Logger
}

func NewVerificationHandler(service usecase.VerificationService, log *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "verification")),
	}
}

// Submit handles POST /api/verification (provider)
func (h *VerificationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SubmitVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	verification, err := h.service.Submit(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "submit verification")
		return
	}

	utils.ResponseCreated(w, "success", verification)
}

// GetStatus handles GET /api/verification (provider)
func (h *VerificationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	verification, err := h.service.GetStatus(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get verification status")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}

// ListPending handles GET /api/admin/verifications (admin only)
func (h *VerificationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.ListPending(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list pending verifications")
		return
	}

	utils.ResponseSuccess(w, "success", pending)
}

// Decide handles PUT /api/admin/verifications/{id} (admin only); {id} is the
// provider ID the submission belongs to.
func (h *VerificationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	providerID := chi.URLParam(r, "id")
	if providerID == "" {
		utils.ResponseBadRequest(w, "Provider ID is required", nil)
		return
	}

	var req request.DecideVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	verification, err := h.service.Decide(r.Context(), adminID.String(), providerID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "decide verification")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}
