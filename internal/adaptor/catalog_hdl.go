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

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// CreateListing handles POST /api/listings (provider)
func (h *CatalogHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.CreateListing(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create listing")
		return
	}

	utils.ResponseCreated(w, "success", listing)
}

// BrowseListings handles GET /api/listings (public)
func (h *CatalogHandler) BrowseListings(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")

	listings, err := h.service.BrowseListings(r.Context(), search, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "browse listings")
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// GetListing handles GET /api/listings/{id} (public)
func (h *CatalogHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	listing, err := h.service.GetListing(r.Context(), listingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}

// GetProviderListings handles GET /api/provider/listings (provider)
func (h *CatalogHandler) GetProviderListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listings, err := h.service.GetProviderListings(r.Context(), userID.String(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get provider listings")
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// AdjustStock handles PUT /api/listings/{id}/stock (provider)
func (h *CatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	var req request.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.AdjustStock(r.Context(), userID.String(), listingID, req.Delta)
	if err != nil {
		handleServiceError(h.log, w, err, "adjust stock")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}

// PayListingFee handles POST /api/listings/{id}/fee (provider)
func (h *CatalogHandler) PayListingFee(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	var req request.PayListingFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.PayListingFee(r.Context(), userID.String(), listingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "pay listing fee")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}

// SetListedState handles PUT /api/listings/{id}/listed (provider)
func (h *CatalogHandler) SetListedState(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	var req request.SetListedStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.SetListedState(r.Context(), userID.String(), listingID, req.Listed)
	if err != nil {
		handleServiceError(h.log, w, err, "set listed state")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}
