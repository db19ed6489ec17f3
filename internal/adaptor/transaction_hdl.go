package adaptor

import (
	"encoding/json"
	"net/http"

	"postjourney/internal/data/entity"
	"postjourney/internal/dto/request"
	"postjourney/internal/usecase"
	"postjourney/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	service usecase.LedgerService
	log     *zap.Logger
}

func NewTransactionHandler(service usecase.LedgerService, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		log:     log.With(zap.String("handler", "transaction")),
	}
}

// ListTransactions handles GET /api/admin/transactions (admin only).
// With ?reference_id and ?reference_type it narrows to one reference.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	referenceID := query.Get("reference_id")
	if referenceID != "" {
		referenceType := entity.ReferenceType(query.Get("reference_type"))
		transactions, err := h.service.GetByReference(r.Context(), referenceID, referenceType)
		if err != nil {
			handleServiceError(h.log, w, err, "list transactions by reference")
			return
		}
		utils.ResponseSuccess(w, "success", transactions)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list transactions")
		return
	}

	utils.ResponseSuccess(w, "success", transactions)
}

// GetTransaction handles GET /api/admin/transactions/{id} (admin only)
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		utils.ResponseBadRequest(w, "Transaction ID is required", nil)
		return
	}

	transaction, err := h.service.GetTransaction(r.Context(), transactionID)
	if err != nil {
		handleServiceError(h.log, w, err, "get transaction")
		return
	}

	utils.ResponseSuccess(w, "success", transaction)
}

// UpdateStatus handles PUT /api/admin/transactions/{id}/status (admin only)
func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		utils.ResponseBadRequest(w, "Transaction ID is required", nil)
		return
	}

	var req request.UpdateTransactionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	transaction, err := h.service.UpdateStatus(r.Context(), transactionID, entity.TransactionStatus(req.Status))
	if err != nil {
		handleServiceError(h.log, w, err, "update transaction status")
		return
	}

	utils.ResponseSuccess(w, "success", transaction)
}
