package wire

import (
	"postjourney/internal/adaptor"
	"postjourney/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTransaction(r chi.Router, transactionHandler *adaptor.TransactionHandler, log *zap.Logger) {
	r.Route("/api/admin/transactions", func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.Admin(log))

		r.Get("/", transactionHandler.ListTransactions)
		r.Get("/{id}", transactionHandler.GetTransaction)
		r.Put("/{id}/status", transactionHandler.UpdateStatus)
	})
}
