package wire

import (
	"postjourney/internal/adaptor"
	"postjourney/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, log *zap.Logger) {
	// Public catalog surface
	r.Get("/api/listings", catalogHandler.BrowseListings)
	r.Get("/api/listings/{id}", catalogHandler.GetListing)

	// Provider-facing listing management
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Post("/api/listings", catalogHandler.CreateListing)
		r.Get("/api/provider/listings", catalogHandler.GetProviderListings)
		r.Put("/api/listings/{id}/stock", catalogHandler.AdjustStock)
		r.Post("/api/listings/{id}/fee", catalogHandler.PayListingFee)
		r.Put("/api/listings/{id}/listed", catalogHandler.SetListedState)
	})
}
