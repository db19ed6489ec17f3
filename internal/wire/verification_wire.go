package wire

import (
	"postjourney/internal/adaptor"
	"postjourney/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVerification(r chi.Router, verificationHandler *adaptor.VerificationHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Post("/api/verification", verificationHandler.Submit)
		r.Get("/api/verification", verificationHandler.GetStatus)
	})

	r.Route("/api/admin/verifications", func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.Admin(log))

		r.Get("/", verificationHandler.ListPending)
		r.Put("/{id}", verificationHandler.Decide)
	})
}
