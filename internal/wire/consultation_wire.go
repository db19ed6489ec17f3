package wire

import (
	"postjourney/internal/adaptor"
	"postjourney/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireConsultation(r chi.Router, consultationHandler *adaptor.ConsultationHandler, log *zap.Logger) {
	// Public doctor directory
	r.Get("/api/doctors", consultationHandler.ListDoctors)
	r.Get("/api/doctors/{id}", consultationHandler.GetDoctor)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Post("/api/consultations", consultationHandler.BookConsultation)
		r.Get("/api/consultations/{id}", consultationHandler.GetConsultation)
		r.Get("/api/patient/consultations", consultationHandler.GetPatientConsultations)
		r.Put("/api/consultations/{id}/status", consultationHandler.UpdateStatus)
	})

	r.Route("/api/admin/doctors", func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.Admin(log))

		r.Post("/", consultationHandler.CreateDoctor)
	})
}
