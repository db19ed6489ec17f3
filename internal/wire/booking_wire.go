package wire

import (
	"postjourney/internal/adaptor"
	"postjourney/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Get("/api/patient/bookings", bookingHandler.GetPatientBookings)
		r.Get("/api/provider/bookings", bookingHandler.GetProviderBookings)
		r.Put("/api/bookings/{id}/status", bookingHandler.TransitionStatus)
		r.Put("/api/bookings/{id}/payment", bookingHandler.UpdatePaymentStatus)
		r.Post("/api/bookings/{id}/review", bookingHandler.SubmitReview)
	})
}
