package repository

import (
	"postjourney/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Listing      ListingRepository
	Review       ReviewRepository
	Booking      BookingRepository
	Consultation ConsultationRepository
	Doctor       DoctorRepository
	Transaction  TransactionRepository
	Verification VerificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Listing:      NewListingRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Consultation: NewConsultationRepository(db, log),
		Doctor:       NewDoctorRepository(db, log),
		Transaction:  NewTransactionRepository(db, log),
		Verification: NewVerificationRepository(db, log),
	}
}
