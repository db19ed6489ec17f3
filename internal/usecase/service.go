package usecase

import (
	"postjourney/internal/data/repository"
	"postjourney/pkg/database"
	"postjourney/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog      CatalogService
	Booking      BookingService
	Consultation ConsultationService
	Ledger       LedgerService
	Verification VerificationService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	ledger := NewLedgerService(db, repo, log)
	verification := NewVerificationService(repo, log)
	catalog := NewCatalogService(db, repo, ledger, config, log)

	return &Service{
		Catalog:      catalog,
		Booking:      NewBookingService(db, repo, catalog, ledger, config, log),
		Consultation: NewConsultationService(db, repo, ledger, config, log),
		Ledger:       ledger,
		Verification: verification,
	}
}
