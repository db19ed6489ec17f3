package wire

import (
	"net/http"

	"postjourney/internal/adaptor"
	"postjourney/internal/data/repository"
	"postjourney/internal/usecase"
	"postjourney/pkg/database"
	"postjourney/pkg/middleware"
	"postjourney/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

func Wiring(db database.PgxIface, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(db, repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireCatalog(r, handler.Catalog, logger)
	wireBooking(r, handler.Booking, logger)
	wireConsultation(r, handler.Consultation, logger)
	wireVerification(r, handler.Verification, logger)
	wireTransaction(r, handler.Transaction, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
