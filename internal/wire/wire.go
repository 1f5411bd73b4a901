// internal/wire/wire.go
package wire

import (
	"net/http"

	"flight-booking/internal/adaptor"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/middleware"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, deps usecase.Deps) *App {
	service := usecase.NewService(repo, config, logger, deps)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// writes that contend for seats share one per-client limiter
	limit := func(next http.Handler) http.Handler { return next }
	if config.RateLimit.Enabled {
		limit = middleware.RateLimit(middleware.NewClientLimiter(config.RateLimit), logger)
	}

	// Apply routes
	wireFleet(r, handler.Fleet)
	wireFlight(r, handler.Flight, limit)
	wireBooking(r, handler.Booking, limit)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
