package wire

import (
	"context"
	"net/http"
	"time"

	"travel-agency/internal/adaptor"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/middleware"
	"travel-agency/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger reports database health. *pgxpool.Pool implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, db Pinger, config *utils.Config, deps usecase.Deps, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, config, deps, logger)
	handler := adaptor.NewHandler(service, config, logger)

	// Setup router
	router := setupRouter(handler, db, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	r.Use(middleware.Authenticate(config.JWT.Secret, logger))

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User)
	wireTour(r, handler.Tour)
	wireReservation(r, handler.Reservation)
	wireReview(r, handler.Review)
	wireContent(r, handler.Blog, handler.FAQ, handler.Contact)
	wireStats(r, handler.Stats)
	wireMail(r, handler.Mail)
	wireChat(r, handler.Chat)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
