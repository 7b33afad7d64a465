package wire

import (
	"travel-agency/internal/adaptor"
	"travel-agency/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireStats(r chi.Router, statsHandler *adaptor.StatsHandler) {
	// ==================== ADMIN ROUTES ====================
	r.With(middleware.RequireAdmin).Get("/api/stats/get", statsHandler.GetStats)
}
