package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/_auth/register", authHandler.Register)
	r.Post("/api/_auth/login", authHandler.Login)
	r.Post("/api/_auth/adminLogin", authHandler.AdminLogin)
	r.Post("/api/_auth/logout", authHandler.Logout)

	// Current session, anonymous included
	r.Get("/api/_auth/me", authHandler.Me)
}
