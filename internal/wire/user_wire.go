package wire

import (
	"travel-agency/internal/adaptor"
	"travel-agency/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireCustomer).Get("/api/users/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.With(middleware.RequireAdmin).Get("/api/users/get", userHandler.GetAllUsers)
}
