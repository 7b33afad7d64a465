package wire

import (
	"travel-agency/internal/adaptor"
	"travel-agency/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews/get?tourId= - reviews of one tour
	r.Get("/api/reviews/get", reviewHandler.GetTourReviews)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.With(middleware.RequireCustomer).Post("/api/reviews/add", reviewHandler.CreateReview)

	// ==================== ADMIN ROUTES ====================
	r.With(middleware.RequireAdmin).Delete("/api/reviews/delete", reviewHandler.DeleteReview)
}
