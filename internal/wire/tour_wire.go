package wire

import (
	"travel-agency/internal/adaptor"
	"travel-agency/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireTour(r chi.Router, tourHandler *adaptor.TourHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/tours/get", tourHandler.ListTours)
	r.Get("/api/tours/get/{id}", tourHandler.GetTour)
	r.Get("/api/tours/destinations", tourHandler.GetDestinations)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Post("/api/tours/add", tourHandler.CreateTour)
		r.Post("/api/tours/update", tourHandler.UpdateTour)
		r.Delete("/api/tours/delete", tourHandler.DeleteTour)
	})
}
