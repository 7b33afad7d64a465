package wire

import (
	"travel-agency/internal/adaptor"
	"travel-agency/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	// ==================== PUBLIC ROUTES ====================
	// Guests may book, a logged in customer gets the booking linked
	r.Post("/api/reservations/add", reservationHandler.CreateReservation)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireCustomer).Get("/api/reservations/mine", reservationHandler.GetMyReservations)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/api/reservations/get", reservationHandler.GetReservations)
		r.Post("/api/reservations/confirmer", reservationHandler.ApproveReservation)
		r.Post("/api/reservations/rejeter", reservationHandler.RejectReservation)
	})
}
