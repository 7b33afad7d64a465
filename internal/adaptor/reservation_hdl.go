package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations/add
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Owner comes from the verified session, never from the body
	principal := utils.GetPrincipal(r.Context())

	reservation, err := h.service.CreateReservation(r.Context(), principal, &req)
	if err != nil {
		h.handleServiceError(w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created successfully", reservation)
}

// GetReservations handles GET /api/reservations/get (admin only)
func (h *ReservationHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.GetReservations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

// GetMyReservations handles GET /api/reservations/mine
func (h *ReservationHandler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservations, err := h.service.GetUserReservations(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

// ApproveReservation handles POST /api/reservations/confirmer (admin only)
func (h *ReservationHandler) ApproveReservation(w http.ResponseWriter, r *http.Request) {
	var req request.ReservationIDRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ApproveReservation(r.Context(), req.ID); err != nil {
		h.handleServiceError(w, err, "approve reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation approved", nil)
}

// RejectReservation handles POST /api/reservations/rejeter (admin only)
func (h *ReservationHandler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	var req request.ReservationIDRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.RejectReservation(r.Context(), req.ID); err != nil {
		h.handleServiceError(w, err, "reject reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation rejected", nil)
}

func (h *ReservationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
