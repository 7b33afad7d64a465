package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// ListTours handles GET /api/tours/get
func (h *TourHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	query, err := parseTourListQuery(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	tours, err := h.service.ListTours(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, err, "list tours")
		return
	}

	utils.ResponseSuccess(w, "Tours retrieved successfully", tours)
}

func parseTourListQuery(r *http.Request) (*request.TourListQuery, error) {
	q := r.URL.Query()
	query := &request.TourListQuery{
		Page:       utils.ParseInt(q.Get("page"), 1),
		Limit:      utils.ParseInt(q.Get("limit"), 0),
		SearchTerm: q.Get("searchTerm"),
		SortBy:     q.Get("sortBy"),
		Type:       q.Get("type"),
	}

	var err error
	if query.DateFrom, err = utils.ParseOptionalDate(q.Get("dateFrom"), "dateFrom"); err != nil {
		return nil, err
	}
	if query.DateTo, err = utils.ParseOptionalDate(q.Get("dateTo"), "dateTo"); err != nil {
		return nil, err
	}
	if query.DaysMin, err = utils.ParseOptionalInt(q.Get("daysMin"), "daysMin"); err != nil {
		return nil, err
	}
	if query.DaysMax, err = utils.ParseOptionalInt(q.Get("daysMax"), "daysMax"); err != nil {
		return nil, err
	}
	if query.BudgetMin, err = utils.ParseOptionalFloat(q.Get("budgetMin"), "budgetMin"); err != nil {
		return nil, err
	}
	if query.BudgetMax, err = utils.ParseOptionalFloat(q.Get("budgetMax"), "budgetMax"); err != nil {
		return nil, err
	}

	return query, nil
}

// GetTour handles GET /api/tours/get/{id}
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	tour, err := h.service.GetTour(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get tour")
		return
	}

	utils.ResponseSuccess(w, "Tour retrieved successfully", tour)
}

// GetDestinations handles GET /api/tours/destinations
func (h *TourHandler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.service.GetDestinations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get destinations")
		return
	}

	utils.ResponseSuccess(w, "Destinations retrieved successfully", destinations)
}

// CreateTour handles POST /api/tours/add (admin only)
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	var req request.TourRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	tour, err := h.service.CreateTour(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create tour")
		return
	}

	utils.ResponseCreated(w, "Tour created successfully", tour)
}

// UpdateTour handles POST /api/tours/update (admin only)
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	var req request.TourUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	tour, err := h.service.UpdateTour(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "update tour")
		return
	}

	utils.ResponseSuccess(w, "Tour updated successfully", tour)
}

// DeleteTour handles DELETE /api/tours/delete?id= (admin only)
func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.DeleteTour(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete tour")
		return
	}

	utils.ResponseSuccess(w, "Tour deleted successfully", nil)
}

func (h *TourHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
