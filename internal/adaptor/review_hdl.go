package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews/add (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	principal := utils.GetPrincipal(r.Context())
	if !principal.IsAuthenticated() {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.CreateReview(r.Context(), principal, &req)
	if err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// GetTourReviews handles GET /api/reviews/get?tourId= (public)
func (h *ReviewHandler) GetTourReviews(w http.ResponseWriter, r *http.Request) {
	tourID, err := utils.ParseID(r.URL.Query().Get("tourId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	reviews, err := h.service.GetTourReviews(r.Context(), tourID)
	if err != nil {
		h.handleServiceError(w, err, "get tour reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// DeleteReview handles DELETE /api/reviews/delete?id= (admin only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.DeleteReview(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted successfully", nil)
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
