package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type FAQHandler struct {
	service usecase.FAQService
	log     *zap.Logger
}

func NewFAQHandler(service usecase.FAQService, log *zap.Logger) *FAQHandler {
	return &FAQHandler{
		service: service,
		log:     log.With(zap.String("handler", "faq")),
	}
}

// GetFAQs handles GET /api/faqs/get
func (h *FAQHandler) GetFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.service.GetFAQs(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get faqs")
		return
	}

	utils.ResponseSuccess(w, "FAQs retrieved successfully", faqs)
}

// CreateFAQ handles POST /api/faqs/add (admin only)
func (h *FAQHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req request.FAQRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	faq, err := h.service.CreateFAQ(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create faq")
		return
	}

	utils.ResponseCreated(w, "FAQ created successfully", faq)
}

// UpdateFAQ handles POST /api/faqs/update (admin only)
func (h *FAQHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var req request.FAQUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	faq, err := h.service.UpdateFAQ(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "update faq")
		return
	}

	utils.ResponseSuccess(w, "FAQ updated successfully", faq)
}

// DeleteFAQ handles DELETE /api/faqs/delete?id= (admin only)
func (h *FAQHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.DeleteFAQ(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete faq")
		return
	}

	utils.ResponseSuccess(w, "FAQ deleted successfully", nil)
}

func (h *FAQHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
