package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type ContactHandler struct {
	service usecase.ContactService
	log     *zap.Logger
}

func NewContactHandler(service usecase.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log.With(zap.String("handler", "contact")),
	}
}

// CreateContact handles POST /api/contacts/add
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	contact, err := h.service.CreateContact(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create contact")
		return
	}

	utils.ResponseCreated(w, "Message received", contact)
}

// GetContacts handles GET /api/contacts/get (admin only)
func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.GetContacts(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get contacts")
		return
	}

	utils.ResponseSuccess(w, "Contacts retrieved successfully", contacts)
}

// DeleteContact handles DELETE /api/contacts/delete?id= (admin only)
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.DeleteContact(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete contact")
		return
	}

	utils.ResponseSuccess(w, "Contact deleted successfully", nil)
}

func (h *ContactHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
