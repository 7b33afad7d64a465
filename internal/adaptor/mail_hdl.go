package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type MailHandler struct {
	service usecase.MailService
	log     *zap.Logger
}

func NewMailHandler(service usecase.MailService, log *zap.Logger) *MailHandler {
	return &MailHandler{
		service: service,
		log:     log.With(zap.String("handler", "mail")),
	}
}

// Reply handles POST /api/_mail/reply (admin only)
func (h *MailHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req request.ReplyMailRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ReplyToContact(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "reply to contact")
		return
	}

	utils.ResponseSuccess(w, "Reply sent", nil)
}

// Approve handles POST /api/_mail/approve (admin only)
func (h *MailHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req request.ApproveMailRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SendApproval(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "send approval mail")
		return
	}

	utils.ResponseSuccess(w, "Approval mail sent", nil)
}

// Reject handles POST /api/_mail/reject (admin only)
func (h *MailHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req request.RejectMailRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SendRejection(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "send rejection mail")
		return
	}

	utils.ResponseSuccess(w, "Rejection mail sent", nil)
}

func (h *MailHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
