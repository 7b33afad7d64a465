package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type ChatHandler struct {
	service usecase.ChatService
	log     *zap.Logger
}

func NewChatHandler(service usecase.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With(zap.String("handler", "chat")),
	}
}

// Ask handles POST /api/chat
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req request.ChatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reply, err := h.service.Ask(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "chat")
		return
	}

	utils.ResponseSuccess(w, "success", reply)
}

func (h *ChatHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
