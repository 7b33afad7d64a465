package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireChat(r chi.Router, chatHandler *adaptor.ChatHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/chat", chatHandler.Ask)
}
