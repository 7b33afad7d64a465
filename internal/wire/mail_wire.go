package wire

import (
	"travel-agency/internal/adaptor"
	"travel-agency/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireMail(r chi.Router, mailHandler *adaptor.MailHandler) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Post("/api/_mail/reply", mailHandler.Reply)
		r.Post("/api/_mail/approve", mailHandler.Approve)
		r.Post("/api/_mail/reject", mailHandler.Reject)
	})
}
