package wire

import (
	"travel-agency/internal/adaptor"
	"travel-agency/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireContent(
	r chi.Router,
	blogHandler *adaptor.BlogHandler,
	faqHandler *adaptor.FAQHandler,
	contactHandler *adaptor.ContactHandler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/blogs/get", blogHandler.GetBlogs)
	r.Get("/api/blogs/get/{id}", blogHandler.GetBlog)
	r.Get("/api/faqs/get", faqHandler.GetFAQs)

	// Contact form
	r.Post("/api/contacts/add", contactHandler.CreateContact)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Post("/api/blogs/add", blogHandler.CreateBlog)
		r.Post("/api/blogs/update", blogHandler.UpdateBlog)
		r.Delete("/api/blogs/delete", blogHandler.DeleteBlog)

		r.Post("/api/faqs/add", faqHandler.CreateFAQ)
		r.Post("/api/faqs/update", faqHandler.UpdateFAQ)
		r.Delete("/api/faqs/delete", faqHandler.DeleteFAQ)

		r.Get("/api/contacts/get", contactHandler.GetContacts)
		r.Delete("/api/contacts/delete", contactHandler.DeleteContact)
	})
}
