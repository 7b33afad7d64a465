package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type BlogHandler struct {
	service usecase.BlogService
	log     *zap.Logger
}

func NewBlogHandler(service usecase.BlogService, log *zap.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		log:     log.With(zap.String("handler", "blog")),
	}
}

// GetBlogs handles GET /api/blogs/get?page=&limit=
func (h *BlogHandler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.GetBlogs(r.Context(), paginationQuery(r))
	if err != nil {
		h.handleServiceError(w, err, "get blogs")
		return
	}

	utils.ResponseSuccess(w, "Blogs retrieved successfully", blogs)
}

// GetBlog handles GET /api/blogs/get/{id}
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	blog, err := h.service.GetBlog(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get blog")
		return
	}

	utils.ResponseSuccess(w, "Blog retrieved successfully", blog)
}

// CreateBlog handles POST /api/blogs/add (admin only)
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req request.BlogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	blog, err := h.service.CreateBlog(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create blog")
		return
	}

	utils.ResponseCreated(w, "Blog created successfully", blog)
}

// UpdateBlog handles POST /api/blogs/update (admin only)
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var req request.BlogUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	blog, err := h.service.UpdateBlog(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "update blog")
		return
	}

	utils.ResponseSuccess(w, "Blog updated successfully", blog)
}

// DeleteBlog handles DELETE /api/blogs/delete?id= (admin only)
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.DeleteBlog(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete blog")
		return
	}

	utils.ResponseSuccess(w, "Blog deleted successfully", nil)
}

func (h *BlogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
