package adaptor

import (
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// idParam reads the id from the route ("/get/{id}") or from "?id=".
func idParam(r *http.Request) (int64, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	return utils.ParseID(id)
}

func paginationQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:  utils.ParseInt(query.Get("page"), 1),
		Limit: utils.ParseInt(query.Get("limit"), 10),
	}
}
