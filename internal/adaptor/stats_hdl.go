package adaptor

import (
	"net/http"
	"strconv"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type StatsHandler struct {
	service usecase.StatsService
	log     *zap.Logger
}

func NewStatsHandler(service usecase.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log.With(zap.String("handler", "stats")),
	}
}

// GetStats handles GET /api/stats/get?range=&year= (admin only)
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &request.StatsQuery{Range: q.Get("range")}

	if year := q.Get("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			utils.ResponseBadRequest(w, "invalid year "+strconv.Quote(year), nil)
			return
		}
		query.Year = y
	}

	stats, err := h.service.GetStats(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, err, "get stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved successfully", stats)
}

func (h *StatsHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
