package repository

import (
	"fmt"
	"strings"
	"time"
)

type TourSort string

const (
	SortPriceAsc     TourSort = "price_asc"
	SortPriceDesc    TourSort = "price_desc"
	SortDurationAsc  TourSort = "duration_asc"
	SortDurationDesc TourSort = "duration_desc"
	SortRatingDesc   TourSort = "rating_desc"
	SortDateAsc      TourSort = "date_asc"
)

var tourOrderBy = map[TourSort]string{
	SortPriceAsc:     "min_price ASC NULLS LAST",
	SortPriceDesc:    "min_price DESC NULLS LAST",
	SortDurationAsc:  "t.duration_days ASC",
	SortDurationDesc: "t.duration_days DESC",
	SortRatingDesc:   "avg_rating DESC, review_count DESC",
	SortDateAsc:      "next_date ASC NULLS LAST",
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// TourFilter carries every search option of the tour listing. Nil fields
// are not applied.
type TourFilter struct {
	Search    string
	Type      string
	DateFrom  *time.Time
	DateTo    *time.Time
	DaysMin   *int
	DaysMax   *int
	BudgetMin *float64
	BudgetMax *float64
	Sort      TourSort
	Limit     int
	Offset    int
}

// where renders the predicate shared by the search and count queries.
// Date and budget conditions must hold for the same departure.
func (f TourFilter) where() (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		p := arg("%" + likeEscaper.Replace(term) + "%")
		conds = append(conds, fmt.Sprintf(
			`(t.title ILIKE %s ESCAPE '\' OR EXISTS (SELECT 1 FROM unnest(t.places) AS place WHERE place ILIKE %s ESCAPE '\'))`, p, p))
	}

	if f.Type != "" {
		conds = append(conds, "t.type = "+arg(f.Type))
	}

	if f.DaysMin != nil {
		conds = append(conds, "t.duration_days >= "+arg(*f.DaysMin))
	}
	if f.DaysMax != nil {
		conds = append(conds, "t.duration_days <= "+arg(*f.DaysMax))
	}

	var dateConds []string
	if f.DateFrom != nil {
		dateConds = append(dateConds, "ad.start_date >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		dateConds = append(dateConds, "ad.start_date <= "+arg(*f.DateTo))
	}
	if f.BudgetMin != nil {
		dateConds = append(dateConds, "ad.price >= "+arg(*f.BudgetMin))
	}
	if f.BudgetMax != nil {
		dateConds = append(dateConds, "ad.price <= "+arg(*f.BudgetMax))
	}
	if len(dateConds) > 0 {
		conds = append(conds, "EXISTS (SELECT 1 FROM available_dates ad WHERE ad.tour_id = t.id AND "+
			strings.Join(dateConds, " AND ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (f TourFilter) orderBy() string {
	if clause, ok := tourOrderBy[f.Sort]; ok {
		return " ORDER BY " + clause + ", t.id"
	}
	return " ORDER BY t.created_at DESC, t.id DESC"
}

// ValidSort reports whether s names a known sort key.
func ValidSort(s string) bool {
	_, ok := tourOrderBy[TourSort(s)]
	return ok
}
