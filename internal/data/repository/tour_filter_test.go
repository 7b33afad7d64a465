package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourFilterWhere(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter TourFilter
		where  string
		args   []any
	}{
		{
			name:   "no filter",
			filter: TourFilter{},
			where:  "",
			args:   nil,
		},
		{
			name:   "search matches title or places",
			filter: TourFilter{Search: "  sahara "},
			where:  ` WHERE (t.title ILIKE $1 ESCAPE '\' OR EXISTS (SELECT 1 FROM unnest(t.places) AS place WHERE place ILIKE $1 ESCAPE '\'))`,
			args:   []any{"%sahara%"},
		},
		{
			name:   "search wildcards match literally",
			filter: TourFilter{Search: `100%_off\`},
			where:  ` WHERE (t.title ILIKE $1 ESCAPE '\' OR EXISTS (SELECT 1 FROM unnest(t.places) AS place WHERE place ILIKE $1 ESCAPE '\'))`,
			args:   []any{`%100\%\_off\\%`},
		},
		{
			name:   "type and duration",
			filter: TourFilter{Type: "Desert", DaysMin: intPtr(3), DaysMax: intPtr(7)},
			where:  " WHERE t.type = $1 AND t.duration_days >= $2 AND t.duration_days <= $3",
			args:   []any{"Desert", 3, 7},
		},
		{
			name:   "budget and date share one departure",
			filter: TourFilter{DateFrom: &from, BudgetMin: floatPtr(500), BudgetMax: floatPtr(5000)},
			where:  " WHERE EXISTS (SELECT 1 FROM available_dates ad WHERE ad.tour_id = t.id AND ad.start_date >= $1 AND ad.price >= $2 AND ad.price <= $3)",
			args:   []any{from, 500.0, 5000.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.where()
			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestTourFilterOrderBy(t *testing.T) {
	assert.Equal(t, " ORDER BY min_price ASC NULLS LAST, t.id", TourFilter{Sort: SortPriceAsc}.orderBy())
	assert.Equal(t, " ORDER BY t.created_at DESC, t.id DESC", TourFilter{Sort: "bogus"}.orderBy())
	assert.True(t, ValidSort("rating_desc"))
	assert.False(t, ValidSort("bogus"))
}

func TestTourSearchAndCountShareFilter(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)
	filter := TourFilter{Type: "Coastal", Limit: 9, Offset: 9}

	mock.ExpectQuery(`WHERE t.type = \$1 GROUP BY t.id ORDER BY t.created_at DESC, t.id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("Coastal", 9, 9).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "code", "title", "description", "type", "duration_days", "places", "main_image",
			"created_at", "updated_at", "min_price", "next_date", "avg_rating", "review_count",
		}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tours t WHERE t.type = \$1`).
		WithArgs("Coastal").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))

	tours, err := repo.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, tours)

	total, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
