package repository

import (
	"context"
	"fmt"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/database"

	"go.uber.org/zap"
)

type StatsRepository interface {
	BookingCounts(ctx context.Context, since time.Time) (entity.StatusCounts, error)
	RevenueByMonth(ctx context.Context, year int) ([12]float64, error)
	TourTypes(ctx context.Context) ([]entity.LabelCount, error)
	PopularDestinations(ctx context.Context, limit int) ([]entity.LabelCount, error)
	TopTours(ctx context.Context, since time.Time, limit int) ([]entity.TourBookings, error)
	Demographics(ctx context.Context) ([]entity.LabelCount, error)
	Ratings(ctx context.Context) ([]entity.RatingCount, float64, error)
	Totals(ctx context.Context) (tours int64, travelers int64, err error)
}

type statsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatsRepository(db database.PgxIface, log *zap.Logger) StatsRepository {
	return &statsRepository{
		db:  db,
		log: log.With(zap.String("repository", "stats")),
	}
}

// AgeBuckets lists demographic buckets in display order.
var AgeBuckets = []string{"<18", "18-25", "26-35", "36-50", "51-65", "65+"}

func (r *statsRepository) BookingCounts(ctx context.Context, since time.Time) (entity.StatusCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM reservations
		WHERE created_at >= $1
	`

	var counts entity.StatusCounts
	if err := r.db.QueryRow(ctx, query, since).Scan(&counts.Pending, &counts.Approved, &counts.Rejected); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return counts, fmt.Errorf("count bookings: %w", err)
	}
	return counts, nil
}

// RevenueByMonth sums price x travelers of approved reservations, indexed by
// month of the departure (0 = January).
func (r *statsRepository) RevenueByMonth(ctx context.Context, year int) ([12]float64, error) {
	query := `
		SELECT EXTRACT(MONTH FROM d.start_date)::int AS month,
		       COALESCE(SUM(d.price * (SELECT COUNT(*) FROM travelers tr WHERE tr.reservation_id = r.id)), 0)::float8
		FROM reservations r
		JOIN available_dates d ON d.id = r.date_id
		WHERE r.status = 'approved' AND EXTRACT(YEAR FROM d.start_date)::int = $1
		GROUP BY month
	`

	var revenue [12]float64
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		r.log.Error("Failed to sum revenue", zap.Error(err), zap.Int("year", year))
		return revenue, fmt.Errorf("revenue of %d: %w", year, err)
	}
	defer rows.Close()

	for rows.Next() {
		var month int
		var amount float64
		if err := rows.Scan(&month, &amount); err != nil {
			return revenue, fmt.Errorf("scan revenue row: %w", err)
		}
		if month >= 1 && month <= 12 {
			revenue[month-1] = amount
		}
	}

	return revenue, rows.Err()
}

func (r *statsRepository) TourTypes(ctx context.Context) ([]entity.LabelCount, error) {
	return r.labelCounts(ctx, "tour types",
		`SELECT type, COUNT(*) FROM tours GROUP BY type ORDER BY COUNT(*) DESC, type`)
}

// PopularDestinations ranks places by the number of reservations made on
// tours visiting them.
func (r *statsRepository) PopularDestinations(ctx context.Context, limit int) ([]entity.LabelCount, error) {
	return r.labelCounts(ctx, "popular destinations", `
		SELECT place, COUNT(r.id)
		FROM tours t
		CROSS JOIN LATERAL unnest(t.places) AS place
		JOIN reservations r ON r.tour_id = t.id
		GROUP BY place
		ORDER BY COUNT(r.id) DESC, place
		LIMIT $1
	`, limit)
}

func (r *statsRepository) TopTours(ctx context.Context, since time.Time, limit int) ([]entity.TourBookings, error) {
	query := `
		SELECT t.id, t.title, COUNT(r.id)
		FROM tours t
		JOIN reservations r ON r.tour_id = t.id
		WHERE r.created_at >= $1
		GROUP BY t.id, t.title
		ORDER BY COUNT(r.id) DESC, t.id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		r.log.Error("Failed to rank tours", zap.Error(err))
		return nil, fmt.Errorf("top tours: %w", err)
	}
	defer rows.Close()

	var tours []entity.TourBookings
	for rows.Next() {
		var t entity.TourBookings
		if err := rows.Scan(&t.TourID, &t.Title, &t.Bookings); err != nil {
			return nil, fmt.Errorf("scan top tour row: %w", err)
		}
		tours = append(tours, t)
	}

	return tours, rows.Err()
}

// Demographics returns one entry per AgeBuckets element, zero-filled.
func (r *statsRepository) Demographics(ctx context.Context) ([]entity.LabelCount, error) {
	found, err := r.labelCounts(ctx, "demographics", `
		SELECT CASE
			WHEN age < 18 THEN '<18'
			WHEN age <= 25 THEN '18-25'
			WHEN age <= 35 THEN '26-35'
			WHEN age <= 50 THEN '36-50'
			WHEN age <= 65 THEN '51-65'
			ELSE '65+'
		END AS bucket, COUNT(*)
		FROM (
			SELECT EXTRACT(YEAR FROM age(CURRENT_DATE, birth_date))::int AS age
			FROM travelers
			WHERE birth_date IS NOT NULL
		) ages
		GROUP BY bucket
	`)
	if err != nil {
		return nil, err
	}

	byLabel := make(map[string]int64, len(found))
	for _, lc := range found {
		byLabel[lc.Label] = lc.Count
	}

	buckets := make([]entity.LabelCount, 0, len(AgeBuckets))
	for _, label := range AgeBuckets {
		buckets = append(buckets, entity.LabelCount{Label: label, Count: byLabel[label]})
	}
	return buckets, nil
}

// Ratings returns the count for each star from 1 to 5 and the overall average.
func (r *statsRepository) Ratings(ctx context.Context) ([]entity.RatingCount, float64, error) {
	rows, err := r.db.Query(ctx, `SELECT rating, COUNT(*) FROM tour_reviews GROUP BY rating`)
	if err != nil {
		r.log.Error("Failed to count ratings", zap.Error(err))
		return nil, 0, fmt.Errorf("ratings: %w", err)
	}
	defer rows.Close()

	var counts [5]int64
	for rows.Next() {
		var stars int
		var count int64
		if err := rows.Scan(&stars, &count); err != nil {
			return nil, 0, fmt.Errorf("scan rating row: %w", err)
		}
		if stars >= 1 && stars <= 5 {
			counts[stars-1] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	ratings := make([]entity.RatingCount, 0, 5)
	var total, sum int64
	for i, c := range counts {
		ratings = append(ratings, entity.RatingCount{Stars: i + 1, Count: c})
		total += c
		sum += int64(i+1) * c
	}

	var average float64
	if total > 0 {
		average = float64(sum) / float64(total)
	}
	return ratings, average, nil
}

func (r *statsRepository) Totals(ctx context.Context) (int64, int64, error) {
	var tours, travelers int64
	err := r.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM tours), (SELECT COUNT(*) FROM travelers)`,
	).Scan(&tours, &travelers)
	if err != nil {
		r.log.Error("Failed to count totals", zap.Error(err))
		return 0, 0, fmt.Errorf("totals: %w", err)
	}
	return tours, travelers, nil
}

func (r *statsRepository) labelCounts(ctx context.Context, name, query string, args ...any) ([]entity.LabelCount, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to aggregate "+name, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer rows.Close()

	var out []entity.LabelCount
	for rows.Next() {
		var lc entity.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", name, err)
		}
		out = append(out, lc)
	}

	return out, rows.Err()
}
