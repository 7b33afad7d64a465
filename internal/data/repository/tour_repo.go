package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type TourRepository interface {
	// Listing
	Search(ctx context.Context, filter TourFilter) ([]*entity.TourSummary, error)
	Count(ctx context.Context, filter TourFilter) (int64, error)
	Destinations(ctx context.Context) ([]entity.Destination, error)

	// CRUD on the whole aggregate
	FindByID(ctx context.Context, id int64) (*entity.TourAggregate, error)
	Create(ctx context.Context, tour *entity.TourAggregate) error
	Update(ctx context.Context, tour *entity.TourAggregate) error
	Delete(ctx context.Context, id int64) error

	FindDate(ctx context.Context, dateID int64) (*entity.AvailableDate, error)
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourSearchSelect = `
	SELECT t.id, t.code, t.title, t.description, t.type, t.duration_days, t.places,
	       t.main_image, t.created_at, t.updated_at,
	       MIN(d.price) AS min_price,
	       MIN(d.start_date) FILTER (WHERE d.start_date >= CURRENT_DATE) AS next_date,
	       COALESCE(AVG(r.rating), 0)::float8 AS avg_rating,
	       COUNT(DISTINCT r.id) AS review_count
	FROM tours t
	LEFT JOIN available_dates d ON d.tour_id = t.id
	LEFT JOIN tour_reviews r ON r.tour_id = t.id`

func (r *tourRepository) Search(ctx context.Context, filter TourFilter) ([]*entity.TourSummary, error) {
	where, args := filter.where()

	query := tourSearchSelect + where + " GROUP BY t.id" + filter.orderBy() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search tours", zap.Error(err), zap.String("search", filter.Search))
		return nil, fmt.Errorf("search tours: %w", err)
	}
	defer rows.Close()

	var tours []*entity.TourSummary
	for rows.Next() {
		var t entity.TourSummary
		if err := rows.Scan(
			&t.ID,
			&t.Code,
			&t.Title,
			&t.Description,
			&t.Type,
			&t.DurationDays,
			&t.Places,
			&t.MainImage,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.MinPrice,
			&t.NextDate,
			&t.AvgRating,
			&t.ReviewCount,
		); err != nil {
			r.log.Error("Failed to scan tour row", zap.Error(err))
			return nil, fmt.Errorf("scan tour row: %w", err)
		}
		tours = append(tours, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tour rows: %w", err)
	}

	r.log.Debug("Tours found", zap.Int("count", len(tours)), zap.Int("offset", filter.Offset))
	return tours, nil
}

func (r *tourRepository) Count(ctx context.Context, filter TourFilter) (int64, error) {
	where, args := filter.where()

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tours t`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count tours", zap.Error(err))
		return 0, fmt.Errorf("count tours: %w", err)
	}

	return total, nil
}

func (r *tourRepository) Destinations(ctx context.Context) ([]entity.Destination, error) {
	query := `
		SELECT place, COUNT(DISTINCT t.id) AS tour_count, COALESCE(MIN(d.price), 0)::float8 AS min_price
		FROM tours t
		CROSS JOIN LATERAL unnest(t.places) AS place
		LEFT JOIN available_dates d ON d.tour_id = t.id
		GROUP BY place
		ORDER BY tour_count DESC, place
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list destinations", zap.Error(err))
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	defer rows.Close()

	var destinations []entity.Destination
	for rows.Next() {
		var d entity.Destination
		if err := rows.Scan(&d.Place, &d.TourCount, &d.MinPrice); err != nil {
			return nil, fmt.Errorf("scan destination row: %w", err)
		}
		destinations = append(destinations, d)
	}

	return destinations, rows.Err()
}

func (r *tourRepository) FindByID(ctx context.Context, id int64) (*entity.TourAggregate, error) {
	query := `
		SELECT id, code, title, description, type, duration_days, places, main_image, created_at, updated_at
		FROM tours
		WHERE id = $1
	`

	var tour entity.TourAggregate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tour.ID,
		&tour.Code,
		&tour.Title,
		&tour.Description,
		&tour.Type,
		&tour.DurationDays,
		&tour.Places,
		&tour.MainImage,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID", zap.Error(err), zap.Int64("tour_id", id))
		return nil, fmt.Errorf("find tour %d: %w", id, err)
	}

	if tour.Dates, err = r.findDates(ctx, id); err != nil {
		return nil, err
	}
	if tour.Program, err = r.findProgram(ctx, id); err != nil {
		return nil, err
	}
	if tour.Highlights, err = r.findHighlights(ctx, id); err != nil {
		return nil, err
	}
	if tour.Gallery, err = r.findGallery(ctx, id); err != nil {
		return nil, err
	}

	return &tour, nil
}

func (r *tourRepository) findDates(ctx context.Context, tourID int64) ([]entity.AvailableDate, error) {
	query := `
		SELECT id, tour_id, start_date, end_date, price, spots_total, spots_left
		FROM available_dates
		WHERE tour_id = $1
		ORDER BY start_date, id
	`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		return nil, fmt.Errorf("find dates of tour %d: %w", tourID, err)
	}
	defer rows.Close()

	var dates []entity.AvailableDate
	for rows.Next() {
		var d entity.AvailableDate
		if err := rows.Scan(&d.ID, &d.TourID, &d.StartDate, &d.EndDate, &d.Price, &d.SpotsTotal, &d.SpotsLeft); err != nil {
			return nil, fmt.Errorf("scan date row: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

func (r *tourRepository) findProgram(ctx context.Context, tourID int64) ([]entity.ProgramDay, error) {
	query := `
		SELECT id, tour_id, day_number, title, description, places, included
		FROM program_days
		WHERE tour_id = $1
		ORDER BY day_number, id
	`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		return nil, fmt.Errorf("find program of tour %d: %w", tourID, err)
	}
	defer rows.Close()

	var days []entity.ProgramDay
	for rows.Next() {
		var d entity.ProgramDay
		if err := rows.Scan(&d.ID, &d.TourID, &d.DayNumber, &d.Title, &d.Description, &d.Places, &d.Included); err != nil {
			return nil, fmt.Errorf("scan program day row: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

func (r *tourRepository) findHighlights(ctx context.Context, tourID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT text FROM highlights WHERE tour_id = $1 ORDER BY position, id`, tourID)
	if err != nil {
		return nil, fmt.Errorf("find highlights of tour %d: %w", tourID, err)
	}
	defer rows.Close()

	var highlights []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan highlight row: %w", err)
		}
		highlights = append(highlights, text)
	}

	return highlights, rows.Err()
}

func (r *tourRepository) findGallery(ctx context.Context, tourID int64) ([][]byte, error) {
	rows, err := r.db.Query(ctx, `SELECT image FROM gallery_images WHERE tour_id = $1 ORDER BY position, id`, tourID)
	if err != nil {
		return nil, fmt.Errorf("find gallery of tour %d: %w", tourID, err)
	}
	defer rows.Close()

	var gallery [][]byte
	for rows.Next() {
		var image []byte
		if err := rows.Scan(&image); err != nil {
			return nil, fmt.Errorf("scan gallery row: %w", err)
		}
		gallery = append(gallery, image)
	}

	return gallery, rows.Err()
}

// Create inserts the tour and all of its children in one transaction.
func (r *tourRepository) Create(ctx context.Context, tour *entity.TourAggregate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create tour: %w", err)
	}

	query := `
		INSERT INTO tours (code, title, description, type, duration_days, places, main_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		tour.Code,
		tour.Title,
		tour.Description,
		tour.Type,
		tour.DurationDays,
		orEmpty(tour.Places),
		tour.MainImage,
	).Scan(&tour.ID, &tour.CreatedAt, &tour.UpdatedAt)
	if err != nil {
		rollback(ctx, tx, r.log)
		return r.wrapWriteError(err, "create tour", tour.Code)
	}

	for i := range tour.Dates {
		tour.Dates[i].TourID = tour.ID
		if err := insertDate(ctx, tx, &tour.Dates[i]); err != nil {
			rollback(ctx, tx, r.log)
			return err
		}
	}

	if err := insertChildren(ctx, tx, tour); err != nil {
		rollback(ctx, tx, r.log)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create tour: %w", err)
	}

	r.log.Info("Tour created", zap.Int64("tour_id", tour.ID), zap.String("code", tour.Code))
	return nil
}

// Update rewrites the tour row, replaces program, highlights and gallery,
// and reconciles departures by id.
func (r *tourRepository) Update(ctx context.Context, tour *entity.TourAggregate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update tour: %w", err)
	}

	query := `
		UPDATE tours
		SET code = $2, title = $3, description = $4, type = $5, duration_days = $6,
		    places = $7, main_image = COALESCE($8, main_image), updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		tour.ID,
		tour.Code,
		tour.Title,
		tour.Description,
		tour.Type,
		tour.DurationDays,
		orEmpty(tour.Places),
		tour.MainImage,
	)
	if err != nil {
		rollback(ctx, tx, r.log)
		return r.wrapWriteError(err, "update tour", tour.Code)
	}
	if result.RowsAffected() == 0 {
		rollback(ctx, tx, r.log)
		return fmt.Errorf("tour %d %w", tour.ID, ErrNotFound)
	}

	// Departures not listed anymore are removed
	keep := make([]int64, 0, len(tour.Dates))
	for _, d := range tour.Dates {
		if d.ID != 0 {
			keep = append(keep, d.ID)
		}
	}
	if err := deleteDropped(ctx, tx, tour.ID, keep); err != nil {
		rollback(ctx, tx, r.log)
		return err
	}

	for i := range tour.Dates {
		d := &tour.Dates[i]
		d.TourID = tour.ID
		if d.ID == 0 {
			err = insertDate(ctx, tx, d)
		} else {
			err = updateDate(ctx, tx, d)
		}
		if err != nil {
			rollback(ctx, tx, r.log)
			return err
		}
	}

	for _, table := range []string{"program_days", "highlights", "gallery_images"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE tour_id = $1`, tour.ID); err != nil {
			rollback(ctx, tx, r.log)
			return fmt.Errorf("clear %s of tour %d: %w", table, tour.ID, err)
		}
	}

	if err := insertChildren(ctx, tx, tour); err != nil {
		rollback(ctx, tx, r.log)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update tour: %w", err)
	}

	r.log.Info("Tour updated", zap.Int64("tour_id", tour.ID))
	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete tour", zap.Error(err), zap.Int64("tour_id", id))
		return fmt.Errorf("delete tour %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %d %w", id, ErrNotFound)
	}

	r.log.Info("Tour deleted", zap.Int64("tour_id", id))
	return nil
}

func (r *tourRepository) FindDate(ctx context.Context, dateID int64) (*entity.AvailableDate, error) {
	query := `
		SELECT id, tour_id, start_date, end_date, price, spots_total, spots_left
		FROM available_dates
		WHERE id = $1
	`

	var d entity.AvailableDate
	err := r.db.QueryRow(ctx, query, dateID).Scan(&d.ID, &d.TourID, &d.StartDate, &d.EndDate, &d.Price, &d.SpotsTotal, &d.SpotsLeft)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find date", zap.Error(err), zap.Int64("date_id", dateID))
		return nil, fmt.Errorf("find date %d: %w", dateID, err)
	}

	return &d, nil
}

func (r *tourRepository) wrapWriteError(err error, op, code string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("tour code %s %w", code, ErrDuplicate)
	}
	r.log.Error("Failed to "+op, zap.Error(err), zap.String("code", code))
	return fmt.Errorf("%s %s: %w", op, code, err)
}

func insertDate(ctx context.Context, tx pgx.Tx, d *entity.AvailableDate) error {
	query := `
		INSERT INTO available_dates (tour_id, start_date, end_date, price, spots_total, spots_left)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query, d.TourID, d.StartDate, d.EndDate, d.Price, d.SpotsTotal).Scan(&d.ID); err != nil {
		return fmt.Errorf("insert date for tour %d: %w", d.TourID, err)
	}
	d.SpotsLeft = d.SpotsTotal
	return nil
}

// updateDate shifts spots_left by the change of spots_total so seats
// already booked stay booked. Lowering spots below the booked count fails
// with ErrSpotsBelowBooked.
func updateDate(ctx context.Context, tx pgx.Tx, d *entity.AvailableDate) error {
	query := `
		UPDATE available_dates
		SET start_date = $3, end_date = $4, price = $5,
		    spots_left = spots_left + ($6 - spots_total), spots_total = $6
		WHERE id = $1 AND tour_id = $2 AND spots_total - spots_left <= $6
	`
	result, err := tx.Exec(ctx, query, d.ID, d.TourID, d.StartDate, d.EndDate, d.Price, d.SpotsTotal)
	if err != nil {
		return fmt.Errorf("update date %d: %w", d.ID, err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var booked int
	err = tx.QueryRow(ctx, `SELECT spots_total - spots_left FROM available_dates WHERE id = $1 AND tour_id = $2`,
		d.ID, d.TourID).Scan(&booked)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("date %d of tour %d %w", d.ID, d.TourID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read booked seats of date %d: %w", d.ID, err)
	}
	return fmt.Errorf("date %d has %d booked, %d requested: %w", d.ID, booked, d.SpotsTotal, ErrSpotsBelowBooked)
}

// deleteDropped removes the departures of a tour that are not in keep.
// Departures still holding pending or approved reservations are refused,
// deleting them would cascade to the bookings.
func deleteDropped(ctx context.Context, tx pgx.Tx, tourID int64, keep []int64) error {
	var inUse int64
	err := tx.QueryRow(ctx, `
		SELECT d.id
		FROM available_dates d
		JOIN reservations res ON res.date_id = d.id
		WHERE d.tour_id = $1 AND NOT (d.id = ANY($2)) AND res.status <> 'rejected'
		LIMIT 1
	`, tourID, keep).Scan(&inUse)
	if err == nil {
		return fmt.Errorf("date %d of tour %d: %w", inUse, tourID, ErrDateInUse)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check removed dates of tour %d: %w", tourID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM available_dates WHERE tour_id = $1 AND NOT (id = ANY($2))`, tourID, keep); err != nil {
		return fmt.Errorf("delete removed dates of tour %d: %w", tourID, err)
	}
	return nil
}

func insertChildren(ctx context.Context, tx pgx.Tx, tour *entity.TourAggregate) error {
	for i := range tour.Program {
		day := &tour.Program[i]
		day.TourID = tour.ID
		query := `
			INSERT INTO program_days (tour_id, day_number, title, description, places, included)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		day.Places, day.Included = orEmpty(day.Places), orEmpty(day.Included)
		if err := tx.QueryRow(ctx, query, tour.ID, day.DayNumber, day.Title, day.Description, day.Places, day.Included).Scan(&day.ID); err != nil {
			return fmt.Errorf("insert program day %d for tour %d: %w", day.DayNumber, tour.ID, err)
		}
	}

	for i, text := range tour.Highlights {
		if _, err := tx.Exec(ctx, `INSERT INTO highlights (tour_id, position, text) VALUES ($1, $2, $3)`, tour.ID, i, text); err != nil {
			return fmt.Errorf("insert highlight for tour %d: %w", tour.ID, err)
		}
	}

	for i, image := range tour.Gallery {
		if _, err := tx.Exec(ctx, `INSERT INTO gallery_images (tour_id, position, image) VALUES ($1, $2, $3)`, tour.ID, i, image); err != nil {
			return fmt.Errorf("insert gallery image for tour %d: %w", tour.ID, err)
		}
	}

	return nil
}

// orEmpty keeps TEXT[] NOT NULL columns out of NULL: pgx encodes a nil
// slice as NULL.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
