package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	// Create stores the reservation with its travelers and takes the seats,
	// all or nothing. Returns ErrInsufficientSpots when the date is full.
	Create(ctx context.Context, reservation *entity.Reservation, travelers []entity.Traveler) error
	FindByID(ctx context.Context, id int64) (*entity.ReservationDetail, error)
	// List returns reservations newest first, optionally for one user.
	List(ctx context.Context, userID *int64) ([]*entity.ReservationDetail, error)
	FindTravelers(ctx context.Context, reservationID int64) ([]entity.Traveler, error)

	// Lifecycle
	ExpirePending(ctx context.Context, today time.Time) (int64, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) (*RejectResult, error)
}

// RejectResult describes the seats released by a rejection.
type RejectResult struct {
	TourID        int64
	DateID        int64
	TravelerCount int
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation, travelers []entity.Traveler) error {
	seats := len(travelers)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation: %w", err)
	}

	query := `
		INSERT INTO reservations (tour_id, date_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query,
		reservation.TourID,
		reservation.DateID,
		reservation.UserID,
		entity.ReservationPending,
	).Scan(&reservation.ID, &reservation.CreatedAt)
	if err != nil {
		rollback(ctx, tx, r.log)
		r.log.Error("Failed to insert reservation", zap.Error(err), zap.Int64("date_id", reservation.DateID))
		return fmt.Errorf("insert reservation for date %d: %w", reservation.DateID, err)
	}
	reservation.Status = entity.ReservationPending

	for i := range travelers {
		t := &travelers[i]
		t.ReservationID = reservation.ID
		if err := insertTraveler(ctx, tx, t); err != nil {
			rollback(ctx, tx, r.log)
			r.log.Error("Failed to insert traveler", zap.Error(err), zap.Int64("reservation_id", reservation.ID))
			return err
		}
	}

	// Conditional decrement: the seat check and the write are one statement
	result, err := tx.Exec(ctx,
		`UPDATE available_dates SET spots_left = spots_left - $1 WHERE id = $2 AND spots_left >= $1`,
		seats, reservation.DateID)
	if err != nil {
		rollback(ctx, tx, r.log)
		r.log.Error("Failed to reserve spots", zap.Error(err), zap.Int64("date_id", reservation.DateID))
		return fmt.Errorf("reserve %d spots on date %d: %w", seats, reservation.DateID, err)
	}
	if result.RowsAffected() == 0 {
		rollback(ctx, tx, r.log)
		return fmt.Errorf("date %d has %w for %d travelers", reservation.DateID, ErrInsufficientSpots, seats)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reservation: %w", err)
	}

	r.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("date_id", reservation.DateID),
		zap.Int("travelers", seats),
	)
	return nil
}

func insertTraveler(ctx context.Context, tx pgx.Tx, t *entity.Traveler) error {
	query := `
		INSERT INTO travelers (reservation_id, first_name, last_name, email, phone, birth_date,
		                       nationality, passport_number, passport_expiry, address, city, country, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		t.ReservationID,
		t.FirstName,
		t.LastName,
		t.Email,
		t.Phone,
		t.BirthDate,
		t.Nationality,
		t.PassportNumber,
		t.PassportExpiry,
		t.Address,
		t.City,
		t.Country,
		t.ZipCode,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert traveler for reservation %d: %w", t.ReservationID, err)
	}
	return nil
}

const reservationDetailSelect = `
	SELECT r.id, r.tour_id, r.date_id, r.user_id, r.status, r.created_at,
	       t.title, d.start_date, d.end_date, d.price,
	       (SELECT COUNT(*) FROM travelers v WHERE v.reservation_id = r.id)::int AS traveler_count
	FROM reservations r
	JOIN tours t ON t.id = r.tour_id
	JOIN available_dates d ON d.id = r.date_id`

func scanReservationDetail(row pgx.Row, d *entity.ReservationDetail) error {
	return row.Scan(
		&d.ID,
		&d.TourID,
		&d.DateID,
		&d.UserID,
		&d.Status,
		&d.CreatedAt,
		&d.TourTitle,
		&d.StartDate,
		&d.EndDate,
		&d.Price,
		&d.TravelerCount,
	)
}

func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*entity.ReservationDetail, error) {
	var detail entity.ReservationDetail
	err := scanReservationDetail(r.db.QueryRow(ctx, reservationDetailSelect+` WHERE r.id = $1`, id), &detail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return nil, fmt.Errorf("find reservation %d: %w", id, err)
	}

	if detail.Travelers, err = r.FindTravelers(ctx, id); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *reservationRepository) List(ctx context.Context, userID *int64) ([]*entity.ReservationDetail, error) {
	query := reservationDetailSelect
	var args []any
	if userID != nil {
		query += ` WHERE r.user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	var details []*entity.ReservationDetail
	for rows.Next() {
		var d entity.ReservationDetail
		if err := scanReservationDetail(rows, &d); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		details = append(details, &d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	// Travelers are attached once the outer rows are released
	for _, d := range details {
		if d.Travelers, err = r.FindTravelers(ctx, d.ID); err != nil {
			return nil, err
		}
	}

	return details, nil
}

func (r *reservationRepository) FindTravelers(ctx context.Context, reservationID int64) ([]entity.Traveler, error) {
	query := `
		SELECT id, reservation_id, first_name, last_name, email, phone, birth_date, nationality,
		       passport_number, passport_expiry, address, city, country, zip_code
		FROM travelers
		WHERE reservation_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find travelers", zap.Error(err), zap.Int64("reservation_id", reservationID))
		return nil, fmt.Errorf("find travelers of reservation %d: %w", reservationID, err)
	}
	defer rows.Close()

	var travelers []entity.Traveler
	for rows.Next() {
		var t entity.Traveler
		if err := rows.Scan(
			&t.ID,
			&t.ReservationID,
			&t.FirstName,
			&t.LastName,
			&t.Email,
			&t.Phone,
			&t.BirthDate,
			&t.Nationality,
			&t.PassportNumber,
			&t.PassportExpiry,
			&t.Address,
			&t.City,
			&t.Country,
			&t.ZipCode,
		); err != nil {
			return nil, fmt.Errorf("scan traveler row: %w", err)
		}
		travelers = append(travelers, t)
	}

	return travelers, rows.Err()
}

// ExpirePending rejects pending reservations whose departure is before
// today. The caller passes today so booking and expiry share one clock.
func (r *reservationRepository) ExpirePending(ctx context.Context, today time.Time) (int64, error) {
	query := `
		UPDATE reservations r
		SET status = 'rejected'
		FROM available_dates d
		WHERE d.id = r.date_id AND r.status = 'pending' AND d.start_date < $1
	`

	result, err := r.db.Exec(ctx, query, today)
	if err != nil {
		r.log.Error("Failed to expire pending reservations", zap.Error(err))
		return 0, fmt.Errorf("expire pending reservations: %w", err)
	}

	if n := result.RowsAffected(); n > 0 {
		r.log.Info("Expired pending reservations", zap.Int64("count", n))
	}
	return result.RowsAffected(), nil
}

// Approve leaves inventory untouched. Re-approving is a no-op; a rejected
// reservation cannot be approved because its seats were released.
func (r *reservationRepository) Approve(ctx context.Context, id int64) error {
	var status entity.ReservationStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM reservations WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("reservation %d %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to load reservation status", zap.Error(err), zap.Int64("reservation_id", id))
		return fmt.Errorf("load reservation %d: %w", id, err)
	}
	if status == entity.ReservationRejected {
		return fmt.Errorf("reservation %d is rejected: %w", id, ErrInvalidState)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE reservations SET status = $2 WHERE id = $1 AND status <> $3`,
		id, entity.ReservationApproved, entity.ReservationRejected)
	if err != nil {
		r.log.Error("Failed to approve reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return fmt.Errorf("approve reservation %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		// rejected between the two statements
		return fmt.Errorf("reservation %d is rejected: %w", id, ErrInvalidState)
	}

	return nil
}

// Reject flips the status and gives the seats back in one transaction. The
// row lock makes concurrent rejections of the same reservation release
// seats once.
func (r *reservationRepository) Reject(ctx context.Context, id int64) (*RejectResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reject reservation: %w", err)
	}

	var res RejectResult
	var status entity.ReservationStatus
	err = tx.QueryRow(ctx, `
		SELECT r.tour_id, r.date_id, r.status,
		       (SELECT COUNT(*) FROM travelers v WHERE v.reservation_id = r.id)::int
		FROM reservations r
		WHERE r.id = $1
		FOR UPDATE`, id).Scan(&res.TourID, &res.DateID, &status, &res.TravelerCount)
	if errors.Is(err, pgx.ErrNoRows) {
		rollback(ctx, tx, r.log)
		return nil, fmt.Errorf("reservation %d %w", id, ErrNotFound)
	}
	if err != nil {
		rollback(ctx, tx, r.log)
		r.log.Error("Failed to lock reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return nil, fmt.Errorf("lock reservation %d: %w", id, err)
	}
	if status == entity.ReservationRejected {
		rollback(ctx, tx, r.log)
		return nil, fmt.Errorf("reservation %d already rejected: %w", id, ErrInvalidState)
	}

	if _, err := tx.Exec(ctx, `UPDATE reservations SET status = $2 WHERE id = $1`, id, entity.ReservationRejected); err != nil {
		rollback(ctx, tx, r.log)
		r.log.Error("Failed to reject reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return nil, fmt.Errorf("reject reservation %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx, `UPDATE available_dates SET spots_left = spots_left + $1 WHERE id = $2`, res.TravelerCount, res.DateID); err != nil {
		rollback(ctx, tx, r.log)
		r.log.Error("Failed to release spots", zap.Error(err), zap.Int64("date_id", res.DateID))
		return nil, fmt.Errorf("release %d spots on date %d: %w", res.TravelerCount, res.DateID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reject reservation: %w", err)
	}

	r.log.Info("Reservation rejected",
		zap.Int64("reservation_id", id),
		zap.Int64("date_id", res.DateID),
		zap.Int("released", res.TravelerCount),
	)
	return &res, nil
}
