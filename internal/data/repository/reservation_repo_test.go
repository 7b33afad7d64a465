package repository

import (
	"context"
	"testing"
	"time"

	"travel-agency/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func travelers(n int) []entity.Traveler {
	out := make([]entity.Traveler, n)
	for i := range out {
		out[i] = entity.Traveler{FirstName: "Traveler", LastName: "Test", Email: "t@example.com"}
	}
	return out
}

func TestReservationCreate_TakesSeats(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock, nop)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int64(1), int64(2), pgxmock.AnyArg(), entity.ReservationPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("INSERT INTO travelers").
			WithArgs(anyArgs(13)...).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100 + i)))
	}
	mock.ExpectExec("UPDATE available_dates SET spots_left = spots_left -").
		WithArgs(3, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	res := &entity.Reservation{TourID: 1, DateID: 2}
	list := travelers(3)
	require.NoError(t, repo.Create(context.Background(), res, list))

	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, entity.ReservationPending, res.Status)
	assert.Equal(t, int64(7), list[2].ReservationID)
	assert.Equal(t, int64(102), list[2].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationCreate_InsufficientSpots(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock, nop)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(anyArgs(4)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), time.Now()))
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("INSERT INTO travelers").
			WithArgs(anyArgs(13)...).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(i + 1)))
	}
	mock.ExpectExec("UPDATE available_dates SET spots_left = spots_left -").
		WithArgs(3, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &entity.Reservation{TourID: 1, DateID: 2}, travelers(3))

	assert.ErrorIs(t, err, ErrInsufficientSpots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationReject_ReleasesSeats(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock, nop)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"tour_id", "date_id", "status", "count"}).
			AddRow(int64(1), int64(2), entity.ReservationPending, 4))
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(int64(5), entity.ReservationRejected).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`spots_left \+`).
		WithArgs(4, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	res, err := repo.Reject(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, &RejectResult{TourID: 1, DateID: 2, TravelerCount: 4}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationReject_AlreadyRejected(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock, nop)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"tour_id", "date_id", "status", "count"}).
			AddRow(int64(1), int64(2), entity.ReservationRejected, 4))
	mock.ExpectRollback()

	_, err := repo.Reject(context.Background(), 5)

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationReject_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock, nop)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Reject(context.Background(), 9)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationApprove(t *testing.T) {
	t.Run("pending becomes approved", func(t *testing.T) {
		mock := newMock(t)
		repo := NewReservationRepository(mock, nop)

		mock.ExpectQuery("SELECT status FROM reservations").
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(entity.ReservationPending))
		mock.ExpectExec("UPDATE reservations SET status").
			WithArgs(int64(3), entity.ReservationApproved, entity.ReservationRejected).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Approve(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejected cannot be approved", func(t *testing.T) {
		mock := newMock(t)
		repo := NewReservationRepository(mock, nop)

		mock.ExpectQuery("SELECT status FROM reservations").
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(entity.ReservationRejected))

		assert.ErrorIs(t, repo.Approve(context.Background(), 3), ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		mock := newMock(t)
		repo := NewReservationRepository(mock, nop)

		mock.ExpectQuery("SELECT status FROM reservations").
			WithArgs(int64(3)).
			WillReturnError(pgx.ErrNoRows)

		assert.ErrorIs(t, repo.Approve(context.Background(), 3), ErrNotFound)
	})
}

func TestReservationList_ForUser(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock, nop)
	uid := int64(42)
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE r.user_id = \$1`).
		WithArgs(uid).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tour_id", "date_id", "user_id", "status", "created_at",
			"title", "start_date", "end_date", "price", "traveler_count",
		}).AddRow(int64(7), int64(1), int64(2), &uid, entity.ReservationApproved, time.Now(),
			"Atlas Trek", start, start.AddDate(0, 0, 5), 450.0, 2))
	mock.ExpectQuery("FROM travelers").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "reservation_id", "first_name", "last_name", "email", "phone", "birth_date",
			"nationality", "passport_number", "passport_expiry", "address", "city", "country", "zip_code",
		}).
			AddRow(int64(1), int64(7), "Ada", "L", "a@example.com", "", start, "", "", start, "", "", "", "").
			AddRow(int64(2), int64(7), "Bob", "K", "b@example.com", "", start, "", "", start, "", "", "", ""))

	list, err := repo.List(context.Background(), &uid)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Atlas Trek", list[0].TourTitle)
	assert.Equal(t, 2, list[0].TravelerCount)
	assert.Len(t, list[0].Travelers, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationExpirePending(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock, nop)

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`start_date < \$1`).
		WithArgs(today).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := repo.ExpirePending(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
