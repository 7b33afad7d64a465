package repository

import (
	"context"
	"testing"
	"time"

	"travel-agency/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mayStart = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mayEnd   = time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	junStart = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	junEnd   = time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
)

func atlasTour() *entity.TourAggregate {
	return &entity.TourAggregate{
		Tour: entity.Tour{
			Code:         "MA-ATL-01",
			Title:        "High Atlas Trek",
			Type:         entity.TourTypeMountain,
			DurationDays: 5,
			Places:       []string{"Imlil"},
		},
		Dates:      []entity.AvailableDate{{StartDate: mayStart, EndDate: mayEnd, Price: 650, SpotsTotal: 12}},
		Program:    []entity.ProgramDay{{DayNumber: 1, Title: "Arrival"}},
		Highlights: []string{"Summit of Toubkal"},
	}
}

func TestTourCreate_InsertsChildrenInOneTx(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tours").
		WithArgs(anyArgs(7)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))
	mock.ExpectQuery("INSERT INTO available_dates").
		WithArgs(int64(3), mayStart, mayEnd, 650.0, 12).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
	// a program day without places or included goes in as empty arrays
	mock.ExpectQuery("INSERT INTO program_days").
		WithArgs(int64(3), 1, "Arrival", "", []string{}, []string{}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(20)))
	mock.ExpectExec("INSERT INTO highlights").
		WithArgs(int64(3), 0, "Summit of Toubkal").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tour := atlasTour()
	require.NoError(t, repo.Create(context.Background(), tour))

	assert.Equal(t, int64(3), tour.ID)
	assert.Equal(t, int64(4), tour.Dates[0].ID)
	assert.Equal(t, 12, tour.Dates[0].SpotsLeft)
	assert.Equal(t, int64(20), tour.Program[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourCreate_DuplicateCode(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tours").
		WithArgs(anyArgs(7)...).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), atlasTour())

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// expectTourRow expects the tour UPDATE and the check for dropped
// departures that still hold reservations.
func expectTourRow(mock pgxmock.PgxPoolIface, keep []int64) {
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tours").
		WithArgs(anyArgs(8)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("JOIN reservations").
		WithArgs(int64(3), keep).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectExec("DELETE FROM available_dates").
		WithArgs(int64(3), keep).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
}

func TestTourUpdate_ReconcilesDates(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)

	expectTourRow(mock, []int64{4})
	mock.ExpectExec("UPDATE available_dates").
		WithArgs(int64(4), int64(3), mayStart, mayEnd, 700.0, 10).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO available_dates").
		WithArgs(int64(3), junStart, junEnd, 500.0, 8).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
	for _, table := range []string{"program_days", "highlights", "gallery_images"} {
		mock.ExpectExec("DELETE FROM " + table).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
	}
	mock.ExpectQuery("INSERT INTO program_days").
		WithArgs(int64(3), 1, "Arrival", "", []string{}, []string{}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(21)))
	mock.ExpectExec("INSERT INTO highlights").
		WithArgs(int64(3), 0, "Summit of Toubkal").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tour := atlasTour()
	tour.ID = 3
	tour.Dates = []entity.AvailableDate{
		{ID: 4, StartDate: mayStart, EndDate: mayEnd, Price: 700, SpotsTotal: 10},
		{StartDate: junStart, EndDate: junEnd, Price: 500, SpotsTotal: 8},
	}

	require.NoError(t, repo.Update(context.Background(), tour))
	assert.Equal(t, int64(9), tour.Dates[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourUpdate_SpotsBelowBooked(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)

	expectTourRow(mock, []int64{4})
	mock.ExpectExec(`spots_total - spots_left <= \$6`).
		WithArgs(int64(4), int64(3), mayStart, mayEnd, 650.0, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT spots_total - spots_left FROM available_dates").
		WithArgs(int64(4), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"booked"}).AddRow(3))
	mock.ExpectRollback()

	tour := atlasTour()
	tour.ID = 3
	tour.Dates = []entity.AvailableDate{{ID: 4, StartDate: mayStart, EndDate: mayEnd, Price: 650, SpotsTotal: 1}}

	err := repo.Update(context.Background(), tour)

	assert.ErrorIs(t, err, ErrSpotsBelowBooked)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourUpdate_UnknownDate(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)

	expectTourRow(mock, []int64{40})
	mock.ExpectExec("UPDATE available_dates").
		WithArgs(anyArgs(6)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT spots_total - spots_left FROM available_dates").
		WithArgs(int64(40), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"booked"}))
	mock.ExpectRollback()

	tour := atlasTour()
	tour.ID = 3
	tour.Dates[0].ID = 40

	err := repo.Update(context.Background(), tour)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourUpdate_DroppedDateWithReservations(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tours").
		WithArgs(anyArgs(8)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("JOIN reservations").
		WithArgs(int64(3), []int64{}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
	mock.ExpectRollback()

	tour := atlasTour()
	tour.ID = 3

	err := repo.Update(context.Background(), tour)

	assert.ErrorIs(t, err, ErrDateInUse)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourUpdate_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tours").
		WithArgs(anyArgs(8)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	tour := atlasTour()
	tour.ID = 3

	assert.ErrorIs(t, repo.Update(context.Background(), tour), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourDelete_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewTourRepository(mock, nop)

	mock.ExpectExec("DELETE FROM tours").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
