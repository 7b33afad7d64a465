package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newReservationTestService(tours *fakeTourRepo, reservations *fakeReservationRepo, events *fakePublisher) *reservationService {
	return &reservationService{
		repo:   &repository.Repository{Tour: tours, Reservation: reservations},
		events: events,
		now:    func() time.Time { return fixedNow },
		log:    nop,
	}
}

func traveler(first string) request.TravelerRequest {
	return request.TravelerRequest{
		FirstName:      first,
		LastName:       "Bennani",
		Email:          first + "@example.com",
		Phone:          "+212600000000",
		BirthDate:      "1990-05-12",
		Nationality:    "Moroccan",
		PassportNumber: "AB123456",
		PassportExpiry: "2031-01-01",
		Address:        "12 Rue Tarik",
		City:           "Rabat",
		Country:        "Morocco",
		ZipCode:        "10000",
	}
}

func departure(tourID int64, start time.Time) *fakeTourRepo {
	return &fakeTourRepo{dates: map[int64]*entity.AvailableDate{
		7: {ID: 7, TourID: tourID, StartDate: start, EndDate: start.AddDate(0, 0, 5), Price: 1200, SpotsTotal: 10, SpotsLeft: 4},
	}}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	req := &request.CreateReservationRequest{
		TourID:    3,
		DateID:    7,
		Travelers: []request.TravelerRequest{traveler("amina"), traveler("youssef")},
	}

	t.Run("customer booking", func(t *testing.T) {
		reservations := &fakeReservationRepo{}
		events := &fakePublisher{}
		svc := newReservationTestService(departure(3, fixedNow.AddDate(0, 1, 0)), reservations, events)

		principal := utils.Principal{Kind: utils.PrincipalCustomer, UserID: 42}
		resp, err := svc.CreateReservation(ctx, principal, req)
		require.NoError(t, err)

		assert.Equal(t, int64(12), resp.ID)
		assert.Equal(t, "BK-2026-0012", resp.Reference)
		assert.Equal(t, entity.ReservationPending, resp.Status)
		assert.Equal(t, 2400.0, resp.TotalPrice)

		require.NotNil(t, reservations.created.UserID)
		assert.Equal(t, int64(42), *reservations.created.UserID)
		require.Len(t, reservations.travelers, 2)
		assert.Equal(t, time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC), reservations.travelers[0].BirthDate)

		require.Equal(t, []string{EventReservationCreated}, events.keys)
		assert.Equal(t, 2, events.events[0].Travelers)
	})

	t.Run("guest and admin bookings are not linked", func(t *testing.T) {
		for _, p := range []utils.Principal{
			{Kind: utils.PrincipalAnonymous},
			{Kind: utils.PrincipalAdmin, UserID: 1},
		} {
			reservations := &fakeReservationRepo{}
			svc := newReservationTestService(departure(3, fixedNow.AddDate(0, 1, 0)), reservations, &fakePublisher{})

			_, err := svc.CreateReservation(ctx, p, req)
			require.NoError(t, err)
			assert.Nil(t, reservations.created.UserID)
		}
	})

	t.Run("same day departure is bookable", func(t *testing.T) {
		svc := newReservationTestService(departure(3, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)), &fakeReservationRepo{}, &fakePublisher{})
		_, err := svc.CreateReservation(ctx, utils.Principal{}, req)
		assert.NoError(t, err)
	})

	t.Run("departed date", func(t *testing.T) {
		svc := newReservationTestService(departure(3, fixedNow.AddDate(0, 0, -1)), &fakeReservationRepo{}, &fakePublisher{})
		_, err := svc.CreateReservation(ctx, utils.Principal{}, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.EqualError(t, err, "cannot book a departed date")
	})

	t.Run("date of another tour", func(t *testing.T) {
		svc := newReservationTestService(departure(99, fixedNow.AddDate(0, 1, 0)), &fakeReservationRepo{}, &fakePublisher{})
		_, err := svc.CreateReservation(ctx, utils.Principal{}, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown date", func(t *testing.T) {
		svc := newReservationTestService(&fakeTourRepo{}, &fakeReservationRepo{}, &fakePublisher{})
		_, err := svc.CreateReservation(ctx, utils.Principal{}, req)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("not enough spots", func(t *testing.T) {
		events := &fakePublisher{}
		reservations := &fakeReservationRepo{createErr: repository.ErrInsufficientSpots}
		svc := newReservationTestService(departure(3, fixedNow.AddDate(0, 1, 0)), reservations, events)

		_, err := svc.CreateReservation(ctx, utils.Principal{}, req)
		assert.ErrorIs(t, err, ErrInsufficientSpots)
		assert.EqualError(t, err, "not enough spots for 2 travelers")
		assert.Empty(t, events.keys)
	})

	t.Run("no travelers", func(t *testing.T) {
		svc := newReservationTestService(departure(3, fixedNow.AddDate(0, 1, 0)), &fakeReservationRepo{}, &fakePublisher{})
		_, err := svc.CreateReservation(ctx, utils.Principal{}, &request.CreateReservationRequest{TourID: 3, DateID: 7})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		events := &fakePublisher{err: errors.New("broker down")}
		svc := newReservationTestService(departure(3, fixedNow.AddDate(0, 1, 0)), &fakeReservationRepo{}, events)
		_, err := svc.CreateReservation(ctx, utils.Principal{}, req)
		assert.NoError(t, err)
	})
}

func TestListReservations(t *testing.T) {
	reservations := &fakeReservationRepo{list: []*entity.ReservationDetail{
		{
			Reservation:   entity.Reservation{BaseSimple: entity.BaseSimple{ID: 1, CreatedAt: fixedNow}, Status: entity.ReservationPending},
			Price:         500,
			TravelerCount: 2,
			Travelers:     []entity.Traveler{{FirstName: "A"}, {FirstName: "B"}},
		},
		{
			Reservation:   entity.Reservation{BaseSimple: entity.BaseSimple{ID: 2, CreatedAt: fixedNow}},
			TravelerCount: 0,
		},
	}}
	svc := newReservationTestService(&fakeTourRepo{}, reservations, &fakePublisher{})

	got, err := svc.GetUserReservations(context.Background(), 42)
	require.NoError(t, err)

	assert.True(t, reservations.expired)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), reservations.expiredBefore)
	require.NotNil(t, reservations.listUserID)
	assert.Equal(t, int64(42), *reservations.listUserID)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, 1000.0, got[0].TotalPrice)

	_, err = svc.GetReservations(context.Background())
	require.NoError(t, err)
	assert.Nil(t, reservations.listUserID)
}

func TestApproveReservation(t *testing.T) {
	detail := &entity.ReservationDetail{
		Reservation:   entity.Reservation{BaseSimple: entity.BaseSimple{ID: 5}, TourID: 3, DateID: 7},
		TravelerCount: 2,
	}

	t.Run("approved", func(t *testing.T) {
		events := &fakePublisher{}
		svc := newReservationTestService(&fakeTourRepo{}, &fakeReservationRepo{details: map[int64]*entity.ReservationDetail{5: detail}}, events)

		require.NoError(t, svc.ApproveReservation(context.Background(), 5))
		require.Equal(t, []string{EventReservationApproved}, events.keys)
		assert.Equal(t, entity.ReservationApproved, events.events[0].Status)
		assert.Equal(t, int64(3), events.events[0].TourID)
	})

	t.Run("rejected cannot be approved", func(t *testing.T) {
		events := &fakePublisher{}
		svc := newReservationTestService(&fakeTourRepo{}, &fakeReservationRepo{
			details:    map[int64]*entity.ReservationDetail{5: detail},
			approveErr: repository.ErrInvalidState,
		}, events)

		err := svc.ApproveReservation(context.Background(), 5)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, events.keys)
	})

	t.Run("missing", func(t *testing.T) {
		svc := newReservationTestService(&fakeTourRepo{}, &fakeReservationRepo{}, &fakePublisher{})
		assert.ErrorIs(t, svc.ApproveReservation(context.Background(), 5), ErrNotFound)
	})
}

func TestRejectReservation(t *testing.T) {
	t.Run("releases seats", func(t *testing.T) {
		events := &fakePublisher{}
		svc := newReservationTestService(&fakeTourRepo{}, &fakeReservationRepo{
			rejected: &repository.RejectResult{TourID: 3, DateID: 7, TravelerCount: 2},
		}, events)

		require.NoError(t, svc.RejectReservation(context.Background(), 5))
		require.Equal(t, []string{EventReservationRejected}, events.keys)
		assert.Equal(t, 2, events.events[0].Travelers)
	})

	t.Run("already rejected", func(t *testing.T) {
		svc := newReservationTestService(&fakeTourRepo{}, &fakeReservationRepo{rejectErr: repository.ErrInvalidState}, &fakePublisher{})
		err := svc.RejectReservation(context.Background(), 5)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.EqualError(t, err, "reservation 5 is already rejected")
	})

	t.Run("missing", func(t *testing.T) {
		svc := newReservationTestService(&fakeTourRepo{}, &fakeReservationRepo{rejectErr: repository.ErrNotFound}, &fakePublisher{})
		assert.ErrorIs(t, svc.RejectReservation(context.Background(), 5), ErrNotFound)
	})
}
