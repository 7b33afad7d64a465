package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/broker"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type ReservationService interface {
	// Customer (or guest) booking
	CreateReservation(ctx context.Context, principal utils.Principal, req *request.CreateReservationRequest) (*response.CreatedReservationResponse, error)
	GetUserReservations(ctx context.Context, userID int64) ([]response.ReservationResponse, error)

	// Admin
	GetReservations(ctx context.Context) ([]response.ReservationResponse, error)
	ApproveReservation(ctx context.Context, id int64) error
	RejectReservation(ctx context.Context, id int64) error
}

type reservationService struct {
	repo   *repository.Repository
	events broker.Publisher
	now    func() time.Time
	log    *zap.Logger
}

func NewReservationService(repo *repository.Repository, events broker.Publisher, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:   repo,
		events: events,
		now:    time.Now,
		log:    log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, principal utils.Principal, req *request.CreateReservationRequest) (*response.CreatedReservationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	travelers, err := toTravelers(req.Travelers)
	if err != nil {
		return nil, err
	}

	// Date must exist, belong to the tour and not have left yet
	date, err := s.repo.Tour.FindDate(ctx, req.DateID)
	if err != nil {
		return nil, fmt.Errorf("find date: %w", err)
	}
	if date == nil {
		return nil, newError(ErrNotFound, "date %d not found", req.DateID)
	}
	if date.TourID != req.TourID {
		return nil, newError(ErrInvalidInput, "date %d does not belong to tour %d", req.DateID, req.TourID)
	}
	if date.StartDate.Before(today(s.now())) {
		return nil, newError(ErrInvalidInput, "cannot book a departed date")
	}

	reservation := &entity.Reservation{
		TourID: req.TourID,
		DateID: req.DateID,
	}
	// The booking is linked to a customer account only through the verified principal
	if principal.Kind == utils.PrincipalCustomer && principal.UserID != 0 {
		uid := principal.UserID
		reservation.UserID = &uid
	}

	if err := s.repo.Reservation.Create(ctx, reservation, travelers); err != nil {
		if errors.Is(err, ErrInsufficientSpots) {
			s.log.Warn("Booking refused, date full",
				zap.Int64("date_id", req.DateID),
				zap.Int("travelers", len(travelers)),
			)
			return nil, newError(ErrInsufficientSpots, "not enough spots for %d travelers", len(travelers))
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	publishEvent(ctx, s.events, s.log, EventReservationCreated, ReservationEvent{
		ReservationID: reservation.ID,
		TourID:        reservation.TourID,
		DateID:        reservation.DateID,
		Status:        reservation.Status,
		Travelers:     len(travelers),
		OccurredAt:    s.now().UTC(),
	})

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("tour_id", reservation.TourID),
		zap.Int("travelers", len(travelers)),
	)

	return &response.CreatedReservationResponse{
		ID:         reservation.ID,
		Reference:  utils.BookingReference(reservation.ID, reservation.CreatedAt),
		Status:     reservation.Status,
		TotalPrice: date.Price * float64(len(travelers)),
	}, nil
}

func (s *reservationService) GetReservations(ctx context.Context) ([]response.ReservationResponse, error) {
	return s.list(ctx, nil)
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID int64) ([]response.ReservationResponse, error) {
	return s.list(ctx, &userID)
}

// list sweeps expired pending bookings first so the listing never shows
// a pending reservation for a departed date.
func (s *reservationService) list(ctx context.Context, userID *int64) ([]response.ReservationResponse, error) {
	if _, err := s.repo.Reservation.ExpirePending(ctx, today(s.now())); err != nil {
		return nil, fmt.Errorf("expire pending reservations: %w", err)
	}

	details, err := s.repo.Reservation.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	resp := make([]response.ReservationResponse, 0, len(details))
	for _, d := range details {
		// A reservation without travelers is a leftover of a failed insert
		if d.TravelerCount == 0 || len(d.Travelers) == 0 {
			continue
		}
		resp = append(resp, response.ReservationToResponse(d))
	}

	return resp, nil
}

func (s *reservationService) ApproveReservation(ctx context.Context, id int64) error {
	detail, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find reservation: %w", err)
	}
	if detail == nil {
		return newError(ErrNotFound, "reservation %d not found", id)
	}

	if err := s.repo.Reservation.Approve(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return newError(ErrNotFound, "reservation %d not found", id)
		case errors.Is(err, ErrInvalidState):
			return newError(ErrInvalidState, "cannot approve a rejected reservation")
		}
		return fmt.Errorf("approve reservation: %w", err)
	}

	publishEvent(ctx, s.events, s.log, EventReservationApproved, ReservationEvent{
		ReservationID: id,
		TourID:        detail.TourID,
		DateID:        detail.DateID,
		Status:        entity.ReservationApproved,
		Travelers:     detail.TravelerCount,
		OccurredAt:    s.now().UTC(),
	})

	s.log.Info("Reservation approved", zap.Int64("reservation_id", id))
	return nil
}

func (s *reservationService) RejectReservation(ctx context.Context, id int64) error {
	result, err := s.repo.Reservation.Reject(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return newError(ErrNotFound, "reservation %d not found", id)
		case errors.Is(err, ErrInvalidState):
			return newError(ErrInvalidState, "reservation %d is already rejected", id)
		}
		return fmt.Errorf("reject reservation: %w", err)
	}

	publishEvent(ctx, s.events, s.log, EventReservationRejected, ReservationEvent{
		ReservationID: id,
		TourID:        result.TourID,
		DateID:        result.DateID,
		Status:        entity.ReservationRejected,
		Travelers:     result.TravelerCount,
		OccurredAt:    s.now().UTC(),
	})

	s.log.Info("Reservation rejected",
		zap.Int64("reservation_id", id),
		zap.Int("released_spots", result.TravelerCount),
	)
	return nil
}

// ==================== HELPERS ====================

func toTravelers(reqs []request.TravelerRequest) ([]entity.Traveler, error) {
	travelers := make([]entity.Traveler, 0, len(reqs))
	for i, t := range reqs {
		birth, err := time.Parse(utils.DateLayout, t.BirthDate)
		if err != nil {
			return nil, newError(ErrValidation, "validation failed: travelers[%d].birthDate: invalid date", i)
		}
		expiry, err := time.Parse(utils.DateLayout, t.PassportExpiry)
		if err != nil {
			return nil, newError(ErrValidation, "validation failed: travelers[%d].passportExpiry: invalid date", i)
		}

		travelers = append(travelers, entity.Traveler{
			FirstName:      t.FirstName,
			LastName:       t.LastName,
			Email:          t.Email,
			Phone:          t.Phone,
			BirthDate:      birth,
			Nationality:    t.Nationality,
			PassportNumber: t.PassportNumber,
			PassportExpiry: expiry,
			Address:        t.Address,
			City:           t.City,
			Country:        t.Country,
			ZipCode:        t.ZipCode,
		})
	}
	return travelers, nil
}

// today is the UTC calendar day of now. Both the booking cutoff and the
// expiry sweep use it.
func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
