package adaptor

import (
	"context"
	"time"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"
)

// Fakes embed the service interface so unused methods panic if reached.

type fakeAuthService struct {
	usecase.AuthService
	resp *response.AuthResponse
	err  error
}

func (s *fakeAuthService) Login(context.Context, *request.LoginRequest) (*response.AuthResponse, error) {
	return s.resp, s.err
}

func (s *fakeAuthService) AdminLogin(context.Context, *request.LoginRequest) (*response.AuthResponse, error) {
	return s.resp, s.err
}

func (s *fakeAuthService) Register(context.Context, *request.RegisterRequest) (*response.AuthResponse, error) {
	return s.resp, s.err
}

type fakeTourService struct {
	usecase.TourService
	query *request.TourListQuery
	id    int64
	err   error
}

func (s *fakeTourService) ListTours(_ context.Context, q *request.TourListQuery) (*response.TourListResponse, error) {
	s.query = q
	if s.err != nil {
		return nil, s.err
	}
	return &response.TourListResponse{Tours: []response.TourSummaryResponse{}, Page: q.Page}, nil
}

func (s *fakeTourService) GetTour(_ context.Context, id int64) (*response.TourDetailResponse, error) {
	s.id = id
	if s.err != nil {
		return nil, s.err
	}
	return &response.TourDetailResponse{ID: id}, nil
}

func (s *fakeTourService) DeleteTour(_ context.Context, id int64) error {
	s.id = id
	return s.err
}

type fakeReservationService struct {
	usecase.ReservationService
	principal utils.Principal
	req       *request.CreateReservationRequest
	userID    int64
	err       error
}

func (s *fakeReservationService) CreateReservation(_ context.Context, p utils.Principal, req *request.CreateReservationRequest) (*response.CreatedReservationResponse, error) {
	s.principal, s.req = p, req
	if s.err != nil {
		return nil, s.err
	}
	return &response.CreatedReservationResponse{ID: 12, Reference: "BK-2026-0012", TotalPrice: 1200}, nil
}

func (s *fakeReservationService) GetUserReservations(_ context.Context, userID int64) ([]response.ReservationResponse, error) {
	s.userID = userID
	return []response.ReservationResponse{}, s.err
}

func (s *fakeReservationService) RejectReservation(context.Context, int64) error {
	return s.err
}

func authResponse() *response.AuthResponse {
	return &response.AuthResponse{
		User:      response.UserResponse{ID: 1, Name: "Sara", Email: "sara@example.com"},
		ExpiresAt: time.Now().Add(time.Hour),
		Token:     "signed.jwt.token",
	}
}
