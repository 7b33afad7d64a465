package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultTourLimit = 9
	maxTourLimit     = 100
)

var tourTypes = map[string]entity.TourType{
	string(entity.TourTypeCultural):  entity.TourTypeCultural,
	string(entity.TourTypeAdventure): entity.TourTypeAdventure,
	string(entity.TourTypeDesert):    entity.TourTypeDesert,
	string(entity.TourTypeCoastal):   entity.TourTypeCoastal,
	string(entity.TourTypeMountain):  entity.TourTypeMountain,
	string(entity.TourTypeCity):      entity.TourTypeCity,
}

type TourService interface {
	// Public
	ListTours(ctx context.Context, query *request.TourListQuery) (*response.TourListResponse, error)
	GetTour(ctx context.Context, id int64) (*response.TourDetailResponse, error)
	GetDestinations(ctx context.Context) ([]response.DestinationResponse, error)

	// Admin
	CreateTour(ctx context.Context, req *request.TourRequest) (*response.TourDetailResponse, error)
	UpdateTour(ctx context.Context, req *request.TourUpdateRequest) (*response.TourDetailResponse, error)
	DeleteTour(ctx context.Context, id int64) error
}

type tourService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTourService(repo *repository.Repository, log *zap.Logger) TourService {
	return &tourService{
		repo: repo,
		log:  log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) ListTours(ctx context.Context, query *request.TourListQuery) (*response.TourListResponse, error) {
	filter, err := buildTourFilter(query)
	if err != nil {
		s.log.Warn("Invalid tour filter", zap.Error(err))
		return nil, err
	}

	tours, err := s.repo.Tour.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search tours: %w", err)
	}

	total, err := s.repo.Tour.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count tours: %w", err)
	}

	resp := &response.TourListResponse{
		Tours:      make([]response.TourSummaryResponse, 0, len(tours)),
		Total:      total,
		Page:       query.Page,
		Limit:      filter.Limit,
		TotalPages: utils.CalculateTotalPages(total, filter.Limit),
	}
	for _, t := range tours {
		resp.Tours = append(resp.Tours, response.TourSummaryToResponse(t))
	}

	return resp, nil
}

// buildTourFilter normalizes paging and rejects contradictory ranges.
// Page is updated in place so the response echoes the page served.
func buildTourFilter(q *request.TourListQuery) (repository.TourFilter, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	limit := utils.ClampLimit(q.Limit, defaultTourLimit, maxTourLimit)

	filter := repository.TourFilter{
		Search:    strings.TrimSpace(q.SearchTerm),
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		DaysMin:   q.DaysMin,
		DaysMax:   q.DaysMax,
		BudgetMin: q.BudgetMin,
		BudgetMax: q.BudgetMax,
		Sort:      repository.TourSort(q.SortBy),
		Limit:     limit,
		Offset:    utils.CalculateOffset(q.Page, limit),
	}

	if q.Type != "" {
		t, ok := tourTypes[q.Type]
		if !ok {
			return filter, newError(ErrInvalidInput, "invalid type %q", q.Type)
		}
		filter.Type = string(t)
	}

	if q.DateFrom != nil && q.DateTo != nil && q.DateTo.Before(*q.DateFrom) {
		return filter, newError(ErrInvalidInput, "dateTo must not be before dateFrom")
	}
	if q.DaysMin != nil && q.DaysMax != nil && *q.DaysMax < *q.DaysMin {
		return filter, newError(ErrInvalidInput, "daysMax must not be below daysMin")
	}
	if q.BudgetMin != nil && q.BudgetMax != nil && *q.BudgetMax < *q.BudgetMin {
		return filter, newError(ErrInvalidInput, "budgetMax must not be below budgetMin")
	}

	return filter, nil
}

func (s *tourService) GetTour(ctx context.Context, id int64) (*response.TourDetailResponse, error) {
	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tour: %w", err)
	}
	if tour == nil {
		return nil, newError(ErrNotFound, "tour %d not found", id)
	}

	avg, count, err := s.rating(ctx, id)
	if err != nil {
		return nil, err
	}

	return response.TourDetailToResponse(tour, avg, count), nil
}

func (s *tourService) rating(ctx context.Context, tourID int64) (float64, int64, error) {
	reviews, err := s.repo.Review.FindByTourID(ctx, tourID)
	if err != nil {
		return 0, 0, fmt.Errorf("load reviews of tour %d: %w", tourID, err)
	}
	if len(reviews) == 0 {
		return 0, 0, nil
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), int64(len(reviews)), nil
}

func (s *tourService) GetDestinations(ctx context.Context) ([]response.DestinationResponse, error) {
	destinations, err := s.repo.Tour.Destinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}

	resp := make([]response.DestinationResponse, 0, len(destinations))
	for _, d := range destinations {
		resp = append(resp, response.DestinationResponse{
			Place:     d.Place,
			TourCount: d.TourCount,
			MinPrice:  d.MinPrice,
		})
	}
	return resp, nil
}

func (s *tourService) CreateTour(ctx context.Context, req *request.TourRequest) (*response.TourDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create tour validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	tour, err := toTourAggregate(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, newError(ErrAlreadyExists, "tour code %s already exists", req.Code)
		}
		return nil, fmt.Errorf("create tour: %w", err)
	}

	s.log.Info("Tour created", zap.Int64("tour_id", tour.ID), zap.String("code", tour.Code))
	return response.TourDetailToResponse(tour, 0, 0), nil
}

func (s *tourService) UpdateTour(ctx context.Context, req *request.TourUpdateRequest) (*response.TourDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update tour validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	tour, err := toTourAggregate(&req.TourRequest)
	if err != nil {
		return nil, err
	}
	tour.ID = req.ID

	if err := s.repo.Tour.Update(ctx, tour); err != nil {
		switch {
		case errors.Is(err, repository.ErrSpotsBelowBooked):
			s.log.Warn("Tour update refused", zap.Int64("tour_id", req.ID), zap.Error(err))
			return nil, newError(ErrInvalidState, "cannot lower spots below booked travelers")
		case errors.Is(err, repository.ErrDateInUse):
			s.log.Warn("Tour update refused", zap.Int64("tour_id", req.ID), zap.Error(err))
			return nil, newError(ErrInvalidState, "cannot remove a departure with active reservations")
		case errors.Is(err, ErrNotFound):
			return nil, newError(ErrNotFound, "tour %d not found", req.ID)
		case errors.Is(err, ErrAlreadyExists):
			return nil, newError(ErrAlreadyExists, "tour code %s already exists", req.Code)
		}
		return nil, fmt.Errorf("update tour: %w", err)
	}

	s.log.Info("Tour updated", zap.Int64("tour_id", req.ID))
	return s.GetTour(ctx, req.ID)
}

func (s *tourService) DeleteTour(ctx context.Context, id int64) error {
	if err := s.repo.Tour.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrNotFound, "tour %d not found", id)
		}
		return fmt.Errorf("delete tour: %w", err)
	}

	s.log.Info("Tour deleted", zap.Int64("tour_id", id))
	return nil
}

// ==================== CONVERTERS ====================

func toTourAggregate(req *request.TourRequest) (*entity.TourAggregate, error) {
	mainImage, err := utils.DecodeImage(req.MainImage)
	if err != nil {
		return nil, newError(ErrInvalidInput, "mainImage: %v", err)
	}

	tour := &entity.TourAggregate{
		Tour: entity.Tour{
			Code:         strings.TrimSpace(req.Code),
			Title:        strings.TrimSpace(req.Title),
			Description:  req.Description,
			Type:         entity.TourType(req.Type),
			DurationDays: req.DurationDays,
			Places:       req.Places,
			MainImage:    mainImage,
		},
		Highlights: req.Highlights,
	}

	for i, encoded := range req.Gallery {
		image, err := utils.DecodeImage(encoded)
		if err != nil {
			return nil, newError(ErrInvalidInput, "gallery[%d]: %v", i, err)
		}
		if image != nil {
			tour.Gallery = append(tour.Gallery, image)
		}
	}

	for _, day := range req.Program {
		tour.Program = append(tour.Program, entity.ProgramDay{
			DayNumber:   day.DayNumber,
			Title:       day.Title,
			Description: day.Description,
			Places:      day.Places,
			Included:    day.Included,
		})
	}

	for i, d := range req.Dates {
		start, end, err := parseRange(d.StartDate, d.EndDate)
		if err != nil {
			return nil, newError(ErrValidation, "validation failed: dates[%d]: %v", i, err)
		}
		tour.Dates = append(tour.Dates, entity.AvailableDate{
			ID:         d.ID,
			StartDate:  start,
			EndDate:    end,
			Price:      d.Price,
			SpotsTotal: d.Spots,
		})
	}

	return tour, nil
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(utils.DateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q", startStr)
	}
	end, err := time.Parse(utils.DateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q", endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("endDate must not be before startDate")
	}
	return start, end, nil
}
