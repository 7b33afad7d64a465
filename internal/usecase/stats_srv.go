package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

const topLimit = 5

// Seasonal revenue is an estimate: fixed shares of the yearly total.
var seasonShares = response.SeasonalRevenue{Spring: 0.20, Summer: 0.35, Autumn: 0.25, Winter: 0.20}

type StatsService interface {
	GetStats(ctx context.Context, query *request.StatsQuery) (*response.StatsResponse, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	now       func() time.Time
	log       *zap.Logger
}

func NewStatsService(statsRepo repository.StatsRepository, log *zap.Logger) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		now:       time.Now,
		log:       log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) GetStats(ctx context.Context, query *request.StatsQuery) (*response.StatsResponse, error) {
	now := s.now()
	if query.Range == "" {
		query.Range = "month"
	}
	if query.Year == 0 {
		query.Year = now.Year()
	}

	if errs := utils.ValidateStruct(query); len(errs) > 0 {
		s.log.Warn("Stats query validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	since := rangeStart(now, query.Range)
	resp := &response.StatsResponse{Range: query.Range, Year: query.Year}

	counts, err := s.statsRepo.BookingCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("booking counts: %w", err)
	}
	resp.Bookings = response.BookingStats{
		Total:    counts.Pending + counts.Approved + counts.Rejected,
		Pending:  counts.Pending,
		Approved: counts.Approved,
		Rejected: counts.Rejected,
	}

	byMonth, err := s.statsRepo.RevenueByMonth(ctx, query.Year)
	if err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}
	resp.Revenue.ByMonth = byMonth
	for _, v := range byMonth {
		resp.Revenue.Total += v
	}
	resp.SeasonalRevenue = response.SeasonalRevenue{
		Spring: resp.Revenue.Total * seasonShares.Spring,
		Summer: resp.Revenue.Total * seasonShares.Summer,
		Autumn: resp.Revenue.Total * seasonShares.Autumn,
		Winter: resp.Revenue.Total * seasonShares.Winter,
	}

	types, err := s.statsRepo.TourTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("tour types: %w", err)
	}
	resp.TourTypes = make([]response.TypeCount, 0, len(types))
	for _, t := range types {
		resp.TourTypes = append(resp.TourTypes, response.TypeCount{Type: t.Label, Count: t.Count})
	}

	places, err := s.statsRepo.PopularDestinations(ctx, topLimit)
	if err != nil {
		return nil, fmt.Errorf("popular destinations: %w", err)
	}
	resp.PopularDestinations = make([]response.PlaceCount, 0, len(places))
	for _, p := range places {
		resp.PopularDestinations = append(resp.PopularDestinations, response.PlaceCount{Place: p.Label, Count: p.Count})
	}

	top, err := s.statsRepo.TopTours(ctx, since, topLimit)
	if err != nil {
		return nil, fmt.Errorf("top tours: %w", err)
	}
	resp.TopTours = make([]response.TopTour, 0, len(top))
	for _, t := range top {
		resp.TopTours = append(resp.TopTours, response.TopTour{ID: t.TourID, Title: t.Title, Bookings: t.Bookings})
	}

	buckets, err := s.statsRepo.Demographics(ctx)
	if err != nil {
		return nil, fmt.Errorf("demographics: %w", err)
	}
	resp.Demographics = make([]response.BucketCount, 0, len(buckets))
	for _, b := range buckets {
		resp.Demographics = append(resp.Demographics, response.BucketCount{Bucket: b.Label, Count: b.Count})
	}

	ratings, avg, err := s.statsRepo.Ratings(ctx)
	if err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}
	resp.AverageRating = avg
	resp.Ratings = make([]response.StarCount, 0, len(ratings))
	for _, r := range ratings {
		resp.Ratings = append(resp.Ratings, response.StarCount{Stars: r.Stars, Count: r.Count})
	}

	if resp.TotalTours, resp.TotalTravelers, err = s.statsRepo.Totals(ctx); err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}

	return resp, nil
}

func rangeStart(now time.Time, r string) time.Time {
	switch r {
	case "week":
		return now.AddDate(0, 0, -7)
	case "quarter":
		return now.AddDate(0, -3, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}
