package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	GetTourReviews(ctx context.Context, tourID int64) ([]response.ReviewResponse, error)
	CreateReview(ctx context.Context, principal utils.Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, id int64) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetTourReviews(ctx context.Context, tourID int64) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	resp := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, response.ReviewToResponse(r))
	}
	return resp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, principal utils.Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	tour, err := s.repo.Tour.FindByID(ctx, req.TourID)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil {
		return nil, newError(ErrNotFound, "tour %d not found", req.TourID)
	}

	author := strings.TrimSpace(req.AuthorName)
	if author == "" {
		author = principal.Name
	}

	review := &entity.Review{
		TourID:     req.TourID,
		AuthorName: author,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if principal.UserID != 0 {
		uid := principal.UserID
		review.UserID = &uid
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("tour_id", review.TourID),
		zap.Int("rating", review.Rating),
	)
	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.repo.Review.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrNotFound, "review %d not found", id)
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
