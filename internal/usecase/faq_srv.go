package usecase

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type FAQService interface {
	GetFAQs(ctx context.Context) ([]response.FAQResponse, error)
	CreateFAQ(ctx context.Context, req *request.FAQRequest) (*response.FAQResponse, error)
	UpdateFAQ(ctx context.Context, req *request.FAQUpdateRequest) (*response.FAQResponse, error)
	DeleteFAQ(ctx context.Context, id int64) error
}

type faqService struct {
	faqRepo repository.FAQRepository
	log     *zap.Logger
}

func NewFAQService(faqRepo repository.FAQRepository, log *zap.Logger) FAQService {
	return &faqService{
		faqRepo: faqRepo,
		log:     log.With(zap.String("service", "faq")),
	}
}

func (s *faqService) GetFAQs(ctx context.Context) ([]response.FAQResponse, error) {
	faqs, err := s.faqRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}

	resp := make([]response.FAQResponse, 0, len(faqs))
	for _, f := range faqs {
		resp = append(resp, response.FAQToResponse(f))
	}
	return resp, nil
}

func (s *faqService) CreateFAQ(ctx context.Context, req *request.FAQRequest) (*response.FAQResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create faq validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	faq := &entity.FAQ{Question: req.Question, Answer: req.Answer, Position: req.Position}
	if err := s.faqRepo.Create(ctx, faq); err != nil {
		return nil, fmt.Errorf("create faq: %w", err)
	}

	s.log.Info("FAQ created", zap.Int64("faq_id", faq.ID))
	resp := response.FAQToResponse(faq)
	return &resp, nil
}

func (s *faqService) UpdateFAQ(ctx context.Context, req *request.FAQUpdateRequest) (*response.FAQResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update faq validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	faq := &entity.FAQ{Question: req.Question, Answer: req.Answer, Position: req.Position}
	faq.ID = req.ID
	if err := s.faqRepo.Update(ctx, faq); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "faq %d not found", req.ID)
		}
		return nil, fmt.Errorf("update faq: %w", err)
	}

	resp := response.FAQToResponse(faq)
	return &resp, nil
}

func (s *faqService) DeleteFAQ(ctx context.Context, id int64) error {
	if err := s.faqRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrNotFound, "faq %d not found", id)
		}
		return fmt.Errorf("delete faq: %w", err)
	}
	return nil
}
