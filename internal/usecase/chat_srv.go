package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/genai"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

const chatContextTours = 20

// ChatModel generates replies for the assistant. *genai.Client implements it.
type ChatModel interface {
	Enabled() bool
	Generate(ctx context.Context, system string, turns []genai.Turn) (string, error)
}

type ChatService interface {
	Ask(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error)
}

type chatService struct {
	repo    *repository.Repository
	model   ChatModel
	appName string
	log     *zap.Logger
}

func NewChatService(repo *repository.Repository, model ChatModel, appName string, log *zap.Logger) ChatService {
	return &chatService{
		repo:    repo,
		model:   model,
		appName: appName,
		log:     log.With(zap.String("service", "chat")),
	}
}

func (s *chatService) Ask(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, newError(ErrValidation, "validation failed: message: This field is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if !s.model.Enabled() {
		return nil, newError(ErrUnavailable, "chat assistant unavailable")
	}

	system, err := s.systemPrompt(ctx)
	if err != nil {
		return nil, err
	}

	turns := make([]genai.Turn, 0, len(req.History)+1)
	for _, h := range req.History {
		turns = append(turns, genai.Turn{Role: h.Role, Text: h.Text})
	}
	turns = append(turns, genai.Turn{Role: "user", Text: message})

	reply, err := s.model.Generate(ctx, system, turns)
	if err != nil {
		if errors.Is(err, genai.ErrNoAPIKey) {
			return nil, newError(ErrUnavailable, "chat assistant unavailable")
		}
		s.log.Error("Chat model call failed", zap.Error(err))
		return nil, newError(ErrUpstream, "chat assistant failed to answer")
	}

	return &response.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

// systemPrompt describes the catalogue and the FAQ so answers stay on topic.
func (s *chatService) systemPrompt(ctx context.Context) (string, error) {
	tours, err := s.repo.Tour.Search(ctx, repository.TourFilter{Sort: repository.SortDateAsc, Limit: chatContextTours})
	if err != nil {
		return "", fmt.Errorf("load tours for chat: %w", err)
	}
	faqs, err := s.repo.FAQ.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load faqs for chat: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are the travel assistant of %s. Answer briefly and only about our tours, bookings and travel advice. "+
		"If you do not know, suggest contacting the agency.\n\nTours:\n", s.appName)
	for _, t := range tours {
		fmt.Fprintf(&sb, "- %s (%s, %d days", t.Title, t.Type, t.DurationDays)
		if t.MinPrice != nil {
			fmt.Fprintf(&sb, ", from %.2f", *t.MinPrice)
		}
		if t.NextDate != nil {
			fmt.Fprintf(&sb, ", next departure %s", t.NextDate.Format(utils.DateLayout))
		}
		fmt.Fprintf(&sb, "): %s\n", strings.Join(t.Places, ", "))
	}

	if len(faqs) > 0 {
		sb.WriteString("\nFrequently asked questions:\n")
		for _, f := range faqs {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", f.Question, f.Answer)
		}
	}

	return sb.String(), nil
}
