package usecase

import (
	"context"
	"errors"
	"testing"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/pkg/genai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatTestService(model *fakeChatModel) ChatService {
	repo := &repository.Repository{
		Tour: &fakeTourRepo{summary: []*entity.TourSummary{{
			Tour:     entity.Tour{Title: "Sahara Nights", Type: entity.TourTypeDesert, DurationDays: 4, Places: []string{"Merzouga"}},
			MinPrice: ptr(800.0),
		}}},
		FAQ: &fakeFAQRepo{faqs: []*entity.FAQ{{Question: "Do I need a visa?", Answer: "Usually not."}}},
	}
	return NewChatService(repo, model, "Atlas Travel", nop)
}

func TestAsk(t *testing.T) {
	model := &fakeChatModel{enabled: true, reply: "  Merzouga is lovely in April.  "}
	svc := newChatTestService(model)

	got, err := svc.Ask(context.Background(), &request.ChatRequest{
		Message: "When should I go to the desert?",
		History: []request.ChatTurn{{Role: "user", Text: "Hi"}, {Role: "model", Text: "Hello!"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Merzouga is lovely in April.", got.Reply)

	assert.Contains(t, model.system, "Atlas Travel")
	assert.Contains(t, model.system, "Sahara Nights (Desert, 4 days, from 800.00): Merzouga")
	assert.Contains(t, model.system, "Do I need a visa?")
	require.Len(t, model.turns, 3)
	assert.Equal(t, genai.Turn{Role: "user", Text: "When should I go to the desert?"}, model.turns[2])
}

func TestAskErrors(t *testing.T) {
	tests := []struct {
		name    string
		model   *fakeChatModel
		req     request.ChatRequest
		wantErr error
	}{
		{"empty message", &fakeChatModel{enabled: true}, request.ChatRequest{Message: "   "}, ErrValidation},
		{"bad history role", &fakeChatModel{enabled: true}, request.ChatRequest{Message: "hi", History: []request.ChatTurn{{Role: "system", Text: "x"}}}, ErrValidation},
		{"no api key", &fakeChatModel{}, request.ChatRequest{Message: "hi"}, ErrUnavailable},
		{"upstream error", &fakeChatModel{enabled: true, err: errors.New("quota exceeded")}, request.ChatRequest{Message: "hi"}, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newChatTestService(tt.model).Ask(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
