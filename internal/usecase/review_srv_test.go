package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deletingReviewRepo struct {
	fakeReviewRepo
	deleteErr error
}

func (r *deletingReviewRepo) Delete(context.Context, int64) error {
	return r.deleteErr
}

func TestCreateReview(t *testing.T) {
	reviews := &fakeReviewRepo{}
	svc := NewReviewService(&repository.Repository{
		Tour:   &fakeTourRepo{tours: map[int64]*entity.TourAggregate{3: {}}},
		Review: reviews,
	}, nop)
	customer := utils.Principal{Kind: utils.PrincipalCustomer, UserID: 42, Name: "Amina"}

	resp, err := svc.CreateReview(context.Background(), customer, &request.CreateReviewRequest{
		TourID: 3, Rating: 5, Comment: "  Unforgettable dunes ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina", resp.AuthorName)
	assert.Equal(t, "Unforgettable dunes", resp.Comment)
	require.Len(t, reviews.reviews, 1)
	require.NotNil(t, reviews.reviews[0].UserID)
	assert.Equal(t, int64(42), *reviews.reviews[0].UserID)

	resp, err = svc.CreateReview(context.Background(), customer, &request.CreateReviewRequest{
		TourID: 3, Rating: 4, Comment: "Good", AuthorName: "A. B.",
	})
	require.NoError(t, err)
	assert.Equal(t, "A. B.", resp.AuthorName)
}

func TestCreateReviewErrors(t *testing.T) {
	svc := NewReviewService(&repository.Repository{
		Tour:   &fakeTourRepo{tours: map[int64]*entity.TourAggregate{}},
		Review: &fakeReviewRepo{},
	}, nop)
	customer := utils.Principal{Kind: utils.PrincipalCustomer, UserID: 42, Name: "Amina"}

	_, err := svc.CreateReview(context.Background(), customer, &request.CreateReviewRequest{TourID: 3, Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReview(context.Background(), customer, &request.CreateReviewRequest{TourID: 3, Rating: 5, Comment: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReview(t *testing.T) {
	repo := &deletingReviewRepo{}
	svc := NewReviewService(&repository.Repository{Review: repo}, nop)

	assert.NoError(t, svc.DeleteReview(context.Background(), 1))

	repo.deleteErr = fmt.Errorf("review 1 %w", repository.ErrNotFound)
	err := svc.DeleteReview(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "review 1 not found")

	repo.deleteErr = errors.New("connection reset")
	err = svc.DeleteReview(context.Background(), 1)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "delete review")
}
