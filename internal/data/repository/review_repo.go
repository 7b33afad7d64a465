package repository

import (
	"context"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/database"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByTourID(ctx context.Context, tourID int64) ([]*entity.Review, error)
	Delete(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO tour_reviews (tour_id, user_id, author_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		review.TourID,
		review.UserID,
		review.AuthorName,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("tour_id", review.TourID),
		)
		return fmt.Errorf("create review for tour %d: %w", review.TourID, err)
	}

	return nil
}

func (r *reviewRepository) FindByTourID(ctx context.Context, tourID int64) ([]*entity.Review, error) {
	query := `
		SELECT id, tour_id, user_id, author_name, rating, comment, created_at
		FROM tour_reviews
		WHERE tour_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		r.log.Error("Failed to find reviews by tour", zap.Error(err), zap.Int64("tour_id", tourID))
		return nil, fmt.Errorf("find reviews of tour %d: %w", tourID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		if err := rows.Scan(
			&review.ID,
			&review.TourID,
			&review.UserID,
			&review.AuthorName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tour_reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.Int64("review_id", id))
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %d %w", id, ErrNotFound)
	}

	return nil
}
