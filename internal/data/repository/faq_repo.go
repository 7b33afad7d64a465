package repository

import (
	"context"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/database"

	"go.uber.org/zap"
)

type FAQRepository interface {
	Create(ctx context.Context, faq *entity.FAQ) error
	FindAll(ctx context.Context) ([]*entity.FAQ, error)
	Update(ctx context.Context, faq *entity.FAQ) error
	Delete(ctx context.Context, id int64) error
}

type faqRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFAQRepository(db database.PgxIface, log *zap.Logger) FAQRepository {
	return &faqRepository{
		db:  db,
		log: log.With(zap.String("repository", "faq")),
	}
}

func (r *faqRepository) Create(ctx context.Context, faq *entity.FAQ) error {
	query := `
		INSERT INTO faqs (question, answer, position)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRow(ctx, query, faq.Question, faq.Answer, faq.Position).Scan(&faq.ID, &faq.CreatedAt); err != nil {
		r.log.Error("Failed to create faq", zap.Error(err))
		return fmt.Errorf("create faq: %w", err)
	}
	return nil
}

func (r *faqRepository) FindAll(ctx context.Context) ([]*entity.FAQ, error) {
	rows, err := r.db.Query(ctx, `SELECT id, question, answer, position, created_at FROM faqs ORDER BY position, id`)
	if err != nil {
		r.log.Error("Failed to list faqs", zap.Error(err))
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()

	var faqs []*entity.FAQ
	for rows.Next() {
		var faq entity.FAQ
		if err := rows.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.Position, &faq.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan faq row: %w", err)
		}
		faqs = append(faqs, &faq)
	}

	return faqs, rows.Err()
}

func (r *faqRepository) Update(ctx context.Context, faq *entity.FAQ) error {
	result, err := r.db.Exec(ctx,
		`UPDATE faqs SET question = $2, answer = $3, position = $4 WHERE id = $1`,
		faq.ID, faq.Question, faq.Answer, faq.Position)
	if err != nil {
		r.log.Error("Failed to update faq", zap.Error(err), zap.Int64("faq_id", faq.ID))
		return fmt.Errorf("update faq %d: %w", faq.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("faq %d %w", faq.ID, ErrNotFound)
	}
	return nil
}

func (r *faqRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete faq", zap.Error(err), zap.Int64("faq_id", id))
		return fmt.Errorf("delete faq %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("faq %d %w", id, ErrNotFound)
	}
	return nil
}
