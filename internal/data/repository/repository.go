package repository

import (
	"context"

	"travel-agency/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Tour        TourRepository
	Reservation ReservationRepository
	Review      ReviewRepository
	Blog        BlogRepository
	Contact     ContactRepository
	FAQ         FAQRepository
	Stats       StatsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Tour:        NewTourRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Review:      NewReviewRepository(db, log),
		Blog:        NewBlogRepository(db, log),
		Contact:     NewContactRepository(db, log),
		FAQ:         NewFAQRepository(db, log),
		Stats:       NewStatsRepository(db, log),
	}
}

// rollback is used on every failing step of a transaction; its own error
// is logged so it never hides the original failure.
func rollback(ctx context.Context, tx pgx.Tx, log *zap.Logger) {
	if err := tx.Rollback(ctx); err != nil {
		log.Warn("Rollback failed", zap.Error(err))
	}
}
