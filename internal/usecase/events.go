package usecase

import (
	"context"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/broker"

	"go.uber.org/zap"
)

const (
	EventReservationCreated  = "reservation.created"
	EventReservationApproved = "reservation.approved"
	EventReservationRejected = "reservation.rejected"
)

// ReservationEvent is published on every reservation status change.
type ReservationEvent struct {
	ReservationID int64                    `json:"reservationId"`
	TourID        int64                    `json:"tourId"`
	DateID        int64                    `json:"dateId"`
	Status        entity.ReservationStatus `json:"status"`
	Travelers     int                      `json:"travelers"`
	OccurredAt    time.Time                `json:"occurredAt"`
}

// publishEvent never fails the caller; a lost event is only logged.
func publishEvent(ctx context.Context, pub broker.Publisher, log *zap.Logger, key string, event ReservationEvent) {
	if err := pub.Publish(ctx, key, event); err != nil {
		log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", key),
			zap.Int64("reservation_id", event.ReservationID),
		)
	}
}
