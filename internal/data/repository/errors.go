package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientSpots = errors.New("not enough spots")
	ErrInvalidState      = errors.New("invalid state")
	ErrDuplicate         = errors.New("already exists")

	// Tour update refusals, both wrap ErrInvalidState
	ErrSpotsBelowBooked = fmt.Errorf("spots below booked travelers: %w", ErrInvalidState)
	ErrDateInUse        = fmt.Errorf("departure has active reservations: %w", ErrInvalidState)
)
