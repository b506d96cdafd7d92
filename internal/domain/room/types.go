package room

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptyName            = errors.New("room name cannot be empty")
	ErrNameTooLong          = errors.New("room name exceeds maximum length")
	ErrNegativeCapacity     = errors.New("capacity cannot be negative")
	ErrCapacityOutOfRange   = errors.New("capacity exceeds the storable range")
	ErrNonPositiveSeats     = errors.New("seat count must be positive")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

// InsufficientCapacityError reports how many seats were left when a debit
// was refused.
type InsufficientCapacityError struct {
	RoomID    uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("room %s has %d seats left, %d requested", e.RoomID, e.Available, e.Requested)
}

func (e *InsufficientCapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}
