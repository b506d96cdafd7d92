package room

import (
	"time"

	"github.com/google/uuid"
)

// Room owns the remaining-capacity counter. The counter only moves through
// Reserve and Release so it can never drop below zero.
type Room struct {
	id        uuid.UUID
	name      Name
	capacity  Capacity
	createdAt time.Time
	updatedAt time.Time
}

func NewRoom(name string, capacity int, now time.Time) (*Room, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	c, err := NewCapacity(capacity)
	if err != nil {
		return nil, err
	}
	return &Room{
		id:        uuid.New(),
		name:      n,
		capacity:  c,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructRoom(id uuid.UUID, name string, capacity int, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:        id,
		name:      Name{value: name},
		capacity:  Capacity{seats: capacity},
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() Name           { return r.name }
func (r *Room) Capacity() Capacity   { return r.capacity }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

// Reserve takes seats out of the room. The room is left untouched when it
// cannot hold them.
func (r *Room) Reserve(seats int, now time.Time) error {
	if seats <= 0 {
		return ErrNonPositiveSeats
	}
	if !r.capacity.CanHold(seats) {
		return &InsufficientCapacityError{
			RoomID:    r.id,
			Requested: seats,
			Available: r.capacity.seats,
		}
	}
	r.capacity = Capacity{seats: r.capacity.seats - seats}
	r.updatedAt = now
	return nil
}

// Release returns seats previously taken by Reserve.
func (r *Room) Release(seats int, now time.Time) error {
	if seats <= 0 {
		return ErrNonPositiveSeats
	}
	r.capacity = Capacity{seats: r.capacity.seats + seats}
	r.updatedAt = now
	return nil
}

func (r *Room) Rename(name string, now time.Time) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}
	r.name = n
	r.updatedAt = now
	return nil
}
