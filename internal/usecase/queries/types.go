package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID         uuid.UUID `json:"id"`
	ShowtimeID uuid.UUID `json:"showtime_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	SeatCount  int       `json:"seat_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityView struct {
	RoomID   uuid.UUID `json:"room_id"`
	Capacity int       `json:"capacity"`
	Cached   bool      `json:"-"`
}

type ShowtimeView struct {
	ID         uuid.UUID `json:"id"`
	MovieID    uuid.UUID `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	RoomID     uuid.UUID `json:"room_id"`
	RoomName   string    `json:"room_name"`
	StartsAt   time.Time `json:"starts_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MovieView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CustomerView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Nil fields mean "no filter".
type ReservationFilter struct {
	ShowtimeID *uuid.UUID
	CustomerID *uuid.UUID
}

type ShowtimeFilter struct {
	MovieID *uuid.UUID
	RoomID  *uuid.UUID
}
