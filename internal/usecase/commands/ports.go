package commands

import (
	"time"

	"cineapp/internal/usecase/queries"

	"github.com/google/uuid"
)

// Inputs are plain values so the write side does not depend on transport DTOs.

type CreateReservationRequest struct {
	ShowtimeID uuid.UUID
	CustomerID uuid.UUID
	SeatCount  int
}

type UpdateReservationRequest struct {
	ShowtimeID uuid.UUID
	CustomerID uuid.UUID
	SeatCount  int
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type CreateShowtimeRequest struct {
	MovieID  uuid.UUID
	RoomID   uuid.UUID
	StartsAt time.Time
}

type UpdateShowtimeRequest struct {
	MovieID  uuid.UUID
	RoomID   uuid.UUID
	StartsAt time.Time
}

type CreateRoomRequest struct {
	Name     string
	Capacity int
}

type MovieRequest struct {
	Title string
	Genre string
}

type CustomerRequest struct {
	Name  string
	Email string
}
