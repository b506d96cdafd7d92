//go:build unit || e2e

package builder

import (
	"time"

	domreservation "cineapp/internal/domain/reservation"
	reqdto "cineapp/internal/handler/dto/request"
	"cineapp/internal/pkg/ptr"
	"cineapp/internal/usecase/commands"
	"cineapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ShowtimeID uuid.UUID
	CustomerID uuid.UUID
	RoomID     uuid.UUID
	SeatCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ShowtimeID: uuid.New(),
		CustomerID: uuid.New(),
		RoomID:     uuid.New(),
		SeatCount:  2,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithShowtime(id uuid.UUID) *ReservationBuilder {
	r.ShowtimeID = id
	return r
}

func (r *ReservationBuilder) WithCustomer(id uuid.UUID) *ReservationBuilder {
	r.CustomerID = id
	return r
}

func (r *ReservationBuilder) WithSeats(n int) *ReservationBuilder {
	r.SeatCount = n
	return r
}

// Build methods
func (r *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	seats, err := domreservation.NewSeatCount(r.SeatCount)
	if err != nil {
		return nil, err
	}
	return domreservation.NewReservation(r.ShowtimeID, r.CustomerID, seats, r.CreatedAt)
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ShowtimeID: r.ShowtimeID,
		CustomerID: r.CustomerID,
		SeatCount:  ptr.To(r.SeatCount),
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	return reqdto.UpdateReservationRequest{
		ShowtimeID: r.ShowtimeID,
		CustomerID: r.CustomerID,
		SeatCount:  ptr.To(r.SeatCount),
	}
}

func (r *ReservationBuilder) BuildCreateCommand() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{
		ShowtimeID: r.ShowtimeID,
		CustomerID: r.CustomerID,
		SeatCount:  r.SeatCount,
	}
}

func (r *ReservationBuilder) BuildUpdateCommand() commands.UpdateReservationRequest {
	return commands.UpdateReservationRequest{
		ShowtimeID: r.ShowtimeID,
		CustomerID: r.CustomerID,
		SeatCount:  r.SeatCount,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:         uuid.New(),
		ShowtimeID: r.ShowtimeID,
		RoomID:     r.RoomID,
		CustomerID: r.CustomerID,
		SeatCount:  r.SeatCount,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
