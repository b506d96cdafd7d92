package request

import (
	"cineapp/internal/usecase/commands"

	"github.com/google/uuid"
)

// SeatCount only gets an upper bound here, the int4 column range. Zero and
// negatives reach the domain and surface as the usual validation error.
type CreateReservationRequest struct {
	ShowtimeID uuid.UUID `json:"showtimeId" binding:"required"`
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	SeatCount  *int      `json:"seatCount" binding:"required,max=2147483647"`
}

func (r *CreateReservationRequest) ToCommand() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{
		ShowtimeID: r.ShowtimeID,
		CustomerID: r.CustomerID,
		SeatCount:  *r.SeatCount,
	}
}

type UpdateReservationRequest struct {
	ShowtimeID uuid.UUID `json:"showtimeId" binding:"required"`
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	SeatCount  *int      `json:"seatCount" binding:"required,max=2147483647"`
}

func (r *UpdateReservationRequest) ToCommand() commands.UpdateReservationRequest {
	return commands.UpdateReservationRequest{
		ShowtimeID: r.ShowtimeID,
		CustomerID: r.CustomerID,
		SeatCount:  *r.SeatCount,
	}
}

type ListReservationsQuery struct {
	ShowtimeID string `form:"showtime_id"`
	CustomerID string `form:"customer_id"`
	After      string `form:"after"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
