package request

import (
	"time"

	"cineapp/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Capacity *int   `json:"capacity" binding:"required,min=0,max=2147483647"`
}

func (r *CreateRoomRequest) ToCommand() commands.CreateRoomRequest {
	return commands.CreateRoomRequest{Name: r.Name, Capacity: *r.Capacity}
}

// Capacity is absent on purpose: it only moves through reservations.
type UpdateRoomRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ShowtimeRequest struct {
	MovieID  uuid.UUID `json:"movieId" binding:"required"`
	RoomID   uuid.UUID `json:"roomId" binding:"required"`
	StartsAt time.Time `json:"startsAt" binding:"required"`
}

func (r *ShowtimeRequest) ToCreateCommand() commands.CreateShowtimeRequest {
	return commands.CreateShowtimeRequest{MovieID: r.MovieID, RoomID: r.RoomID, StartsAt: r.StartsAt}
}

func (r *ShowtimeRequest) ToUpdateCommand() commands.UpdateShowtimeRequest {
	return commands.UpdateShowtimeRequest{MovieID: r.MovieID, RoomID: r.RoomID, StartsAt: r.StartsAt}
}

type ListShowtimesQuery struct {
	MovieID string `form:"movie_id"`
	RoomID  string `form:"room_id"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

type MovieRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Genre string `json:"genre" binding:"required,max=50"`
}

func (r *MovieRequest) ToCommand() commands.MovieRequest {
	return commands.MovieRequest{Title: r.Title, Genre: r.Genre}
}

type CustomerRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
}

func (r *CustomerRequest) ToCommand() commands.CustomerRequest {
	return commands.CustomerRequest{Name: r.Name, Email: r.Email}
}

type ListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
