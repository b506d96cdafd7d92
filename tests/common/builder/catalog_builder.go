//go:build unit || e2e

package builder

import (
	"time"

	reqdto "cineapp/internal/handler/dto/request"
	"cineapp/internal/pkg/ptr"
	"cineapp/internal/usecase/commands"
	"cineapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	Name     string
	Capacity int
	Now      time.Time
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		Name:     "Screen 1",
		Capacity: 20,
		Now:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{Name: r.Name, Capacity: ptr.To(r.Capacity)}
}

func (r *RoomBuilder) BuildCreateCommand() commands.CreateRoomRequest {
	return commands.CreateRoomRequest{Name: r.Name, Capacity: r.Capacity}
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:        uuid.New(),
		Name:      r.Name,
		Capacity:  r.Capacity,
		CreatedAt: r.Now,
		UpdatedAt: r.Now,
	}
}

type ShowtimeBuilder struct {
	MovieID    uuid.UUID
	MovieTitle string
	RoomID     uuid.UUID
	RoomName   string
	StartsAt   time.Time
	Now        time.Time
}

func NewShowtimeBuilder() *ShowtimeBuilder {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ShowtimeBuilder{
		MovieID:    uuid.New(),
		MovieTitle: "Test Movie",
		RoomID:     uuid.New(),
		RoomName:   "Screen 1",
		StartsAt:   now.Add(48 * time.Hour),
		Now:        now,
	}
}

func (s *ShowtimeBuilder) With(mutate func(*ShowtimeBuilder)) *ShowtimeBuilder {
	mutate(s)
	return s
}

func (s *ShowtimeBuilder) BuildRequestDTO() reqdto.ShowtimeRequest {
	return reqdto.ShowtimeRequest{MovieID: s.MovieID, RoomID: s.RoomID, StartsAt: s.StartsAt}
}

func (s *ShowtimeBuilder) BuildCreateCommand() commands.CreateShowtimeRequest {
	return commands.CreateShowtimeRequest{MovieID: s.MovieID, RoomID: s.RoomID, StartsAt: s.StartsAt}
}

func (s *ShowtimeBuilder) BuildUpdateCommand() commands.UpdateShowtimeRequest {
	return commands.UpdateShowtimeRequest{MovieID: s.MovieID, RoomID: s.RoomID, StartsAt: s.StartsAt}
}

func (s *ShowtimeBuilder) BuildView() *queries.ShowtimeView {
	return &queries.ShowtimeView{
		ID:         uuid.New(),
		MovieID:    s.MovieID,
		MovieTitle: s.MovieTitle,
		RoomID:     s.RoomID,
		RoomName:   s.RoomName,
		StartsAt:   s.StartsAt,
		CreatedAt:  s.Now,
		UpdatedAt:  s.Now,
	}
}
