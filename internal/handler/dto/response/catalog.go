package response

import (
	"time"

	"cineapp/internal/usecase/queries"
)

type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:        v.ID.String(),
		Name:      v.Name,
		Capacity:  v.Capacity,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type AvailabilityResponse struct {
	RoomID   string `json:"roomId"`
	Capacity int    `json:"capacity"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{RoomID: v.RoomID.String(), Capacity: v.Capacity}
}

type ShowtimeResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movieId"`
	MovieTitle string    `json:"movieTitle"`
	RoomID     string    `json:"roomId"`
	RoomName   string    `json:"roomName"`
	StartsAt   time.Time `json:"startsAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromShowtimeView(v *queries.ShowtimeView) *ShowtimeResponse {
	return &ShowtimeResponse{
		ID:         v.ID.String(),
		MovieID:    v.MovieID.String(),
		MovieTitle: v.MovieTitle,
		RoomID:     v.RoomID.String(),
		RoomName:   v.RoomName,
		StartsAt:   v.StartsAt,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

type DeletableResponse struct {
	Deletable bool `json:"deletable"`
}

type MovieResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromMovieView(v *queries.MovieView) *MovieResponse {
	return &MovieResponse{
		ID:        v.ID.String(),
		Title:     v.Title,
		Genre:     v.Genre,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromCustomerView(v *queries.CustomerView) *CustomerResponse {
	return &CustomerResponse{
		ID:        v.ID.String(),
		Name:      v.Name,
		Email:     v.Email,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// mapSlice converts a list of views with the given mapper.
func mapSlice[V any, R any](views []V, fn func(V) R) []R {
	out := make([]R, len(views))
	for i, v := range views {
		out[i] = fn(v)
	}
	return out
}

func FromRoomViews(v []*queries.RoomView) []*RoomResponse { return mapSlice(v, FromRoomView) }

func FromShowtimeViews(v []*queries.ShowtimeView) []*ShowtimeResponse {
	return mapSlice(v, FromShowtimeView)
}

func FromMovieViews(v []*queries.MovieView) []*MovieResponse { return mapSlice(v, FromMovieView) }

func FromCustomerViews(v []*queries.CustomerView) []*CustomerResponse {
	return mapSlice(v, FromCustomerView)
}
