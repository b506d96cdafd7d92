package response

import (
	"time"

	"cineapp/internal/usecase/queries"
)

type ReservationResponse struct {
	ID         string    `json:"id"`
	ShowtimeID string    `json:"showtimeId"`
	RoomID     string    `json:"roomId"`
	CustomerID string    `json:"customerId"`
	SeatCount  int       `json:"seatCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:         v.ID.String(),
		ShowtimeID: v.ShowtimeID.String(),
		RoomID:     v.RoomID.String(),
		CustomerID: v.CustomerID.String(),
		SeatCount:  v.SeatCount,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

type ReservationListResponse struct {
	Items     []*ReservationResponse `json:"items"`
	NextAfter *string                `json:"nextAfter,omitempty"`
}

func FromReservationPage(p *queries.Page[*queries.ReservationView]) *ReservationListResponse {
	items := make([]*ReservationResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromReservationView(v)
	}
	res := &ReservationListResponse{Items: items}
	if p.Next != nil {
		res.NextAfter = &p.Next.After
	}
	return res
}
