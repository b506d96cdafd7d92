package reservation

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	id         uuid.UUID
	showtimeID uuid.UUID
	customerID uuid.UUID
	seatCount  SeatCount
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(showtimeID, customerID uuid.UUID, seats SeatCount, now time.Time) (*Reservation, error) {
	if showtimeID == uuid.Nil {
		return nil, ErrMissingShowtime
	}
	if customerID == uuid.Nil {
		return nil, ErrMissingCustomer
	}
	if seats.value <= 0 {
		return nil, ErrNonPositiveSeatCount
	}
	return &Reservation{
		id:         uuid.New(),
		showtimeID: showtimeID,
		customerID: customerID,
		seatCount:  seats,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReservation(id, showtimeID, customerID uuid.UUID, seatCount int, createdAt, updatedAt time.Time) *Reservation {
	return &Reservation{
		id:         id,
		showtimeID: showtimeID,
		customerID: customerID,
		seatCount:  SeatCount{value: seatCount},
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) ShowtimeID() uuid.UUID { return r.showtimeID }
func (r *Reservation) CustomerID() uuid.UUID { return r.customerID }
func (r *Reservation) SeatCount() SeatCount  { return r.seatCount }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }

// Reassign replaces showtime, customer and seat count in one step. Capacity
// bookkeeping for the change is the caller's job.
func (r *Reservation) Reassign(showtimeID, customerID uuid.UUID, seats SeatCount, now time.Time) error {
	if showtimeID == uuid.Nil {
		return ErrMissingShowtime
	}
	if customerID == uuid.Nil {
		return ErrMissingCustomer
	}
	if seats.value <= 0 {
		return ErrNonPositiveSeatCount
	}
	r.showtimeID = showtimeID
	r.customerID = customerID
	r.seatCount = seats
	r.updatedAt = now
	return nil
}
