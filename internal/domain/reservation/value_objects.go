package reservation

import "math"

// MaxSeatCount is the largest value the seat_count integer column can store.
// Room capacity is the only business limit on a reservation.
const MaxSeatCount = math.MaxInt32

type SeatCount struct {
	value int
}

func NewSeatCount(v int) (SeatCount, error) {
	if v <= 0 {
		return SeatCount{}, ErrNonPositiveSeatCount
	}
	if v > MaxSeatCount {
		return SeatCount{}, ErrSeatCountOutOfRange
	}
	return SeatCount{value: v}, nil
}

func (s SeatCount) Value() int { return s.value }
