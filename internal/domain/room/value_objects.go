package room

import (
	"math"
	"strings"
)

const MaxNameLength = 100

// MaxCapacity is the largest value the capacity integer column can store.
const MaxCapacity = math.MaxInt32

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Name{}, ErrEmptyName
	}
	if len(t) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: t}, nil
}

func (n Name) String() string { return n.value }

// Capacity is the number of unreserved seats left in a room.
type Capacity struct {
	seats int
}

func NewCapacity(seats int) (Capacity, error) {
	if seats < 0 {
		return Capacity{}, ErrNegativeCapacity
	}
	if seats > MaxCapacity {
		return Capacity{}, ErrCapacityOutOfRange
	}
	return Capacity{seats: seats}, nil
}

func (c Capacity) Seats() int { return c.seats }

func (c Capacity) CanHold(seats int) bool { return c.seats >= seats }
