package reservation

import "errors"

var (
	ErrNonPositiveSeatCount = errors.New("seat count must be a positive integer")
	ErrSeatCountOutOfRange  = errors.New("seat count exceeds the storable range")
	ErrMissingShowtime      = errors.New("showtime id is required")
	ErrMissingCustomer      = errors.New("customer id is required")
)
