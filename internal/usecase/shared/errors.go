package shared

import "cineapp/internal/pkg/errs"

// Use-case level error kinds. Handlers map these to transport codes; callers
// should compare with errs.Is since most are attached with errs.Mark.
var (
	ErrValidation = errs.New("validation failed")

	ErrShowtimeNotFound    = errs.New("showtime not found")
	ErrRoomNotFound        = errs.New("room not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrCustomerNotFound    = errs.New("customer not found")
	ErrMovieNotFound       = errs.New("movie not found")

	ErrInsufficientCapacity = errs.New("insufficient capacity")

	ErrShowtimeHasReservations = errs.New("showtime has reservations")
	ErrInUse                   = errs.New("entity is still referenced")
	ErrDuplicateEmail          = errs.New("email already registered")
	ErrIdempotencyKeyReused    = errs.New("idempotency key reused with different request")
	ErrIdempotencyInProgress   = errs.New("idempotency key in progress")

	// ErrOrphanedReference is added next to a NotFound kind when the missing
	// row was referenced by data that should have kept it alive.
	ErrOrphanedReference = errs.New("orphaned reference")

	ErrStorage = errs.New("storage operation failed")
)
