package shared

import (
	"context"
	"time"

	"cineapp/internal/domain/customer"
	"cineapp/internal/domain/movie"
	"cineapp/internal/domain/reservation"
	"cineapp/internal/domain/room"
	"cineapp/internal/domain/showtime"

	"github.com/google/uuid"
)

// UnitOfWork runs write-side work in one transaction. Reads go through the
// query readstores, which each issue a single statement.
type UnitOfWork interface {
	// Within retries fn on serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one open transaction. Every ...ForUpdate
// method takes a row lock that is held until the transaction ends.
type Tx interface {
	Rooms() RoomRepository
	Showtimes() ShowtimeRepository
	Reservations() ReservationRepository
	Movies() MovieRepository
	Customers() CustomerRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error)
	SaveCapacity(ctx context.Context, r *room.Room) error
	UpdateName(ctx context.Context, r *room.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ShowtimeRepository interface {
	Create(ctx context.Context, s *showtime.Showtime) error
	// ResolveRoom returns the room of a showtime and holds a share lock on the
	// showtime row so it cannot be deleted or moved concurrently.
	ResolveRoom(ctx context.Context, showtimeID uuid.UUID) (uuid.UUID, error)
	FindForUpdate(ctx context.Context, id uuid.UUID) (*showtime.Showtime, error)
	Update(ctx context.Context, s *showtime.Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByShowtime(ctx context.Context, showtimeID uuid.UUID) (int, error)
	SumSeatsByShowtime(ctx context.Context, showtimeID uuid.UUID) (int, error)
}

type MovieRepository interface {
	Create(ctx context.Context, m *movie.Movie) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*movie.Movie, error)
	Update(ctx context.Context, m *movie.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CustomerRepository interface {
	Create(ctx context.Context, c *customer.Customer) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	Update(ctx context.Context, c *customer.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists.
	TryInsert(ctx context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key uuid.UUID, endpoint string) (*IdempotencyRecord, error)
	ClaimExpired(ctx context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (int64, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, endpoint string, reservationID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
	// ClaimDue locks up to limit queued jobs, skipping rows held by another relay.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkFailedAttempt(ctx context.Context, id uuid.UUID, lastError string, nextRunAt time.Time, giveUp bool) error
}
