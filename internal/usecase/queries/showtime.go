package queries

import (
	"context"

	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

type ShowtimeQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ShowtimeView, error)
	List(ctx context.Context, filter ShowtimeFilter, limit int) ([]*ShowtimeView, error)
	// CanDeleteShowtime is true only when no reservation references the showtime.
	CanDeleteShowtime(ctx context.Context, id uuid.UUID) (bool, error)
}

type ShowtimeReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShowtimeView, error)
	List(ctx context.Context, filter ShowtimeFilter, limit int) ([]*ShowtimeView, error)
	// ReservationCount fails with a not-found error when the showtime is absent.
	ReservationCount(ctx context.Context, id uuid.UUID) (int, error)
}

type showtimeQueriesImpl struct {
	store ShowtimeReadStore
}

func NewShowtimeQueries(store ShowtimeReadStore) ShowtimeQueries {
	return &showtimeQueriesImpl{store: store}
}

func (q *showtimeQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ShowtimeView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markReadErr(err, shared.ErrShowtimeNotFound)
	}
	return view, nil
}

func (q *showtimeQueriesImpl) List(ctx context.Context, filter ShowtimeFilter, limit int) ([]*ShowtimeView, error) {
	rows, err := q.store.List(ctx, filter, ValidateLimit(limit))
	if err != nil {
		return nil, markReadErr(err, shared.ErrShowtimeNotFound)
	}
	return rows, nil
}

func (q *showtimeQueriesImpl) CanDeleteShowtime(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := q.store.ReservationCount(ctx, id)
	if err != nil {
		return false, markReadErr(err, shared.ErrShowtimeNotFound)
	}
	return n == 0, nil
}
