package queries

import (
	"context"
	"time"

	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, after *Cursor, limit int) (*Page[*ReservationView], error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// List returns rows ordered by (created_at, id) strictly after the
	// given position, or from the start when afterTime is nil.
	List(ctx context.Context, filter ReservationFilter, afterTime *time.Time, afterID *uuid.UUID, limit int) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markReadErr(err, shared.ErrReservationNotFound)
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter, after *Cursor, limit int) (*Page[*ReservationView], error) {
	limit = ValidateLimit(limit)

	var (
		afterTime *time.Time
		afterID   *uuid.UUID
	)
	if after != nil && after.After != "" {
		t, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, err
		}
		afterTime, afterID = &t, &id
	}

	// one extra row tells us whether another page exists
	rows, err := q.store.List(ctx, filter, afterTime, afterID, limit+1)
	if err != nil {
		return nil, markReadErr(err, shared.ErrReservationNotFound)
	}

	page := &Page[*ReservationView]{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.Next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return page, nil
}
