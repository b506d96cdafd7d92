package queries

import (
	"context"
	"log/slog"

	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, limit int) ([]*RoomView, error)
	Availability(ctx context.Context, id uuid.UUID) (*AvailabilityView, error)
}

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, limit int) ([]*RoomView, error)
	CapacityOf(ctx context.Context, id uuid.UUID) (int, error)
}

type roomQueriesImpl struct {
	store  RoomReadStore
	cache  shared.AvailabilityCache
	logger *slog.Logger
}

func NewRoomQueries(store RoomReadStore, cache shared.AvailabilityCache, logger *slog.Logger) RoomQueries {
	return &roomQueriesImpl{store: store, cache: cache, logger: logger}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markReadErr(err, shared.ErrRoomNotFound)
	}
	return view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, limit int) ([]*RoomView, error) {
	rows, err := q.store.List(ctx, ValidateLimit(limit))
	if err != nil {
		return nil, markReadErr(err, shared.ErrRoomNotFound)
	}
	return rows, nil
}

// Availability is cache-aside. Cache errors only cost a database read.
func (q *roomQueriesImpl) Availability(ctx context.Context, id uuid.UUID) (*AvailabilityView, error) {
	capacity, ok, err := q.cache.Get(ctx, id)
	if err != nil {
		q.logger.Warn("availability cache read failed", "room_id", id.String(), "error", err.Error())
	}
	if ok {
		return &AvailabilityView{RoomID: id, Capacity: capacity, Cached: true}, nil
	}

	capacity, err = q.store.CapacityOf(ctx, id)
	if err != nil {
		return nil, markReadErr(err, shared.ErrRoomNotFound)
	}

	if err := q.cache.Set(ctx, id, capacity); err != nil {
		q.logger.Warn("availability cache write failed", "room_id", id.String(), "error", err.Error())
	}
	return &AvailabilityView{RoomID: id, Capacity: capacity}, nil
}
