package commands

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"time"

	"cineapp/internal/domain/room"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

// lockRooms takes the row lock of every distinct room in ascending id order,
// so two transactions touching the same pair of rooms always queue in the
// same order. onMissing decides the error for a room that does not exist.
func lockRooms(
	ctx context.Context,
	tx shared.Tx,
	onMissing func(id uuid.UUID, err error) error,
	ids ...uuid.UUID,
) (map[uuid.UUID]*room.Room, error) {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ordered = slices.Compact(ordered)

	locked := make(map[uuid.UUID]*room.Room, len(ordered))
	for _, id := range ordered {
		rm, err := tx.Rooms().FindForUpdate(ctx, id)
		if err != nil {
			return nil, onMissing(id, err)
		}
		locked[id] = rm
	}
	return locked, nil
}

// reserveSeats debits a locked room, translating a refusal into the
// use-case kind while keeping the *room.InsufficientCapacityError reachable.
func reserveSeats(rm *room.Room, seats int, now time.Time) error {
	if err := rm.Reserve(seats, now); err != nil {
		var capErr *room.InsufficientCapacityError
		if errs.As(err, &capErr) {
			return errs.Mark(err, shared.ErrInsufficientCapacity)
		}
		return validationErr(err)
	}
	return nil
}

func releaseSeats(rm *room.Room, seats int, now time.Time) error {
	if err := rm.Release(seats, now); err != nil {
		return validationErr(err)
	}
	return nil
}

// saveRooms persists the counters of every room passed in, in lock order.
func saveRooms(ctx context.Context, tx shared.Tx, rooms map[uuid.UUID]*room.Room) error {
	ids := make([]uuid.UUID, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	for _, id := range ids {
		if err := tx.Rooms().SaveCapacity(ctx, rooms[id]); err != nil {
			return storageErr(err)
		}
	}
	return nil
}

func roomIDs(rooms map[uuid.UUID]*room.Room) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	return ids
}

// invalidateRooms drops cached availability after a commit. A failure only
// leaves a stale entry until its TTL runs out.
func invalidateRooms(ctx context.Context, cache shared.AvailabilityCache, logger *slog.Logger, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	if err := cache.Invalidate(context.WithoutCancel(ctx), ids...); err != nil {
		logger.Warn("availability cache invalidation failed", "rooms", len(ids), "error", err.Error())
	}
}
