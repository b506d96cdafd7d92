package commands

import (
	"context"
	"log/slog"

	"cineapp/internal/domain/room"
	"cineapp/internal/infra"
	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

// RoomCommands never sets capacity after creation. Seat movements go through
// ReservationCommands and ShowtimeCommands only.
type RoomCommands interface {
	Create(ctx context.Context, req CreateRoomRequest) (*queries.RoomView, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*queries.RoomView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	uow    shared.UnitOfWork
	cache  shared.AvailabilityCache
	clock  clock.Clock
	logger *slog.Logger
}

func NewRoomCommands(uow shared.UnitOfWork, cache shared.AvailabilityCache, clock clock.Clock, logger *slog.Logger) RoomCommands {
	return &roomCommandsImpl{uow: uow, cache: cache, clock: clock, logger: logger}
}

func (c *roomCommandsImpl) Create(ctx context.Context, req CreateRoomRequest) (*queries.RoomView, error) {
	rm, err := room.NewRoom(req.Name, req.Capacity, c.clock.Now())
	if err != nil {
		return nil, validationErr(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return storageErr(tx.Rooms().Create(ctx, rm))
	})
	if err != nil {
		return nil, err
	}
	return toRoomView(rm), nil
}

func (c *roomCommandsImpl) Rename(ctx context.Context, id uuid.UUID, name string) (*queries.RoomView, error) {
	var view *queries.RoomView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := tx.Rooms().FindForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, shared.ErrRoomNotFound)
		}
		if err := rm.Rename(name, c.clock.Now()); err != nil {
			return validationErr(err)
		}
		if err := tx.Rooms().UpdateName(ctx, rm); err != nil {
			return notFoundOr(err, shared.ErrRoomNotFound)
		}
		view = toRoomView(rm)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *roomCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Rooms().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, shared.ErrInUse)
			}
			return notFoundOr(err, shared.ErrRoomNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateRooms(ctx, c.cache, c.logger, id)
	return nil
}

func toRoomView(rm *room.Room) *queries.RoomView {
	return &queries.RoomView{
		ID:        rm.ID(),
		Name:      rm.Name().String(),
		Capacity:  rm.Capacity().Seats(),
		CreatedAt: rm.CreatedAt(),
		UpdatedAt: rm.UpdatedAt(),
	}
}
