package commands

import (
	"context"
	"log/slog"

	"cineapp/internal/domain/showtime"
	"cineapp/internal/infra"
	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

var showtimeParents = map[string]error{
	"showtimes_movie_id_fkey": shared.ErrMovieNotFound,
	"showtimes_room_id_fkey":  shared.ErrRoomNotFound,
}

type ShowtimeCommands interface {
	Create(ctx context.Context, req CreateShowtimeRequest) (*queries.ShowtimeView, error)
	// Update moves already sold seats along when the room changes.
	Update(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*queries.ShowtimeView, error)
	// Delete refuses while any reservation references the showtime.
	Delete(ctx context.Context, id uuid.UUID) error
}

type showtimeCommandsImpl struct {
	uow             shared.UnitOfWork
	cache           shared.AvailabilityCache
	showtimeQueries queries.ShowtimeQueries
	clock           clock.Clock
	logger          *slog.Logger
}

func NewShowtimeCommands(
	uow shared.UnitOfWork,
	cache shared.AvailabilityCache,
	showtimeQueries queries.ShowtimeQueries,
	clock clock.Clock,
	logger *slog.Logger,
) ShowtimeCommands {
	return &showtimeCommandsImpl{
		uow:             uow,
		cache:           cache,
		showtimeQueries: showtimeQueries,
		clock:           clock,
		logger:          logger,
	}
}

func (c *showtimeCommandsImpl) Create(ctx context.Context, req CreateShowtimeRequest) (*queries.ShowtimeView, error) {
	st, err := showtime.NewShowtime(req.MovieID, req.RoomID, req.StartsAt, c.clock.Now())
	if err != nil {
		return nil, validationErr(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Showtimes().Create(ctx, st); err != nil {
			if fkErr := foreignKeyErr(err, showtimeParents); fkErr != nil {
				return fkErr
			}
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: the view carries movie title and room name
	return c.showtimeQueries.GetByID(ctx, st.ID())
}

func (c *showtimeCommandsImpl) Update(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*queries.ShowtimeView, error) {
	var touched []uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		touched = nil
		now := c.clock.Now()

		st, err := tx.Showtimes().FindForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, shared.ErrShowtimeNotFound)
		}

		oldRoom := st.RoomID()
		roomChanged, err := st.Reschedule(req.MovieID, req.RoomID, req.StartsAt, now)
		if err != nil {
			return validationErr(err)
		}

		if roomChanged {
			sold, err := tx.Reservations().SumSeatsByShowtime(ctx, id)
			if err != nil {
				return storageErr(err)
			}
			if sold > 0 {
				if err := c.moveSeats(ctx, tx, oldRoom, st.RoomID(), sold); err != nil {
					return err
				}
				touched = []uuid.UUID{oldRoom, st.RoomID()}
			}
		}

		if err := tx.Showtimes().Update(ctx, st); err != nil {
			if fkErr := foreignKeyErr(err, showtimeParents); fkErr != nil {
				return fkErr
			}
			return notFoundOr(err, shared.ErrShowtimeNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateRooms(ctx, c.cache, c.logger, touched...)
	return c.showtimeQueries.GetByID(ctx, id)
}

// moveSeats credits the old room and debits the new one with the seats sold
// for a showtime. Both rooms are locked before either counter changes.
func (c *showtimeCommandsImpl) moveSeats(ctx context.Context, tx shared.Tx, from, to uuid.UUID, seats int) error {
	rooms, err := lockRooms(ctx, tx, func(roomID uuid.UUID, err error) error {
		if roomID == from {
			return orphanedErr(c.logger, err, shared.ErrRoomNotFound, "showtime.room_id", roomID)
		}
		return notFoundOr(err, shared.ErrRoomNotFound)
	}, from, to)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	if err := releaseSeats(rooms[from], seats, now); err != nil {
		return err
	}
	if err := reserveSeats(rooms[to], seats, now); err != nil {
		return err
	}
	return saveRooms(ctx, tx, rooms)
}

func (c *showtimeCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Showtimes().FindForUpdate(ctx, id); err != nil {
			return notFoundOr(err, shared.ErrShowtimeNotFound)
		}

		n, err := tx.Reservations().CountByShowtime(ctx, id)
		if err != nil {
			return storageErr(err)
		}
		if n > 0 {
			return errs.Wrapf(shared.ErrShowtimeHasReservations, "showtime %s has %d reservations", id, n)
		}

		if err := tx.Showtimes().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, shared.ErrShowtimeHasReservations)
			}
			return notFoundOr(err, shared.ErrShowtimeNotFound)
		}
		return nil
	})
}
