package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"cineapp/internal/domain/reservation"
	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/config"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

const createReservationEndpoint = "POST /reservations"

const (
	reservationShowtimeFK = "reservations_showtime_id_fkey"
	reservationCustomerFK = "reservations_customer_id_fkey"
)

var reservationParents = map[string]error{
	reservationShowtimeFK: shared.ErrShowtimeNotFound,
	reservationCustomerFK: shared.ErrCustomerNotFound,
}

// ReservationCommands keeps every room's remaining capacity in lockstep with
// the reservation ledger. Each call is one transaction.
type ReservationCommands interface {
	Create(ctx context.Context, req CreateReservationRequest, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateReservationRequest) (*queries.ReservationView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow            shared.UnitOfWork
	cache          shared.AvailabilityCache
	clock          clock.Clock
	idempotencyTTL time.Duration
	logger         *slog.Logger
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	cache shared.AvailabilityCache,
	clock clock.Clock,
	cfg config.IdempotencyConfig,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:            uow,
		cache:          cache,
		clock:          clock,
		idempotencyTTL: cfg.TTL,
		logger:         logger,
	}
}

func (c *reservationCommandsImpl) Create(
	ctx context.Context,
	req CreateReservationRequest,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	seats, err := reservation.NewSeatCount(req.SeatCount)
	if err != nil {
		return nil, validationErr(err)
	}
	if err := requireParents(req.ShowtimeID, req.CustomerID); err != nil {
		return nil, err
	}
	requestHash := calculateRequestHash(req)

	var (
		result *CreateReservationResult
		roomID uuid.UUID
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// the closure may run again after a retryable failure
		result, roomID = nil, uuid.Nil
		now := c.clock.Now()

		if idempotencyKey != nil {
			replayed, err := c.claimIdempotencyKey(ctx, tx, *idempotencyKey, requestHash, now)
			if err != nil {
				return err
			}
			if replayed != nil {
				result = &CreateReservationResult{Reservation: replayed, IsReplayed: true}
				return nil
			}
		}

		res, err := reservation.NewReservation(req.ShowtimeID, req.CustomerID, seats, now)
		if err != nil {
			return validationErr(err)
		}

		showtimeRoom, err := tx.Showtimes().ResolveRoom(ctx, req.ShowtimeID)
		if err != nil {
			return notFoundOr(err, shared.ErrShowtimeNotFound)
		}

		rooms, err := lockRooms(ctx, tx, c.orphanedRoom, showtimeRoom)
		if err != nil {
			return err
		}
		if err := reserveSeats(rooms[showtimeRoom], seats.Value(), now); err != nil {
			return err
		}
		if err := saveRooms(ctx, tx, rooms); err != nil {
			return err
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			if fkErr := foreignKeyErr(err, reservationParents); fkErr != nil {
				return fkErr
			}
			return storageErr(err)
		}

		if err := enqueueReservationEvent(ctx, tx, EventReservationCreated, res, showtimeRoom, now); err != nil {
			return err
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().MarkCompleted(ctx, *idempotencyKey, createReservationEndpoint, res.ID()); err != nil {
				return storageErr(err)
			}
		}

		result = &CreateReservationResult{Reservation: toReservationView(res, showtimeRoom)}
		roomID = showtimeRoom
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.IsReplayed {
		invalidateRooms(ctx, c.cache, c.logger, roomID)
	}
	return result, nil
}

// claimIdempotencyKey records the key inside the create transaction. A non-nil
// view means the request was already served and must be replayed. A second
// request racing on the same key blocks on the key row until the first commits.
func (c *reservationCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key uuid.UUID,
	requestHash string,
	now time.Time,
) (*queries.ReservationView, error) {
	expiresAt := now.Add(c.idempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, key, createReservationEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, storageErr(err)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Idempotency().Get(ctx, key, createReservationEndpoint)
	if err != nil {
		return nil, storageErr(err)
	}

	if existing.ExpiresAt.Before(now) {
		claimed, err := tx.Idempotency().ClaimExpired(ctx, key, createReservationEndpoint, requestHash, now, expiresAt)
		if err != nil {
			return nil, storageErr(err)
		}
		if claimed == 1 {
			return nil, nil
		}
	}

	if existing.RequestHash != requestHash {
		return nil, errs.Wrapf(shared.ErrIdempotencyKeyReused, "key %s", key)
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID == nil {
			return nil, storageErr(errs.Newf("idempotency key %s completed without a reservation", key))
		}
		return c.loadReservationView(ctx, tx, *existing.ResultReservationID)
	default:
		return nil, errs.Wrapf(shared.ErrIdempotencyInProgress, "key %s", key)
	}
}

func (c *reservationCommandsImpl) loadReservationView(ctx context.Context, tx shared.Tx, id uuid.UUID) (*queries.ReservationView, error) {
	res, err := tx.Reservations().FindForUpdate(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, shared.ErrReservationNotFound)
	}
	roomID, err := tx.Showtimes().ResolveRoom(ctx, res.ShowtimeID())
	if err != nil {
		return nil, orphanedErr(c.logger, err, shared.ErrShowtimeNotFound, "reservation.showtime_id", res.ShowtimeID())
	}
	return toReservationView(res, roomID), nil
}

func (c *reservationCommandsImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateReservationRequest,
) (*queries.ReservationView, error) {
	seats, err := reservation.NewSeatCount(req.SeatCount)
	if err != nil {
		return nil, validationErr(err)
	}
	if err := requireParents(req.ShowtimeID, req.CustomerID); err != nil {
		return nil, err
	}

	var (
		view    *queries.ReservationView
		touched []uuid.UUID
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()

		res, err := tx.Reservations().FindForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, shared.ErrReservationNotFound)
		}

		originalRoom, err := tx.Showtimes().ResolveRoom(ctx, res.ShowtimeID())
		if err != nil {
			return orphanedErr(c.logger, err, shared.ErrShowtimeNotFound, "reservation.showtime_id", res.ShowtimeID())
		}

		targetRoom := originalRoom
		if req.ShowtimeID != res.ShowtimeID() {
			targetRoom, err = tx.Showtimes().ResolveRoom(ctx, req.ShowtimeID)
			if err != nil {
				return notFoundOr(err, shared.ErrShowtimeNotFound)
			}
		}

		rooms, err := lockRooms(ctx, tx, c.orphanedRoom, originalRoom, targetRoom)
		if err != nil {
			return err
		}

		// Credit first so a same-room update is checked against the seats the
		// reservation already holds. Nothing is written unless the debit fits.
		if err := releaseSeats(rooms[originalRoom], res.SeatCount().Value(), now); err != nil {
			return err
		}
		if err := reserveSeats(rooms[targetRoom], seats.Value(), now); err != nil {
			return err
		}
		if err := saveRooms(ctx, tx, rooms); err != nil {
			return err
		}

		if err := res.Reassign(req.ShowtimeID, req.CustomerID, seats, now); err != nil {
			return validationErr(err)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			if fkErr := foreignKeyErr(err, reservationParents); fkErr != nil {
				return fkErr
			}
			return notFoundOr(err, shared.ErrReservationNotFound)
		}

		if err := enqueueReservationEvent(ctx, tx, EventReservationUpdated, res, targetRoom, now); err != nil {
			return err
		}

		view = toReservationView(res, targetRoom)
		touched = roomIDs(rooms)
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateRooms(ctx, c.cache, c.logger, touched...)
	return view, nil
}

func (c *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	var roomID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()

		res, err := tx.Reservations().FindForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, shared.ErrReservationNotFound)
		}

		roomID, err = tx.Showtimes().ResolveRoom(ctx, res.ShowtimeID())
		if err != nil {
			return orphanedErr(c.logger, err, shared.ErrShowtimeNotFound, "reservation.showtime_id", res.ShowtimeID())
		}

		rooms, err := lockRooms(ctx, tx, c.orphanedRoom, roomID)
		if err != nil {
			return err
		}
		if err := releaseSeats(rooms[roomID], res.SeatCount().Value(), now); err != nil {
			return err
		}
		if err := saveRooms(ctx, tx, rooms); err != nil {
			return err
		}

		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return notFoundOr(err, shared.ErrReservationNotFound)
		}

		return enqueueReservationEvent(ctx, tx, EventReservationCancelled, res, roomID, now)
	})
	if err != nil {
		return err
	}

	invalidateRooms(ctx, c.cache, c.logger, roomID)
	return nil
}

// A showtime row exists, so its room must too.
func (c *reservationCommandsImpl) orphanedRoom(id uuid.UUID, err error) error {
	return orphanedErr(c.logger, err, shared.ErrRoomNotFound, "showtime.room_id", id)
}

func requireParents(showtimeID, customerID uuid.UUID) error {
	if showtimeID == uuid.Nil {
		return validationErr(reservation.ErrMissingShowtime)
	}
	if customerID == uuid.Nil {
		return validationErr(reservation.ErrMissingCustomer)
	}
	return nil
}

func toReservationView(res *reservation.Reservation, roomID uuid.UUID) *queries.ReservationView {
	return &queries.ReservationView{
		ID:         res.ID(),
		ShowtimeID: res.ShowtimeID(),
		RoomID:     roomID,
		CustomerID: res.CustomerID(),
		SeatCount:  res.SeatCount().Value(),
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
}

func calculateRequestHash(req CreateReservationRequest) string {
	data, _ := json.Marshal(struct {
		ShowtimeID uuid.UUID `json:"showtimeId"`
		CustomerID uuid.UUID `json:"customerId"`
		SeatCount  int       `json:"seatCount"`
	}{req.ShowtimeID, req.CustomerID, req.SeatCount})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
