package commands

import (
	"context"
	"encoding/json"
	"time"

	"cineapp/internal/domain/reservation"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	ReservationsTopic = "cineapp.reservations"

	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
)

type ReservationEvent struct {
	ReservationID uuid.UUID `json:"reservationId"`
	ShowtimeID    uuid.UUID `json:"showtimeId"`
	CustomerID    uuid.UUID `json:"customerId"`
	RoomID        uuid.UUID `json:"roomId"`
	SeatCount     int       `json:"seatCount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// enqueueReservationEvent writes an outbox row in the caller's transaction,
// so the event exists exactly when the change commits.
func enqueueReservationEvent(
	ctx context.Context,
	tx shared.Tx,
	kind string,
	res *reservation.Reservation,
	roomID uuid.UUID,
	now time.Time,
) error {
	payload, err := json.Marshal(ReservationEvent{
		ReservationID: res.ID(),
		ShowtimeID:    res.ShowtimeID(),
		CustomerID:    res.CustomerID(),
		RoomID:        roomID,
		SeatCount:     res.SeatCount().Value(),
		OccurredAt:    now,
	})
	if err != nil {
		return storageErr(err)
	}
	if err := tx.Notifications().CreateJob(ctx, kind, ReservationsTopic, payload, now); err != nil {
		return storageErr(err)
	}
	return nil
}
