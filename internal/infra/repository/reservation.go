package repository

import (
	"context"
	"time"

	"cineapp/internal/domain/reservation"
	"cineapp/internal/infra"
	"cineapp/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertReservationSQL = `
INSERT INTO reservations (id, showtime_id, customer_id, seat_count, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectReservationForUpdateSQL = `
SELECT id, showtime_id, customer_id, seat_count, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE`

	updateReservationSQL = `
UPDATE reservations SET showtime_id = $2, customer_id = $3, seat_count = $4, updated_at = $5
WHERE id = $1`

	deleteReservationSQL = `DELETE FROM reservations WHERE id = $1`

	countReservationsByShowtimeSQL = `SELECT count(*) FROM reservations WHERE showtime_id = $1`

	sumSeatsByShowtimeSQL = `SELECT COALESCE(sum(seat_count), 0) FROM reservations WHERE showtime_id = $1`
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, insertReservationSQL,
		res.ID(), res.ShowtimeID(), res.CustomerID(), res.SeatCount().Value(), res.CreatedAt(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID, showtimeID, customerID uuid.UUID
		seatCount                     int
		createdAt, updatedAt          time.Time
	)
	err := r.db.QueryRow(ctx, selectReservationForUpdateSQL, id).
		Scan(&resID, &showtimeID, &customerID, &seatCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return reservation.ReconstructReservation(resID, showtimeID, customerID, seatCount, createdAt, updatedAt), nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationSQL,
		res.ID(), res.ShowtimeID(), res.CustomerID(), res.SeatCount().Value(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteReservationSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) CountByShowtime(ctx context.Context, showtimeID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, countReservationsByShowtimeSQL, showtimeID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count reservations", err, infra.KindDBFailure)
	}
	return n, nil
}

func (r *ReservationRepository) SumSeatsByShowtime(ctx context.Context, showtimeID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, sumSeatsByShowtimeSQL, showtimeID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to sum reserved seats", err, infra.KindDBFailure)
	}
	return n, nil
}
