package readstore

import (
	"context"
	"time"

	"cineapp/internal/infra"
	"cineapp/internal/infra/db"
	"cineapp/internal/pkg/pgconv"
	"cineapp/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	selectReservationViewSQL = `
SELECT r.id, r.showtime_id, s.room_id, r.customer_id, r.seat_count, r.created_at, r.updated_at
FROM reservations r
JOIN showtimes s ON s.id = r.showtime_id
WHERE r.id = $1`

	listReservationViewsSQL = `
SELECT r.id, r.showtime_id, s.room_id, r.customer_id, r.seat_count, r.created_at, r.updated_at
FROM reservations r
JOIN showtimes s ON s.id = r.showtime_id
WHERE ($1::uuid IS NULL OR r.showtime_id = $1)
  AND ($2::uuid IS NULL OR r.customer_id = $2)
  AND ($3::timestamptz IS NULL OR (r.created_at, r.id) > ($3, $4::uuid))
ORDER BY r.created_at, r.id
LIMIT $5`
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, selectReservationViewSQL, id)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) List(
	ctx context.Context,
	filter queries.ReservationFilter,
	afterTime *time.Time,
	afterID *uuid.UUID,
	limit int,
) ([]*queries.ReservationView, error) {
	after := pgtype.Timestamptz{}
	if afterTime != nil {
		after = pgconv.TimeToPgtype(*afterTime)
	}

	rows, err := r.db.Query(ctx, listReservationViewsSQL,
		pgconv.UUIDPtrToPgtype(filter.ShowtimeID),
		pgconv.UUIDPtrToPgtype(filter.CustomerID),
		after,
		pgconv.UUIDPtrToPgtype(afterID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReservationView, error) {
		return scanReservationView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reservations", err)
	}
	return views, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var v queries.ReservationView
	if err := row.Scan(&v.ID, &v.ShowtimeID, &v.RoomID, &v.CustomerID, &v.SeatCount, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
