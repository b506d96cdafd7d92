package readstore

import (
	"context"

	"cineapp/internal/infra"
	"cineapp/internal/infra/db"
	"cineapp/internal/pkg/pgconv"
	"cineapp/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	showtimeViewColumns = `
SELECT s.id, s.movie_id, m.title, s.room_id, rm.name, s.starts_at, s.created_at, s.updated_at
FROM showtimes s
JOIN movies m ON m.id = s.movie_id
JOIN rooms rm ON rm.id = s.room_id`

	selectShowtimeViewSQL = showtimeViewColumns + `
WHERE s.id = $1`

	listShowtimeViewsSQL = showtimeViewColumns + `
WHERE ($1::uuid IS NULL OR s.movie_id = $1)
  AND ($2::uuid IS NULL OR s.room_id = $2)
ORDER BY s.starts_at, s.id
LIMIT $3`

	countShowtimeReservationsSQL = `
SELECT count(r.id)
FROM showtimes s
LEFT JOIN reservations r ON r.showtime_id = s.id
WHERE s.id = $1
GROUP BY s.id`
)

type ShowtimeReadStore struct {
	db db.DBTX
}

func NewShowtimeReadStore(db db.DBTX) *ShowtimeReadStore {
	return &ShowtimeReadStore{db: db}
}

func (r *ShowtimeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ShowtimeView, error) {
	view, err := scanShowtimeView(r.db.QueryRow(ctx, selectShowtimeViewSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("showtime not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find showtime by ID", err)
	}
	return view, nil
}

func (r *ShowtimeReadStore) List(ctx context.Context, filter queries.ShowtimeFilter, limit int) ([]*queries.ShowtimeView, error) {
	rows, err := r.db.Query(ctx, listShowtimeViewsSQL,
		pgconv.UUIDPtrToPgtype(filter.MovieID),
		pgconv.UUIDPtrToPgtype(filter.RoomID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list showtimes", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ShowtimeView, error) {
		return scanShowtimeView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan showtimes", err)
	}
	return views, nil
}

func (r *ShowtimeReadStore) ReservationCount(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, countShowtimeReservationsSQL, id).Scan(&n); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("showtime not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to count showtime reservations", err)
	}
	return n, nil
}

func scanShowtimeView(row pgx.Row) (*queries.ShowtimeView, error) {
	var v queries.ShowtimeView
	err := row.Scan(&v.ID, &v.MovieID, &v.MovieTitle, &v.RoomID, &v.RoomName, &v.StartsAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
