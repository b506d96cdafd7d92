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
	selectRoomViewSQL = `
SELECT id, name, capacity, created_at, updated_at
FROM rooms
WHERE id = $1`

	listRoomViewsSQL = `
SELECT id, name, capacity, created_at, updated_at
FROM rooms
ORDER BY name, id
LIMIT $1`

	selectRoomCapacitySQL = `SELECT capacity FROM rooms WHERE id = $1`
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(db db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	view, err := scanRoomView(r.db.QueryRow(ctx, selectRoomViewSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return view, nil
}

func (r *RoomReadStore) List(ctx context.Context, limit int) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, listRoomViewsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.RoomView, error) {
		return scanRoomView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan rooms", err)
	}
	return views, nil
}

func (r *RoomReadStore) CapacityOf(ctx context.Context, id uuid.UUID) (int, error) {
	var capacity int
	if err := r.db.QueryRow(ctx, selectRoomCapacitySQL, id).Scan(&capacity); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to read room capacity", err)
	}
	return capacity, nil
}

func scanRoomView(row pgx.Row) (*queries.RoomView, error) {
	var v queries.RoomView
	if err := row.Scan(&v.ID, &v.Name, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
