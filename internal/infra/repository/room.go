package repository

import (
	"context"
	"time"

	"cineapp/internal/domain/room"
	"cineapp/internal/infra"
	"cineapp/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertRoomSQL = `
INSERT INTO rooms (id, name, capacity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

	selectRoomForUpdateSQL = `
SELECT id, name, capacity, created_at, updated_at
FROM rooms
WHERE id = $1
FOR UPDATE`

	updateRoomCapacitySQL = `
UPDATE rooms SET capacity = $2, updated_at = $3
WHERE id = $1`

	updateRoomNameSQL = `
UPDATE rooms SET name = $2, updated_at = $3
WHERE id = $1`

	deleteRoomSQL = `DELETE FROM rooms WHERE id = $1`
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(db db.DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	_, err := r.db.Exec(ctx, insertRoomSQL,
		rm.ID(), rm.Name().String(), rm.Capacity().Seats(), rm.CreatedAt(), rm.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

// FindForUpdate reads the room and locks its row until the transaction ends.
func (r *RoomRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var (
		roomID               uuid.UUID
		name                 string
		capacity             int
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, selectRoomForUpdateSQL, id).
		Scan(&roomID, &name, &capacity, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock room", err)
	}
	return room.ReconstructRoom(roomID, name, capacity, createdAt, updatedAt), nil
}

func (r *RoomRepository) SaveCapacity(ctx context.Context, rm *room.Room) error {
	tag, err := r.db.Exec(ctx, updateRoomCapacitySQL, rm.ID(), rm.Capacity().Seats(), rm.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update room capacity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) UpdateName(ctx context.Context, rm *room.Room) error {
	tag, err := r.db.Exec(ctx, updateRoomNameSQL, rm.ID(), rm.Name().String(), rm.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to rename room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteRoomSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}
