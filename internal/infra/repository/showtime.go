package repository

import (
	"context"
	"time"

	"cineapp/internal/domain/showtime"
	"cineapp/internal/infra"
	"cineapp/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertShowtimeSQL = `
INSERT INTO showtimes (id, movie_id, room_id, starts_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	// FOR SHARE blocks a concurrent delete or room change of the showtime
	// while still letting other reservations resolve it.
	resolveShowtimeRoomSQL = `
SELECT room_id FROM showtimes
WHERE id = $1
FOR SHARE`

	selectShowtimeForUpdateSQL = `
SELECT id, movie_id, room_id, starts_at, created_at, updated_at
FROM showtimes
WHERE id = $1
FOR UPDATE`

	updateShowtimeSQL = `
UPDATE showtimes SET movie_id = $2, room_id = $3, starts_at = $4, updated_at = $5
WHERE id = $1`

	deleteShowtimeSQL = `DELETE FROM showtimes WHERE id = $1`
)

type ShowtimeRepository struct {
	db db.DBTX
}

func NewShowtimeRepository(db db.DBTX) *ShowtimeRepository {
	return &ShowtimeRepository{db: db}
}

func (r *ShowtimeRepository) Create(ctx context.Context, s *showtime.Showtime) error {
	_, err := r.db.Exec(ctx, insertShowtimeSQL,
		s.ID(), s.MovieID(), s.RoomID(), s.StartsAt(), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create showtime", err)
	}
	return nil
}

func (r *ShowtimeRepository) ResolveRoom(ctx context.Context, showtimeID uuid.UUID) (uuid.UUID, error) {
	var roomID uuid.UUID
	if err := r.db.QueryRow(ctx, resolveShowtimeRoomSQL, showtimeID).Scan(&roomID); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to resolve showtime room", err)
	}
	return roomID, nil
}

func (r *ShowtimeRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*showtime.Showtime, error) {
	var (
		showtimeID, movieID, roomID    uuid.UUID
		startsAt, createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, selectShowtimeForUpdateSQL, id).
		Scan(&showtimeID, &movieID, &roomID, &startsAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock showtime", err)
	}
	return showtime.ReconstructShowtime(showtimeID, movieID, roomID, startsAt, createdAt, updatedAt), nil
}

func (r *ShowtimeRepository) Update(ctx context.Context, s *showtime.Showtime) error {
	tag, err := r.db.Exec(ctx, updateShowtimeSQL, s.ID(), s.MovieID(), s.RoomID(), s.StartsAt(), s.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update showtime", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("showtime not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ShowtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteShowtimeSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete showtime", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("showtime not found", nil, infra.KindNotFound)
	}
	return nil
}
