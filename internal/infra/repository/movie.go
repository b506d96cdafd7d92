package repository

import (
	"context"
	"time"

	"cineapp/internal/domain/movie"
	"cineapp/internal/infra"
	"cineapp/internal/infra/db"

	"github.com/google/uuid"
)

type MovieRepository struct {
	db db.DBTX
}

func NewMovieRepository(db db.DBTX) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Create(ctx context.Context, m *movie.Movie) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO movies (id, title, genre, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID(), m.Title(), m.Genre(), m.CreatedAt(), m.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create movie", err)
	}
	return nil
}

func (r *MovieRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*movie.Movie, error) {
	var (
		movieID              uuid.UUID
		title, genre         string
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, title, genre, created_at, updated_at FROM movies WHERE id = $1 FOR UPDATE`, id).
		Scan(&movieID, &title, &genre, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock movie", err)
	}
	return movie.ReconstructMovie(movieID, title, genre, createdAt, updatedAt), nil
}

func (r *MovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE movies SET title = $2, genre = $3, updated_at = $4 WHERE id = $1`,
		m.ID(), m.Title(), m.Genre(), m.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update movie", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("movie not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete movie", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("movie not found", nil, infra.KindNotFound)
	}
	return nil
}
