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
	selectMovieViewSQL = `
SELECT id, title, genre, created_at, updated_at
FROM movies
WHERE id = $1`

	listMovieViewsSQL = `
SELECT id, title, genre, created_at, updated_at
FROM movies
ORDER BY title, id
LIMIT $1`
)

type MovieReadStore struct {
	db db.DBTX
}

func NewMovieReadStore(db db.DBTX) *MovieReadStore {
	return &MovieReadStore{db: db}
}

func (r *MovieReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MovieView, error) {
	view, err := scanMovieView(r.db.QueryRow(ctx, selectMovieViewSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("movie not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find movie by ID", err)
	}
	return view, nil
}

func (r *MovieReadStore) List(ctx context.Context, limit int) ([]*queries.MovieView, error) {
	rows, err := r.db.Query(ctx, listMovieViewsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list movies", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.MovieView, error) {
		return scanMovieView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan movies", err)
	}
	return views, nil
}

func scanMovieView(row pgx.Row) (*queries.MovieView, error) {
	var v queries.MovieView
	if err := row.Scan(&v.ID, &v.Title, &v.Genre, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
