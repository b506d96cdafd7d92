package queries

import (
	"context"

	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

type MovieQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*MovieView, error)
	List(ctx context.Context, limit int) ([]*MovieView, error)
}

type MovieReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MovieView, error)
	List(ctx context.Context, limit int) ([]*MovieView, error)
}

type movieQueriesImpl struct {
	store MovieReadStore
}

func NewMovieQueries(store MovieReadStore) MovieQueries {
	return &movieQueriesImpl{store: store}
}

func (q *movieQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*MovieView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markReadErr(err, shared.ErrMovieNotFound)
	}
	return view, nil
}

func (q *movieQueriesImpl) List(ctx context.Context, limit int) ([]*MovieView, error) {
	rows, err := q.store.List(ctx, ValidateLimit(limit))
	if err != nil {
		return nil, markReadErr(err, shared.ErrMovieNotFound)
	}
	return rows, nil
}
