package queries

import (
	"context"

	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

type CustomerQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CustomerView, error)
	List(ctx context.Context, limit int) ([]*CustomerView, error)
}

type CustomerReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerView, error)
	List(ctx context.Context, limit int) ([]*CustomerView, error)
}

type customerQueriesImpl struct {
	store CustomerReadStore
}

func NewCustomerQueries(store CustomerReadStore) CustomerQueries {
	return &customerQueriesImpl{store: store}
}

func (q *customerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CustomerView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markReadErr(err, shared.ErrCustomerNotFound)
	}
	return view, nil
}

func (q *customerQueriesImpl) List(ctx context.Context, limit int) ([]*CustomerView, error) {
	rows, err := q.store.List(ctx, ValidateLimit(limit))
	if err != nil {
		return nil, markReadErr(err, shared.ErrCustomerNotFound)
	}
	return rows, nil
}
