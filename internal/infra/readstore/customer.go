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
	selectCustomerViewSQL = `
SELECT id, name, email, created_at, updated_at
FROM customers
WHERE id = $1`

	listCustomerViewsSQL = `
SELECT id, name, email, created_at, updated_at
FROM customers
ORDER BY created_at, id
LIMIT $1`
)

type CustomerReadStore struct {
	db db.DBTX
}

func NewCustomerReadStore(db db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{db: db}
}

func (r *CustomerReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CustomerView, error) {
	view, err := scanCustomerView(r.db.QueryRow(ctx, selectCustomerViewSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by ID", err)
	}
	return view, nil
}

func (r *CustomerReadStore) List(ctx context.Context, limit int) ([]*queries.CustomerView, error) {
	rows, err := r.db.Query(ctx, listCustomerViewsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.CustomerView, error) {
		return scanCustomerView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan customers", err)
	}
	return views, nil
}

func scanCustomerView(row pgx.Row) (*queries.CustomerView, error) {
	var v queries.CustomerView
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
