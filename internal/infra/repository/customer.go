package repository

import (
	"context"
	"time"

	"cineapp/internal/domain/customer"
	"cineapp/internal/infra"
	"cineapp/internal/infra/db"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(db db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID(), c.Name(), c.Email().Value(), c.CreatedAt(), c.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create customer", err)
	}
	return nil
}

func (r *CustomerRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var (
		customerID           uuid.UUID
		name, email          string
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, created_at, updated_at FROM customers WHERE id = $1 FOR UPDATE`, id).
		Scan(&customerID, &name, &email, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock customer", err)
	}
	return customer.ReconstructCustomer(customerID, name, email, createdAt, updatedAt), nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET name = $2, email = $3, updated_at = $4 WHERE id = $1`,
		c.ID(), c.Name(), c.Email().Value(), c.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return nil
}
