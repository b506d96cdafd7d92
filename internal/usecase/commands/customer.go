package commands

import (
	"context"

	"cineapp/internal/domain/customer"
	"cineapp/internal/infra"
	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

type CustomerCommands interface {
	Create(ctx context.Context, req CustomerRequest) (*queries.CustomerView, error)
	Update(ctx context.Context, id uuid.UUID, req CustomerRequest) (*queries.CustomerView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCustomerCommands(uow shared.UnitOfWork, clock clock.Clock) CustomerCommands {
	return &customerCommandsImpl{uow: uow, clock: clock}
}

func (c *customerCommandsImpl) Create(ctx context.Context, req CustomerRequest) (*queries.CustomerView, error) {
	cust, err := customer.NewCustomer(req.Name, req.Email, c.clock.Now())
	if err != nil {
		return nil, validationErr(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return duplicateEmailOr(tx.Customers().Create(ctx, cust))
	})
	if err != nil {
		return nil, err
	}
	return toCustomerView(cust), nil
}

func (c *customerCommandsImpl) Update(ctx context.Context, id uuid.UUID, req CustomerRequest) (*queries.CustomerView, error) {
	var view *queries.CustomerView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cust, err := tx.Customers().FindForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, shared.ErrCustomerNotFound)
		}
		if err := cust.Update(req.Name, req.Email, c.clock.Now()); err != nil {
			return validationErr(err)
		}
		if err := tx.Customers().Update(ctx, cust); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, shared.ErrCustomerNotFound)
			}
			return duplicateEmailOr(err)
		}
		view = toCustomerView(cust)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *customerCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Customers().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, shared.ErrInUse)
			}
			return notFoundOr(err, shared.ErrCustomerNotFound)
		}
		return nil
	})
}

func duplicateEmailOr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindDuplicateKey) && infra.ConstraintOf(err) == "customers_email_key" {
		return errs.Mark(err, shared.ErrDuplicateEmail)
	}
	return storageErr(err)
}

func toCustomerView(c *customer.Customer) *queries.CustomerView {
	return &queries.CustomerView{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email().Value(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}
