package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	id        uuid.UUID
	name      string
	email     Email
	createdAt time.Time
	updatedAt time.Time
}

func NewCustomer(name, email string, now time.Time) (*Customer, error) {
	n, err := newName(name)
	if err != nil {
		return nil, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	return &Customer{id: uuid.New(), name: n, email: e, createdAt: now, updatedAt: now}, nil
}

func ReconstructCustomer(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *Customer {
	return &Customer{id: id, name: name, email: Email{value: email}, createdAt: createdAt, updatedAt: updatedAt}
}

func (c *Customer) ID() uuid.UUID        { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() Email         { return c.email }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

func (c *Customer) Update(name, email string, now time.Time) error {
	n, err := newName(name)
	if err != nil {
		return err
	}
	e, err := NewEmail(email)
	if err != nil {
		return err
	}
	c.name, c.email, c.updatedAt = n, e, now
	return nil
}
