package commands

import (
	"context"

	"cineapp/internal/domain/movie"
	"cineapp/internal/infra"
	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

type MovieCommands interface {
	Create(ctx context.Context, req MovieRequest) (*queries.MovieView, error)
	Update(ctx context.Context, id uuid.UUID, req MovieRequest) (*queries.MovieView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMovieCommands(uow shared.UnitOfWork, clock clock.Clock) MovieCommands {
	return &movieCommandsImpl{uow: uow, clock: clock}
}

func (c *movieCommandsImpl) Create(ctx context.Context, req MovieRequest) (*queries.MovieView, error) {
	m, err := movie.NewMovie(req.Title, req.Genre, c.clock.Now())
	if err != nil {
		return nil, validationErr(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return storageErr(tx.Movies().Create(ctx, m))
	})
	if err != nil {
		return nil, err
	}
	return toMovieView(m), nil
}

func (c *movieCommandsImpl) Update(ctx context.Context, id uuid.UUID, req MovieRequest) (*queries.MovieView, error) {
	var view *queries.MovieView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Movies().FindForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, shared.ErrMovieNotFound)
		}
		if err := m.Update(req.Title, req.Genre, c.clock.Now()); err != nil {
			return validationErr(err)
		}
		if err := tx.Movies().Update(ctx, m); err != nil {
			return notFoundOr(err, shared.ErrMovieNotFound)
		}
		view = toMovieView(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *movieCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Movies().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, shared.ErrInUse)
			}
			return notFoundOr(err, shared.ErrMovieNotFound)
		}
		return nil
	})
}

func toMovieView(m *movie.Movie) *queries.MovieView {
	return &queries.MovieView{
		ID:        m.ID(),
		Title:     m.Title(),
		Genre:     m.Genre(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}
