package commands

import (
	"log/slog"

	"cineapp/internal/infra"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
)

var useCaseKinds = []error{
	shared.ErrValidation,
	shared.ErrShowtimeNotFound,
	shared.ErrRoomNotFound,
	shared.ErrReservationNotFound,
	shared.ErrCustomerNotFound,
	shared.ErrMovieNotFound,
	shared.ErrInsufficientCapacity,
	shared.ErrShowtimeHasReservations,
	shared.ErrInUse,
	shared.ErrDuplicateEmail,
	shared.ErrIdempotencyKeyReused,
	shared.ErrIdempotencyInProgress,
	shared.ErrStorage,
}

// storageErr keeps an already classified error and marks anything else as a
// storage failure.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errs.IsAny(err, useCaseKinds...) {
		return err
	}
	return errs.Mark(err, shared.ErrStorage)
}

func notFoundOr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return storageErr(err)
}

// orphanedErr handles a miss on a row that a foreign key should have kept
// alive. The caller still sees NotFound.
func orphanedErr(logger *slog.Logger, err error, notFound error, ref string, id uuid.UUID) error {
	if !infra.IsKind(err, infra.KindNotFound) {
		return storageErr(err)
	}
	logger.Error("dangling reference detected",
		"reference", ref,
		"id", id.String(),
		"error", err.Error())
	return errs.Mark(errs.Mark(err, notFound), shared.ErrOrphanedReference)
}

func validationErr(err error) error {
	return errs.Mark(err, shared.ErrValidation)
}

// foreignKeyErr maps a violated constraint name to the kind of the missing
// parent. Unknown constraints fall through to storageErr.
func foreignKeyErr(err error, byConstraint map[string]error) error {
	if !infra.IsKind(err, infra.KindForeignKeyViolated) {
		return nil
	}
	if kind, ok := byConstraint[infra.ConstraintOf(err)]; ok {
		return errs.Mark(err, kind)
	}
	return nil
}
