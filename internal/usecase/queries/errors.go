package queries

import (
	"cineapp/internal/infra"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/shared"
)

// markReadErr tags a read store failure with the matching use-case kind.
func markReadErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, shared.ErrStorage)
}
