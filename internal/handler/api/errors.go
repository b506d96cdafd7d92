package api

import (
	"log/slog"
	"net/http"

	"cineapp/internal/domain/room"
	"cineapp/internal/handler/httperr"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var notFoundMessages = []struct {
	kind error
	msg  string
}{
	{shared.ErrReservationNotFound, "Reservation not found"},
	{shared.ErrShowtimeNotFound, "Showtime not found"},
	{shared.ErrRoomNotFound, "Room not found"},
	{shared.ErrCustomerNotFound, "Customer not found"},
	{shared.ErrMovieNotFound, "Movie not found"},
}

type insufficientCapacityDetail struct {
	RoomID    string `json:"roomId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// abortWithCommandError is the single place where use-case error kinds
// become HTTP statuses.
func abortWithCommandError(c *gin.Context, err error) {
	var capErr *room.InsufficientCapacityError
	switch {
	case errs.As(err, &capErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient capacity", insufficientCapacityDetail{
			RoomID:    capErr.RoomID.String(),
			Requested: capErr.Requested,
			Available: capErr.Available,
		})
		return
	case errs.Is(err, shared.ErrInsufficientCapacity):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient capacity", nil)
		return
	case errs.Is(err, shared.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", gin.H{"reason": rootMessage(err)})
		return
	case errs.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		return
	}

	for _, nf := range notFoundMessages {
		if errs.Is(err, nf.kind) {
			if errs.Is(err, shared.ErrOrphanedReference) {
				slog.Error("request hit dangling reference", "path", c.FullPath(), "error", err.Error())
			}
			httperr.AbortWithError(c, http.StatusNotFound, err, nf.msg, nil)
			return
		}
	}

	switch {
	case errs.Is(err, shared.ErrShowtimeHasReservations):
		httperr.AbortWithError(c, http.StatusConflict, err, "Showtime has reservations", nil)
	case errs.Is(err, shared.ErrInUse):
		httperr.AbortWithError(c, http.StatusConflict, err, "Resource is still referenced", nil)
	case errs.Is(err, shared.ErrDuplicateEmail):
		httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
	case errs.Is(err, shared.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key reused with different request", nil)
	case errs.Is(err, shared.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request is currently being processed", nil)
	default:
		slog.Error("unhandled command error",
			"path", c.FullPath(),
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, maxLoggedStackLines))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

const maxLoggedStackLines = 20

func rootMessage(err error) string {
	cause := errs.UnwrapAll(err)
	if cause == nil {
		return err.Error()
	}
	return cause.Error()
}

func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+label+" ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID returns nil for an empty value.
func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
