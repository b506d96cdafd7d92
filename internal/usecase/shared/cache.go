package shared

import (
	"context"

	"github.com/google/uuid"
)

// AvailabilityCache keeps a best-effort copy of room capacity for reads.
// The capacity engine never reads it.
type AvailabilityCache interface {
	Get(ctx context.Context, roomID uuid.UUID) (capacity int, ok bool, err error)
	Set(ctx context.Context, roomID uuid.UUID, capacity int) error
	Invalidate(ctx context.Context, roomIDs ...uuid.UUID) error
}
