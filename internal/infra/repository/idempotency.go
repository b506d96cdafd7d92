package repository

import (
	"context"
	"time"

	"cineapp/internal/infra"
	"cineapp/internal/infra/db"
	"cineapp/internal/pkg/pgconv"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, 'processing', $4)
ON CONFLICT (key, endpoint) DO NOTHING`

	selectIdempotencyKeySQL = `
SELECT key, endpoint, status, request_hash, result_reservation_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND endpoint = $2
FOR UPDATE`

	claimExpiredIdempotencyKeySQL = `
UPDATE idempotency_keys
SET request_hash = $3, status = 'processing', result_reservation_id = NULL,
    expires_at = $5, updated_at = $4
WHERE key = $1 AND endpoint = $2 AND expires_at < $4`

	completeIdempotencyKeySQL = `
UPDATE idempotency_keys
SET status = 'completed', result_reservation_id = $3, updated_at = now()
WHERE key = $1 AND endpoint = $2`

	deleteExpiredIdempotencyKeysSQL = `DELETE FROM idempotency_keys WHERE expires_at < $1`
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKeySQL, key, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID, endpoint string) (*shared.IdempotencyRecord, error) {
	var (
		rec      shared.IdempotencyRecord
		resultID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, selectIdempotencyKeySQL, key, endpoint).
		Scan(&rec.Key, &rec.Endpoint, &rec.Status, &rec.RequestHash, &resultID, &rec.ExpiresAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.ResultReservationID = pgconv.UUIDPtrFromPgtype(resultID)
	return &rec, nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, claimExpiredIdempotencyKeySQL, key, endpoint, requestHash, now, expiresAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key uuid.UUID, endpoint string, reservationID uuid.UUID) error {
	_, err := r.db.Exec(ctx, completeIdempotencyKeySQL, key, endpoint, reservationID)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencyKeysSQL, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
