//go:build unit

package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/config"
	"cineapp/internal/usecase/shared"
	"cineapp/internal/usecase/worker"
	"cineapp/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reservationsEndpoint = "POST /reservations"

func newSweeper(store *memuow.Store, clk clock.Clock, interval time.Duration) *worker.IdempotencySweeper {
	return worker.NewIdempotencySweeper(store, clk,
		config.IdempotencyConfig{TTL: time.Hour, SweepInterval: interval},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedKeys(store *memuow.Store, now time.Time) (expired, live uuid.UUID) {
	expired, live = uuid.New(), uuid.New()
	store.SeedIdempotencyRecord(shared.IdempotencyRecord{Key: expired, Endpoint: reservationsEndpoint, ExpiresAt: now.Add(-time.Second)})
	store.SeedIdempotencyRecord(shared.IdempotencyRecord{Key: live, Endpoint: reservationsEndpoint, ExpiresAt: now.Add(time.Hour)})
	return expired, live
}

func TestIdempotencySweeper(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sweep removes only expired keys", func(t *testing.T) {
		store := memuow.New()
		expired, live := seedKeys(store, now)

		n, err := newSweeper(store, clock.NewMockClock(now), time.Minute).SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, ok := store.IdempotencyRecord(expired, reservationsEndpoint)
		assert.False(t, ok)
		_, ok = store.IdempotencyRecord(live, reservationsEndpoint)
		assert.True(t, ok)
	})

	t.Run("runs on its own ticker", func(t *testing.T) {
		store := memuow.New()
		expired, live := seedKeys(store, now)

		sweeper := newSweeper(store, clock.NewMockClock(now), 10*time.Millisecond)
		sweeper.Start()

		assert.Eventually(t, func() bool {
			_, ok := store.IdempotencyRecord(expired, reservationsEndpoint)
			return !ok
		}, 2*time.Second, 10*time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, sweeper.Stop(ctx))

		_, ok := store.IdempotencyRecord(live, reservationsEndpoint)
		assert.True(t, ok)
	})

	t.Run("stop before start is a no-op", func(t *testing.T) {
		require.NoError(t, newSweeper(memuow.New(), clock.NewMockClock(now), time.Minute).Stop(context.Background()))
	})
}
