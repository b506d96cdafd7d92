//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/config"
	"cineapp/internal/usecase/shared"
	"cineapp/internal/usecase/worker"
	"cineapp/tests/common/memuow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic, kind string, payload []byte) error {
	args := m.Called(ctx, topic, kind, payload)
	return args.Error(0)
}

var relayCfg = config.BrokerConfig{
	Enabled:       true,
	RelayInterval: time.Second,
	RelayBatch:    10,
	MaxAttempts:   3,
}

func newRelay(store *memuow.Store, pub worker.Publisher, clk clock.Clock) *worker.OutboxRelay {
	return worker.NewOutboxRelay(store, pub, clk, relayCfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func enqueue(t *testing.T, store *memuow.Store, kind string, runAt time.Time) {
	t.Helper()
	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().CreateJob(ctx, kind, "cineapp.reservations", []byte(`{"seatCount":2}`), runAt)
	})
	require.NoError(t, err)
}

func TestOutboxRelayRunOnce(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("publishes due jobs and marks them sent", func(t *testing.T) {
		store := memuow.New()
		clk := clock.NewMockClock(start)
		enqueue(t, store, "reservation.created", start)
		enqueue(t, store, "reservation.cancelled", start.Add(-time.Second))

		pub := new(MockPublisher)
		pub.On("Publish", mock.Anything, "cineapp.reservations", mock.AnythingOfType("string"), []byte(`{"seatCount":2}`)).
			Return(nil).Twice()

		stats, err := newRelay(store, pub, clk).RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, worker.RelayStats{Sent: 2}, stats)
		pub.AssertExpectations(t)

		for _, job := range store.Jobs() {
			assert.Equal(t, shared.NotificationStatusSent, job.Status)
			assert.Equal(t, 1, job.Attempts)
		}
	})

	t.Run("jobs sharing a run time go out in insertion order", func(t *testing.T) {
		kinds := []string{"reservation.created", "reservation.updated", "reservation.updated", "reservation.cancelled"}

		for range 20 {
			store := memuow.New()
			for _, k := range kinds {
				enqueue(t, store, k, start)
			}

			var published []string
			pub := new(MockPublisher)
			pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { published = append(published, args.String(2)) }).
				Return(nil)

			_, err := newRelay(store, pub, clock.NewMockClock(start)).RunOnce(context.Background())
			require.NoError(t, err)
			require.Equal(t, kinds, published)
		}
	})

	t.Run("jobs scheduled later are left alone", func(t *testing.T) {
		store := memuow.New()
		enqueue(t, store, "reservation.created", start.Add(time.Minute))

		pub := new(MockPublisher)
		stats, err := newRelay(store, pub, clock.NewMockClock(start)).RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, worker.RelayStats{}, stats)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed publish backs off and eventually gives up", func(t *testing.T) {
		store := memuow.New()
		clk := clock.NewMockClock(start)
		enqueue(t, store, "reservation.updated", start)

		pub := new(MockPublisher)
		pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
		relay := newRelay(store, pub, clk)

		stats, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, worker.RelayStats{Failed: 1}, stats)

		job := store.Jobs()[0]
		assert.Equal(t, shared.NotificationStatusQueued, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.Equal(t, start.Add(2*time.Second), job.RunAt)
		require.NotNil(t, job.LastError)
		assert.Equal(t, "broker down", *job.LastError)

		// not due yet
		stats, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, worker.RelayStats{}, stats)

		clk.Add(2 * time.Second)
		_, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		job = store.Jobs()[0]
		assert.Equal(t, 2, job.Attempts)
		assert.Equal(t, clk.Now().Add(4*time.Second), job.RunAt)

		clk.Add(4 * time.Second)
		_, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		job = store.Jobs()[0]
		assert.Equal(t, 3, job.Attempts)
		assert.Equal(t, shared.NotificationStatusFailed, job.Status)

		clk.Add(time.Hour)
		stats, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, worker.RelayStats{}, stats)
		pub.AssertNumberOfCalls(t, "Publish", 3)
	})
}

func TestOutboxRelayStartStop(t *testing.T) {
	relay := newRelay(memuow.New(), new(MockPublisher), clock.NewMockClock(time.Now()))
	relay.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.Stop(ctx))
}
