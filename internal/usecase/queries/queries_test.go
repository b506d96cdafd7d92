//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"cineapp/internal/infra"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomReadStore struct {
	mock.Mock
}

func (m *MockRoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.RoomView)
	return v, args.Error(1)
}

func (m *MockRoomReadStore) List(ctx context.Context, limit int) ([]*queries.RoomView, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]*queries.RoomView)
	return v, args.Error(1)
}

func (m *MockRoomReadStore) CapacityOf(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type MockAvailabilityCache struct {
	mock.Mock
}

func (m *MockAvailabilityCache) Get(ctx context.Context, roomID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockAvailabilityCache) Set(ctx context.Context, roomID uuid.UUID, capacity int) error {
	return m.Called(ctx, roomID, capacity).Error(0)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context, roomIDs ...uuid.UUID) error {
	return m.Called(ctx, roomIDs).Error(0)
}

type MockReservationReadStore struct {
	mock.Mock
}

func (m *MockReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.ReservationView)
	return v, args.Error(1)
}

func (m *MockReservationReadStore) List(
	ctx context.Context,
	filter queries.ReservationFilter,
	afterTime *time.Time,
	afterID *uuid.UUID,
	limit int,
) ([]*queries.ReservationView, error) {
	args := m.Called(ctx, filter, afterTime, afterID, limit)
	v, _ := args.Get(0).([]*queries.ReservationView)
	return v, args.Error(1)
}

type MockShowtimeReadStore struct {
	mock.Mock
}

func (m *MockShowtimeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ShowtimeView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.ShowtimeView)
	return v, args.Error(1)
}

func (m *MockShowtimeReadStore) List(ctx context.Context, filter queries.ShowtimeFilter, limit int) ([]*queries.ShowtimeView, error) {
	args := m.Called(ctx, filter, limit)
	v, _ := args.Get(0).([]*queries.ShowtimeView)
	return v, args.Error(1)
}

func (m *MockShowtimeReadStore) ReservationCount(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func notFound() error {
	return infra.WrapRepoErr("not found", pgx.ErrNoRows)
}

func TestRoomAvailability(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()

	t.Run("cache hit skips the store", func(t *testing.T) {
		store, cache := new(MockRoomReadStore), new(MockAvailabilityCache)
		cache.On("Get", ctx, roomID).Return(7, true, nil)

		view, err := queries.NewRoomQueries(store, cache, discardLogger()).Availability(ctx, roomID)
		require.NoError(t, err)
		assert.Equal(t, &queries.AvailabilityView{RoomID: roomID, Capacity: 7, Cached: true}, view)
		store.AssertNotCalled(t, "CapacityOf", mock.Anything, mock.Anything)
	})

	t.Run("miss reads the store and fills the cache", func(t *testing.T) {
		store, cache := new(MockRoomReadStore), new(MockAvailabilityCache)
		cache.On("Get", ctx, roomID).Return(0, false, nil)
		store.On("CapacityOf", ctx, roomID).Return(12, nil)
		cache.On("Set", ctx, roomID, 12).Return(nil)

		view, err := queries.NewRoomQueries(store, cache, discardLogger()).Availability(ctx, roomID)
		require.NoError(t, err)
		assert.Equal(t, 12, view.Capacity)
		assert.False(t, view.Cached)
		cache.AssertExpectations(t)
	})

	t.Run("cache failures fall back to the store", func(t *testing.T) {
		store, cache := new(MockRoomReadStore), new(MockAvailabilityCache)
		cache.On("Get", ctx, roomID).Return(0, false, errors.New("redis down"))
		store.On("CapacityOf", ctx, roomID).Return(3, nil)
		cache.On("Set", ctx, roomID, 3).Return(errors.New("redis down"))

		view, err := queries.NewRoomQueries(store, cache, discardLogger()).Availability(ctx, roomID)
		require.NoError(t, err)
		assert.Equal(t, 3, view.Capacity)
	})

	t.Run("unknown room is not found and nothing is cached", func(t *testing.T) {
		store, cache := new(MockRoomReadStore), new(MockAvailabilityCache)
		cache.On("Get", ctx, roomID).Return(0, false, nil)
		store.On("CapacityOf", ctx, roomID).Return(0, notFound())

		_, err := queries.NewRoomQueries(store, cache, discardLogger()).Availability(ctx, roomID)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrRoomNotFound))
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReservationList(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	views := make([]*queries.ReservationView, 3)
	for i := range views {
		views[i] = &queries.ReservationView{ID: uuid.New(), SeatCount: i + 1, CreatedAt: base.Add(time.Duration(i) * time.Second)}
	}

	t.Run("an extra row produces a cursor at the last returned item", func(t *testing.T) {
		store := new(MockReservationReadStore)
		store.On("List", ctx, queries.ReservationFilter{}, (*time.Time)(nil), (*uuid.UUID)(nil), 3).Return(views, nil)

		page, err := queries.NewReservationQueries(store).List(ctx, queries.ReservationFilter{}, nil, 2)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		require.NotNil(t, page.Next)

		afterTime, afterID, err := queries.DecodeAfterCursor(page.Next.After)
		require.NoError(t, err)
		assert.True(t, views[1].CreatedAt.Equal(afterTime))
		assert.Equal(t, views[1].ID, afterID)
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		store := new(MockReservationReadStore)
		store.On("List", ctx, queries.ReservationFilter{}, (*time.Time)(nil), (*uuid.UUID)(nil), 6).Return(views, nil)

		page, err := queries.NewReservationQueries(store).List(ctx, queries.ReservationFilter{}, nil, 5)
		require.NoError(t, err)
		assert.Len(t, page.Items, 3)
		assert.Nil(t, page.Next)
	})

	t.Run("cursor is decoded into the keyset position", func(t *testing.T) {
		store := new(MockReservationReadStore)
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(views[0].CreatedAt, views[0].ID)}
		showtimeID := uuid.New()
		filter := queries.ReservationFilter{ShowtimeID: &showtimeID}

		store.On("List", ctx, filter,
			mock.MatchedBy(func(tm *time.Time) bool { return tm != nil && tm.Equal(views[0].CreatedAt) }),
			mock.MatchedBy(func(id *uuid.UUID) bool { return id != nil && *id == views[0].ID }),
			queries.DefaultListLimit+1,
		).Return(views[1:], nil)

		page, err := queries.NewReservationQueries(store).List(ctx, filter, cursor, 0)
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		store.AssertExpectations(t)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		store := new(MockReservationReadStore)
		_, err := queries.NewReservationQueries(store).List(ctx, queries.ReservationFilter{}, &queries.Cursor{After: "%%%"}, 10)
		require.Error(t, err)
		assert.True(t, errs.Is(err, queries.ErrInvalidCursor))
		store.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is a storage error", func(t *testing.T) {
		store := new(MockReservationReadStore)
		store.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := queries.NewReservationQueries(store).List(ctx, queries.ReservationFilter{}, nil, 10)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrStorage))
	})
}

func TestCanDeleteShowtime(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	cases := []struct {
		name    string
		count   int
		err     error
		want    bool
		wantErr error
	}{
		{name: "no reservations", count: 0, want: true},
		{name: "has reservations", count: 2, want: false},
		{name: "unknown showtime", err: notFound(), wantErr: shared.ErrShowtimeNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := new(MockShowtimeReadStore)
			store.On("ReservationCount", ctx, id).Return(c.count, c.err)

			got, err := queries.NewShowtimeQueries(store).CanDeleteShowtime(ctx, id)
			if c.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, c.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 10, queries.ValidateLimit(10))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit+1))
}
