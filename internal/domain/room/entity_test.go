//go:build unit

package room_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cineapp/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRoom(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := room.NewRoom("  Screen 1 ", 20, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Screen 1", actual.Name().String())
		assert.Equal(t, 20, actual.Capacity().Seats())
		assert.Equal(t, now, actual.CreatedAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("construction validation", func(t *testing.T) {
		cases := []struct {
			name     string
			roomName string
			capacity int
			errIs    error
		}{
			{name: "zero capacity", roomName: "A", capacity: 0},
			{name: "negative capacity", roomName: "A", capacity: -1, errIs: room.ErrNegativeCapacity},
			{name: "capacity at column maximum", roomName: "A", capacity: room.MaxCapacity},
			{name: "capacity above column range", roomName: "A", capacity: room.MaxCapacity + 1, errIs: room.ErrCapacityOutOfRange},
			{name: "empty name", roomName: "", capacity: 5, errIs: room.ErrEmptyName},
			{name: "whitespace name", roomName: "  ", capacity: 5, errIs: room.ErrEmptyName},
			{name: "name at limit", roomName: strings.Repeat("a", room.MaxNameLength), capacity: 5},
			{name: "name over limit", roomName: strings.Repeat("a", room.MaxNameLength+1), capacity: 5, errIs: room.ErrNameTooLong},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				actual, err := room.NewRoom(c.roomName, c.capacity, now)
				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, actual)
					return
				}
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			})
		}
	})
}

func TestRoomReserve(t *testing.T) {
	later := now.Add(time.Minute)

	t.Run("debits and stamps the update time", func(t *testing.T) {
		r, err := room.NewRoom("A", 5, now)
		require.NoError(t, err)

		require.NoError(t, r.Reserve(3, later))
		assert.Equal(t, 2, r.Capacity().Seats())
		assert.Equal(t, later, r.UpdatedAt())
	})

	t.Run("exact fit empties the room", func(t *testing.T) {
		r, _ := room.NewRoom("A", 5, now)
		require.NoError(t, r.Reserve(5, later))
		assert.Equal(t, 0, r.Capacity().Seats())
	})

	t.Run("refusal reports what was left and changes nothing", func(t *testing.T) {
		r, _ := room.NewRoom("A", 2, now)

		err := r.Reserve(3, later)
		require.Error(t, err)
		require.ErrorIs(t, err, room.ErrInsufficientCapacity)

		var capErr *room.InsufficientCapacityError
		require.True(t, errors.As(err, &capErr))
		assert.Equal(t, r.ID(), capErr.RoomID)
		assert.Equal(t, 3, capErr.Requested)
		assert.Equal(t, 2, capErr.Available)

		assert.Equal(t, 2, r.Capacity().Seats())
		assert.Equal(t, now, r.UpdatedAt())
	})

	t.Run("non-positive seat counts", func(t *testing.T) {
		r, _ := room.NewRoom("A", 2, now)
		require.ErrorIs(t, r.Reserve(0, later), room.ErrNonPositiveSeats)
		require.ErrorIs(t, r.Release(-1, later), room.ErrNonPositiveSeats)
		assert.Equal(t, 2, r.Capacity().Seats())
	})

	t.Run("release then reserve round trip", func(t *testing.T) {
		r, _ := room.NewRoom("A", 4, now)
		require.NoError(t, r.Reserve(4, later))
		require.NoError(t, r.Release(4, later))
		assert.Equal(t, 4, r.Capacity().Seats())
	})
}

func TestRoomRename(t *testing.T) {
	r, _ := room.NewRoom("A", 4, now)

	require.ErrorIs(t, r.Rename(" ", now), room.ErrEmptyName)
	assert.Equal(t, "A", r.Name().String())

	require.NoError(t, r.Rename("B", now.Add(time.Hour)))
	assert.Equal(t, "B", r.Name().String())
	assert.Equal(t, 4, r.Capacity().Seats())
}
