//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cineapp/internal/domain/room"
	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/commands"
	"cineapp/internal/usecase/shared"
	"cineapp/tests/common/builder"
	"cineapp/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClock() *clock.MockClock {
	return clock.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestRoomCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("create stores the initial capacity", func(t *testing.T) {
		store := memuow.New()
		cmds := commands.NewRoomCommands(store, &recordingCache{}, newClock(), discardLogger())

		view, err := cmds.Create(ctx, builder.NewRoomBuilder().BuildCreateCommand())
		require.NoError(t, err)
		assert.Equal(t, "Screen 1", view.Name)
		assert.Equal(t, 20, view.Capacity)

		capacity, ok := store.RoomCapacity(view.ID)
		require.True(t, ok)
		assert.Equal(t, 20, capacity)
	})

	t.Run("zero capacity is allowed", func(t *testing.T) {
		cmds := commands.NewRoomCommands(memuow.New(), &recordingCache{}, newClock(), discardLogger())

		view, err := cmds.Create(ctx, builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) { b.Capacity = 0 }).BuildCreateCommand())
		require.NoError(t, err)
		assert.Equal(t, 0, view.Capacity)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.RoomBuilder)
		}{
			{name: "negative capacity", mutate: func(b *builder.RoomBuilder) { b.Capacity = -1 }},
			{name: "capacity above column range", mutate: func(b *builder.RoomBuilder) { b.Capacity = room.MaxCapacity + 1 }},
			{name: "blank name", mutate: func(b *builder.RoomBuilder) { b.Name = "   " }},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				cmds := commands.NewRoomCommands(memuow.New(), &recordingCache{}, newClock(), discardLogger())
				_, err := cmds.Create(ctx, builder.NewRoomBuilder().With(c.mutate).BuildCreateCommand())
				require.Error(t, err)
				assert.True(t, errs.Is(err, shared.ErrValidation))
			})
		}
	})

	t.Run("rename keeps capacity", func(t *testing.T) {
		store := memuow.New()
		roomID := store.SeedRoom("Old", 7)
		cmds := commands.NewRoomCommands(store, &recordingCache{}, newClock(), discardLogger())

		view, err := cmds.Rename(ctx, roomID, "  New  ")
		require.NoError(t, err)
		assert.Equal(t, "New", view.Name)
		assert.Equal(t, 7, view.Capacity)
	})

	t.Run("rename unknown room", func(t *testing.T) {
		cmds := commands.NewRoomCommands(memuow.New(), &recordingCache{}, newClock(), discardLogger())
		_, err := cmds.Rename(ctx, uuid.New(), "New")
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrRoomNotFound))
	})

	t.Run("delete refuses a room with showtimes", func(t *testing.T) {
		store := memuow.New()
		roomID := store.SeedRoom("Busy", 7)
		store.SeedShowtime(store.SeedMovie("Movie"), roomID)
		cache := &recordingCache{}
		cmds := commands.NewRoomCommands(store, cache, newClock(), discardLogger())

		err := cmds.Delete(ctx, roomID)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrInUse))
		assert.Empty(t, cache.Invalidated())
	})

	t.Run("delete drops the cached availability", func(t *testing.T) {
		store := memuow.New()
		roomID := store.SeedRoom("Idle", 7)
		cache := &recordingCache{}
		cmds := commands.NewRoomCommands(store, cache, newClock(), discardLogger())

		require.NoError(t, cmds.Delete(ctx, roomID))
		assert.Equal(t, []uuid.UUID{roomID}, cache.Invalidated())
		_, ok := store.RoomCapacity(roomID)
		assert.False(t, ok)
	})
}

func TestMovieCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("create, update and delete", func(t *testing.T) {
		store := memuow.New()
		cmds := commands.NewMovieCommands(store, newClock())

		view, err := cmds.Create(ctx, commands.MovieRequest{Title: "Heat", Genre: "Crime"})
		require.NoError(t, err)
		assert.Equal(t, "Heat", view.Title)

		updated, err := cmds.Update(ctx, view.ID, commands.MovieRequest{Title: "Heat (1995)", Genre: "Crime"})
		require.NoError(t, err)
		assert.Equal(t, "Heat (1995)", updated.Title)

		require.NoError(t, cmds.Delete(ctx, view.ID))
		err = cmds.Delete(ctx, view.ID)
		assert.True(t, errs.Is(err, shared.ErrMovieNotFound))
	})

	t.Run("empty title", func(t *testing.T) {
		cmds := commands.NewMovieCommands(memuow.New(), newClock())
		_, err := cmds.Create(ctx, commands.MovieRequest{Title: "", Genre: "Crime"})
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})

	t.Run("delete refuses a movie with showtimes", func(t *testing.T) {
		store := memuow.New()
		movieID := store.SeedMovie("Scheduled")
		store.SeedShowtime(movieID, store.SeedRoom("Room", 5))
		cmds := commands.NewMovieCommands(store, newClock())

		err := cmds.Delete(ctx, movieID)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrInUse))
	})
}

func TestCustomerCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("email is normalized and unique", func(t *testing.T) {
		store := memuow.New()
		cmds := commands.NewCustomerCommands(store, newClock())

		view, err := cmds.Create(ctx, commands.CustomerRequest{Name: "Ana", Email: " Ana@Example.com "})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", view.Email)

		_, err = cmds.Create(ctx, commands.CustomerRequest{Name: "Other", Email: "ana@example.com"})
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrDuplicateEmail))
	})

	t.Run("update onto a taken email", func(t *testing.T) {
		store := memuow.New()
		store.SeedCustomer("taken@example.com")
		id := store.SeedCustomer("mine@example.com")
		cmds := commands.NewCustomerCommands(store, newClock())

		_, err := cmds.Update(ctx, id, commands.CustomerRequest{Name: "Me", Email: "taken@example.com"})
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrDuplicateEmail))
	})

	t.Run("invalid email", func(t *testing.T) {
		cmds := commands.NewCustomerCommands(memuow.New(), newClock())
		_, err := cmds.Create(ctx, commands.CustomerRequest{Name: "Ana", Email: "not-an-email"})
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})

	t.Run("delete refuses a customer with reservations", func(t *testing.T) {
		store := memuow.New()
		roomID := store.SeedRoom("Room", 5)
		showtimeID := store.SeedShowtime(store.SeedMovie("Movie"), roomID)
		id := store.SeedCustomer("booked@example.com")
		store.SeedReservation(showtimeID, id, 1)
		cmds := commands.NewCustomerCommands(store, newClock())

		err := cmds.Delete(ctx, id)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrInUse))
	})

	t.Run("update unknown customer", func(t *testing.T) {
		cmds := commands.NewCustomerCommands(memuow.New(), newClock())
		_, err := cmds.Update(ctx, uuid.New(), commands.CustomerRequest{Name: "Ana", Email: "ana@example.com"})
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrCustomerNotFound))
	})
}
