//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cineapp/internal/domain/room"
	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/config"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/commands"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"
	"cineapp/tests/common/builder"
	"cineapp/tests/common/memuow"
	queriesmock "cineapp/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ShowtimeCommandsTestSuite struct {
	suite.Suite
	store        *memuow.Store
	cache        *recordingCache
	clock        *clock.MockClock
	mockCtrl     *gomock.Controller
	mockQueries  *queriesmock.MockShowtimeQueries
	commands     commands.ShowtimeCommands
	reservations commands.ReservationCommands

	movie, roomA, roomB uuid.UUID
	customer            uuid.UUID
}

func (s *ShowtimeCommandsTestSuite) SetupTest() {
	s.store = memuow.New()
	s.cache = &recordingCache{}
	s.clock = clock.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockShowtimeQueries(s.mockCtrl)
	s.commands = commands.NewShowtimeCommands(s.store, s.cache, s.mockQueries, s.clock, discardLogger())
	s.reservations = commands.NewReservationCommands(s.store, s.cache, s.clock, config.IdempotencyConfig{TTL: time.Hour}, discardLogger())

	s.movie = s.store.SeedMovie("Test Movie")
	s.roomA = s.store.SeedRoom("Room A", 20)
	s.roomB = s.store.SeedRoom("Room B", 10)
	s.customer = s.store.SeedCustomer("viewer@example.com")
}

func TestShowtimeCommandsSuite(t *testing.T) {
	suite.Run(t, new(ShowtimeCommandsTestSuite))
}

func (s *ShowtimeCommandsTestSuite) reserve(showtimeID uuid.UUID, seats int) {
	req := builder.NewReservationBuilder().
		WithShowtime(showtimeID).
		WithCustomer(s.customer).
		WithSeats(seats).
		BuildCreateCommand()
	_, err := s.reservations.Create(context.Background(), req, nil)
	s.Require().NoError(err)
}

func (s *ShowtimeCommandsTestSuite) capacity(roomID uuid.UUID) int {
	c, ok := s.store.RoomCapacity(roomID)
	s.Require().True(ok)
	return c
}

func (s *ShowtimeCommandsTestSuite) TestCreate() {
	s.Run("creates and reads the joined view back", func() {
		s.SetupTest()
		t := s.T()

		req := builder.NewShowtimeBuilder().With(func(b *builder.ShowtimeBuilder) {
			b.MovieID, b.RoomID = s.movie, s.roomA
		})
		view := req.BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(view, nil).Times(1)

		got, err := s.commands.Create(context.Background(), req.BuildCreateCommand())
		require.NoError(t, err)
		assert.Equal(t, view, got)
		assert.Equal(t, 1, s.store.Commits())
	})

	s.Run("unknown movie or room is not found", func() {
		s.SetupTest()
		cases := []struct {
			name   string
			mutate func(*builder.ShowtimeBuilder)
			errIs  error
		}{
			{name: "movie", mutate: func(b *builder.ShowtimeBuilder) { b.RoomID = s.roomA }, errIs: shared.ErrMovieNotFound},
			{name: "room", mutate: func(b *builder.ShowtimeBuilder) { b.MovieID = s.movie }, errIs: shared.ErrRoomNotFound},
		}
		for _, c := range cases {
			s.Run(c.name, func() {
				t := s.T()
				_, err := s.commands.Create(context.Background(), builder.NewShowtimeBuilder().With(c.mutate).BuildCreateCommand())
				require.Error(t, err)
				assert.True(t, errs.Is(err, c.errIs))
			})
		}
	})

	s.Run("missing start time is a validation error", func() {
		s.SetupTest()
		t := s.T()

		req := builder.NewShowtimeBuilder().With(func(b *builder.ShowtimeBuilder) {
			b.MovieID, b.RoomID, b.StartsAt = s.movie, s.roomA, time.Time{}
		})
		_, err := s.commands.Create(context.Background(), req.BuildCreateCommand())
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})
}

func (s *ShowtimeCommandsTestSuite) TestUpdate() {
	s.Run("moving to another room carries sold seats along", func() {
		s.SetupTest()
		t := s.T()

		showtimeID := s.store.SeedShowtime(s.movie, s.roomA)
		s.reserve(showtimeID, 4)
		s.reserve(showtimeID, 3)
		require.Equal(t, 13, s.capacity(s.roomA))

		s.mockQueries.EXPECT().GetByID(gomock.Any(), showtimeID).Return(&queries.ShowtimeView{ID: showtimeID, RoomID: s.roomB}, nil)

		req := builder.NewShowtimeBuilder().With(func(b *builder.ShowtimeBuilder) {
			b.MovieID, b.RoomID = s.movie, s.roomB
		}).BuildUpdateCommand()
		_, err := s.commands.Update(context.Background(), showtimeID, req)
		require.NoError(t, err)

		assert.Equal(t, 20, s.capacity(s.roomA))
		assert.Equal(t, 3, s.capacity(s.roomB))
		roomID, _ := s.store.ShowtimeRoom(showtimeID)
		assert.Equal(t, s.roomB, roomID)
		assert.Subset(t, s.cache.Invalidated(), []uuid.UUID{s.roomA, s.roomB})
	})

	s.Run("target room too small refuses the whole update", func() {
		s.SetupTest()
		t := s.T()

		showtimeID := s.store.SeedShowtime(s.movie, s.roomA)
		s.reserve(showtimeID, 12)

		req := builder.NewShowtimeBuilder().With(func(b *builder.ShowtimeBuilder) {
			b.MovieID, b.RoomID = s.movie, s.roomB
		}).BuildUpdateCommand()
		_, err := s.commands.Update(context.Background(), showtimeID, req)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrInsufficientCapacity))

		var capErr *room.InsufficientCapacityError
		require.True(t, errs.As(err, &capErr))
		assert.Equal(t, 12, capErr.Requested)
		assert.Equal(t, 10, capErr.Available)

		assert.Equal(t, 8, s.capacity(s.roomA))
		assert.Equal(t, 10, s.capacity(s.roomB))
		roomID, _ := s.store.ShowtimeRoom(showtimeID)
		assert.Equal(t, s.roomA, roomID)
	})

	s.Run("same room only reschedules", func() {
		s.SetupTest()
		t := s.T()

		showtimeID := s.store.SeedShowtime(s.movie, s.roomA)
		s.reserve(showtimeID, 5)
		invalidatedBefore := len(s.cache.Invalidated())

		s.mockQueries.EXPECT().GetByID(gomock.Any(), showtimeID).Return(&queries.ShowtimeView{ID: showtimeID}, nil)

		req := builder.NewShowtimeBuilder().With(func(b *builder.ShowtimeBuilder) {
			b.MovieID, b.RoomID = s.movie, s.roomA
		}).BuildUpdateCommand()
		_, err := s.commands.Update(context.Background(), showtimeID, req)
		require.NoError(t, err)

		assert.Equal(t, 15, s.capacity(s.roomA))
		assert.Len(t, s.cache.Invalidated(), invalidatedBefore)
	})

	s.Run("unknown target room is not found", func() {
		s.SetupTest()
		t := s.T()

		showtimeID := s.store.SeedShowtime(s.movie, s.roomA)
		s.reserve(showtimeID, 2)

		req := builder.NewShowtimeBuilder().With(func(b *builder.ShowtimeBuilder) {
			b.MovieID = s.movie
		}).BuildUpdateCommand()
		_, err := s.commands.Update(context.Background(), showtimeID, req)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrRoomNotFound))
		assert.Equal(t, 18, s.capacity(s.roomA))
	})

	s.Run("unknown showtime", func() {
		s.SetupTest()
		t := s.T()

		req := builder.NewShowtimeBuilder().With(func(b *builder.ShowtimeBuilder) {
			b.MovieID, b.RoomID = s.movie, s.roomA
		}).BuildUpdateCommand()
		_, err := s.commands.Update(context.Background(), uuid.New(), req)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrShowtimeNotFound))
	})
}

func (s *ShowtimeCommandsTestSuite) TestDelete() {
	s.Run("refused while reservations reference it", func() {
		s.SetupTest()
		t := s.T()

		showtimeID := s.store.SeedShowtime(s.movie, s.roomA)
		s.reserve(showtimeID, 1)

		err := s.commands.Delete(context.Background(), showtimeID)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrShowtimeHasReservations))
		_, ok := s.store.ShowtimeRoom(showtimeID)
		assert.True(t, ok)
	})

	s.Run("succeeds once the showtime is empty", func() {
		s.SetupTest()
		t := s.T()

		showtimeID := s.store.SeedShowtime(s.movie, s.roomA)
		require.NoError(t, s.commands.Delete(context.Background(), showtimeID))
		_, ok := s.store.ShowtimeRoom(showtimeID)
		assert.False(t, ok)
	})

	s.Run("unknown showtime", func() {
		s.SetupTest()
		t := s.T()

		err := s.commands.Delete(context.Background(), uuid.New())
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrShowtimeNotFound))
	})
}
