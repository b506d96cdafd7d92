//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"cineapp/internal/handler/api"
	resdto "cineapp/internal/handler/dto/response"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"
	"cineapp/tests/common/builder"
	"cineapp/tests/common/httptest"
	"cineapp/tests/common/testutil"
	commandsmock "cineapp/tests/mock/commands"
	queriesmock "cineapp/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRoomRouter(t *testing.T) (*gin.Engine, *commandsmock.MockRoomCommands, *queriesmock.MockRoomQueries) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockRoomCommands(ctrl)
	q := queriesmock.NewMockRoomQueries(ctrl)
	h := api.NewRoomHandler(cmds, q)

	r := gin.New()
	r.POST("/rooms", h.Create)
	r.PUT("/rooms/:id", h.Update)
	r.DELETE("/rooms/:id", h.Delete)
	r.GET("/rooms/:id/availability", h.Availability)
	return r, cmds, q
}

func TestRoomHandler(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		router, cmds, _ := newRoomRouter(t)
		b := builder.NewRoomBuilder()
		view := b.BuildView()
		cmds.EXPECT().Create(gomock.Any(), b.BuildCreateCommand()).Return(view, nil)

		w := httptest.PerformRequest(t, router, http.MethodPost, "/rooms", b.BuildCreateRequestDTO(), nil)
		var res resdto.RoomResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		assert.Equal(t, 20, res.Capacity)
	})

	t.Run("create rejects bad bodies", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{"missing capacity", testutil.Field("capacity", nil)},
			{"negative capacity", testutil.Field("capacity", -1)},
			{"capacity above int4 range", testutil.Field("capacity", int64(2147483648))},
			{"missing name", testutil.Field("name", nil)},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				router, _, _ := newRoomRouter(t)
				body := testutil.DtoMap(t, builder.NewRoomBuilder().BuildCreateRequestDTO(), c.mutate)
				w := httptest.PerformRequest(t, router, http.MethodPost, "/rooms", body, nil)
				httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	t.Run("zero capacity is accepted", func(t *testing.T) {
		router, cmds, _ := newRoomRouter(t)
		b := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) { b.Capacity = 0 })
		cmds.EXPECT().Create(gomock.Any(), b.BuildCreateCommand()).Return(b.BuildView(), nil)

		w := httptest.PerformRequest(t, router, http.MethodPost, "/rooms", b.BuildCreateRequestDTO(), nil)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)
	})

	t.Run("rename ignores capacity in the body", func(t *testing.T) {
		router, cmds, _ := newRoomRouter(t)
		id := uuid.New()
		cmds.EXPECT().Rename(gomock.Any(), id, "Screen 9").Return(&queries.RoomView{ID: id, Name: "Screen 9", Capacity: 4}, nil)

		w := httptest.PerformRequest(t, router, http.MethodPut, "/rooms/"+id.String(),
			map[string]any{"name": "Screen 9", "capacity": 999}, nil)
		var res resdto.RoomResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.Equal(t, 4, res.Capacity)
	})

	t.Run("delete of a referenced room is a conflict", func(t *testing.T) {
		router, cmds, _ := newRoomRouter(t)
		cmds.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errs.Mark(errors.New("fk"), shared.ErrInUse))

		w := httptest.PerformRequest(t, router, http.MethodDelete, "/rooms/"+uuid.NewString(), nil, nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Resource is still referenced")
	})

	t.Run("availability", func(t *testing.T) {
		router, _, q := newRoomRouter(t)
		id := uuid.New()
		q.EXPECT().Availability(gomock.Any(), id).Return(&queries.AvailabilityView{RoomID: id, Capacity: 6}, nil)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/rooms/"+id.String()+"/availability", nil, nil)
		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.Equal(t, resdto.AvailabilityResponse{RoomID: id.String(), Capacity: 6}, res)
	})

	t.Run("availability of an unknown room", func(t *testing.T) {
		router, _, q := newRoomRouter(t)
		q.EXPECT().Availability(gomock.Any(), gomock.Any()).Return(nil, errs.Mark(errors.New("no rows"), shared.ErrRoomNotFound))

		w := httptest.PerformRequest(t, router, http.MethodGet, "/rooms/"+uuid.NewString()+"/availability", nil, nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Room not found")
	})
}

func newShowtimeRouter(t *testing.T) (*gin.Engine, *commandsmock.MockShowtimeCommands, *queriesmock.MockShowtimeQueries) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockShowtimeCommands(ctrl)
	q := queriesmock.NewMockShowtimeQueries(ctrl)
	h := api.NewShowtimeHandler(cmds, q)

	r := gin.New()
	r.POST("/showtimes", h.Create)
	r.GET("/showtimes", h.List)
	r.PUT("/showtimes/:id", h.Update)
	r.DELETE("/showtimes/:id", h.Delete)
	r.GET("/showtimes/:id/deletable", h.Deletable)
	return r, cmds, q
}

func TestShowtimeHandler(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		router, cmds, _ := newShowtimeRouter(t)
		b := builder.NewShowtimeBuilder()
		view := b.BuildView()
		cmds.EXPECT().Create(gomock.Any(), gomock.Any()).Return(view, nil)

		w := httptest.PerformRequest(t, router, http.MethodPost, "/showtimes", b.BuildRequestDTO(), nil)
		var res resdto.ShowtimeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		assert.Equal(t, view.ID.String(), res.ID)
	})

	t.Run("move into a smaller room is a conflict", func(t *testing.T) {
		router, cmds, _ := newShowtimeRouter(t)
		cmds.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("room too small"), shared.ErrInsufficientCapacity))

		w := httptest.PerformRequest(t, router, http.MethodPut, "/showtimes/"+uuid.NewString(),
			builder.NewShowtimeBuilder().BuildRequestDTO(), nil)
		res := httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient capacity")
		assert.Empty(t, res.Detail)
	})

	t.Run("delete with reservations is a conflict", func(t *testing.T) {
		router, cmds, _ := newShowtimeRouter(t)
		cmds.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(shared.ErrShowtimeHasReservations)

		w := httptest.PerformRequest(t, router, http.MethodDelete, "/showtimes/"+uuid.NewString(), nil, nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Showtime has reservations")
	})

	t.Run("deletable", func(t *testing.T) {
		router, _, q := newShowtimeRouter(t)
		id := uuid.New()
		q.EXPECT().CanDeleteShowtime(gomock.Any(), id).Return(false, nil)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/showtimes/"+id.String()+"/deletable", nil, nil)
		var res resdto.DeletableResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.False(t, res.Deletable)
	})

	t.Run("list rejects a malformed room filter", func(t *testing.T) {
		router, _, _ := newShowtimeRouter(t)
		w := httptest.PerformRequest(t, router, http.MethodGet, "/showtimes?room_id=x", nil, nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid room ID format")
	})
}

func TestUnhandledErrorLogsStack(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	router, cmds, _ := newRoomRouter(t)
	cmds.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errs.Wrap(errs.New("disk full"), "delete room"))

	w := httptest.PerformRequest(t, router, http.MethodDelete, "/rooms/"+uuid.NewString(), nil, nil)
	httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")

	var entry struct {
		Msg   string   `json:"msg"`
		Error string   `json:"error"`
		Stack []string `json:"stack"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "unhandled command error", entry.Msg)
	assert.Equal(t, "delete room: disk full", entry.Error)
	require.NotEmpty(t, entry.Stack)
	assert.LessOrEqual(t, len(entry.Stack), 20)
	assert.Contains(t, entry.Stack[0], "delete room: disk full")
}
