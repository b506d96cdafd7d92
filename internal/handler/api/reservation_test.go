//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"cineapp/internal/domain/room"
	"cineapp/internal/handler/api"
	resdto "cineapp/internal/handler/dto/response"
	"cineapp/internal/pkg/errs"
	"cineapp/internal/usecase/commands"
	"cineapp/internal/usecase/queries"
	"cineapp/internal/usecase/shared"
	"cineapp/tests/common/builder"
	"cineapp/tests/common/httptest"
	"cineapp/tests/common/testutil"
	commandsmock "cineapp/tests/mock/commands"
	queriesmock "cineapp/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations", s.handler.Create)
	s.router.GET("/reservations", s.handler.List)
	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.PUT("/reservations/:id", s.handler.Update)
	s.router.DELETE("/reservations/:id", s.handler.Delete)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BuildCreateCommand(), (*uuid.UUID)(nil)).
			Return(&commands.CreateReservationResult{Reservation: view}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)

		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal(view.ID.String(), res.ID)
		s.Equal(view.RoomID.String(), res.RoomID)
		s.Equal(2, res.SeatCount)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Location": "/api/reservations/" + view.ID.String()})
	})

	s.Run("success: replay returns 200 OK", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), &key).
			Return(&commands.CreateReservationResult{Reservation: view, IsReplayed: true}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": key.String()})

		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(view.ID.String(), res.ID)
	})

	s.Run("failure: malformed idempotency key", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid idempotency key format")
		httptest.AssertHeaders(s.T(), w, map[string]string{"Location": ""})
	})

	missing := []testCaseReservation{
		{name: "missing field: showtimeId", mutate: testutil.Field("showtimeId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: customerId", mutate: testutil.Field("customerId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: seatCount", mutate: testutil.Field("seatCount", nil), expectCode: http.StatusBadRequest},
		{name: "malformed showtimeId", mutate: testutil.Field("showtimeId", "abc"), expectCode: http.StatusBadRequest},
		{name: "non-numeric seatCount", mutate: testutil.Field("seatCount", "two"), expectCode: http.StatusBadRequest},
		{name: "seatCount above int4 range", mutate: testutil.Field("seatCount", int64(2147483648)), expectCode: http.StatusBadRequest},
	}
	for _, tc := range missing {
		s.Run(tc.name, func() {
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, nil)
			httptest.AssertErrorResponse(s.T(), w, tc.expectCode, "Invalid request format")
		})
	}

	s.Run("failure: zero seats reaches the command and is rejected", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("seatCount", 0))
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("seat count must be positive"), shared.ErrValidation)).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, nil)
		res := httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Validation failed")
		s.Equal("seat count must be positive", res.Detail["reason"])
	})

	s.Run("failure: insufficient capacity carries detail", func() {
		roomID := uuid.New()
		capErr := errs.Mark(&room.InsufficientCapacityError{RoomID: roomID, Requested: 3, Available: 2}, shared.ErrInsufficientCapacity)
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, capErr).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)
		res := httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Insufficient capacity")
		s.Equal(roomID.String(), res.Detail["roomId"])
		s.EqualValues(3, res.Detail["requested"])
		s.EqualValues(2, res.Detail["available"])
	})

	errorCases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unknown showtime", errs.Mark(errors.New("no rows"), shared.ErrShowtimeNotFound), http.StatusNotFound, "Showtime not found"},
		{"unknown customer", errs.Mark(errors.New("fk"), shared.ErrCustomerNotFound), http.StatusNotFound, "Customer not found"},
		{"key reused", shared.ErrIdempotencyKeyReused, http.StatusConflict, "Idempotency key reused"},
		{"key in progress", shared.ErrIdempotencyInProgress, http.StatusConflict, "currently being processed"},
		{"storage failure", errs.Mark(errors.New("conn reset"), shared.ErrStorage), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range errorCases {
		s.Run("failure: "+tc.name, func() {
			s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)
			httptest.AssertErrorResponse(s.T(), w, tc.code, tc.msg)
		})
	}
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, nil)
		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(view.ShowtimeID.String(), res.ShowtimeID)
	})

	s.Run("failure: invalid id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/nope", nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID format")
	})

	s.Run("failure: not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("no rows"), shared.ErrReservationNotFound)).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+uuid.NewString(), nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestList() {
	showtimeID := uuid.New()
	view := builder.NewReservationBuilder().WithShowtime(showtimeID).BuildView()

	s.Run("success: filter and cursor are forwarded", func() {
		s.mockQueries.EXPECT().List(gomock.Any(),
			queries.ReservationFilter{ShowtimeID: &showtimeID},
			&queries.Cursor{After: "abc"},
			5,
		).Return(&queries.Page[*queries.ReservationView]{
			Items: []*queries.ReservationView{view},
			Next:  &queries.Cursor{After: "next"},
		}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations?showtime_id="+showtimeID.String()+"&after=abc&limit=5", nil, nil)

		var res resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Len(res.Items, 1)
		s.Require().NotNil(res.NextAfter)
		s.Equal("next", *res.NextAfter)
	})

	s.Run("failure: invalid customer id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?customer_id=bad", nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid customer ID format")
	})

	s.Run("failure: limit out of range", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?limit=500", nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("failure: malformed cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidCursor).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?after=%25%25", nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid cursor")
	})
}

// ================================================================================
// TestUpdate / TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	b := builder.NewReservationBuilder().WithSeats(5)
	view := b.BuildView()
	url := "/reservations/" + view.ID.String()

	s.Run("success", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, b.BuildUpdateCommand()).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildUpdateRequestDTO(), nil)
		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(5, res.SeatCount)
	})

	s.Run("failure: target room lacks seats", func() {
		capErr := errs.Mark(&room.InsufficientCapacityError{RoomID: uuid.New(), Requested: 5, Available: 1}, shared.ErrInsufficientCapacity)
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any()).Return(nil, capErr).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildUpdateRequestDTO(), nil)
		res := httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Insufficient capacity")
		s.EqualValues(1, res.Detail["available"])
	})

	s.Run("failure: orphaned showtime surfaces as not found", func() {
		err := errs.Mark(errs.Mark(errors.New("dangling"), shared.ErrOrphanedReference), shared.ErrShowtimeNotFound)
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any()).Return(nil, err).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildUpdateRequestDTO(), nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Showtime not found")
	})

	s.Run("failure: malformed body", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, "{", nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *ReservationHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, nil)
		s.Equal(http.StatusNoContent, w.Code)
		s.Empty(w.Body.String())
	})

	s.Run("failure: not found", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).
			Return(errs.Mark(errors.New("no rows"), shared.ErrReservationNotFound)).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}
