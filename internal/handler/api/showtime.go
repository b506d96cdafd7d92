package api

import (
	"net/http"

	reqdto "cineapp/internal/handler/dto/request"
	resdto "cineapp/internal/handler/dto/response"
	"cineapp/internal/handler/httperr"
	"cineapp/internal/usecase/commands"
	"cineapp/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ShowtimeHandler struct {
	cmds commands.ShowtimeCommands
	q    queries.ShowtimeQueries
}

func NewShowtimeHandler(cmds commands.ShowtimeCommands, q queries.ShowtimeQueries) *ShowtimeHandler {
	return &ShowtimeHandler{cmds: cmds, q: q}
}

// @Summary Create showtime
// @Tags showtimes
// @Accept json
// @Produce json
// @Param request body reqdto.ShowtimeRequest true "Showtime"
// @Success 201 {object} resdto.ShowtimeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /showtimes [post]
func (h *ShowtimeHandler) Create(c *gin.Context) {
	var req reqdto.ShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), req.ToCreateCommand())
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromShowtimeView(view))
}

// @Summary Get showtime
// @Tags showtimes
// @Produce json
// @Param id path string true "Showtime ID"
// @Success 200 {object} resdto.ShowtimeResponse
// @Failure 404 {object} httperr.Response
// @Router /showtimes/{id} [get]
func (h *ShowtimeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "showtime")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShowtimeView(view))
}

// @Summary List showtimes
// @Tags showtimes
// @Produce json
// @Param movie_id query string false "Movie ID"
// @Param room_id query string false "Room ID"
// @Param limit query int false "Max items (max 200)"
// @Success 200 {array} resdto.ShowtimeResponse
// @Router /showtimes [get]
func (h *ShowtimeHandler) List(c *gin.Context) {
	var query reqdto.ListShowtimesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	movieID, err := parseOptionalUUID(query.MovieID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid movie ID format", nil)
		return
	}
	roomID, err := parseOptionalUUID(query.RoomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	views, err := h.q.List(c.Request.Context(), queries.ShowtimeFilter{MovieID: movieID, RoomID: roomID}, query.Limit)
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShowtimeViews(views))
}

// @Summary Update showtime
// @Description Moving a showtime to another room carries its sold seats along
// @Tags showtimes
// @Accept json
// @Produce json
// @Param id path string true "Showtime ID"
// @Param request body reqdto.ShowtimeRequest true "Showtime"
// @Success 200 {object} resdto.ShowtimeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /showtimes/{id} [put]
func (h *ShowtimeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "showtime")
	if !ok {
		return
	}
	var req reqdto.ShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Update(c.Request.Context(), id, req.ToUpdateCommand())
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShowtimeView(view))
}

// @Summary Delete showtime
// @Description Refused with 409 while reservations reference the showtime
// @Tags showtimes
// @Param id path string true "Showtime ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /showtimes/{id} [delete]
func (h *ShowtimeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "showtime")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check whether a showtime can be deleted
// @Tags showtimes
// @Produce json
// @Param id path string true "Showtime ID"
// @Success 200 {object} resdto.DeletableResponse
// @Failure 404 {object} httperr.Response
// @Router /showtimes/{id}/deletable [get]
func (h *ShowtimeHandler) Deletable(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "showtime")
	if !ok {
		return
	}
	deletable, err := h.q.CanDeleteShowtime(c.Request.Context(), id)
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DeletableResponse{Deletable: deletable})
}
