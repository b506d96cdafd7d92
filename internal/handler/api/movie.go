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

type MovieHandler struct {
	cmds commands.MovieCommands
	q    queries.MovieQueries
}

func NewMovieHandler(cmds commands.MovieCommands, q queries.MovieQueries) *MovieHandler {
	return &MovieHandler{cmds: cmds, q: q}
}

// @Summary Create movie
// @Tags movies
// @Accept json
// @Produce json
// @Param request body reqdto.MovieRequest true "Movie"
// @Success 201 {object} resdto.MovieResponse
// @Failure 400 {object} httperr.Response
// @Router /movies [post]
func (h *MovieHandler) Create(c *gin.Context) {
	var req reqdto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromMovieView(view))
}

// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} resdto.MovieResponse
// @Failure 404 {object} httperr.Response
// @Router /movies/{id} [get]
func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "movie")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMovieView(view))
}

// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {array} resdto.MovieResponse
// @Router /movies [get]
func (h *MovieHandler) List(c *gin.Context) {
	var query reqdto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	views, err := h.q.List(c.Request.Context(), query.Limit)
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMovieViews(views))
}

// @Summary Update movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param request body reqdto.MovieRequest true "Movie"
// @Success 200 {object} resdto.MovieResponse
// @Router /movies/{id} [put]
func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "movie")
	if !ok {
		return
	}
	var req reqdto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToCommand())
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMovieView(view))
}

// @Summary Delete movie
// @Tags movies
// @Param id path string true "Movie ID"
// @Success 204 "No Content"
// @Failure 409 {object} httperr.Response
// @Router /movies/{id} [delete]
func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "movie")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
