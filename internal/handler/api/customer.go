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

type CustomerHandler struct {
	cmds commands.CustomerCommands
	q    queries.CustomerQueries
}

func NewCustomerHandler(cmds commands.CustomerCommands, q queries.CustomerQueries) *CustomerHandler {
	return &CustomerHandler{cmds: cmds, q: q}
}

// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body reqdto.CustomerRequest true "Customer"
// @Success 201 {object} resdto.CustomerResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response "Email already registered"
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req reqdto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCustomerView(view))
}

// @Summary Get customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} resdto.CustomerResponse
// @Failure 404 {object} httperr.Response
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "customer")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCustomerView(view))
}

// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} resdto.CustomerResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
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
	c.JSON(http.StatusOK, resdto.FromCustomerViews(views))
}

// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body reqdto.CustomerRequest true "Customer"
// @Success 200 {object} resdto.CustomerResponse
// @Failure 409 {object} httperr.Response
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "customer")
	if !ok {
		return
	}
	var req reqdto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToCommand())
	if err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCustomerView(view))
}

// @Summary Delete customer
// @Tags customers
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 409 {object} httperr.Response
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "customer")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortWithCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
