package handler

import (
	"net/http"

	"dinepos/internal/apierror"
	"dinepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TablesHandler struct {
	svc      service.TableService
	orderSvc service.OrderService
}

func NewTablesHandler(svc service.TableService, orderSvc service.OrderService) *TablesHandler {
	return &TablesHandler{svc: svc, orderSvc: orderSvc}
}

// List godoc
// @Summary      Floor map
// @Description  All tables with their live status (free / occupied / reserved).
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.TableResponse
// @Router       /v1/tables [get]
func (h *TablesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActiveOrder godoc
// @Summary      Active order of a table
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Table UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/tables/{id}/order [get]
func (h *TablesHandler) ActiveOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.orderSvc.GetActiveByTable(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reserve godoc
// @Summary      Reserve a free table
// @Description  Moves a free table to reserved. 409 if the table is occupied or already reserved.
// @Tags         tables
// @Security     BearerAuth
// @Param        id path string true "Table UUID"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/tables/{id}/reserve [post]
func (h *TablesHandler) Reserve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Reserve(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unreserve releases a reservation. Idempotent on a free table.
func (h *TablesHandler) Unreserve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Unreserve(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
