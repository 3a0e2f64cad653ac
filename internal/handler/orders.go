package handler

import (
	"net/http"

	"dinepos/internal/apierror"
	"dinepos/internal/dto"
	"dinepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	svc       service.OrderService
	settleSvc service.SettlementService
}

func NewOrdersHandler(svc service.OrderService, settleSvc service.SettlementService) *OrdersHandler {
	return &OrdersHandler{svc: svc, settleSvc: settleSvc}
}

// Create godoc
// @Summary      Open an order on a table
// @Description  Opens a new active order and marks the table occupied, atomically. 409 if the table already has an active order.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateOrderRequest true "Target table"
// @Success      201  {object} dto.OrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid table_id"))
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), tableID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Fetch an order with its lines
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        date   query string false "Date YYYY-MM-DD (default: today)"
// @Param        status query string false "active | closed | cancelled | all"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200    {object} dto.OrderListResponse
// @Router       /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddLine godoc
// @Summary      Add a line to an active order
// @Description  Captures the product's current price as an immutable snapshot and recomputes the order total.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "Order UUID"
// @Param        body body dto.AddLineRequest true "Product and quantity"
// @Success      200  {object} dto.OrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders/{id}/lines [post]
func (h *OrdersHandler) AddLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AddLineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddLine(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveLine godoc
// @Summary      Remove a line from an active order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Order UUID"
// @Param        lineId path string true "Line UUID"
// @Success      200    {object} dto.OrderResponse
// @Failure      404    {object} apierror.APIError
// @Router       /v1/orders/{id}/lines/{lineId} [delete]
func (h *OrdersHandler) RemoveLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid line id"))
		return
	}
	resp, err := h.svc.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearLines empties the order back to zero lines, total included.
func (h *OrdersHandler) ClearLines(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Clear(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel an active order
// @Description  Marks the order cancelled and frees its table. Lines are kept for audit; nothing is owed.
// @Tags         orders
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/orders/{id} [delete]
func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Settle godoc
// @Summary      Settle an order
// @Description  Records the payment, closes the order, and frees the table in one transaction. 402 if the tendered amount does not cover the total.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string            true "Order UUID"
// @Param        body body dto.SettleRequest true "Tender and amount"
// @Success      200  {object} dto.SettlementResponse
// @Failure      402  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders/{id}/settle [post]
func (h *OrdersHandler) Settle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SettleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.settleSvc.Settle(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
