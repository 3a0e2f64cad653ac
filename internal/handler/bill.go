package handler

import (
	"net/http"

	"dinepos/internal/apierror"
	"dinepos/internal/billing"
	"dinepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillHandler renders the guest bill for an order. Works for both active and
// closed orders — a mid-meal bill is just a snapshot.
type BillHandler struct {
	svc      service.OrderService
	renderer *billing.Renderer
}

func NewBillHandler(svc service.OrderService, renderer *billing.Renderer) *BillHandler {
	return &BillHandler{svc: svc, renderer: renderer}
}

// Text godoc
// @Summary      Guest bill (plain text)
// @Tags         orders
// @Produce      plain
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {string} string
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id}/bill [get]
func (h *BillHandler) Text(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, h.renderer.RenderText(order))
}

// PDF godoc
// @Summary      Guest bill (PDF)
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id}/bill.pdf [get]
func (h *BillHandler) PDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	pdf, err := h.renderer.RenderPDF(order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="bill_`+order.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
