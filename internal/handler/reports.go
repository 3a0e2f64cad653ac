package handler

import (
	"net/http"
	"strconv"
	"time"

	"dinepos/internal/apierror"
	"dinepos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func dateOrToday(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		return time.Now().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("date must be YYYY-MM-DD"))
		return "", false
	}
	return date, true
}

// Daily godoc
// @Summary      Daily sales report
// @Description  Every settled order on the date, with the day's total. Cancelled orders never appear.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Date YYYY-MM-DD (default: today)"
// @Success      200  {object} dto.DailyReportResponse
// @Router       /v1/reports/daily [get]
func (h *ReportsHandler) Daily(c *gin.Context) {
	date, ok := dateOrToday(c)
	if !ok {
		return
	}
	resp, err := h.svc.Daily(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Monthly godoc
// @Summary      Monthly sales report
// @Description  Per-day totals for the month plus monthly total and daily average over days with sales.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        month query int false "Month 1-12 (default: current)"
// @Param        year  query int false "Year (default: current)"
// @Success      200   {object} dto.MonthlyReportResponse
// @Router       /v1/reports/monthly [get]
func (h *ReportsHandler) Monthly(c *gin.Context) {
	now := time.Now()
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, apierror.New("month must be 1-12"))
		return
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid year"))
		return
	}
	resp, err := h.svc.Monthly(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Products godoc
// @Summary      Product sales report
// @Description  Units sold and revenue per product over the range, ordered by revenue descending.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "Start YYYY-MM-DD (default: today)"
// @Param        end_date   query string false "End YYYY-MM-DD (default: today)"
// @Success      200        {object} dto.ProductReportResponse
// @Router       /v1/reports/products [get]
func (h *ReportsHandler) Products(c *gin.Context) {
	today := time.Now().Format("2006-01-02")
	start := c.DefaultQuery("start_date", today)
	end := c.DefaultQuery("end_date", today)
	for _, d := range []string{start, end} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("dates must be YYYY-MM-DD"))
			return
		}
	}
	resp, err := h.svc.Products(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Tables godoc
// @Summary      Table performance report
// @Description  Orders and revenue per table for the date. Tables with zero orders are listed with zeros.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Date YYYY-MM-DD (default: today)"
// @Success      200  {object} dto.TableReportResponse
// @Router       /v1/reports/tables [get]
func (h *ReportsHandler) Tables(c *gin.Context) {
	date, ok := dateOrToday(c)
	if !ok {
		return
	}
	resp, err := h.svc.Tables(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
