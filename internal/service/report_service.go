package service

import (
	"context"
	"time"

	"dinepos/internal/dto"
	"dinepos/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService is read-only aggregation over closed orders. Re-running a
// report with the same parameters yields the same result until new orders
// close.
type ReportService interface {
	Daily(ctx context.Context, date string) (*dto.DailyReportResponse, error)
	Monthly(ctx context.Context, month, year int) (*dto.MonthlyReportResponse, error)
	Products(ctx context.Context, startDate, endDate string) (*dto.ProductReportResponse, error)
	Tables(ctx context.Context, date string) (*dto.TableReportResponse, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) Daily(ctx context.Context, date string) (*dto.DailyReportResponse, error) {
	rows, err := s.repo.Daily(ctx, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.DailyReportResponse{
		Date:       date,
		Orders:     make([]dto.DailyReportRow, 0, len(rows)),
		TotalSales: decimal.Zero,
	}
	for _, r := range rows {
		resp.Orders = append(resp.Orders, dto.DailyReportRow{
			OrderID:     r.OrderID,
			TableNumber: r.TableNumber,
			Total:       r.Total,
			Tender:      r.Tender,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		})
		resp.TotalSales = resp.TotalSales.Add(r.Total)
	}
	resp.OrderCount = len(rows)
	return resp, nil
}

func (s *reportService) Monthly(ctx context.Context, month, year int) (*dto.MonthlyReportResponse, error) {
	rows, err := s.repo.Monthly(ctx, month, year)
	if err != nil {
		return nil, err
	}

	resp := &dto.MonthlyReportResponse{
		Month:        month,
		Year:         year,
		Days:         make([]dto.MonthlyReportRow, 0, len(rows)),
		MonthlyTotal: decimal.Zero,
		DailyAverage: decimal.Zero,
	}
	for _, r := range rows {
		resp.Days = append(resp.Days, dto.MonthlyReportRow{
			Day:        r.Day,
			OrderCount: r.OrderCount,
			Total:      r.Total,
		})
		resp.MonthlyTotal = resp.MonthlyTotal.Add(r.Total)
	}
	if len(rows) > 0 {
		// Average over days with sales, matching the original report.
		resp.DailyAverage = resp.MonthlyTotal.DivRound(decimal.NewFromInt(int64(len(rows))), 2)
	}
	return resp, nil
}

func (s *reportService) Products(ctx context.Context, startDate, endDate string) (*dto.ProductReportResponse, error) {
	rows, err := s.repo.Products(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductReportResponse{
		StartDate: startDate,
		EndDate:   endDate,
		Products:  make([]dto.ProductReportRow, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Products = append(resp.Products, dto.ProductReportRow{
			ProductName:  r.ProductName,
			CategoryName: r.CategoryName,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
			AvgUnitPrice: r.AvgUnitPrice.Round(2),
		})
	}
	return resp, nil
}

func (s *reportService) Tables(ctx context.Context, date string) (*dto.TableReportResponse, error) {
	rows, err := s.repo.Tables(ctx, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.TableReportResponse{
		Date:   date,
		Tables: make([]dto.TableReportRow, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Tables = append(resp.Tables, dto.TableReportRow{
			TableNumber: r.TableNumber,
			OrderCount:  r.OrderCount,
			TotalSales:  r.TotalSales,
			AvgOrder:    r.AvgOrder.Round(2),
		})
	}
	return resp, nil
}
