package dto

import "github.com/shopspring/decimal"

// DailyReportRow is one closed order on the report date.
type DailyReportRow struct {
	OrderID     string          `json:"order_id"`
	TableNumber int             `json:"table_number"`
	Total       decimal.Decimal `json:"total"`
	Tender      string          `json:"tender"`
	CreatedAt   string          `json:"created_at"`
}

type DailyReportResponse struct {
	Date       string           `json:"date"`
	Orders     []DailyReportRow `json:"orders"`
	OrderCount int              `json:"order_count"`
	TotalSales decimal.Decimal  `json:"total_sales"`
}

// MonthlyReportRow aggregates one day of the month.
type MonthlyReportRow struct {
	Day        int             `json:"day"`
	OrderCount int             `json:"order_count"`
	Total      decimal.Decimal `json:"total"`
}

type MonthlyReportResponse struct {
	Month        int                `json:"month"`
	Year         int                `json:"year"`
	Days         []MonthlyReportRow `json:"days"`
	MonthlyTotal decimal.Decimal    `json:"monthly_total"`
	DailyAverage decimal.Decimal    `json:"daily_average"`
}

// ProductReportRow aggregates sales of one product over the date range,
// ordered by revenue descending.
type ProductReportRow struct {
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	AvgUnitPrice decimal.Decimal `json:"avg_unit_price"`
}

type ProductReportResponse struct {
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Products  []ProductReportRow `json:"products"`
}

// TableReportRow aggregates one table's closed orders for the report date.
// Tables with zero orders are included with zero values, not omitted.
type TableReportRow struct {
	TableNumber int             `json:"table_number"`
	OrderCount  int             `json:"order_count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	AvgOrder    decimal.Decimal `json:"avg_order"`
}

type TableReportResponse struct {
	Date   string           `json:"date"`
	Tables []TableReportRow `json:"tables"`
}
