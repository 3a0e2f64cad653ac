package repository

import (
	"context"
	"time"

	"dinepos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Row types scanned straight out of the aggregation queries. The service
// layer maps them onto response DTOs; keeping them here avoids leaking SQL
// column naming into the API surface.

type DailyRow struct {
	OrderID     string
	TableNumber int
	Total       decimal.Decimal
	Tender      string
	CreatedAt   time.Time
}

type MonthlyRow struct {
	Day        int
	OrderCount int
	Total      decimal.Decimal
}

type ProductRow struct {
	ProductName  string
	CategoryName string
	QuantitySold int
	Revenue      decimal.Decimal
	AvgUnitPrice decimal.Decimal
}

type TableRow struct {
	TableNumber int
	OrderCount  int
	TotalSales  decimal.Decimal
	AvgOrder    decimal.Decimal
}

// ReportRepository runs read-only aggregations over closed orders. Every
// query filters on status = 'closed'; cancelled and active orders never
// appear in reports.
type ReportRepository interface {
	Daily(ctx context.Context, date string) ([]DailyRow, error)
	Monthly(ctx context.Context, month, year int) ([]MonthlyRow, error)
	Products(ctx context.Context, startDate, endDate string) ([]ProductRow, error)
	Tables(ctx context.Context, date string) ([]TableRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Daily(ctx context.Context, date string) ([]DailyRow, error) {
	var rows []DailyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.id AS order_id, t.number AS table_number, o.total,
		       p.tender, o.created_at
		FROM orders o
		JOIN dining_tables t ON t.id = o.table_id
		LEFT JOIN payments p ON p.order_id = o.id
		WHERE DATE(o.created_at) = ? AND o.status = ?
		ORDER BY o.created_at`, date, model.OrderClosed).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Monthly(ctx context.Context, month, year int) ([]MonthlyRow, error) {
	var rows []MonthlyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(DAY FROM o.created_at)::int AS day,
		       COUNT(*) AS order_count,
		       SUM(o.total) AS total
		FROM orders o
		WHERE EXTRACT(MONTH FROM o.created_at) = ?
		  AND EXTRACT(YEAR FROM o.created_at) = ?
		  AND o.status = ?
		GROUP BY EXTRACT(DAY FROM o.created_at)
		ORDER BY day`, month, year, model.OrderClosed).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Products(ctx context.Context, startDate, endDate string) ([]ProductRow, error) {
	var rows []ProductRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT pr.name AS product_name, c.name AS category_name,
		       SUM(l.quantity) AS quantity_sold,
		       SUM(l.line_total) AS revenue,
		       AVG(l.unit_price) AS avg_unit_price
		FROM order_lines l
		JOIN products pr ON pr.id = l.product_id
		JOIN categories c ON c.id = pr.category_id
		JOIN orders o ON o.id = l.order_id
		WHERE DATE(o.created_at) BETWEEN ? AND ? AND o.status = ?
		GROUP BY pr.id, pr.name, c.name
		ORDER BY revenue DESC`, startDate, endDate, model.OrderClosed).Scan(&rows).Error
	return rows, err
}

// Tables LEFT JOINs from dining_tables so tables without a single closed
// order on the date still produce a zero row.
func (r *reportRepo) Tables(ctx context.Context, date string) ([]TableRow, error) {
	var rows []TableRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.number AS table_number,
		       COUNT(o.id) AS order_count,
		       COALESCE(SUM(o.total), 0) AS total_sales,
		       COALESCE(AVG(o.total), 0) AS avg_order
		FROM dining_tables t
		LEFT JOIN orders o ON o.table_id = t.id
		  AND DATE(o.created_at) = ? AND o.status = ?
		GROUP BY t.id, t.number
		ORDER BY t.number`, date, model.OrderClosed).Scan(&rows).Error
	return rows, err
}
