package dto

import (
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	TableID string `json:"table_id" validate:"required,uuid"`
}

type AddLineRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Note      *string `json:"note"`
}

type OrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Note      *string         `json:"note,omitempty"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	TableID       string              `json:"table_id"`
	TableNumber   int                 `json:"table_number,omitempty"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	Total         decimal.Decimal     `json:"total"`
	Lines         []OrderLineResponse `json:"lines"`
	CreatedAt     string              `json:"created_at"`
}

// OrderFilter drives the paginated order listing.
// Date is YYYY-MM-DD; empty means today. Status: active | closed |
// cancelled | all (default: all).
type OrderFilter struct {
	Date   string `form:"date"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
