package dto

import "github.com/shopspring/decimal"

type SettleRequest struct {
	Tender         string          `json:"tender" validate:"required,oneof=cash credit_card debit_card"`
	AmountTendered decimal.Decimal `json:"amount_tendered" validate:"required"`
	Note           *string         `json:"note"`
}

type SettlementResponse struct {
	OrderID     string          `json:"order_id"`
	PaymentID   string          `json:"payment_id"`
	Tender      string          `json:"tender"`
	Total       decimal.Decimal `json:"total"`
	Tendered    decimal.Decimal `json:"tendered"`
	Change      decimal.Decimal `json:"change"`
	TableNumber int             `json:"table_number"`
	SettledAt   string          `json:"settled_at"`
}
