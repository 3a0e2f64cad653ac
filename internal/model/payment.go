package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accepted tender types.
const (
	TenderCash       = "cash"
	TenderCreditCard = "credit_card"
	TenderDebitCard  = "debit_card"
)

// Payment records the tender that settled an order. The unique index on
// OrderID is the storage-level guarantee that an order is paid at most once.
type Payment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Tender         string          `gorm:"not null"`
	AmountTendered decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Note           *string
	CreatedAt      time.Time
}
