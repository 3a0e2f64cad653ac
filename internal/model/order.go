package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order lifecycle. Active is the only mutable state; Closed and Cancelled
// are terminal. Active → Closed happens only through settlement.
const (
	OrderActive    = "active"
	OrderClosed    = "closed"
	OrderCancelled = "cancelled"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Order accumulates line items against one table. Total is derived from the
// lines and recomputed after every mutation — never written directly.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TableID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status        string          `gorm:"index;not null;default:'active'"`
	PaymentStatus string          `gorm:"not null;default:'pending'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Table   *DiningTable `gorm:"foreignKey:TableID"`
	Lines   []OrderLine  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment *Payment     `gorm:"foreignKey:OrderID"`
}

// OrderLine snapshots the product's unit price at insertion time, so later
// catalog price changes never alter historical totals.
type OrderLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Note      *string
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
