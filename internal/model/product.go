package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a priced menu item. Products referenced by historical order
// lines are never hard-deleted — deactivation flips Active only, so closed
// orders keep their totals intact.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"index;not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
