package model

import (
	"time"

	"github.com/google/uuid"
)

// Table occupancy states. A table is Occupied exactly while it has an
// active order; Reserved is a manual state never entered automatically.
const (
	TableFree     = "free"
	TableOccupied = "occupied"
	TableReserved = "reserved"
)

// DiningTable is one seating unit. Number is the stable, human-facing
// identity painted on the physical table.
type DiningTable struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number    int       `gorm:"uniqueIndex;not null"`
	Status    string    `gorm:"not null;default:'free'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DiningTable) TableName() string { return "dining_tables" }
