package model

import (
	"time"

	"github.com/google/uuid"
)

// Operator roles.
const (
	RoleAdmin   = "admin"
	RoleWaiter  = "waiter"
	RoleCashier = "cashier"
)

// User is a staff account for the API (admin, waiter, cashier).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
