package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Active      bool      `json:"active"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"min=0"`
	Description *string         `json:"description"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	Description *string          `json:"description"`
}

type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description *string         `json:"description"`
	Active      bool            `json:"active"`
}

// ProductFilter narrows product listings.
// Active: "false" = inactive only, "all" = everything, default = active only.
type ProductFilter struct {
	CategoryID string `form:"category_id"`
	Active     string `form:"active"`
}

// MenuCategory groups the active products of one category for the public
// menu endpoint.
type MenuCategory struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Products []ProductResponse `json:"products"`
}

type MenuResponse struct {
	Categories []MenuCategory `json:"categories"`
}
