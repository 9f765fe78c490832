package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VariantRequest struct {
	Name        string          `json:"name"         validate:"required,min=1,max=120"`
	ProductCode string          `json:"product_code" validate:"required,min=3,max=40"`
	Stock       int             `json:"stock"        validate:"min=0"`
	Price       decimal.Decimal `json:"price"        validate:"required"`
	UnitID      *string         `json:"unit_id"      validate:"omitempty,uuid"`
	UnitCode    string          `json:"unit_code"`
}

type CreateProductRequest struct {
	Name        string           `json:"name"        validate:"required,min=2,max=120"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Image       *string          `json:"image"`
	UnitCode    string           `json:"unit_code"`
	Variants    []VariantRequest `json:"variants"    validate:"required,min=1,dive"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=120"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Image       *string `json:"image"`
	UnitCode    *string `json:"unit_code"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default = active only
	Page       int    `form:"page,default=1"      validate:"min=1"`
	PerPage    int    `form:"per_page,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VariantResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	ProductCode string          `json:"product_code"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	UnitID      *string         `json:"unit_id,omitempty"`
	UnitCode    string          `json:"unit_code"`
}

type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Image       *string           `json:"image,omitempty"`
	UnitCode    string            `json:"unit_code"`
	IsBundling  bool              `json:"is_bundling"`
	Active      bool              `json:"active"`
	Variants    []VariantResponse `json:"variants"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
