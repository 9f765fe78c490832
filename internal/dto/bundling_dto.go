package dto

import "github.com/shopspring/decimal"

// BundlingCompositionRequest is one component line of a bundling. The unit is
// required on every line, in both create and edit flows.
type BundlingCompositionRequest struct {
	ProductDetailID string `json:"product_detail_id" validate:"required,uuid"`
	Quantity        int    `json:"quantity"          validate:"required,gt=0"`
	UnitID          string `json:"unit_id"           validate:"required,uuid"`
}

// CreateBundlingRequest is the nested body of POST /v1/product-bundling.
// PUT /v1/product-bundling/:id reuses it; compositions are replaced whole.
type CreateBundlingRequest struct {
	Name         string                       `json:"name"     validate:"required,min=2,max=120"`
	Price        decimal.Decimal              `json:"price"    validate:"required"`
	Stock        int                          `json:"stock"    validate:"gt=0"`
	Compositions []BundlingCompositionRequest `json:"compositions" validate:"required,min=1,dive"`
}

type BundlingCompositionResponse struct {
	ProductDetailID string `json:"product_detail_id"`
	VariantName     string `json:"variant_name,omitempty"`
	Quantity        int    `json:"quantity"`
	UnitID          string `json:"unit_id"`
}

type BundlingResponse struct {
	ID           string                        `json:"id"`
	Name         string                        `json:"name"`
	Price        decimal.Decimal               `json:"price"`
	Stock        int                           `json:"stock"`
	Active       bool                          `json:"active"`
	Compositions []BundlingCompositionResponse `json:"compositions"`
}

type BundlingFilter struct {
	Search  string `form:"search"`
	Page    int    `form:"page,default=1"      validate:"min=1"`
	PerPage int    `form:"per_page,default=20" validate:"min=1,max=100"`
}

type BundlingListResponse struct {
	Data       []BundlingResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
