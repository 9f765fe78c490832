package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateDiscountRequest struct {
	Name     string          `json:"name"      validate:"required,min=2,max=100"`
	Type     string          `json:"type"      validate:"required,oneof=percent nominal"`
	Value    decimal.Decimal `json:"value"     validate:"required"`
	StartsAt *time.Time      `json:"starts_at"`
	EndsAt   *time.Time      `json:"ends_at"`
	Active   *bool           `json:"active"`
}

type UpdateDiscountRequest struct {
	Name     *string          `json:"name"      validate:"omitempty,min=2,max=100"`
	Type     *string          `json:"type"      validate:"omitempty,oneof=percent nominal"`
	Value    *decimal.Decimal `json:"value"`
	StartsAt *time.Time       `json:"starts_at"`
	EndsAt   *time.Time       `json:"ends_at"`
	Active   *bool            `json:"active"`
}

type DiscountResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	StartsAt *time.Time      `json:"starts_at,omitempty"`
	EndsAt   *time.Time      `json:"ends_at,omitempty"`
	Active   bool            `json:"active"`
	Usable   bool            `json:"usable"`
}

type DiscountListResponse struct {
	Data       []DiscountResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
