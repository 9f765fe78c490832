package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Search ──────────────────────────────────────────────────────────────────

// SearchItem is one sellable row of the register search results: a variant or
// a bundling, flattened to the fields the cart needs.
type SearchItem struct {
	Key             string          `json:"key"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	UnitCode        string          `json:"unit_code"`
	IsBundling      bool            `json:"is_bundling"`
	ParentProductID string          `json:"parent_product_id"`
}

type SearchResponse struct {
	Data []SearchItem `json:"data"`
}

// ─── Pending transactions ────────────────────────────────────────────────────

type TransactionItemRequest struct {
	ItemID     string `json:"item_id"     validate:"required,uuid"`
	IsBundling bool   `json:"is_bundling"`
	Qty        int    `json:"qty"         validate:"min=0"`
}

type CreateTransactionRequest struct {
	OutletID      *string                  `json:"outlet_id" validate:"omitempty,uuid"`
	CustomerEmail *string                  `json:"customer_email" validate:"omitempty,email"`
	Items         []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PayTransactionRequest struct {
	Method     string  `json:"method"      validate:"required,oneof=cash transfer qris"`
	Tendered   string  `json:"tendered"`   // digit-only string; ignored for non-cash
	DiscountID *string `json:"discount_id" validate:"omitempty,uuid"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type TransactionItemResponse struct {
	ItemID     string          `json:"item_id"`
	IsBundling bool            `json:"is_bundling"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Qty        int             `json:"qty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	UnitCode   string          `json:"unit_code,omitempty"`
}

type TransactionResponse struct {
	ID            string                    `json:"id"`
	Number        int                       `json:"number"`
	Status        string                    `json:"status"`
	Items         []TransactionItemResponse `json:"items"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	DiscountTotal decimal.Decimal           `json:"discount_total"`
	Total         decimal.Decimal           `json:"total"`
	PaymentMethod *string                   `json:"payment_method,omitempty"`
	Tendered      *decimal.Decimal          `json:"tendered,omitempty"`
	Change        *decimal.Decimal          `json:"change,omitempty"`
	CreatedAt     string                    `json:"created_at"`
}

type PendingTransactionsResponse struct {
	Data []TransactionResponse `json:"data"`
}
