package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one register checkout. It starts "pending" (held while the
// cashier keeps selling), becomes "paid" on payment, or "voided" when
// discarded. Totals are recomputed from the items on every state change —
// never trusted from the client.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number        int             `gorm:"uniqueIndex;not null"`
	OutletID      *uuid.UUID      `gorm:"type:uuid;index"`
	CashierID     uuid.UUID       `gorm:"type:uuid;not null"`
	Status        string          `gorm:"not null;default:'pending'"` // pending | paid | voided
	Subtotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiscountID    *uuid.UUID      `gorm:"type:uuid"`
	PaymentMethod *string
	Tendered      *decimal.Decimal `gorm:"type:decimal(14,2)"`
	Change        *decimal.Decimal `gorm:"type:decimal(14,2)"`
	CustomerEmail *string
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Outlet *Outlet           `gorm:"foreignKey:OutletID"`
	Items  []TransactionItem `gorm:"foreignKey:TransactionID"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionItem is one cart row frozen into the transaction. ItemID points
// at a variant or, when IsBundling is set, a bundling. Subtotal is price×qty,
// stored only as a snapshot of the computed value.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null"`
	IsBundling    bool            `gorm:"not null;default:false"`
	Name          string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Qty           int             `gorm:"not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	UnitCode      string
}

func (TransactionItem) TableName() string { return "transaction_items" }
