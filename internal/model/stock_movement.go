package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change on a variant. Created
// automatically on sale, blend, stock-request approval, or manual adjustment.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VariantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"` // "sale" | "blend_result" | "blend_material" | "stock_request" | "adjustment" | "restore_void"
	Quantity    int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // transaction, blend, or stock request id
	CreatedAt   time.Time

	Variant *Variant `gorm:"foreignKey:VariantID"`
}

func (StockMovement) TableName() string { return "stock_movements" }
