package model

import (
	"time"

	"github.com/google/uuid"
)

// StockRequest is an outlet's request for stock from a warehouse.
// Status: "pending" → "approved" | "rejected". Approval credits the
// requested stock atomically.
type StockRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OutletID    uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"not null;default:'pending'"`
	RequestedBy uuid.UUID `gorm:"type:uuid;not null"`
	Note        *string
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Outlet    *Outlet            `gorm:"foreignKey:OutletID"`
	Warehouse *Warehouse         `gorm:"foreignKey:WarehouseID"`
	Items     []StockRequestItem `gorm:"foreignKey:StockRequestID"`
}

func (StockRequest) TableName() string { return "stock_requests" }

// StockRequestItem is one requested line: a variant and the amount wanted.
type StockRequestItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StockRequestID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductDetailID uuid.UUID  `gorm:"type:uuid;not null"`
	RequestedStock  int        `gorm:"not null"`
	UnitID          *uuid.UUID `gorm:"type:uuid"`

	Variant *Variant `gorm:"foreignKey:ProductDetailID"`
}

func (StockRequestItem) TableName() string { return "stock_request_items" }
