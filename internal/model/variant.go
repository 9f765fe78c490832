package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is one sellable unit of a product (a size/aroma combination) with
// its own stock and price. Known elsewhere as "product detail" — composition
// payloads reference variants via product_detail_id.
type Variant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	ProductCode string    `gorm:"uniqueIndex;not null"`
	Stock       int       `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitID      *uuid.UUID      `gorm:"type:uuid"`
	UnitCode    string          `gorm:"not null;default:'pcs'"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	Unit    *Unit    `gorm:"foreignKey:UnitID"`
}

func (Variant) TableName() string { return "variants" }
