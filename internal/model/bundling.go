package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bundling packages existing variants for sale as one unit. Creating a
// bundling does not alter the underlying variants' stock — stock is checked
// and deducted per component only when the bundling is sold.
type Bundling struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []BundlingItem `gorm:"foreignKey:BundlingID"`
}

func (Bundling) TableName() string { return "bundlings" }

// BundlingItem is one component of a bundling. Unit is always required.
type BundlingItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BundlingID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductDetailID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity        int       `gorm:"not null"`
	UnitID          uuid.UUID `gorm:"type:uuid;not null"`
	Position        int       `gorm:"not null"`

	Variant *Variant `gorm:"foreignKey:ProductDetailID"`
}

func (BundlingItem) TableName() string { return "bundling_items" }
