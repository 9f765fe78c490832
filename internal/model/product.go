package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Sellable stock and price live on its variants;
// IsBundling marks products that represent a bundle and are sold atomically
// (their variants are never offered for composition).
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Image       *string
	UnitCode    string `gorm:"not null;default:'pcs'"`
	IsBundling  bool   `gorm:"not null;default:false"`
	Active      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Variants []Variant `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }
