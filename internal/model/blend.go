package model

import (
	"time"

	"github.com/google/uuid"
)

// Blend records the production of a new stock item from existing variant
// materials: the result variant's stock goes up by Quantity, each material
// variant's stock goes down by its UsedStock.
type Blend struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"not null"`
	Description     *string
	ResultVariantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity        int        `gorm:"not null"`
	UnitID          *uuid.UUID `gorm:"type:uuid"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt       time.Time

	ResultVariant *Variant        `gorm:"foreignKey:ResultVariantID"`
	Materials     []BlendMaterial `gorm:"foreignKey:BlendID"`
}

func (Blend) TableName() string { return "blends" }

// BlendMaterial is one consumed ingredient of a blend. Position preserves the
// order the composition was built in.
type BlendMaterial struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BlendID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductDetailID uuid.UUID  `gorm:"type:uuid;not null"`
	UsedStock       int        `gorm:"not null"`
	UnitID          *uuid.UUID `gorm:"type:uuid"`
	Position        int        `gorm:"not null"`

	Variant *Variant `gorm:"foreignKey:ProductDetailID"`
}

func (BlendMaterial) TableName() string { return "blend_materials" }
