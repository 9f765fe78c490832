package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount is applied to a whole transaction at payment time.
// Type "percent" interprets Value as a percentage; "nominal" as an amount.
type Discount struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"not null"`
	Type      string          `gorm:"not null"` // "percent" | "nominal"
	Value     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StartsAt  *time.Time
	EndsAt    *time.Time
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Discount) TableName() string { return "discounts" }

// Usable reports whether the discount applies at the given moment.
func (d *Discount) Usable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return false
	}
	return true
}
