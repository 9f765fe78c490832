package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account. Role is one of "admin", "warehouse", "outlet".
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string     `gorm:"not null"`
	Role         string     `gorm:"not null"`
	OutletID     *uuid.UUID `gorm:"type:uuid;index"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Outlet *Outlet `gorm:"foreignKey:OutletID"`
}

func (User) TableName() string { return "users" }
