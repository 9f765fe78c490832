package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt tracks the PDF/email delivery of a paid transaction's receipt.
// Status: "pending" → "sent" | "error". Failed sends are retried by the
// retry cron until MaxRetries, then parked in the DLQ.
type Receipt struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Email         *string
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status        string          `gorm:"not null;default:'pending'"`
	PDFPath       *string
	RetryCount    int `gorm:"not null;default:0"`
	NextRetryAt   *time.Time
	LastError     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Transaction *Transaction `gorm:"foreignKey:TransactionID"`
}

func (Receipt) TableName() string { return "receipts" }
