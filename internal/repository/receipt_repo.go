package repository

import (
	"context"
	"time"

	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptRepository defines data access for receipt delivery records.
type ReceiptRepository interface {
	Create(ctx context.Context, rc *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	FindByTransactionID(ctx context.Context, txID uuid.UUID) (*model.Receipt, error)
	Update(ctx context.Context, rc *model.Receipt) error
	// ListPendingRetries returns errored receipts whose backoff window has
	// elapsed and that still have retries left.
	ListPendingRetries(ctx context.Context, now time.Time, maxRetries int) ([]model.Receipt, error)
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) Create(ctx context.Context, rc *model.Receipt) error {
	return r.db.WithContext(ctx).Create(rc).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rc model.Receipt
	err := r.db.WithContext(ctx).Preload("Transaction.Items").First(&rc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *receiptRepo) FindByTransactionID(ctx context.Context, txID uuid.UUID) (*model.Receipt, error) {
	var rc model.Receipt
	err := r.db.WithContext(ctx).Where("transaction_id = ?", txID).First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *receiptRepo) Update(ctx context.Context, rc *model.Receipt) error {
	return r.db.WithContext(ctx).Save(rc).Error
}

func (r *receiptRepo) ListPendingRetries(ctx context.Context, now time.Time, maxRetries int) ([]model.Receipt, error) {
	var list []model.Receipt
	err := r.db.WithContext(ctx).Preload("Transaction.Items").
		Where("status = 'error' AND retry_count < ? AND (next_retry_at IS NULL OR next_retry_at <= ?)", maxRetries, now).
		Order("next_retry_at asc").Limit(20).Find(&list).Error
	return list, err
}
