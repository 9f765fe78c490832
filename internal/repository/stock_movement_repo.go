package repository

import (
	"context"

	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementRepository records stock history rows. Writes happen inside
// the transaction that mutates the stock itself.
type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	ListByVariant(ctx context.Context, variantID uuid.UUID, limit int) ([]model.StockMovement, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) ListByVariant(ctx context.Context, variantID uuid.UUID, limit int) ([]model.StockMovement, error) {
	var list []model.StockMovement
	if limit <= 0 {
		limit = 50
	}
	err := r.db.WithContext(ctx).Where("variant_id = ?", variantID).
		Order("created_at desc").Limit(limit).Find(&list).Error
	return list, err
}
