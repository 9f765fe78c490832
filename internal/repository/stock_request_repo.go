package repository

import (
	"context"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockRequestRepository defines data access for outlet stock requests.
type StockRequestRepository interface {
	Create(ctx context.Context, sr *model.StockRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockRequest, error)
	List(ctx context.Context, filter dto.StockRequestFilter) ([]model.StockRequest, int64, error)
	CountPending(ctx context.Context) (int64, error)
	// UpdateStatusTx flips the review fields inside an open transaction,
	// alongside the stock credit the approval performs.
	UpdateStatusTx(tx *gorm.DB, sr *model.StockRequest) error
	DB() *gorm.DB
}

type stockRequestRepository struct{ db *gorm.DB }

func NewStockRequestRepository(db *gorm.DB) StockRequestRepository {
	return &stockRequestRepository{db: db}
}

func (r *stockRequestRepository) Create(ctx context.Context, sr *model.StockRequest) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *stockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StockRequest, error) {
	var sr model.StockRequest
	err := r.db.WithContext(ctx).
		Preload("Outlet").
		Preload("Warehouse").
		Preload("Items.Variant.Product").
		First(&sr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *stockRequestRepository) List(ctx context.Context, filter dto.StockRequestFilter) ([]model.StockRequest, int64, error) {
	var list []model.StockRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&model.StockRequest{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := q.Preload("Outlet").Preload("Warehouse").Preload("Items.Variant.Product").
		Order("created_at desc").Limit(filter.PerPage).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *stockRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.StockRequest{}).
		Where("status = 'pending'").Count(&total).Error
	return total, err
}

func (r *stockRequestRepository) UpdateStatusTx(tx *gorm.DB, sr *model.StockRequest) error {
	return tx.Model(&model.StockRequest{}).Where("id = ?", sr.ID).Updates(map[string]interface{}{
		"status":      sr.Status,
		"reviewed_by": sr.ReviewedBy,
		"reviewed_at": sr.ReviewedAt,
	}).Error
}

func (r *stockRequestRepository) DB() *gorm.DB { return r.db }
