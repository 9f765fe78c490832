package repository

import (
	"context"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BundlingRepository defines data access for bundlings.
type BundlingRepository interface {
	Create(ctx context.Context, b *model.Bundling) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bundling, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Bundling, error)
	List(ctx context.Context, filter dto.BundlingFilter) ([]model.Bundling, int64, error)
	Search(ctx context.Context, search string) ([]model.Bundling, error)
	// UpdateTx saves the bundling head and replaces its composition wholesale
	// inside an open transaction — edits always resubmit the full line set.
	UpdateTx(tx *gorm.DB, b *model.Bundling, items []model.BundlingItem) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	DB() *gorm.DB
}

type bundlingRepository struct{ db *gorm.DB }

func NewBundlingRepository(db *gorm.DB) BundlingRepository {
	return &bundlingRepository{db: db}
}

func (r *bundlingRepository) Create(ctx context.Context, b *model.Bundling) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bundlingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Bundling, error) {
	var b model.Bundling
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Items.Variant.Product").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bundlingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Bundling, error) {
	var list []model.Bundling
	err := r.db.WithContext(ctx).Preload("Items").Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *bundlingRepository) List(ctx context.Context, filter dto.BundlingFilter) ([]model.Bundling, int64, error) {
	var list []model.Bundling
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Bundling{}).Where("active = true")
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Items.Variant.Product").
		Order("name asc").Limit(filter.PerPage).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *bundlingRepository) Search(ctx context.Context, search string) ([]model.Bundling, error) {
	var list []model.Bundling
	q := r.db.WithContext(ctx).Where("active = true")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name asc").Limit(50).Find(&list).Error
	return list, err
}

func (r *bundlingRepository) UpdateTx(tx *gorm.DB, b *model.Bundling, items []model.BundlingItem) error {
	if err := tx.Where("bundling_id = ?", b.ID).Delete(&model.BundlingItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].BundlingID = b.ID
	}
	b.Items = nil
	if err := tx.Save(b).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *bundlingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Bundling{}).Where("id = ?", id).Update("active", false).Error
}

func (r *bundlingRepository) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Bundling{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *bundlingRepository) DB() *gorm.DB { return r.db }
