package repository

import (
	"context"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlendRepository defines data access for blend production records.
type BlendRepository interface {
	// CreateTx inserts the blend with its materials inside an open
	// transaction — stock movements are written by the caller.
	CreateTx(tx *gorm.DB, b *model.Blend) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Blend, error)
	List(ctx context.Context, filter dto.BlendFilter) ([]model.Blend, int64, error)
}

type blendRepository struct{ db *gorm.DB }

func NewBlendRepository(db *gorm.DB) BlendRepository { return &blendRepository{db: db} }

func (r *blendRepository) CreateTx(tx *gorm.DB, b *model.Blend) error {
	return tx.Create(b).Error
}

func (r *blendRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Blend, error) {
	var b model.Blend
	err := r.db.WithContext(ctx).
		Preload("ResultVariant.Product").
		Preload("Materials", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Materials.Variant.Product").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *blendRepository) List(ctx context.Context, filter dto.BlendFilter) ([]model.Blend, int64, error) {
	var blends []model.Blend
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Blend{})
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := q.Preload("ResultVariant.Product").
		Preload("Materials", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Materials.Variant.Product").
		Order("created_at desc").Limit(filter.PerPage).Offset(offset).Find(&blends).Error
	return blends, total, err
}
