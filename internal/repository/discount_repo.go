package repository

import (
	"context"

	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountRepository defines data access for transaction discounts.
type DiscountRepository interface {
	Create(ctx context.Context, d *model.Discount) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	List(ctx context.Context, page, perPage int) ([]model.Discount, int64, error)
	ListActive(ctx context.Context) ([]model.Discount, error)
	Update(ctx context.Context, d *model.Discount) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type discountRepository struct{ db *gorm.DB }

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *discountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *discountRepository) List(ctx context.Context, page, perPage int) ([]model.Discount, int64, error) {
	var list []model.Discount
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Discount{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at desc").Limit(perPage).Offset((page - 1) * perPage).Find(&list).Error
	return list, total, err
}

func (r *discountRepository) ListActive(ctx context.Context) ([]model.Discount, error) {
	var list []model.Discount
	err := r.db.WithContext(ctx).Where("active = true").Order("name asc").Find(&list).Error
	return list, err
}

func (r *discountRepository) Update(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *discountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Discount{}).Where("id = ?", id).Update("active", false).Error
}
