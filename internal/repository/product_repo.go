package repository

import (
	"context"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products and their
// variants. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// Variants
	FindVariantByID(ctx context.Context, id uuid.UUID) (*model.Variant, error)
	SearchVariants(ctx context.Context, search string) ([]model.Variant, error)
	// CompositionCandidates lists active variants of non-bundling products,
	// the pool offered by the blend and bundling builders.
	CompositionCandidates(ctx context.Context, search string) ([]model.Variant, error)
	ListLowStock(ctx context.Context, limit int) ([]model.Variant, error)

	CountActive(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, limit int) (int64, error)

	// Used inside transactions — callers must pass the tx instance
	UpdateStockTx(tx *gorm.DB, variantID uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variants", "active = true").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	// Active filter: "false" = inactive, "all" = everything, default = active
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := q.Preload("Category").Preload("Variants", "active = true").
		Order("name ASC").Limit(filter.PerPage).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("active", false).Error
}

func (r *productRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("active", true).Error
}

func (r *productRepo) FindVariantByID(ctx context.Context, id uuid.UUID) (*model.Variant, error) {
	var v model.Variant
	err := r.db.WithContext(ctx).Preload("Product").Preload("Unit").First(&v, "id = ?", id).Error
	return &v, err
}

func (r *productRepo) SearchVariants(ctx context.Context, search string) ([]model.Variant, error) {
	var variants []model.Variant
	q := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = variants.product_id").
		Where("variants.active = true AND products.active = true").
		Preload("Product")
	if search != "" {
		pat := "%" + search + "%"
		q = q.Where("variants.name ILIKE ? OR variants.product_code ILIKE ? OR products.name ILIKE ?", pat, pat, pat)
	}
	err := q.Order("products.name ASC, variants.name ASC").Limit(50).Find(&variants).Error
	return variants, err
}

func (r *productRepo) CompositionCandidates(ctx context.Context, search string) ([]model.Variant, error) {
	var variants []model.Variant
	q := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = variants.product_id").
		Where("variants.active = true AND products.active = true AND products.is_bundling = false").
		Preload("Product")
	if search != "" {
		pat := "%" + search + "%"
		q = q.Where("variants.name ILIKE ? OR products.name ILIKE ?", pat, pat)
	}
	err := q.Order("products.name ASC, variants.name ASC").Find(&variants).Error
	return variants, err
}

func (r *productRepo) ListLowStock(ctx context.Context, limit int) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.WithContext(ctx).Preload("Product").
		Where("active = true AND stock <= ?", limit).
		Order("stock ASC").Find(&variants).Error
	return variants, err
}

func (r *productRepo) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("active = true").Count(&total).Error
	return total, err
}

func (r *productRepo) CountLowStock(ctx context.Context, limit int) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Variant{}).
		Where("active = true AND stock <= ?", limit).Count(&total).Error
	return total, err
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, variantID uuid.UUID, delta int) error {
	return tx.Model(&model.Variant{}).Where("id = ?", variantID).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
