package repository

import (
	"context"

	"parfumpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines CRUD operations for Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Where("active = true").Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("active", false).Error
}

// UnitRepository defines CRUD operations for measurement units.
type UnitRepository interface {
	Create(ctx context.Context, u *model.Unit) error
	List(ctx context.Context) ([]model.Unit, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Unit, error)
	FindByCode(ctx context.Context, code string) (*model.Unit, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Unit, error)
	Update(ctx context.Context, u *model.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type unitRepository struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) UnitRepository { return &unitRepository{db: db} }

func (r *unitRepository) Create(ctx context.Context, u *model.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unitRepository) List(ctx context.Context) ([]model.Unit, error) {
	var list []model.Unit
	err := r.db.WithContext(ctx).Order("code asc").Find(&list).Error
	return list, err
}

func (r *unitRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Unit, error) {
	var u model.Unit
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unitRepository) FindByCode(ctx context.Context, code string) (*model.Unit, error) {
	var u model.Unit
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unitRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Unit, error) {
	var list []model.Unit
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *unitRepository) Update(ctx context.Context, u *model.Unit) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *unitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Unit{}, "id = ?", id).Error
}

// OutletRepository defines CRUD operations for outlets.
type OutletRepository interface {
	Create(ctx context.Context, o *model.Outlet) error
	List(ctx context.Context) ([]model.Outlet, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Outlet, error)
	Update(ctx context.Context, o *model.Outlet) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type outletRepository struct{ db *gorm.DB }

func NewOutletRepository(db *gorm.DB) OutletRepository { return &outletRepository{db: db} }

func (r *outletRepository) Create(ctx context.Context, o *model.Outlet) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *outletRepository) List(ctx context.Context) ([]model.Outlet, error) {
	var list []model.Outlet
	err := r.db.WithContext(ctx).Where("active = true").Order("name asc").Find(&list).Error
	return list, err
}

func (r *outletRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Outlet, error) {
	var o model.Outlet
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *outletRepository) Update(ctx context.Context, o *model.Outlet) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *outletRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Outlet{}).Where("id = ?", id).Update("active", false).Error
}

// WarehouseRepository defines CRUD operations for warehouses.
type WarehouseRepository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	List(ctx context.Context) ([]model.Warehouse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error)
	Update(ctx context.Context, w *model.Warehouse) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type warehouseRepository struct{ db *gorm.DB }

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(ctx context.Context, w *model.Warehouse) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *warehouseRepository) List(ctx context.Context) ([]model.Warehouse, error) {
	var list []model.Warehouse
	err := r.db.WithContext(ctx).Where("active = true").Order("name asc").Find(&list).Error
	return list, err
}

func (r *warehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *warehouseRepository) Update(ctx context.Context, w *model.Warehouse) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *warehouseRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Warehouse{}).Where("id = ?", id).Update("active", false).Error
}
