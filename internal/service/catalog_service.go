package service

import (
	"context"
	"errors"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages the small reference aggregates: categories, units,
// outlets, and warehouses.
type CatalogService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateUnit(ctx context.Context, req dto.CreateUnitRequest) (*dto.UnitResponse, error)
	ListUnits(ctx context.Context) ([]dto.UnitResponse, error)
	UpdateUnit(ctx context.Context, id uuid.UUID, req dto.CreateUnitRequest) (*dto.UnitResponse, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	CreateOutlet(ctx context.Context, req dto.CreateOutletRequest) (*dto.OutletResponse, error)
	ListOutlets(ctx context.Context) ([]dto.OutletResponse, error)
	UpdateOutlet(ctx context.Context, id uuid.UUID, req dto.CreateOutletRequest) (*dto.OutletResponse, error)
	DeleteOutlet(ctx context.Context, id uuid.UUID) error

	CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error)
	UpdateWarehouse(ctx context.Context, id uuid.UUID, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	categories repository.CategoryRepository
	units      repository.UnitRepository
	outlets    repository.OutletRepository
	warehouses repository.WarehouseRepository
}

func NewCatalogService(
	categories repository.CategoryRepository,
	units repository.UnitRepository,
	outlets repository.OutletRepository,
	warehouses repository.WarehouseRepository,
) CatalogService {
	return &catalogService{
		categories: categories,
		units:      units,
		outlets:    outlets,
		warehouses: warehouses,
	}
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.categories.FindByName(ctx, req.Name); err == nil {
		return nil, errors.New("a category with that name already exists")
	}
	c := model.Category{Name: req.Name, Description: req.Description, Active: true}
	if err := s.categories.Create(ctx, &c); err != nil {
		return nil, err
	}
	resp := categoryToResponse(&c)
	return &resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, categoryToResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("category not found")
	}
	c.Name = req.Name
	c.Description = req.Description
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return errors.New("category not found")
	}
	return s.categories.Deactivate(ctx, id)
}

// ── Units ────────────────────────────────────────────────────────────────────

func (s *catalogService) CreateUnit(ctx context.Context, req dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if _, err := s.units.FindByCode(ctx, req.Code); err == nil {
		return nil, errors.New("a unit with that code already exists")
	}
	u := model.Unit{Name: req.Name, Code: req.Code}
	if err := s.units.Create(ctx, &u); err != nil {
		return nil, err
	}
	resp := unitToResponse(&u)
	return &resp, nil
}

func (s *catalogService) ListUnits(ctx context.Context) ([]dto.UnitResponse, error) {
	list, err := s.units.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for i := range list {
		out = append(out, unitToResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateUnit(ctx context.Context, id uuid.UUID, req dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	u, err := s.units.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("unit not found")
	}
	u.Name = req.Name
	u.Code = req.Code
	if err := s.units.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := unitToResponse(u)
	return &resp, nil
}

func (s *catalogService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	if _, err := s.units.FindByID(ctx, id); err != nil {
		return errors.New("unit not found")
	}
	return s.units.Delete(ctx, id)
}

// ── Outlets ──────────────────────────────────────────────────────────────────

func (s *catalogService) CreateOutlet(ctx context.Context, req dto.CreateOutletRequest) (*dto.OutletResponse, error) {
	o := model.Outlet{Name: req.Name, Address: req.Address, Phone: req.Phone, Active: true}
	if err := s.outlets.Create(ctx, &o); err != nil {
		return nil, err
	}
	resp := outletToResponse(&o)
	return &resp, nil
}

func (s *catalogService) ListOutlets(ctx context.Context) ([]dto.OutletResponse, error) {
	list, err := s.outlets.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutletResponse, 0, len(list))
	for i := range list {
		out = append(out, outletToResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateOutlet(ctx context.Context, id uuid.UUID, req dto.CreateOutletRequest) (*dto.OutletResponse, error) {
	o, err := s.outlets.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("outlet not found")
	}
	o.Name = req.Name
	o.Address = req.Address
	o.Phone = req.Phone
	if err := s.outlets.Update(ctx, o); err != nil {
		return nil, err
	}
	resp := outletToResponse(o)
	return &resp, nil
}

func (s *catalogService) DeleteOutlet(ctx context.Context, id uuid.UUID) error {
	if _, err := s.outlets.FindByID(ctx, id); err != nil {
		return errors.New("outlet not found")
	}
	return s.outlets.Deactivate(ctx, id)
}

// ── Warehouses ───────────────────────────────────────────────────────────────

func (s *catalogService) CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w := model.Warehouse{Name: req.Name, Address: req.Address, Active: true}
	if err := s.warehouses.Create(ctx, &w); err != nil {
		return nil, err
	}
	resp := warehouseToResponse(&w)
	return &resp, nil
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := s.warehouses.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for i := range list {
		out = append(out, warehouseToResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateWarehouse(ctx context.Context, id uuid.UUID, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("warehouse not found")
	}
	w.Name = req.Name
	w.Address = req.Address
	if err := s.warehouses.Update(ctx, w); err != nil {
		return nil, err
	}
	resp := warehouseToResponse(w)
	return &resp, nil
}

func (s *catalogService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	if _, err := s.warehouses.FindByID(ctx, id); err != nil {
		return errors.New("warehouse not found")
	}
	return s.warehouses.Deactivate(ctx, id)
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

func unitToResponse(u *model.Unit) dto.UnitResponse {
	return dto.UnitResponse{ID: u.ID.String(), Name: u.Name, Code: u.Code}
}

func outletToResponse(o *model.Outlet) dto.OutletResponse {
	return dto.OutletResponse{
		ID:      o.ID.String(),
		Name:    o.Name,
		Address: o.Address,
		Phone:   o.Phone,
		Active:  o.Active,
	}
}

func warehouseToResponse(w *model.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:      w.ID.String(),
		Name:    w.Name,
		Address: w.Address,
		Active:  w.Active,
	}
}
