package service

import (
	"context"
	"errors"
	"fmt"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService manages the catalog: products, their variants, and manual
// stock adjustments.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error

	AdjustStock(ctx context.Context, variantID uuid.UUID, req dto.AdjustStockRequest) error
	CompositionCandidates(ctx context.Context, search string) ([]dto.VariantResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewProductService(repo repository.ProductRepository, movements repository.StockMovementRepository) ProductService {
	return &productService{repo: repo, movements: movements}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		UnitCode:    req.UnitCode,
		Active:      true,
	}
	if p.UnitCode == "" {
		p.UnitCode = "pcs"
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category_id")
		}
		p.CategoryID = &cid
	}

	for _, v := range req.Variants {
		variant := model.Variant{
			Name:        v.Name,
			ProductCode: v.ProductCode,
			Stock:       v.Stock,
			Price:       v.Price,
			UnitCode:    v.UnitCode,
			Active:      true,
		}
		if variant.UnitCode == "" {
			variant.UnitCode = p.UnitCode
		}
		if v.UnitID != nil {
			uid, err := uuid.Parse(*v.UnitID)
			if err != nil {
				return nil, errors.New("invalid unit_id")
			}
			variant.UnitID = &uid
		}
		p.Variants = append(p.Variants, variant)
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	resp := productToResponse(&p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:       data,
		Pagination: dto.NewPagination(filter.Page, filter.PerPage, total),
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Image != nil {
		p.Image = req.Image
	}
	if req.UnitCode != nil {
		p.UnitCode = *req.UnitCode
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category_id")
		}
		p.CategoryID = &cid
	}

	// Save only the head row; variants are managed through their own routes.
	p.Variants = nil
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductNotFound
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

// AdjustStock applies a manual correction to a variant's stock and records
// the movement in the same transaction.
func (s *productService) AdjustStock(ctx context.Context, variantID uuid.UUID, req dto.AdjustStockRequest) error {
	v, err := s.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		return errors.New("variant not found")
	}
	if v.Stock+req.Delta < 0 {
		return fmt.Errorf("adjustment would leave %s with negative stock", v.Name)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStockTx(tx, variantID, req.Delta); err != nil {
			return err
		}
		return s.movements.CreateTx(tx, &model.StockMovement{
			VariantID:   variantID,
			Type:        "adjustment",
			Quantity:    req.Delta,
			StockBefore: v.Stock,
			StockAfter:  v.Stock + req.Delta,
			Reason:      req.Reason,
		})
	})
}

// CompositionCandidates lists the variants offered by the blend and bundling
// builders: active variants of active, non-bundling products.
func (s *productService) CompositionCandidates(ctx context.Context, search string) ([]dto.VariantResponse, error) {
	variants, err := s.repo.CompositionCandidates(ctx, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for i := range variants {
		out = append(out, variantToResponse(&variants[i]))
	}
	return out, nil
}

func variantToResponse(v *model.Variant) dto.VariantResponse {
	var unitID *string
	if v.UnitID != nil {
		s := v.UnitID.String()
		unitID = &s
	}
	return dto.VariantResponse{
		ID:          v.ID.String(),
		ProductID:   v.ProductID.String(),
		Name:        v.Name,
		ProductCode: v.ProductCode,
		Stock:       v.Stock,
		Price:       v.Price,
		UnitID:      unitID,
		UnitCode:    v.UnitCode,
	}
}

func productToResponse(p *model.Product) dto.ProductResponse {
	variants := make([]dto.VariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, variantToResponse(&p.Variants[i]))
	}
	var categoryID, categoryName *string
	if p.CategoryID != nil {
		s := p.CategoryID.String()
		categoryID = &s
	}
	if p.Category != nil {
		categoryName = &p.Category.Name
	}
	return dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  categoryID,
		Category:    categoryName,
		Image:       p.Image,
		UnitCode:    p.UnitCode,
		IsBundling:  p.IsBundling,
		Active:      p.Active,
		Variants:    variants,
	}
}
