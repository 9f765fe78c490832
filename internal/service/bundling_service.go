package service

import (
	"context"
	"errors"
	"fmt"

	"parfumpos/internal/composition"
	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBundlingNotFound = errors.New("bundling not found")

// BundlingService manages bundled offerings. A bundling never holds stock of
// its own components — availability is checked against them at sale time.
type BundlingService interface {
	Create(ctx context.Context, req dto.CreateBundlingRequest) (*dto.BundlingResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BundlingResponse, error)
	List(ctx context.Context, filter dto.BundlingFilter) (*dto.BundlingListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateBundlingRequest) (*dto.BundlingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bundlingService struct {
	repo     repository.BundlingRepository
	products repository.ProductRepository
}

func NewBundlingService(repo repository.BundlingRepository, products repository.ProductRepository) BundlingService {
	return &bundlingService{repo: repo, products: products}
}

// buildItems validates the composition and resolves every referenced variant.
// Create and edit share the same rules: at least one line, positive
// quantities, and a unit on every line.
func (s *bundlingService) buildItems(ctx context.Context, req dto.CreateBundlingRequest) ([]model.BundlingItem, error) {
	lines := make([]composition.Line, 0, len(req.Compositions))
	for _, c := range req.Compositions {
		lines = append(lines, composition.Line{
			ProductDetailID: c.ProductDetailID,
			Quantity:        c.Quantity,
			UnitID:          c.UnitID,
		})
	}
	payload, err := composition.BuildBundlingPayload(req.Name, req.Stock, lines)
	if err != nil {
		return nil, err
	}

	items := make([]model.BundlingItem, 0, len(payload.Compositions))
	for i, c := range payload.Compositions {
		vid, err := uuid.Parse(c.ProductDetailID)
		if err != nil {
			return nil, errors.New("invalid product_detail_id")
		}
		if _, err := s.products.FindVariantByID(ctx, vid); err != nil {
			return nil, fmt.Errorf("component %s not found", c.ProductDetailID)
		}
		uid, err := uuid.Parse(c.UnitID)
		if err != nil {
			return nil, errors.New("invalid unit_id")
		}
		items = append(items, model.BundlingItem{
			ProductDetailID: vid,
			Quantity:        c.Quantity,
			UnitID:          uid,
			Position:        i,
		})
	}
	return items, nil
}

func (s *bundlingService) Create(ctx context.Context, req dto.CreateBundlingRequest) (*dto.BundlingResponse, error) {
	items, err := s.buildItems(ctx, req)
	if err != nil {
		return nil, err
	}

	b := model.Bundling{
		Name:   req.Name,
		Price:  req.Price,
		Stock:  req.Stock,
		Active: true,
		Items:  items,
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, err
	}
	return s.Get(ctx, b.ID)
}

func (s *bundlingService) Get(ctx context.Context, id uuid.UUID) (*dto.BundlingResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBundlingNotFound
	}
	resp := bundlingToResponse(b)
	return &resp, nil
}

func (s *bundlingService) List(ctx context.Context, filter dto.BundlingFilter) (*dto.BundlingListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.BundlingResponse, 0, len(list))
	for i := range list {
		data = append(data, bundlingToResponse(&list[i]))
	}
	return &dto.BundlingListResponse{
		Data:       data,
		Pagination: dto.NewPagination(filter.Page, filter.PerPage, total),
	}, nil
}

// Update replaces the bundling head and its whole composition. Edits never
// patch individual lines — the submitted set is the new set.
func (s *bundlingService) Update(ctx context.Context, id uuid.UUID, req dto.CreateBundlingRequest) (*dto.BundlingResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBundlingNotFound
	}

	items, err := s.buildItems(ctx, req)
	if err != nil {
		return nil, err
	}

	b.Name = req.Name
	b.Price = req.Price
	b.Stock = req.Stock

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTx(tx, b, items)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

func (s *bundlingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrBundlingNotFound
	}
	return s.repo.SoftDelete(ctx, id)
}

func bundlingToResponse(b *model.Bundling) dto.BundlingResponse {
	comps := make([]dto.BundlingCompositionResponse, 0, len(b.Items))
	for _, it := range b.Items {
		name := ""
		if it.Variant != nil {
			name = it.Variant.Name
		}
		comps = append(comps, dto.BundlingCompositionResponse{
			ProductDetailID: it.ProductDetailID.String(),
			VariantName:     name,
			Quantity:        it.Quantity,
			UnitID:          it.UnitID.String(),
		})
	}
	return dto.BundlingResponse{
		ID:           b.ID.String(),
		Name:         b.Name,
		Price:        b.Price,
		Stock:        b.Stock,
		Active:       b.Active,
		Compositions: comps,
	}
}
