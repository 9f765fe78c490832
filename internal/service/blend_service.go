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

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// BlendService produces new stock by consuming variant materials.
type BlendService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateBlendRequest) (*dto.BlendResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BlendResponse, error)
	List(ctx context.Context, filter dto.BlendFilter) (*dto.BlendListResponse, error)
}

type blendService struct {
	repo      repository.BlendRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewBlendService(
	repo repository.BlendRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
) BlendService {
	return &blendService{repo: repo, products: products, movements: movements}
}

// Create validates the composition, then atomically deducts each material's
// stock and credits the result variant. The whole submission fails when any
// line is invalid or short on stock — there is no partial blend.
func (s *blendService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateBlendRequest) (*dto.BlendResponse, error) {
	lines := make([]composition.Line, 0, len(req.Materials))
	for _, m := range req.Materials {
		unitID := ""
		if m.UnitID != nil {
			unitID = *m.UnitID
		}
		lines = append(lines, composition.Line{
			ProductDetailID: m.ProductDetailID,
			Quantity:        m.UsedStock,
			UnitID:          unitID,
		})
	}
	parentUnit := ""
	if req.UnitID != nil {
		parentUnit = *req.UnitID
	}
	desc := ""
	if req.Description != nil {
		desc = *req.Description
	}
	payload, err := composition.BuildBlendPayload(req.Name, desc, req.Quantity, parentUnit, lines)
	if err != nil {
		return nil, err
	}

	resultID, err := uuid.Parse(req.ResultVariantID)
	if err != nil {
		return nil, errors.New("invalid result_variant_id")
	}

	// Resolve materials and check stock outside the transaction.
	type resolvedMaterial struct {
		variantID uuid.UUID
		name      string
		stock     int
		used      int
		unitID    *uuid.UUID
	}
	resolved := make([]resolvedMaterial, 0, len(payload.Materials))
	for _, m := range payload.Materials {
		vid, err := uuid.Parse(m.ProductDetailID)
		if err != nil {
			return nil, errors.New("invalid product_detail_id")
		}
		v, err := s.products.FindVariantByID(ctx, vid)
		if err != nil {
			return nil, fmt.Errorf("material %s not found", m.ProductDetailID)
		}
		if v.Stock < m.UsedStock {
			return nil, fmt.Errorf("not enough stock of %s: have %d, need %d", v.Name, v.Stock, m.UsedStock)
		}
		var unitID *uuid.UUID
		if m.UnitID != "" {
			uid, err := uuid.Parse(m.UnitID)
			if err != nil {
				return nil, errors.New("invalid unit_id")
			}
			unitID = &uid
		}
		resolved = append(resolved, resolvedMaterial{
			variantID: vid,
			name:      v.Name,
			stock:     v.Stock,
			used:      m.UsedStock,
			unitID:    unitID,
		})
	}

	result, err := s.products.FindVariantByID(ctx, resultID)
	if err != nil {
		return nil, errors.New("result variant not found")
	}

	blend := model.Blend{
		Name:            payload.Name,
		ResultVariantID: resultID,
		Quantity:        payload.Quantity,
		CreatedBy:       userID,
	}
	if req.Description != nil {
		blend.Description = req.Description
	}
	if payload.UnitID != "" {
		uid, err := uuid.Parse(payload.UnitID)
		if err != nil {
			return nil, errors.New("invalid unit_id")
		}
		blend.UnitID = &uid
	}
	for i, m := range resolved {
		blend.Materials = append(blend.Materials, model.BlendMaterial{
			ProductDetailID: m.variantID,
			UsedStock:       m.used,
			UnitID:          m.unitID,
			Position:        i,
		})
	}

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &blend); err != nil {
			return err
		}

		blendRef := blend.ID
		for _, m := range resolved {
			if err := s.products.UpdateStockTx(tx, m.variantID, -m.used); err != nil {
				return fmt.Errorf("deducting stock of %s: %w", m.name, err)
			}
			mov := &model.StockMovement{
				VariantID:   m.variantID,
				Type:        "blend_material",
				Quantity:    -m.used,
				StockBefore: m.stock,
				StockAfter:  m.stock - m.used,
				Reason:      fmt.Sprintf("Blend %s", payload.Name),
				ReferenceID: &blendRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		if err := s.products.UpdateStockTx(tx, resultID, payload.Quantity); err != nil {
			return err
		}
		return s.movements.CreateTx(tx, &model.StockMovement{
			VariantID:   resultID,
			Type:        "blend_result",
			Quantity:    payload.Quantity,
			StockBefore: result.Stock,
			StockAfter:  result.Stock + payload.Quantity,
			Reason:      fmt.Sprintf("Blend %s", payload.Name),
			ReferenceID: &blendRef,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := blendToResponse(&blend)
	return &resp, nil
}

func (s *blendService) Get(ctx context.Context, id uuid.UUID) (*dto.BlendResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("blend not found")
	}
	resp := blendToResponse(b)
	return &resp, nil
}

func (s *blendService) List(ctx context.Context, filter dto.BlendFilter) (*dto.BlendListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	blends, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.BlendResponse, 0, len(blends))
	for i := range blends {
		data = append(data, blendToResponse(&blends[i]))
	}
	return &dto.BlendListResponse{
		Data:       data,
		Pagination: dto.NewPagination(filter.Page, filter.PerPage, total),
	}, nil
}

func blendToResponse(b *model.Blend) dto.BlendResponse {
	materials := make([]dto.BlendMaterialResponse, 0, len(b.Materials))
	for _, m := range b.Materials {
		var unitID *string
		if m.UnitID != nil {
			v := m.UnitID.String()
			unitID = &v
		}
		name := ""
		if m.Variant != nil {
			name = m.Variant.Name
		}
		materials = append(materials, dto.BlendMaterialResponse{
			ProductDetailID: m.ProductDetailID.String(),
			VariantName:     name,
			UsedStock:       m.UsedStock,
			UnitID:          unitID,
		})
	}
	var unitID *string
	if b.UnitID != nil {
		v := b.UnitID.String()
		unitID = &v
	}
	return dto.BlendResponse{
		ID:              b.ID.String(),
		Name:            b.Name,
		Description:     b.Description,
		ResultVariantID: b.ResultVariantID.String(),
		Quantity:        b.Quantity,
		UnitID:          unitID,
		Materials:       materials,
		CreatedAt:       b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
