package service_test

import (
	"context"
	"errors"
	"testing"

	"parfumpos/internal/composition"
	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"
	"parfumpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubBlendRepo is an in-memory BlendRepository.
type stubBlendRepo struct {
	blends map[uuid.UUID]*model.Blend
}

func newStubBlendRepo() *stubBlendRepo {
	return &stubBlendRepo{blends: make(map[uuid.UUID]*model.Blend)}
}

func (r *stubBlendRepo) CreateTx(_ *gorm.DB, b *model.Blend) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.blends[b.ID] = b
	return nil
}

func (r *stubBlendRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Blend, error) {
	b, ok := r.blends[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *stubBlendRepo) List(_ context.Context, _ dto.BlendFilter) ([]model.Blend, int64, error) {
	out := []model.Blend{}
	for _, b := range r.blends {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

var _ repository.BlendRepository = (*stubBlendRepo)(nil)

func buildBlendSvc() (service.BlendService, *stubBlendRepo, *stubProductRepo, *stubMovementRepo) {
	blendRepo := newStubBlendRepo()
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	svc := service.NewBlendService(blendRepo, productRepo, movementRepo)
	return svc, blendRepo, productRepo, movementRepo
}

func TestCreateBlend_MovesStock(t *testing.T) {
	svc, blendRepo, productRepo, movementRepo := buildBlendSvc()
	matA := seedVariant(productRepo, "Alcohol Base 1L", 50000, 100)
	matB := seedVariant(productRepo, "Musk Essence 100ml", 200000, 30)
	result := seedVariant(productRepo, "Musk EDP 50ml", 150000, 0)

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlendRequest{
		Name:            "Musk EDP Batch 1",
		ResultVariantID: result.ID.String(),
		Quantity:        10,
		Materials: []dto.BlendMaterialRequest{
			{ProductDetailID: matA.ID.String(), UsedStock: 5},
			{ProductDetailID: matB.ID.String(), UsedStock: 2},
		},
	})
	require.NoError(t, err)

	// Materials consumed, result credited
	assert.Equal(t, 95, matA.Stock)
	assert.Equal(t, 28, matB.Stock)
	assert.Equal(t, 10, result.Stock)

	// One movement per material plus one for the result
	require.Len(t, movementRepo.movements, 3)
	assert.Equal(t, "blend_material", movementRepo.movements[0].Type)
	assert.Equal(t, "blend_result", movementRepo.movements[2].Type)
	assert.Equal(t, 10, movementRepo.movements[2].Quantity)

	// Blend stored with ordered materials
	stored, err := blendRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, stored.Materials, 2)
	assert.Equal(t, 0, stored.Materials[0].Position)
	assert.Equal(t, 1, stored.Materials[1].Position)
}

func TestCreateBlend_MaterialShortage(t *testing.T) {
	svc, _, productRepo, movementRepo := buildBlendSvc()
	mat := seedVariant(productRepo, "Rose Essence 100ml", 180000, 1)
	result := seedVariant(productRepo, "Rose EDP 50ml", 140000, 0)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlendRequest{
		Name:            "Rose EDP Batch 1",
		ResultVariantID: result.ID.String(),
		Quantity:        5,
		Materials: []dto.BlendMaterialRequest{
			{ProductDetailID: mat.ID.String(), UsedStock: 3},
		},
	})
	assert.ErrorContains(t, err, "not enough stock")

	// Nothing moved
	assert.Equal(t, 1, mat.Stock)
	assert.Equal(t, 0, result.Stock)
	assert.Empty(t, movementRepo.movements)
}

func TestCreateBlend_ZeroResultQuantity(t *testing.T) {
	svc, _, productRepo, _ := buildBlendSvc()
	mat := seedVariant(productRepo, "Amber Essence 100ml", 160000, 10)
	result := seedVariant(productRepo, "Amber EDP 50ml", 130000, 0)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlendRequest{
		Name:            "Amber EDP Batch 1",
		ResultVariantID: result.ID.String(),
		Quantity:        0,
		Materials: []dto.BlendMaterialRequest{
			{ProductDetailID: mat.ID.String(), UsedStock: 1},
		},
	})
	assert.ErrorIs(t, err, composition.ErrParentQuantity)
}

func TestCreateBlend_NoMaterials(t *testing.T) {
	svc, _, productRepo, _ := buildBlendSvc()
	result := seedVariant(productRepo, "Citrus EDP 50ml", 120000, 0)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlendRequest{
		Name:            "Citrus EDP Batch 1",
		ResultVariantID: result.ID.String(),
		Quantity:        5,
		Materials:       []dto.BlendMaterialRequest{},
	})
	assert.ErrorIs(t, err, composition.ErrEmpty)
}

func TestCreateBlend_UnknownResultVariant(t *testing.T) {
	svc, _, productRepo, _ := buildBlendSvc()
	mat := seedVariant(productRepo, "Vanilla Essence 100ml", 170000, 10)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlendRequest{
		Name:            "Vanilla EDP Batch 1",
		ResultVariantID: uuid.New().String(),
		Quantity:        5,
		Materials: []dto.BlendMaterialRequest{
			{ProductDetailID: mat.ID.String(), UsedStock: 1},
		},
	})
	assert.ErrorContains(t, err, "result variant not found")
}

func TestGetBlend_NotFound(t *testing.T) {
	svc, _, _, _ := buildBlendSvc()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "blend not found")
}
