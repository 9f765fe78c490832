package service_test

import (
	"context"
	"errors"
	"testing"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"
	"parfumpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubStockRequestRepo is an in-memory StockRequestRepository.
type stubStockRequestRepo struct {
	requests map[uuid.UUID]*model.StockRequest
}

func newStubStockRequestRepo() *stubStockRequestRepo {
	return &stubStockRequestRepo{requests: make(map[uuid.UUID]*model.StockRequest)}
}

func (r *stubStockRequestRepo) Create(_ context.Context, sr *model.StockRequest) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	for i := range sr.Items {
		sr.Items[i].StockRequestID = sr.ID
	}
	r.requests[sr.ID] = sr
	return nil
}

func (r *stubStockRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*model.StockRequest, error) {
	sr, ok := r.requests[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return sr, nil
}

func (r *stubStockRequestRepo) List(_ context.Context, filter dto.StockRequestFilter) ([]model.StockRequest, int64, error) {
	out := []model.StockRequest{}
	for _, sr := range r.requests {
		if filter.Status != "" && filter.Status != "all" && sr.Status != filter.Status {
			continue
		}
		out = append(out, *sr)
	}
	return out, int64(len(out)), nil
}

func (r *stubStockRequestRepo) CountPending(_ context.Context) (int64, error) {
	var n int64
	for _, sr := range r.requests {
		if sr.Status == "pending" {
			n++
		}
	}
	return n, nil
}

func (r *stubStockRequestRepo) UpdateStatusTx(_ *gorm.DB, sr *model.StockRequest) error {
	r.requests[sr.ID] = sr
	return nil
}

func (r *stubStockRequestRepo) DB() *gorm.DB { return nil }

var _ repository.StockRequestRepository = (*stubStockRequestRepo)(nil)

// stubOutletRepo holds outlets for FindByID lookups.
type stubOutletRepo struct {
	outlets map[uuid.UUID]*model.Outlet
}

func newStubOutletRepo() *stubOutletRepo {
	return &stubOutletRepo{outlets: make(map[uuid.UUID]*model.Outlet)}
}

func (r *stubOutletRepo) Create(_ context.Context, o *model.Outlet) error {
	r.outlets[o.ID] = o
	return nil
}

func (r *stubOutletRepo) List(_ context.Context) ([]model.Outlet, error) { return nil, nil }

func (r *stubOutletRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Outlet, error) {
	o, ok := r.outlets[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOutletRepo) Update(_ context.Context, _ *model.Outlet) error { return nil }
func (r *stubOutletRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

var _ repository.OutletRepository = (*stubOutletRepo)(nil)

// stubWarehouseRepo holds warehouses for FindByID lookups.
type stubWarehouseRepo struct {
	warehouses map[uuid.UUID]*model.Warehouse
}

func newStubWarehouseRepo() *stubWarehouseRepo {
	return &stubWarehouseRepo{warehouses: make(map[uuid.UUID]*model.Warehouse)}
}

func (r *stubWarehouseRepo) Create(_ context.Context, w *model.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *stubWarehouseRepo) List(_ context.Context) ([]model.Warehouse, error) { return nil, nil }

func (r *stubWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return w, nil
}

func (r *stubWarehouseRepo) Update(_ context.Context, _ *model.Warehouse) error { return nil }
func (r *stubWarehouseRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

var _ repository.WarehouseRepository = (*stubWarehouseRepo)(nil)

type stockRequestFixture struct {
	svc       service.StockRequestService
	requests  *stubStockRequestRepo
	products  *stubProductRepo
	movements *stubMovementRepo
	outletID  uuid.UUID
	warehouse uuid.UUID
}

func buildStockRequestSvc() *stockRequestFixture {
	requests := newStubStockRequestRepo()
	products := newStubProductRepo()
	outlets := newStubOutletRepo()
	warehouses := newStubWarehouseRepo()
	movements := &stubMovementRepo{}

	outlet := &model.Outlet{ID: uuid.New(), Name: "Outlet Senayan"}
	warehouse := &model.Warehouse{ID: uuid.New(), Name: "Gudang Pusat"}
	outlets.outlets[outlet.ID] = outlet
	warehouses.warehouses[warehouse.ID] = warehouse

	return &stockRequestFixture{
		svc:       service.NewStockRequestService(requests, products, outlets, warehouses, movements),
		requests:  requests,
		products:  products,
		movements: movements,
		outletID:  outlet.ID,
		warehouse: warehouse.ID,
	}
}

func (f *stockRequestFixture) createRequest(t *testing.T, items []dto.StockRequestItemRequest) *dto.StockRequestResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateStockRequestRequest{
		OutletID:    f.outletID.String(),
		WarehouseID: f.warehouse.String(),
		Items:       items,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateStockRequest_StartsPending(t *testing.T) {
	f := buildStockRequestSvc()
	v := seedVariant(f.products, "Musk 50ml", 120000, 10)

	resp := f.createRequest(t, []dto.StockRequestItemRequest{
		{ProductDetailID: v.ID.String(), RequestedStock: 8},
	})

	assert.Equal(t, "pending", resp.Status)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 8, resp.Items[0].RequestedStock)
	assert.Equal(t, 10, v.Stock, "creating a request must not touch stock")
}

func TestCreateStockRequest_UnknownVariant(t *testing.T) {
	f := buildStockRequestSvc()

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateStockRequestRequest{
		OutletID:    f.outletID.String(),
		WarehouseID: f.warehouse.String(),
		Items:       []dto.StockRequestItemRequest{{ProductDetailID: uuid.NewString(), RequestedStock: 3}},
	})

	assert.Error(t, err)
}

func TestReviewStockRequest_ApproveCreditsStock(t *testing.T) {
	f := buildStockRequestSvc()
	v := seedVariant(f.products, "Oud 30ml", 95000, 10)
	resp := f.createRequest(t, []dto.StockRequestItemRequest{
		{ProductDetailID: v.ID.String(), RequestedStock: 8},
	})
	id := uuid.MustParse(resp.ID)
	reviewer := uuid.New()

	reviewed, err := f.svc.Review(context.Background(), id, reviewer, dto.ReviewStockRequestRequest{Status: "approved"})
	require.NoError(t, err)

	assert.Equal(t, "approved", reviewed.Status)
	assert.Equal(t, 18, v.Stock)

	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, "stock_request", mov.Type)
	assert.Equal(t, 8, mov.Quantity)
	assert.Equal(t, v.ID, mov.VariantID)
	require.NotNil(t, mov.ReferenceID)
	assert.Equal(t, id, *mov.ReferenceID)

	stored := f.requests.requests[id]
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, reviewer, *stored.ReviewedBy)
	assert.NotNil(t, stored.ReviewedAt)
}

// Replenishment is purely additive: a request may exceed the variant's
// current stock.
func TestReviewStockRequest_ApproveBeyondCurrentStock(t *testing.T) {
	f := buildStockRequestSvc()
	v := seedVariant(f.products, "Oud 30ml", 95000, 10)
	resp := f.createRequest(t, []dto.StockRequestItemRequest{
		{ProductDetailID: v.ID.String(), RequestedStock: 50},
	})

	_, err := f.svc.Review(context.Background(), uuid.MustParse(resp.ID), uuid.New(), dto.ReviewStockRequestRequest{Status: "approved"})
	require.NoError(t, err)

	assert.Equal(t, 60, v.Stock)
}

func TestReviewStockRequest_RejectLeavesStock(t *testing.T) {
	f := buildStockRequestSvc()
	v := seedVariant(f.products, "Amber 10ml", 45000, 6)
	resp := f.createRequest(t, []dto.StockRequestItemRequest{
		{ProductDetailID: v.ID.String(), RequestedStock: 4},
	})

	reviewed, err := f.svc.Review(context.Background(), uuid.MustParse(resp.ID), uuid.New(), dto.ReviewStockRequestRequest{Status: "rejected"})
	require.NoError(t, err)

	assert.Equal(t, "rejected", reviewed.Status)
	assert.Equal(t, 6, v.Stock)
	assert.Empty(t, f.movements.movements)
}

func TestReviewStockRequest_TwiceRejected(t *testing.T) {
	f := buildStockRequestSvc()
	v := seedVariant(f.products, "Musk 50ml", 120000, 10)
	resp := f.createRequest(t, []dto.StockRequestItemRequest{
		{ProductDetailID: v.ID.String(), RequestedStock: 5},
	})
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Review(context.Background(), id, uuid.New(), dto.ReviewStockRequestRequest{Status: "approved"})
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), id, uuid.New(), dto.ReviewStockRequestRequest{Status: "approved"})
	assert.ErrorIs(t, err, service.ErrAlreadyReviewed)
	assert.Equal(t, 15, v.Stock, "stock must be credited exactly once")
}

func TestReviewStockRequest_UnknownVariantFailsReview(t *testing.T) {
	f := buildStockRequestSvc()
	v := seedVariant(f.products, "Musk 50ml", 120000, 10)
	resp := f.createRequest(t, []dto.StockRequestItemRequest{
		{ProductDetailID: v.ID.String(), RequestedStock: 5},
	})
	id := uuid.MustParse(resp.ID)
	delete(f.products.variants, v.ID)

	_, err := f.svc.Review(context.Background(), id, uuid.New(), dto.ReviewStockRequestRequest{Status: "approved"})
	assert.Error(t, err)
	assert.Empty(t, f.movements.movements)
}

func TestReviewStockRequest_NotFound(t *testing.T) {
	f := buildStockRequestSvc()

	_, err := f.svc.Review(context.Background(), uuid.New(), uuid.New(), dto.ReviewStockRequestRequest{Status: "approved"})
	assert.ErrorIs(t, err, service.ErrStockRequestNotFound)
}
