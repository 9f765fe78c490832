package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"
	"parfumpos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubTransactionRepo is an in-memory TransactionRepository for testing.
type stubTransactionRepo struct {
	transactions map[uuid.UUID]*model.Transaction
	numberSeq    int
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{transactions: make(map[uuid.UUID]*model.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, _ *gorm.DB, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *stubTransactionRepo) ListPending(_ context.Context, outletID *uuid.UUID) ([]model.Transaction, error) {
	out := []model.Transaction{}
	for _, t := range r.transactions {
		if t.Status != "pending" {
			continue
		}
		if outletID != nil && (t.OutletID == nil || *t.OutletID != *outletID) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTransactionRepo) NextNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.numberSeq++
	return r.numberSeq, nil
}

func (r *stubTransactionRepo) UpdatePaymentTx(_ *gorm.DB, t *model.Transaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *stubTransactionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	t, ok := r.transactions[id]
	if !ok {
		return errors.New("not found")
	}
	t.Status = status
	return nil
}

func (r *stubTransactionRepo) RevenueSince(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubTransactionRepo) CountPaidSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *stubTransactionRepo) SalesByDay(_ context.Context, _, _ time.Time) ([]repository.SalesByDayRow, error) {
	return nil, nil
}

func (r *stubTransactionRepo) DB() *gorm.DB { return nil }

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// stubProductRepo keeps variants in a map; only the variant methods matter
// for checkout tests.
type stubProductRepo struct {
	variants map[uuid.UUID]*model.Variant
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{variants: make(map[uuid.UUID]*model.Variant)}
}

func (r *stubProductRepo) Create(_ context.Context, _ *model.Product) error { return nil }
func (r *stubProductRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Product, error) {
	return nil, errors.New("not found")
}
func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, nil
}
func (r *stubProductRepo) Update(_ context.Context, _ *model.Product) error { return nil }
func (r *stubProductRepo) SoftDelete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubProductRepo) Reactivate(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubProductRepo) FindVariantByID(_ context.Context, id uuid.UUID) (*model.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubProductRepo) SearchVariants(_ context.Context, _ string) ([]model.Variant, error) {
	out := []model.Variant{}
	for _, v := range r.variants {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubProductRepo) CompositionCandidates(_ context.Context, _ string) ([]model.Variant, error) {
	return nil, nil
}
func (r *stubProductRepo) ListLowStock(_ context.Context, _ int) ([]model.Variant, error) {
	return nil, nil
}
func (r *stubProductRepo) CountActive(_ context.Context) (int64, error) { return 0, nil }
func (r *stubProductRepo) CountLowStock(_ context.Context, _ int) (int64, error) { return 0, nil }

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, variantID uuid.UUID, delta int) error {
	v, ok := r.variants[variantID]
	if !ok {
		return errors.New("not found")
	}
	v.Stock += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubBundlingRepo is an in-memory BundlingRepository.
type stubBundlingRepo struct {
	bundlings map[uuid.UUID]*model.Bundling
}

func newStubBundlingRepo() *stubBundlingRepo {
	return &stubBundlingRepo{bundlings: make(map[uuid.UUID]*model.Bundling)}
}

func (r *stubBundlingRepo) Create(_ context.Context, b *model.Bundling) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bundlings[b.ID] = b
	return nil
}

func (r *stubBundlingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bundling, error) {
	b, ok := r.bundlings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *stubBundlingRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Bundling, error) {
	out := []model.Bundling{}
	for _, id := range ids {
		if b, ok := r.bundlings[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBundlingRepo) List(_ context.Context, _ dto.BundlingFilter) ([]model.Bundling, int64, error) {
	return nil, 0, nil
}

func (r *stubBundlingRepo) Search(_ context.Context, _ string) ([]model.Bundling, error) {
	out := []model.Bundling{}
	for _, b := range r.bundlings {
		if b.Active {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBundlingRepo) UpdateTx(_ *gorm.DB, b *model.Bundling, items []model.BundlingItem) error {
	b.Items = items
	r.bundlings[b.ID] = b
	return nil
}

func (r *stubBundlingRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	b, ok := r.bundlings[id]
	if !ok {
		return errors.New("not found")
	}
	b.Active = false
	return nil
}

func (r *stubBundlingRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	b, ok := r.bundlings[id]
	if !ok {
		return errors.New("not found")
	}
	b.Stock += delta
	return nil
}

func (r *stubBundlingRepo) DB() *gorm.DB { return nil }

var _ repository.BundlingRepository = (*stubBundlingRepo)(nil)

// stubDiscountRepo serves fixed discounts.
type stubDiscountRepo struct {
	discounts map[uuid.UUID]*model.Discount
}

func newStubDiscountRepo() *stubDiscountRepo {
	return &stubDiscountRepo{discounts: make(map[uuid.UUID]*model.Discount)}
}

func (r *stubDiscountRepo) Create(_ context.Context, d *model.Discount) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.discounts[d.ID] = d
	return nil
}

func (r *stubDiscountRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Discount, error) {
	d, ok := r.discounts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func (r *stubDiscountRepo) List(_ context.Context, _, _ int) ([]model.Discount, int64, error) {
	return nil, 0, nil
}
func (r *stubDiscountRepo) ListActive(_ context.Context) ([]model.Discount, error) {
	return nil, nil
}
func (r *stubDiscountRepo) Update(_ context.Context, _ *model.Discount) error { return nil }
func (r *stubDiscountRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

var _ repository.DiscountRepository = (*stubDiscountRepo)(nil)

// stubMovementRepo captures created movements for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByVariant(_ context.Context, _ uuid.UUID, _ int) ([]model.StockMovement, error) {
	return nil, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildCheckoutSvc() (service.CheckoutService, *stubTransactionRepo, *stubProductRepo, *stubBundlingRepo, *stubDiscountRepo, *stubMovementRepo) {
	txRepo := newStubTransactionRepo()
	productRepo := newStubProductRepo()
	bundlingRepo := newStubBundlingRepo()
	discountRepo := newStubDiscountRepo()
	movementRepo := &stubMovementRepo{}
	svc := service.NewCheckoutService(txRepo, productRepo, bundlingRepo, discountRepo, movementRepo, nil)
	return svc, txRepo, productRepo, bundlingRepo, discountRepo, movementRepo
}

func seedVariant(repo *stubProductRepo, name string, price float64, stock int) *model.Variant {
	v := &model.Variant{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      name,
		Stock:     stock,
		Price:     decimal.NewFromFloat(price),
		UnitCode:  "ml",
		Active:    true,
	}
	repo.variants[v.ID] = v
	return v
}

func seedBundling(repo *stubBundlingRepo, name string, price float64, stock int, items []model.BundlingItem) *model.Bundling {
	b := &model.Bundling{
		ID:     uuid.New(),
		Name:   name,
		Price:  decimal.NewFromFloat(price),
		Stock:  stock,
		Active: true,
		Items:  items,
	}
	repo.bundlings[b.ID] = b
	return b
}

func createPending(t *testing.T, svc service.CheckoutService, items []dto.TransactionItemRequest) *dto.TransactionResponse {
	t.Helper()
	resp, err := svc.CreatePending(context.Background(), uuid.New(), dto.CreateTransactionRequest{Items: items})
	require.NoError(t, err)
	return resp
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreatePending_DefaultsQuantityToOne(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Musk 50ml", 120000, 10)

	resp := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String()},
	})

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Qty)
	assert.Equal(t, "120000", resp.Subtotal.String())
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 1, resp.Number)
}

func TestCreatePending_ClampsQuantityToStock(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Oud 30ml", 95000, 3)

	resp := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 99},
	})

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Qty)
	assert.Equal(t, decimal.NewFromInt(95000*3).String(), resp.Subtotal.String())
}

func TestCreatePending_DuplicateItemsCollapse(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Vanilla 100ml", 150000, 10)

	resp := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 2},
		{ItemID: v.ID.String(), Qty: 5},
	})

	require.Len(t, resp.Items, 1)
}

func TestCreatePending_UnknownVariant(t *testing.T) {
	svc, _, _, _, _, _ := buildCheckoutSvc()

	_, err := svc.CreatePending(context.Background(), uuid.New(), dto.CreateTransactionRequest{
		Items: []dto.TransactionItemRequest{{ItemID: uuid.New().String()}},
	})
	assert.ErrorContains(t, err, "not found")
}

func TestCreatePending_SequentialNumbers(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Citrus 50ml", 80000, 50)

	first := createPending(t, svc, []dto.TransactionItemRequest{{ItemID: v.ID.String()}})
	second := createPending(t, svc, []dto.TransactionItemRequest{{ItemID: v.ID.String()}})

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
}

func TestPay_CashWithChange(t *testing.T) {
	svc, _, productRepo, _, _, movementRepo := buildCheckoutSvc()
	v := seedVariant(productRepo, "Amber 50ml", 100000, 10)

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 2},
	})

	resp, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method:   "cash",
		Tendered: "250000",
	})
	require.NoError(t, err)

	assert.Equal(t, "paid", resp.Status)
	assert.Equal(t, "200000", resp.Total.String())
	require.NotNil(t, resp.Change)
	assert.Equal(t, "50000", resp.Change.String())

	// Stock deducted and one movement written
	assert.Equal(t, 8, v.Stock)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, "sale", movementRepo.movements[0].Type)
	assert.Equal(t, -2, movementRepo.movements[0].Quantity)
}

func TestPay_CashInsufficientTendered(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Rose 50ml", 100000, 10)

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 2},
	})

	_, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method:   "cash",
		Tendered: "150000",
	})
	assert.ErrorContains(t, err, "insufficient")
	// Stock untouched on failure
	assert.Equal(t, 10, v.Stock)
}

func TestPay_NonCashSettlesExactly(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Sandalwood 30ml", 75000, 5)

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 2},
	})

	resp, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method: "qris",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Tendered)
	assert.Equal(t, resp.Total.String(), resp.Tendered.String())
	require.NotNil(t, resp.Change)
	assert.True(t, resp.Change.IsZero())
}

func TestPay_PercentDiscount(t *testing.T) {
	svc, _, productRepo, _, discountRepo, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Jasmine 50ml", 100000, 10)
	d := &model.Discount{ID: uuid.New(), Name: "Opening 10%", Type: "percent", Value: decimal.NewFromInt(10), Active: true}
	discountRepo.discounts[d.ID] = d

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 2},
	})

	did := d.ID.String()
	resp, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method:     "transfer",
		DiscountID: &did,
	})
	require.NoError(t, err)
	assert.Equal(t, "20000", resp.DiscountTotal.String())
	assert.Equal(t, "180000", resp.Total.String())
}

func TestPay_NominalDiscountFloorsAtZero(t *testing.T) {
	svc, _, productRepo, _, discountRepo, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Tester 5ml", 10000, 10)
	d := &model.Discount{ID: uuid.New(), Name: "Voucher 50k", Type: "nominal", Value: decimal.NewFromInt(50000), Active: true}
	discountRepo.discounts[d.ID] = d

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 1},
	})

	did := d.ID.String()
	resp, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method:     "transfer",
		DiscountID: &did,
	})
	require.NoError(t, err)
	// Discount is capped at the subtotal — the total never goes negative.
	assert.Equal(t, "10000", resp.DiscountTotal.String())
	assert.True(t, resp.Total.IsZero())
}

func TestPay_ExpiredDiscountRejected(t *testing.T) {
	svc, _, productRepo, _, discountRepo, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Patchouli 50ml", 90000, 10)
	past := time.Now().Add(-24 * time.Hour)
	d := &model.Discount{ID: uuid.New(), Name: "Expired", Type: "percent", Value: decimal.NewFromInt(20), Active: true, EndsAt: &past}
	discountRepo.discounts[d.ID] = d

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String()},
	})

	did := d.ID.String()
	_, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method:     "cash",
		Tendered:   "100000",
		DiscountID: &did,
	})
	assert.ErrorIs(t, err, service.ErrDiscountNotUsable)
}

func TestPay_BundlingDeductsComponents(t *testing.T) {
	svc, _, productRepo, bundlingRepo, _, movementRepo := buildCheckoutSvc()
	compA := seedVariant(productRepo, "Base Musk 10ml", 30000, 20)
	compB := seedVariant(productRepo, "Base Oud 10ml", 40000, 20)
	b := seedBundling(bundlingRepo, "Duo Pack", 65000, 5, []model.BundlingItem{
		{ProductDetailID: compA.ID, Quantity: 2, UnitID: uuid.New()},
		{ProductDetailID: compB.ID, Quantity: 1, UnitID: uuid.New()},
	})

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: b.ID.String(), IsBundling: true, Qty: 3},
	})

	_, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method: "transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, b.Stock)
	assert.Equal(t, 14, compA.Stock) // 20 - 2×3
	assert.Equal(t, 17, compB.Stock) // 20 - 1×3
	assert.Len(t, movementRepo.movements, 2)
}

func TestPay_BundlingComponentShortage(t *testing.T) {
	svc, _, productRepo, bundlingRepo, _, _ := buildCheckoutSvc()
	comp := seedVariant(productRepo, "Base Citrus 10ml", 25000, 2)
	b := seedBundling(bundlingRepo, "Trio Pack", 70000, 5, []model.BundlingItem{
		{ProductDetailID: comp.ID, Quantity: 3, UnitID: uuid.New()},
	})

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: b.ID.String(), IsBundling: true, Qty: 1},
	})

	_, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{
		Method: "transfer",
	})
	assert.ErrorContains(t, err, "not enough stock")
}

func TestPay_AlreadyPaid(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Lavender 50ml", 85000, 10)

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String()},
	})

	_, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{Method: "transfer"})
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{Method: "transfer"})
	assert.ErrorIs(t, err, service.ErrNotPending)
}

func TestVoid_PendingFlipsStatus(t *testing.T) {
	svc, txRepo, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Neroli 50ml", 90000, 10)

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 2},
	})

	require.NoError(t, svc.Void(context.Background(), uuid.MustParse(pending.ID)))

	stored, err := txRepo.FindByID(context.Background(), uuid.MustParse(pending.ID))
	require.NoError(t, err)
	assert.Equal(t, "voided", stored.Status)
	// Pending transactions never touched stock, so nothing to restore.
	assert.Equal(t, 10, v.Stock)
}

func TestVoid_PaidRestoresStock(t *testing.T) {
	svc, _, productRepo, _, _, movementRepo := buildCheckoutSvc()
	v := seedVariant(productRepo, "Vetiver 50ml", 110000, 10)

	pending := createPending(t, svc, []dto.TransactionItemRequest{
		{ItemID: v.ID.String(), Qty: 4},
	})

	_, err := svc.Pay(context.Background(), uuid.MustParse(pending.ID), dto.PayTransactionRequest{Method: "transfer"})
	require.NoError(t, err)
	assert.Equal(t, 6, v.Stock)

	require.NoError(t, svc.Void(context.Background(), uuid.MustParse(pending.ID)))
	assert.Equal(t, 10, v.Stock)

	// One "sale" movement plus one "restore_void" movement
	require.Len(t, movementRepo.movements, 2)
	assert.Equal(t, "restore_void", movementRepo.movements[1].Type)
}

func TestVoid_TwiceRejected(t *testing.T) {
	svc, _, productRepo, _, _, _ := buildCheckoutSvc()
	v := seedVariant(productRepo, "Bergamot 50ml", 95000, 10)

	pending := createPending(t, svc, []dto.TransactionItemRequest{{ItemID: v.ID.String()}})

	require.NoError(t, svc.Void(context.Background(), uuid.MustParse(pending.ID)))
	err := svc.Void(context.Background(), uuid.MustParse(pending.ID))
	assert.ErrorContains(t, err, "already voided")
}

func TestSearch_MergesVariantsAndBundlings(t *testing.T) {
	svc, _, productRepo, bundlingRepo, _, _ := buildCheckoutSvc()
	seedVariant(productRepo, "Musk 50ml", 120000, 10)
	seedBundling(bundlingRepo, "Gift Set", 200000, 3, nil)

	items, err := svc.Search(context.Background(), "musk")
	require.NoError(t, err)
	require.Len(t, items, 2)

	var bundlingCount int
	for _, it := range items {
		if it.IsBundling {
			bundlingCount++
		}
	}
	assert.Equal(t, 1, bundlingCount)
}
