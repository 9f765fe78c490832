package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parfumpos/internal/checkout"
	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"
	"parfumpos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotPending          = errors.New("transaction is not pending")
	ErrDiscountNotUsable   = errors.New("discount is not usable right now")
)

// CheckoutService drives the register: product search, held transactions,
// payment, and voiding.
type CheckoutService interface {
	Search(ctx context.Context, query string) ([]dto.SearchItem, error)
	CreatePending(ctx context.Context, cashierID uuid.UUID, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error)
	ListPending(ctx context.Context, outletID *uuid.UUID) ([]dto.TransactionResponse, error)
	Pay(ctx context.Context, id uuid.UUID, req dto.PayTransactionRequest) (*dto.TransactionResponse, error)
	Void(ctx context.Context, id uuid.UUID) error
}

type checkoutService struct {
	transactions repository.TransactionRepository
	products     repository.ProductRepository
	bundlings    repository.BundlingRepository
	discounts    repository.DiscountRepository
	movements    repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
}

func NewCheckoutService(
	transactions repository.TransactionRepository,
	products repository.ProductRepository,
	bundlings repository.BundlingRepository,
	discounts repository.DiscountRepository,
	movements repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) CheckoutService {
	return &checkoutService{
		transactions: transactions,
		products:     products,
		bundlings:    bundlings,
		discounts:    discounts,
		movements:    movements,
		dispatcher:   dispatcher,
	}
}

// Search returns sellable rows for the register: matching variants plus
// matching bundlings, flattened to the shape the cart works with.
func (s *checkoutService) Search(ctx context.Context, query string) ([]dto.SearchItem, error) {
	variants, err := s.products.SearchVariants(ctx, query)
	if err != nil {
		return nil, err
	}
	bundlings, err := s.bundlings.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SearchItem, 0, len(variants)+len(bundlings))
	for _, v := range variants {
		name := v.Name
		if v.Product != nil {
			name = v.Product.Name + " — " + v.Name
		}
		out = append(out, dto.SearchItem{
			Key:             v.ID.String(),
			Name:            name,
			Price:           v.Price,
			Stock:           v.Stock,
			UnitCode:        v.UnitCode,
			ParentProductID: v.ProductID.String(),
		})
	}
	for _, b := range bundlings {
		out = append(out, dto.SearchItem{
			Key:             b.ID.String(),
			Name:            b.Name,
			Price:           b.Price,
			Stock:           b.Stock,
			UnitCode:        "pcs",
			IsBundling:      true,
			ParentProductID: b.ID.String(),
		})
	}
	return out, nil
}

// resolveItems turns the request items into cart line items, checking each
// referenced variant or bundling exists and is sellable.
func (s *checkoutService) resolveItems(ctx context.Context, items []dto.TransactionItemRequest) ([]checkout.LineItem, error) {
	resolved := make([]checkout.LineItem, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ItemID)
		if err != nil {
			return nil, errors.New("invalid item_id")
		}
		if item.IsBundling {
			b, err := s.bundlings.FindByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("bundling %s not found", item.ItemID)
			}
			if !b.Active {
				return nil, fmt.Errorf("bundling %s is inactive", b.Name)
			}
			resolved = append(resolved, checkout.LineItem{
				Key:             b.ID.String(),
				Name:            b.Name,
				Price:           b.Price,
				Stock:           b.Stock,
				UnitCode:        "pcs",
				IsBundling:      true,
				ParentProductID: b.ID.String(),
			})
			continue
		}
		v, err := s.products.FindVariantByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("variant %s not found", item.ItemID)
		}
		if !v.Active {
			return nil, fmt.Errorf("variant %s is inactive", v.Name)
		}
		name := v.Name
		if v.Product != nil {
			name = v.Product.Name + " — " + v.Name
		}
		resolved = append(resolved, checkout.LineItem{
			Key:             v.ID.String(),
			Name:            name,
			Price:           v.Price,
			Stock:           v.Stock,
			UnitCode:        v.UnitCode,
			ParentProductID: v.ProductID.String(),
		})
	}
	return resolved, nil
}

// CreatePending holds a cart as a pending transaction. Quantities run
// through the same clamp rules the register applies: each added line starts
// at one, explicit quantities clamp to available stock.
func (s *checkoutService) CreatePending(ctx context.Context, cashierID uuid.UUID, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	resolved, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var cart checkout.Cart
	cart.AddBatch(resolved)
	for i, item := range req.Items {
		if item.Qty > 0 {
			cart.SetQuantity(resolved[i].Key, item.Qty)
		}
	}

	items := cart.Items()
	if len(items) == 0 {
		return nil, errors.New("transaction has no items")
	}
	subtotal := cart.GrandTotal()

	t := model.Transaction{
		CashierID:     cashierID,
		Status:        "pending",
		Subtotal:      subtotal,
		DiscountTotal: decimal.Zero,
		Total:         subtotal,
		CustomerEmail: req.CustomerEmail,
	}
	if req.OutletID != nil {
		oid, err := uuid.Parse(*req.OutletID)
		if err != nil {
			return nil, errors.New("invalid outlet_id")
		}
		t.OutletID = &oid
	}
	for _, li := range items {
		itemID, err := uuid.Parse(li.Key)
		if err != nil {
			return nil, errors.New("invalid item key")
		}
		t.Items = append(t.Items, model.TransactionItem{
			ItemID:     itemID,
			IsBundling: li.IsBundling,
			Name:       li.Name,
			Price:      li.Price,
			Qty:        li.Qty,
			Subtotal:   li.TotalPrice,
			UnitCode:   li.UnitCode,
		})
	}

	txErr := runTx(ctx, s.transactions.DB(), func(tx *gorm.DB) error {
		num, err := s.transactions.NextNumber(ctx, tx)
		if err != nil {
			return err
		}
		t.Number = num
		return s.transactions.Create(ctx, tx, &t)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := transactionToResponse(&t)
	return &resp, nil
}

func (s *checkoutService) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error) {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	resp := transactionToResponse(t)
	return &resp, nil
}

func (s *checkoutService) ListPending(ctx context.Context, outletID *uuid.UUID) ([]dto.TransactionResponse, error) {
	list, err := s.transactions.ListPending(ctx, outletID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for i := range list {
		out = append(out, transactionToResponse(&list[i]))
	}
	return out, nil
}

// Pay settles a pending transaction:
//  1. Recompute the subtotal from the stored items — client totals are never
//     trusted.
//  2. Apply the discount, flooring the total at zero.
//  3. Parse the payment. Cash takes a digit-only tendered amount that must
//     cover the total; transfer and QRIS settle exactly.
//  4. In one transaction: re-check and deduct stock (bundlings deduct each
//     component), write movements, mark the transaction paid.
//  5. Dispatch the receipt job.
func (s *checkoutService) Pay(ctx context.Context, id uuid.UUID, req dto.PayTransactionRequest) (*dto.TransactionResponse, error) {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if t.Status != "pending" {
		return nil, ErrNotPending
	}

	// 1. Recompute
	subtotal := decimal.Zero
	for _, item := range t.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	// 2. Discount
	discountTotal := decimal.Zero
	var discountID *uuid.UUID
	if req.DiscountID != nil {
		did, err := uuid.Parse(*req.DiscountID)
		if err != nil {
			return nil, errors.New("invalid discount_id")
		}
		d, err := s.discounts.FindByID(ctx, did)
		if err != nil {
			return nil, errors.New("discount not found")
		}
		if !d.Usable(time.Now()) {
			return nil, ErrDiscountNotUsable
		}
		switch d.Type {
		case "percent":
			discountTotal = subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
		default:
			discountTotal = d.Value
		}
		if discountTotal.GreaterThan(subtotal) {
			discountTotal = subtotal
		}
		discountID = &did
	}
	total := subtotal.Sub(discountTotal)

	// 3. Payment
	method, err := checkout.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}
	var tendered decimal.Decimal
	if method == checkout.MethodCash {
		tendered, err = checkout.ParseTendered(req.Tendered)
		if err != nil {
			return nil, err
		}
		if tendered.LessThan(total) {
			return nil, errors.New("tendered amount is insufficient")
		}
	} else {
		tendered = total
	}
	change := checkout.ComputeChange(total, tendered)

	now := time.Now()
	methodStr := string(method)
	t.Status = "paid"
	t.Subtotal = subtotal
	t.DiscountTotal = discountTotal
	t.Total = total
	t.DiscountID = discountID
	t.PaymentMethod = &methodStr
	t.Tendered = &tendered
	t.Change = &change
	t.PaidAt = &now

	// 4. Deduct stock and persist
	txErr := runTx(ctx, s.transactions.DB(), func(tx *gorm.DB) error {
		txRef := t.ID
		for _, item := range t.Items {
			if item.IsBundling {
				b, err := s.bundlings.FindByID(ctx, item.ItemID)
				if err != nil {
					return fmt.Errorf("bundling %s not found", item.Name)
				}
				if b.Stock < item.Qty {
					return fmt.Errorf("not enough stock of %s: have %d, need %d", b.Name, b.Stock, item.Qty)
				}
				if err := s.bundlings.UpdateStockTx(tx, b.ID, -item.Qty); err != nil {
					return err
				}
				// Each component variant loses qty × its composition amount.
				for _, comp := range b.Items {
					v, err := s.products.FindVariantByID(ctx, comp.ProductDetailID)
					if err != nil {
						return fmt.Errorf("component of %s not found", b.Name)
					}
					need := comp.Quantity * item.Qty
					if v.Stock < need {
						return fmt.Errorf("not enough stock of %s: have %d, need %d", v.Name, v.Stock, need)
					}
					if err := s.products.UpdateStockTx(tx, v.ID, -need); err != nil {
						return err
					}
					mov := &model.StockMovement{
						VariantID:   v.ID,
						Type:        "sale",
						Quantity:    -need,
						StockBefore: v.Stock,
						StockAfter:  v.Stock - need,
						Reason:      fmt.Sprintf("Sale #%d (%s)", t.Number, b.Name),
						ReferenceID: &txRef,
					}
					if err := s.movements.CreateTx(tx, mov); err != nil {
						return err
					}
				}
				continue
			}

			v, err := s.products.FindVariantByID(ctx, item.ItemID)
			if err != nil {
				return fmt.Errorf("variant %s not found", item.Name)
			}
			if v.Stock < item.Qty {
				return fmt.Errorf("not enough stock of %s: have %d, need %d", v.Name, v.Stock, item.Qty)
			}
			if err := s.products.UpdateStockTx(tx, v.ID, -item.Qty); err != nil {
				return err
			}
			mov := &model.StockMovement{
				VariantID:   v.ID,
				Type:        "sale",
				Quantity:    -item.Qty,
				StockBefore: v.Stock,
				StockAfter:  v.Stock - item.Qty,
				Reason:      fmt.Sprintf("Sale #%d", t.Number),
				ReferenceID: &txRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.transactions.UpdatePaymentTx(tx, t)
	})
	if txErr != nil {
		return nil, txErr
	}

	// 5. Async receipt job — best effort, fire & forget
	if s.dispatcher != nil {
		payload := map[string]interface{}{
			"transaction_id": t.ID.String(),
		}
		if t.CustomerEmail != nil && *t.CustomerEmail != "" {
			payload["customer_email"] = *t.CustomerEmail
		}
		_ = s.dispatcher.EnqueueReceipt(ctx, payload)
		_ = s.dispatcher.EnqueueStockAlert(ctx, map[string]interface{}{
			"transaction_id": t.ID.String(),
		})
	}

	resp := transactionToResponse(t)
	return &resp, nil
}

// Void discards a transaction. Voiding a paid transaction restores the stock
// it deducted; voiding a pending one just flips the status.
func (s *checkoutService) Void(ctx context.Context, id uuid.UUID) error {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return ErrTransactionNotFound
	}
	if t.Status == "voided" {
		return errors.New("transaction is already voided")
	}

	if t.Status == "pending" {
		return s.transactions.UpdateStatus(ctx, id, "voided")
	}

	return runTx(ctx, s.transactions.DB(), func(tx *gorm.DB) error {
		txRef := t.ID
		for _, item := range t.Items {
			if item.IsBundling {
				b, err := s.bundlings.FindByID(ctx, item.ItemID)
				if err != nil {
					continue
				}
				if err := s.bundlings.UpdateStockTx(tx, b.ID, item.Qty); err != nil {
					return err
				}
				for _, comp := range b.Items {
					v, err := s.products.FindVariantByID(ctx, comp.ProductDetailID)
					if err != nil {
						continue
					}
					back := comp.Quantity * item.Qty
					if err := s.products.UpdateStockTx(tx, v.ID, back); err != nil {
						return err
					}
					mov := &model.StockMovement{
						VariantID:   v.ID,
						Type:        "restore_void",
						Quantity:    back,
						StockBefore: v.Stock,
						StockAfter:  v.Stock + back,
						Reason:      fmt.Sprintf("Void sale #%d", t.Number),
						ReferenceID: &txRef,
					}
					if err := s.movements.CreateTx(tx, mov); err != nil {
						return err
					}
				}
				continue
			}

			v, err := s.products.FindVariantByID(ctx, item.ItemID)
			if err != nil {
				continue
			}
			if err := s.products.UpdateStockTx(tx, v.ID, item.Qty); err != nil {
				return err
			}
			mov := &model.StockMovement{
				VariantID:   v.ID,
				Type:        "restore_void",
				Quantity:    item.Qty,
				StockBefore: v.Stock,
				StockAfter:  v.Stock + item.Qty,
				Reason:      fmt.Sprintf("Void sale #%d", t.Number),
				ReferenceID: &txRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		t.Status = "voided"
		return s.transactions.UpdatePaymentTx(tx, t)
	})
}

func transactionToResponse(t *model.Transaction) dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransactionItemResponse{
			ItemID:     it.ItemID.String(),
			IsBundling: it.IsBundling,
			Name:       it.Name,
			Price:      it.Price,
			Qty:        it.Qty,
			Subtotal:   it.Subtotal,
			UnitCode:   it.UnitCode,
		})
	}
	return dto.TransactionResponse{
		ID:            t.ID.String(),
		Number:        t.Number,
		Status:        t.Status,
		Items:         items,
		Subtotal:      t.Subtotal,
		DiscountTotal: t.DiscountTotal,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		Tendered:      t.Tendered,
		Change:        t.Change,
		CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
