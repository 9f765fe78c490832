package repository

import (
	"context"
	"time"

	"parfumpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesByDayRow is one aggregated bucket of the dashboard sales chart.
type SalesByDayRow struct {
	Day     time.Time       `gorm:"column:day"`
	Revenue decimal.Decimal `gorm:"column:revenue"`
	Count   int64           `gorm:"column:count"`
}

// TransactionRepository defines data access for register transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	ListPending(ctx context.Context, outletID *uuid.UUID) ([]model.Transaction, error)
	NextNumber(ctx context.Context, tx *gorm.DB) (int, error)
	// UpdatePaymentTx writes the payment outcome inside an open transaction,
	// alongside the stock deduction.
	UpdatePaymentTx(tx *gorm.DB, t *model.Transaction) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Dashboard aggregations
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	CountPaidSince(ctx context.Context, since time.Time) (int64, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]SalesByDayRow, error)

	DB() *gorm.DB
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) DB() *gorm.DB { return r.db }

func (r *transactionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").Preload("Outlet").First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) ListPending(ctx context.Context, outletID *uuid.UUID) ([]model.Transaction, error) {
	var list []model.Transaction
	q := r.db.WithContext(ctx).Where("status = 'pending'")
	if outletID != nil {
		q = q.Where("outlet_id = ?", *outletID)
	}
	err := q.Preload("Items").Order("created_at asc").Find(&list).Error
	return list, err
}

func (r *transactionRepo) NextNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic transaction number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('transactions_number_seq')").Scan(&num).Error
	return num, err
}

func (r *transactionRepo) UpdatePaymentTx(tx *gorm.DB, t *model.Transaction) error {
	return tx.Model(&model.Transaction{}).Where("id = ?", t.ID).Updates(map[string]interface{}{
		"status":         t.Status,
		"subtotal":       t.Subtotal,
		"discount_total": t.DiscountTotal,
		"total":          t.Total,
		"discount_id":    t.DiscountID,
		"payment_method": t.PaymentMethod,
		"tendered":       t.Tendered,
		"change":         t.Change,
		"customer_email": t.CustomerEmail,
		"paid_at":        t.PaidAt,
	}).Error
}

func (r *transactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", id).Update("status", status).Error
}

func (r *transactionRepo) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("status = 'paid' AND paid_at >= ?", since).
		Select("COALESCE(SUM(total), 0)").Scan(&revenue).Error
	return revenue, err
}

func (r *transactionRepo) CountPaidSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("status = 'paid' AND paid_at >= ?", since).Count(&total).Error
	return total, err
}

func (r *transactionRepo) SalesByDay(ctx context.Context, from, to time.Time) ([]SalesByDayRow, error) {
	var rows []SalesByDayRow
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("DATE(paid_at) AS day, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Where("status = 'paid' AND paid_at >= ? AND paid_at < ?", from, to).
		Group("DATE(paid_at)").Order("day asc").
		Scan(&rows).Error
	return rows, err
}
