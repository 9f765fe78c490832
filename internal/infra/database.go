package infra

import (
	"fmt"

	"parfumpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables, then applies the idempotent SQL patches GORM cannot
// express (the transaction-number sequence and a partial index for the
// receipt retry cron).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by the e2e suite
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Unit{},
		&model.Outlet{},
		&model.Warehouse{},
		&model.User{},
		&model.Product{},
		&model.Variant{},
		&model.Discount{},
		&model.Blend{},
		&model.BlendMaterial{},
		&model.Bundling{},
		&model.BundlingItem{},
		&model.StockRequest{},
		&model.StockRequestItem{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.StockMovement{},
		&model.Receipt{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Atomic transaction numbering
		`CREATE SEQUENCE IF NOT EXISTS transactions_number_seq`,
		// Partial index for the receipt retry cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_receipts_pending_retry') THEN
		    CREATE INDEX idx_receipts_pending_retry
		        ON receipts (next_retry_at)
		        WHERE status = 'error' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
