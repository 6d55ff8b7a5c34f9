package infra

import (
	"fmt"
	"strings"

	"inventorybi/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection and, when migrate is true, brings the
// schema up to date. DSNs starting with "file:" or "sqlite:" open an SQLite
// database (local runs and tests); anything else is treated as a Postgres URL.
func NewDatabase(dsn string, migrate bool) (*gorm.DB, error) {
	if isSQLite(dsn) {
		return newSQLite(strings.TrimPrefix(dsn, "sqlite:"), migrate)
	}

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

	if migrate {
		if err := RunMigrations(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func isSQLite(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") || strings.HasPrefix(dsn, "sqlite:")
}

// newSQLite pins the pool to a single connection: in-memory databases live
// and die with their connection, and SQLite serialises writers anyway.
func newSQLite(dsn string, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if migrate {
		if err := db.AutoMigrate(model.All()...); err != nil {
			return nil, fmt.Errorf("AutoMigrate: %w", err)
		}
	}
	return db, nil
}

// RunMigrations creates / updates all tables, then applies the Postgres-only
// constraints GORM tags cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL statements; each one is guarded by an
// existence check so re-running on an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"stock quantity never negative", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_inv_current_stock_quantity') THEN
    ALTER TABLE inv_current_stock
      ADD CONSTRAINT chk_inv_current_stock_quantity CHECK (quantity >= 0);
  END IF;
END $$`},
		{"order item quantity and price positive", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_biz_order_item_positive') THEN
    ALTER TABLE biz_order_item
      ADD CONSTRAINT chk_biz_order_item_positive CHECK (quantity > 0 AND price > 0);
  END IF;
END $$`},
		{"order item cascade", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_biz_order_items') THEN
    ALTER TABLE biz_order_item
      ADD CONSTRAINT fk_biz_order_items FOREIGN KEY (order_id) REFERENCES biz_order(id) ON DELETE CASCADE;
  END IF;
END $$`},
		{"finance type check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_fact_finance_type') THEN
    ALTER TABLE fact_finance
      ADD CONSTRAINT chk_fact_finance_type CHECK (type IN ('receivable', 'payable', 'expense'));
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
