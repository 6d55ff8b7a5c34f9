package repository

import (
	"strings"
	"testing"

	"inventorybi/internal/infra"
	"inventorybi/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := infra.NewDatabase("file:"+name+"?mode=memory&cache=shared", true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, minStock int) model.Product {
	t.Helper()
	p := model.Product{Name: name, Category: "测试", Unit: model.DefaultUnit, CostPrice: decimal.NewFromInt(10), MinStock: &minStock, IsActive: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedWarehouse(t *testing.T, db *gorm.DB, name string) model.Warehouse {
	t.Helper()
	w := model.Warehouse{Name: name, Location: "上海", IsActive: true}
	require.NoError(t, db.Create(&w).Error)
	return w
}
