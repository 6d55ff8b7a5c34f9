package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"inventorybi/internal/infra"
	"inventorybi/internal/model"
	"inventorybi/internal/repository"
	"inventorybi/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Fixtures ─────────────────────────────────────────────────────────────────

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

type fixture struct {
	db        *gorm.DB
	dept      model.Department
	salesman  model.Salesman
	supplier  model.Partner
	customer  model.Partner
	warehouse model.Warehouse
	screw     model.Product // min_stock 10
	bolt      model.Product // no min_stock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{db: db}

	f.dept = model.Department{Name: "销售一部", CompanyName: "华东贸易"}
	require.NoError(t, db.Create(&f.dept).Error)
	f.salesman = model.Salesman{Name: "张三", DeptID: f.dept.ID, IsActive: true}
	require.NoError(t, db.Create(&f.salesman).Error)
	f.supplier = model.Partner{Name: "宏达五金", Type: model.PartnerSupplier, Region: "华东"}
	require.NoError(t, db.Create(&f.supplier).Error)
	f.customer = model.Partner{Name: "新世纪建材", Type: model.PartnerCustomer, Region: "华南"}
	require.NoError(t, db.Create(&f.customer).Error)
	f.warehouse = model.Warehouse{Name: "上海一号仓", Location: "上海浦东", IsActive: true}
	require.NoError(t, db.Create(&f.warehouse).Error)

	minStock := 10
	f.screw = model.Product{Name: "螺丝", Category: "五金", Unit: model.DefaultUnit, CostPrice: decimal.NewFromInt(1), MinStock: &minStock, IsActive: true}
	require.NoError(t, db.Create(&f.screw).Error)
	f.bolt = model.Product{Name: "螺栓", Category: "五金", Unit: model.DefaultUnit, CostPrice: decimal.NewFromInt(2), IsActive: true}
	require.NoError(t, db.Create(&f.bolt).Error)

	return f
}

// setStock writes a stock row directly, bypassing the engine.
func (f *fixture) setStock(t *testing.T, productID int64, qty int64) {
	t.Helper()
	row := model.Stock{WarehouseID: f.warehouse.ID, ProductID: productID, Quantity: decimal.NewFromInt(qty)}
	require.NoError(t, f.db.Create(&row).Error)
}

func (f *fixture) stockOf(t *testing.T, productID int64) decimal.Decimal {
	t.Helper()
	var row model.Stock
	err := f.db.Where("warehouse_id = ? AND product_id = ?", f.warehouse.ID, productID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero
	}
	require.NoError(t, err)
	return row.Quantity
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

// ── Alert stub ───────────────────────────────────────────────────────────────

type recordingAlerts struct {
	mu     sync.Mutex
	alerts []worker.LowStockAlert
	err    error
}

func (r *recordingAlerts) EnqueueLowStock(_ context.Context, a worker.LowStockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return r.err
}

var _ StockAlertDispatcher = (*recordingAlerts)(nil)

func newOrderSvc(f *fixture, alerts StockAlertDispatcher) *orderService {
	return NewOrderService(
		repository.NewOrderRepository(f.db),
		repository.NewCatalogRepository(f.db),
		repository.NewStockRepository(f.db),
		repository.NewStockMovementRepository(f.db),
		repository.NewFinanceRepository(f.db),
		infra.NewLocalOrderNumbers(),
		alerts,
	).(*orderService)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
