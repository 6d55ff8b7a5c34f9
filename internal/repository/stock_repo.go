package repository

import (
	"context"
	"errors"
	"time"

	"inventorybi/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockRecordMissing is returned by AdjustTx when no stock row exists for the pair.
var ErrStockRecordMissing = errors.New("stock record missing")

// StockFilter defines filters for listing current stock.
type StockFilter struct {
	WarehouseID *int64
	ProductID   *int64
	Page        int
	Limit       int
}

// StockRepository is the stock ledger: one row per (warehouse, product).
type StockRepository interface {
	// FindTx returns nil, nil when the pair has no stock row.
	FindTx(tx *gorm.DB, warehouseID, productID int64) (*model.Stock, error)
	// GetOrCreateTx returns the pair's row, inserting it with quantity 0 first if absent.
	GetOrCreateTx(tx *gorm.DB, warehouseID, productID int64) (*model.Stock, error)
	// AdjustTx adds delta to the quantity and returns the new quantity. No floor is applied.
	AdjustTx(tx *gorm.DB, warehouseID, productID int64, delta decimal.Decimal) (decimal.Decimal, error)
	// DeductIfAvailableTx subtracts qty only if quantity >= qty, atomically, and
	// returns the new quantity. ok is false when the row is missing or holds too little stock.
	DeductIfAvailableTx(tx *gorm.DB, warehouseID, productID int64, qty decimal.Decimal) (after decimal.Decimal, ok bool, err error)

	List(ctx context.Context, filter StockFilter) ([]model.Stock, int64, error)
	ListBelowMinimum(ctx context.Context, warehouseID *int64) ([]model.Stock, error)
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepo{db: db}
}

func (r *stockRepo) FindTx(tx *gorm.DB, warehouseID, productID int64) (*model.Stock, error) {
	var s model.Stock
	err := tx.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Limit(1).Find(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *stockRepo) GetOrCreateTx(tx *gorm.DB, warehouseID, productID int64) (*model.Stock, error) {
	row := model.Stock{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    decimal.Zero,
		LastUpdated: time.Now(),
	}
	// A concurrent creator may win the insert; the unique pair makes ours a no-op.
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var s model.Stock
	if err := tx.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) AdjustTx(tx *gorm.DB, warehouseID, productID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var rows []model.Stock
	res := tx.Model(&rows).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "quantity"}}}).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Updates(map[string]interface{}{
			"quantity":     gorm.Expr("quantity + ?", delta),
			"last_updated": time.Now(),
		})
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 || len(rows) == 0 {
		return decimal.Zero, ErrStockRecordMissing
	}
	return rows[0].Quantity, nil
}

func (r *stockRepo) DeductIfAvailableTx(tx *gorm.DB, warehouseID, productID int64, qty decimal.Decimal) (decimal.Decimal, bool, error) {
	var rows []model.Stock
	res := tx.Model(&rows).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "quantity"}}}).
		Where("warehouse_id = ? AND product_id = ? AND quantity >= ?", warehouseID, productID, qty).
		Updates(map[string]interface{}{
			"quantity":     gorm.Expr("quantity - ?", qty),
			"last_updated": time.Now(),
		})
	if res.Error != nil {
		return decimal.Zero, false, res.Error
	}
	if res.RowsAffected == 0 || len(rows) == 0 {
		return decimal.Zero, false, nil
	}
	return rows[0].Quantity, true, nil
}

func (r *stockRepo) List(ctx context.Context, filter StockFilter) ([]model.Stock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Stock{})
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, limit, offset := normalizePage(filter.Page, filter.Limit, 100, 500)

	var rows []model.Stock
	err := q.Preload("Product").Preload("Warehouse").
		Order("warehouse_id ASC, product_id ASC").
		Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

// ListBelowMinimum returns stock rows whose quantity is under the product's min_stock.
func (r *stockRepo) ListBelowMinimum(ctx context.Context, warehouseID *int64) ([]model.Stock, error) {
	q := r.db.WithContext(ctx).Model(&model.Stock{}).
		Joins("JOIN base_product ON base_product.id = inv_current_stock.product_id").
		Where("base_product.is_active = ? AND base_product.min_stock IS NOT NULL", true).
		Where("inv_current_stock.quantity < base_product.min_stock")
	if warehouseID != nil {
		q = q.Where("inv_current_stock.warehouse_id = ?", *warehouseID)
	}
	var rows []model.Stock
	err := q.Preload("Product").Preload("Warehouse").
		Order("inv_current_stock.warehouse_id ASC, inv_current_stock.product_id ASC").
		Find(&rows).Error
	return rows, err
}
