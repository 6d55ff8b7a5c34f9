package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is the current on-hand quantity of one product in one warehouse.
// The (warehouse_id, product_id) pair is unique.
type Stock struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	WarehouseID int64           `gorm:"not null;uniqueIndex:idx_stock_warehouse_product"`
	ProductID   int64           `gorm:"not null;uniqueIndex:idx_stock_warehouse_product"`
	Quantity    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	LastUpdated time.Time

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

func (Stock) TableName() string { return "inv_current_stock" }
