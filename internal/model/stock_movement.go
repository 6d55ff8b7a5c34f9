package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement kinds.
const (
	MovementInbound  = "inbound"
	MovementOutbound = "outbound"
)

// StockMovement journals every change applied to a Stock row.
// It is written in the same transaction as the change it describes.
type StockMovement struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	WarehouseID    int64           `gorm:"not null;index"`
	ProductID      int64           `gorm:"not null;index"`
	OrderID        *int64          `gorm:"index"`
	Kind           string          `gorm:"size:20;not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(15,2);not null"` // positive = in, negative = out
	QuantityBefore decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (StockMovement) TableName() string { return "inv_stock_movement" }
