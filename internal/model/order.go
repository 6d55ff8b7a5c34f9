package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order types.
const (
	OrderSales    = "sales"
	OrderPurchase = "purchase"
)

// Order statuses. Orders are created directly as confirmed; the remaining
// states exist in the schema but no operation moves an order into them.
const (
	OrderDraft     = "draft"
	OrderConfirmed = "confirmed"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is the header of an inbound (purchase) or outbound (sales) document.
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderNo     string          `gorm:"size:50;not null;uniqueIndex"`
	Type        string          `gorm:"size:20;not null;index"`
	OrderDate   time.Time       `gorm:"type:date;not null;index"`
	Status      string          `gorm:"size:20;not null;default:'draft'"`
	SalesmanID  int64           `gorm:"not null;index"`
	PartnerID   int64           `gorm:"not null;index"`
	WarehouseID int64           `gorm:"not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Remark      *string         `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "biz_order" }

// OrderItem is one product line of an order. Subtotal = Quantity × Price.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Remark    *string         `gorm:"size:200"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string { return "biz_order_item" }
