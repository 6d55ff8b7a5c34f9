package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner types.
const (
	PartnerCustomer = "customer"
	PartnerSupplier = "supplier"
)

// DefaultUnit is the unit of measure assigned when a product is created without one.
const DefaultUnit = "件"

// Product is a sellable/stockable item of the catalog.
type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Name          string          `gorm:"size:100;not null;index"`
	Category      string          `gorm:"size:50;not null;index"`
	Specification *string         `gorm:"size:100"`
	Unit          string          `gorm:"size:20;not null;default:'件'"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MinStock      *int            // nil: no low-stock threshold
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
}

func (Product) TableName() string { return "base_product" }

// Warehouse is a storage location holding stock.
type Warehouse struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"size:50;not null"`
	Location  string  `gorm:"size:100;not null"`
	Manager   *string `gorm:"size:50"`
	IsActive  bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (Warehouse) TableName() string { return "base_warehouse" }

// Partner is an external trading party: a customer or a supplier.
type Partner struct {
	ID            int64            `gorm:"primaryKey;autoIncrement"`
	Name          string           `gorm:"size:100;not null;index"`
	Type          string           `gorm:"size:20;not null;index"` // customer | supplier
	Region        string           `gorm:"size:50;not null"`
	ContactPerson *string          `gorm:"size:50"`
	Phone         *string          `gorm:"size:20"`
	Address       *string          `gorm:"size:200"`
	CreditLimit   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt     time.Time
}

func (Partner) TableName() string { return "base_partner" }

// Department is an organisational unit; finance entries are attributed to one.
type Department struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:50;not null"`
	CompanyName string `gorm:"size:100;not null"`
	ParentID    *int64
	CreatedAt   time.Time
}

func (Department) TableName() string { return "sys_department" }

// Salesman is the employee responsible for an order. DeptID is mandatory.
type Salesman struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"size:50;not null;index"`
	DeptID    int64   `gorm:"not null;index"`
	Email     *string `gorm:"size:100"`
	Phone     *string `gorm:"size:20"`
	IsActive  bool    `gorm:"not null;default:true"`
	CreatedAt time.Time

	Department *Department `gorm:"foreignKey:DeptID"`
}

func (Salesman) TableName() string { return "sys_employee" }
