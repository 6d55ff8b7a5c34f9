package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Finance entry types.
const (
	FinanceReceivable = "receivable"
	FinancePayable    = "payable"
	FinanceExpense    = "expense"
)

// FinanceEntry is an append-only ledger row. Entries are never updated or netted.
type FinanceEntry struct {
	ID              int64            `gorm:"primaryKey;autoIncrement"`
	Type            string           `gorm:"size:20;not null;index"`
	TransDate       time.Time        `gorm:"type:date;not null;index"`
	Amount          decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Balance         *decimal.Decimal `gorm:"type:decimal(15,2)"`
	ExpenseCategory *string          `gorm:"size:50"`
	PartnerID       *int64           `gorm:"index"`
	DeptID          int64            `gorm:"not null;index"`
	SalesmanID      *int64           `gorm:"index"`
	Description     string           `gorm:"type:text"`
	CreatedAt       time.Time
}

func (FinanceEntry) TableName() string { return "fact_finance" }
