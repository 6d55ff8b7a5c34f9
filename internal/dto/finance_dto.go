package dto

import "github.com/shopspring/decimal"

// FinanceFilter is bound from query string of GET /api/v1/business/finance.
type FinanceFilter struct {
	Type      string `form:"type"       validate:"omitempty,oneof=receivable payable expense"`
	PartnerID *int64 `form:"partner_id"`
	DeptID    *int64 `form:"dept_id"`
	DateFrom  string `form:"date_from"` // YYYY-MM-DD, inclusive
	DateTo    string `form:"date_to"`   // YYYY-MM-DD, inclusive
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type FinanceEntryResponse struct {
	ID              int64            `json:"id"`
	Type            string           `json:"type"`
	TransDate       string           `json:"trans_date"`
	Amount          decimal.Decimal  `json:"amount"`
	Balance         *decimal.Decimal `json:"balance"`
	ExpenseCategory *string          `json:"expense_category"`
	PartnerID       *int64           `json:"partner_id"`
	DeptID          int64            `json:"dept_id"`
	SalesmanID      *int64           `json:"salesman_id"`
	Description     string           `json:"description"`
	CreatedAt       string           `json:"created_at"`
}

type FinanceListResponse struct {
	Data  []FinanceEntryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
