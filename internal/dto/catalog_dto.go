package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string          `json:"name"          validate:"required,max=100"`
	Category      string          `json:"category"      validate:"required,max=50"`
	Specification *string         `json:"specification" validate:"omitempty,max=100"`
	Unit          string          `json:"unit"          validate:"omitempty,max=20"`
	CostPrice     decimal.Decimal `json:"cost_price"    validate:"required,gt=0"`
	MinStock      *int            `json:"min_stock"     validate:"omitempty,min=0"`
}

type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Specification *string         `json:"specification"`
	Unit          string          `json:"unit"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	MinStock      *int            `json:"min_stock"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     string          `json:"created_at"`
}

type WarehouseResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Manager  *string `json:"manager"`
	IsActive bool    `json:"is_active"`
}

// PartnerFilter is bound from query string of GET /api/v1/business/partners.
// Unknown types are ignored and list every partner.
type PartnerFilter struct {
	Type string `form:"type"`
}

type PartnerResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Region string `json:"region"`
	// base_partner carries no activity flag; partners are always reported active
	IsActive bool `json:"is_active"`
}

type SalesmanResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	DeptID   int64  `json:"dept_id"`
	DeptName string `json:"dept_name,omitempty"`
	IsActive bool   `json:"is_active"`
}
