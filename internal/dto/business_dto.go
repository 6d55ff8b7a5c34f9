package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"      validate:"required,gt=0"`
}

// InboundRequest is the body of POST /api/v1/business/inbound (purchase receipt).
type InboundRequest struct {
	SupplierID  int64              `json:"supplier_id"  validate:"required,gt=0"`
	WarehouseID int64              `json:"warehouse_id" validate:"required,gt=0"`
	SalesmanID  int64              `json:"salesman_id"  validate:"required,gt=0"`
	Items       []OrderItemRequest `json:"items"        validate:"required,min=1,dive"`
	Remark      *string            `json:"remark"`
}

// OutboundRequest is the body of POST /api/v1/business/outbound (sales shipment).
type OutboundRequest struct {
	CustomerID  int64              `json:"customer_id"  validate:"required,gt=0"`
	WarehouseID int64              `json:"warehouse_id" validate:"required,gt=0"`
	SalesmanID  int64              `json:"salesman_id"  validate:"required,gt=0"`
	Items       []OrderItemRequest `json:"items"        validate:"required,min=1,dive"`
	Remark      *string            `json:"remark"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// OrderFilter is bound from query string of GET /api/v1/business/orders.
type OrderFilter struct {
	Type        string `form:"type"        validate:"omitempty,oneof=sales purchase"`
	Status      string `form:"status"      validate:"omitempty,oneof=draft confirmed completed cancelled"`
	PartnerID   *int64 `form:"partner_id"`
	WarehouseID *int64 `form:"warehouse_id"`
	DateFrom    string `form:"date_from"` // YYYY-MM-DD, inclusive
	DateTo      string `form:"date_to"`   // YYYY-MM-DD, inclusive
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Remark      *string         `json:"remark"`
}

type OrderResponse struct {
	ID          int64               `json:"id"`
	OrderNo     string              `json:"order_no"`
	Type        string              `json:"type"`
	OrderDate   string              `json:"order_date"` // YYYY-MM-DD
	Status      string              `json:"status"`
	SalesmanID  int64               `json:"salesman_id"`
	PartnerID   int64               `json:"partner_id"`
	WarehouseID int64               `json:"warehouse_id"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Remark      *string             `json:"remark"`
	CreatedAt   string              `json:"created_at"`
	Items       []OrderItemResponse `json:"items"`
}

// BusinessOperationResponse wraps the result of an inbound/outbound operation.
type BusinessOperationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
