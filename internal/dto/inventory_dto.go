package dto

import "github.com/shopspring/decimal"

// StockFilter is bound from query string of GET /api/v1/business/stock.
type StockFilter struct {
	WarehouseID *int64 `form:"warehouse_id"`
	ProductID   *int64 `form:"product_id"`
	Page        int    `form:"page,default=1"    validate:"min=1"`
	Limit       int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockResponse struct {
	WarehouseID   int64           `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinStock      *int            `json:"min_stock"`
	LastUpdated   string          `json:"last_updated"`
}

type StockListResponse struct {
	Data  []StockResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// StockMovementFilter is bound from query string of GET /api/v1/business/stock/movements.
type StockMovementFilter struct {
	WarehouseID *int64 `form:"warehouse_id"`
	ProductID   *int64 `form:"product_id"`
	OrderID     *int64 `form:"order_id"`
	Kind        string `form:"kind"              validate:"omitempty,oneof=inbound outbound"`
	Page        int    `form:"page,default=1"    validate:"min=1"`
	Limit       int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockMovementResponse struct {
	ID             int64           `json:"id"`
	WarehouseID    int64           `json:"warehouse_id"`
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	OrderID        *int64          `json:"order_id"`
	Kind           string          `json:"kind"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	CreatedAt      string          `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// LowStockAlertResponse describes one stock row under its product's minimum.
type LowStockAlertResponse struct {
	WarehouseID   int64           `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinStock      int             `json:"min_stock"`
}

// RecentStockAlertResponse is one alert raised by the alert worker.
type RecentStockAlertResponse struct {
	WarehouseID int64           `json:"warehouse_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	OrderNo     string          `json:"order_no"`
	RaisedAt    string          `json:"raised_at"`
}
