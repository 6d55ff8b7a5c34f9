package service

import (
	"context"
	"time"

	"inventorybi/internal/dto"
	"inventorybi/internal/repository"
	"inventorybi/internal/worker"

	"github.com/redis/go-redis/v9"
)

// InventoryService is the read side of the stock ledger. It never writes.
type InventoryService interface {
	ListStock(ctx context.Context, filter dto.StockFilter) (*dto.StockListResponse, error)
	ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
	LowStockAlerts(ctx context.Context, warehouseID *int64) ([]dto.LowStockAlertResponse, error)
	RecentAlerts(ctx context.Context, limit int) ([]dto.RecentStockAlertResponse, error)
}

type inventoryService struct {
	stock     repository.StockRepository
	movements repository.StockMovementRepository
	rdb       *redis.Client // nil: no alert worker, no recent alerts
}

func NewInventoryService(stock repository.StockRepository, movements repository.StockMovementRepository, rdb *redis.Client) InventoryService {
	return &inventoryService{stock: stock, movements: movements, rdb: rdb}
}

func (s *inventoryService) ListStock(ctx context.Context, filter dto.StockFilter) (*dto.StockListResponse, error) {
	rows, total, err := s.stock.List(ctx, repository.StockFilter{
		WarehouseID: filter.WarehouseID,
		ProductID:   filter.ProductID,
		Page:        filter.Page,
		Limit:       filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockResponse, 0, len(rows))
	for _, r := range rows {
		item := dto.StockResponse{
			WarehouseID: r.WarehouseID,
			ProductID:   r.ProductID,
			Quantity:    r.Quantity,
			LastUpdated: r.LastUpdated.Format(time.RFC3339),
		}
		if r.Product != nil {
			item.ProductName = r.Product.Name
			item.Unit = r.Product.Unit
			item.MinStock = r.Product.MinStock
		}
		if r.Warehouse != nil {
			item.WarehouseName = r.Warehouse.Name
		}
		data = append(data, item)
	}
	return &dto.StockListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	rows, total, err := s.movements.List(ctx, repository.StockMovementFilter{
		WarehouseID: filter.WarehouseID,
		ProductID:   filter.ProductID,
		OrderID:     filter.OrderID,
		Kind:        filter.Kind,
		Page:        filter.Page,
		Limit:       filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockMovementResponse, 0, len(rows))
	for _, m := range rows {
		item := dto.StockMovementResponse{
			ID:             m.ID,
			WarehouseID:    m.WarehouseID,
			ProductID:      m.ProductID,
			OrderID:        m.OrderID,
			Kind:           m.Kind,
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		}
		if m.Product != nil {
			item.ProductName = m.Product.Name
		}
		data = append(data, item)
	}
	return &dto.StockMovementListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) LowStockAlerts(ctx context.Context, warehouseID *int64) ([]dto.LowStockAlertResponse, error) {
	rows, err := s.stock.ListBelowMinimum(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockAlertResponse, 0, len(rows))
	for _, r := range rows {
		a := dto.LowStockAlertResponse{WarehouseID: r.WarehouseID, ProductID: r.ProductID, Quantity: r.Quantity}
		if r.Product != nil {
			a.ProductName = r.Product.Name
			if r.Product.MinStock != nil {
				a.MinStock = *r.Product.MinStock
			}
		}
		if r.Warehouse != nil {
			a.WarehouseName = r.Warehouse.Name
		}
		out = append(out, a)
	}
	return out, nil
}

// RecentAlerts lists alerts the worker has raised, newest first.
func (s *inventoryService) RecentAlerts(ctx context.Context, limit int) ([]dto.RecentStockAlertResponse, error) {
	out := []dto.RecentStockAlertResponse{}
	if s.rdb == nil {
		return out, nil
	}
	alerts, err := worker.RecentAlerts(ctx, s.rdb, limit)
	if err != nil {
		return nil, err
	}
	for _, a := range alerts {
		out = append(out, dto.RecentStockAlertResponse{
			WarehouseID: a.WarehouseID,
			ProductID:   a.ProductID,
			ProductName: a.ProductName,
			Quantity:    a.Quantity,
			MinStock:    a.MinStock,
			OrderNo:     a.OrderNo,
			RaisedAt:    a.RaisedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
