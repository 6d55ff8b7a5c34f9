package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"inventorybi/internal/dto"
	"inventorybi/internal/model"
	"inventorybi/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	productListCacheKey = "cache:products:active"
	productListCacheTTL = 5 * time.Minute
)

// CatalogService exposes the master data used to build inbound/outbound requests.
type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error)
	ListPartners(ctx context.Context, partnerType string) ([]dto.PartnerResponse, error)
	ListSalesmen(ctx context.Context) ([]dto.SalesmanResponse, error)
}

type catalogService struct {
	repo repository.CatalogRepository
	rdb  *redis.Client // optional product list cache
}

func NewCatalogService(repo repository.CatalogRepository, rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, rdb: rdb}
}

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = model.DefaultUnit
	}
	if !req.CostPrice.IsPositive() {
		return nil, &ValidationError{Field: "cost_price", Message: "成本价必须大于0"}
	}

	p := &model.Product{
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		Specification: req.Specification,
		Unit:          unit,
		CostPrice:     req.CostPrice.Round(2),
		MinStock:      req.MinStock,
		IsActive:      true,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}
	s.invalidateProducts(ctx)
	return productToResponse(p), nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	if cached, ok := s.cachedProducts(ctx); ok {
		return cached, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取商品列表失败: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, productListCacheKey, data, productListCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("product list cache write failed")
			}
		}
	}
	return out, nil
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error) {
	warehouses, err := s.repo.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取仓库列表失败: %w", err)
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.WarehouseResponse{
			ID:       w.ID,
			Name:     w.Name,
			Address:  w.Location,
			Manager:  w.Manager,
			IsActive: w.IsActive,
		})
	}
	return out, nil
}

// ListPartners filters by type case-insensitively; unknown types list everything.
func (s *catalogService) ListPartners(ctx context.Context, partnerType string) ([]dto.PartnerResponse, error) {
	t := strings.ToLower(strings.TrimSpace(partnerType))
	if t != model.PartnerCustomer && t != model.PartnerSupplier {
		t = ""
	}
	partners, err := s.repo.ListPartners(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("获取合作伙伴列表失败: %w", err)
	}
	out := make([]dto.PartnerResponse, 0, len(partners))
	for _, p := range partners {
		out = append(out, dto.PartnerResponse{ID: p.ID, Name: p.Name, Type: p.Type, Region: p.Region, IsActive: true})
	}
	return out, nil
}

func (s *catalogService) ListSalesmen(ctx context.Context) ([]dto.SalesmanResponse, error) {
	salesmen, err := s.repo.ListSalesmen(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取业务员列表失败: %w", err)
	}
	out := make([]dto.SalesmanResponse, 0, len(salesmen))
	for _, sm := range salesmen {
		r := dto.SalesmanResponse{ID: sm.ID, Name: sm.Name, DeptID: sm.DeptID, IsActive: sm.IsActive}
		if sm.Department != nil {
			r.DeptName = sm.Department.Name
		}
		out = append(out, r)
	}
	return out, nil
}

// ── Cache ────────────────────────────────────────────────────────────────────

func (s *catalogService) cachedProducts(ctx context.Context) ([]dto.ProductResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, productListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var out []dto.ProductResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *catalogService) invalidateProducts(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, productListCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("product list cache invalidation failed")
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Specification: p.Specification,
		Unit:          p.Unit,
		CostPrice:     p.CostPrice,
		MinStock:      p.MinStock,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
