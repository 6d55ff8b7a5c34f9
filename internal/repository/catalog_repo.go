package repository

import (
	"context"

	"inventorybi/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository reads and writes the master data: products, warehouses,
// partners and salesmen. The Tx variants run inside a caller's transaction.
type CatalogRepository interface {
	DB() *gorm.DB

	CreateProduct(ctx context.Context, p *model.Product) error
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	ListPartners(ctx context.Context, partnerType string) ([]model.Partner, error)
	ListSalesmen(ctx context.Context) ([]model.Salesman, error)

	FindProductTx(tx *gorm.DB, id int64) (*model.Product, error)
	FindProductsTx(tx *gorm.DB, ids []int64) (map[int64]model.Product, error)
	FindWarehouseTx(tx *gorm.DB, id int64) (*model.Warehouse, error)
	FindPartnerTx(tx *gorm.DB, id int64) (*model.Partner, error)
	FindSalesmanTx(tx *gorm.DB, id int64) (*model.Salesman, error)
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) DB() *gorm.DB { return r.db }

func (r *catalogRepo) CreateProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *catalogRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category ASC, name ASC").
		Find(&out).Error
	return out, err
}

func (r *catalogRepo) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	var out []model.Warehouse
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// ListPartners returns every partner, or only those of partnerType when set.
func (r *catalogRepo) ListPartners(ctx context.Context, partnerType string) ([]model.Partner, error) {
	q := r.db.WithContext(ctx).Model(&model.Partner{})
	if partnerType != "" {
		q = q.Where("type = ?", partnerType)
	}
	var out []model.Partner
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *catalogRepo) ListSalesmen(ctx context.Context) ([]model.Salesman, error) {
	var out []model.Salesman
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// ── Tx lookups ───────────────────────────────────────────────────────────────
// All return gorm.ErrRecordNotFound when the row does not exist.

func (r *catalogRepo) FindProductTx(tx *gorm.DB, id int64) (*model.Product, error) {
	var p model.Product
	if err := tx.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProductsTx loads the given products keyed by id. Missing ids are simply absent.
func (r *catalogRepo) FindProductsTx(tx *gorm.DB, ids []int64) (map[int64]model.Product, error) {
	out := make(map[int64]model.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Product
	if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

func (r *catalogRepo) FindWarehouseTx(tx *gorm.DB, id int64) (*model.Warehouse, error) {
	var w model.Warehouse
	if err := tx.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *catalogRepo) FindPartnerTx(tx *gorm.DB, id int64) (*model.Partner, error) {
	var p model.Partner
	if err := tx.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) FindSalesmanTx(tx *gorm.DB, id int64) (*model.Salesman, error) {
	var s model.Salesman
	if err := tx.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
