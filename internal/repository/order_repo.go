package repository

import (
	"context"
	"time"

	"inventorybi/internal/model"

	"gorm.io/gorm"
)

// OrderFilter defines filters for listing orders. DateTo is exclusive.
type OrderFilter struct {
	Type        string
	Status      string
	PartnerID   *int64
	WarehouseID *int64
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

type OrderRepository interface {
	// CreateTx inserts the header only; lines go through CreateItemTx.
	CreateTx(tx *gorm.DB, o *model.Order) error
	CreateItemTx(tx *gorm.DB, item *model.OrderItem) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Omit("Items").Create(o).Error
}

func (r *orderRepo) CreateItemTx(tx *gorm.DB, item *model.OrderItem) error {
	return tx.Omit("Product").Create(item).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PartnerID != nil {
		q = q.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.DateFrom != nil {
		q = q.Where("order_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("order_date < ?", *filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, limit, offset := normalizePage(filter.Page, filter.Limit, 50, 200)

	var orders []model.Order
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error

	return orders, total, err
}
