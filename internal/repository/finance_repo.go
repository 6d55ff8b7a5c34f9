package repository

import (
	"context"
	"time"

	"inventorybi/internal/model"

	"gorm.io/gorm"
)

// FinanceFilter defines filters for listing ledger entries. DateTo is exclusive.
type FinanceFilter struct {
	Type      string
	PartnerID *int64
	DeptID    *int64
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	Limit     int
}

// FinanceRepository is the append-only financial ledger.
type FinanceRepository interface {
	PostTx(tx *gorm.DB, entry *model.FinanceEntry) error
	List(ctx context.Context, filter FinanceFilter) ([]model.FinanceEntry, int64, error)
}

type financeRepo struct{ db *gorm.DB }

func NewFinanceRepository(db *gorm.DB) FinanceRepository { return &financeRepo{db: db} }

func (r *financeRepo) PostTx(tx *gorm.DB, entry *model.FinanceEntry) error {
	return tx.Create(entry).Error
}

func (r *financeRepo) List(ctx context.Context, filter FinanceFilter) ([]model.FinanceEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.FinanceEntry{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.PartnerID != nil {
		q = q.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.DeptID != nil {
		q = q.Where("dept_id = ?", *filter.DeptID)
	}
	if filter.DateFrom != nil {
		q = q.Where("trans_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("trans_date < ?", *filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, limit, offset := normalizePage(filter.Page, filter.Limit, 100, 500)

	var entries []model.FinanceEntry
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}
