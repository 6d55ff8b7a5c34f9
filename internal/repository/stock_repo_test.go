package repository

import (
	"context"
	"testing"

	"inventorybi/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockRepo_FindTx_MissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	s, err := repo.FindTx(db, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestStockRepo_GetOrCreateTx_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	p := seedProduct(t, db, "螺丝", 5)
	w := seedWarehouse(t, db, "一号仓")

	first, err := repo.GetOrCreateTx(db, w.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, first.Quantity.IsZero())

	second, err := repo.GetOrCreateTx(db, w.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Stock{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStockRepo_AdjustTx(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	p := seedProduct(t, db, "螺丝", 5)
	w := seedWarehouse(t, db, "一号仓")

	_, err := repo.GetOrCreateTx(db, w.ID, p.ID)
	require.NoError(t, err)
	after, err := repo.AdjustTx(db, w.ID, p.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, after.Equal(decimal.NewFromInt(40)), after.String())
	after, err = repo.AdjustTx(db, w.ID, p.ID, decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	assert.True(t, after.Equal(decimal.RequireFromString("42.5")), after.String())

	s, err := repo.FindTx(db, w.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, s.Quantity.Equal(decimal.RequireFromString("42.5")), s.Quantity.String())
}

func TestStockRepo_AdjustTx_MissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	_, err := repo.AdjustTx(db, 9, 9, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrStockRecordMissing)
}

func TestStockRepo_DeductIfAvailableTx(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	p := seedProduct(t, db, "螺丝", 5)
	w := seedWarehouse(t, db, "一号仓")
	_, err := repo.GetOrCreateTx(db, w.ID, p.ID)
	require.NoError(t, err)
	_, err = repo.AdjustTx(db, w.ID, p.ID, decimal.NewFromInt(10))
	require.NoError(t, err)

	after, ok, err := repo.DeductIfAvailableTx(db, w.ID, p.ID, decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, after.Equal(decimal.NewFromInt(3)), after.String())

	// Only 3 left: the guard refuses and leaves the row untouched
	_, ok, err = repo.DeductIfAvailableTx(db, w.ID, p.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.False(t, ok)

	after, ok, err = repo.DeductIfAvailableTx(db, w.ID, p.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, after.IsZero(), after.String())

	s, err := repo.FindTx(db, w.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, s.Quantity.IsZero(), s.Quantity.String())
}

func TestStockRepo_DeductIfAvailableTx_MissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)

	_, ok, err := repo.DeductIfAvailableTx(db, 1, 1, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStockRepo_ListAndBelowMinimum(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	low := seedProduct(t, db, "垫片", 10)
	ok := seedProduct(t, db, "螺母", 2)
	w := seedWarehouse(t, db, "一号仓")

	for _, p := range []model.Product{low, ok} {
		_, err := repo.GetOrCreateTx(db, w.ID, p.ID)
		require.NoError(t, err)
		_, err = repo.AdjustTx(db, w.ID, p.ID, decimal.NewFromInt(5))
		require.NoError(t, err)
	}

	rows, total, err := repo.List(context.Background(), StockFilter{WarehouseID: &w.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Product)

	below, err := repo.ListBelowMinimum(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, low.ID, below[0].ProductID)
}
