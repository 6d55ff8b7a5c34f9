package service

import (
	"context"
	"testing"

	"inventorybi/internal/dto"
	"inventorybi/internal/model"
	"inventorybi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_CreateProductDefaultsUnit(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(repository.NewCatalogRepository(f.db), nil)

	p, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:      " 六角扳手 ",
		Category:  "工具",
		CostPrice: dec("12.345"),
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "六角扳手", p.Name)
	assert.Equal(t, model.DefaultUnit, p.Unit)
	assert.True(t, p.CostPrice.Equal(dec("12.35")))
	assert.True(t, p.IsActive)
}

func TestCatalog_CreateProductRejectsNonPositiveCost(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(repository.NewCatalogRepository(f.db), nil)

	_, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{Name: "x", Category: "y", CostPrice: dec("0")})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCatalog_ListProductsSkipsInactiveAndSorts(t *testing.T) {
	f := newFixture(t)
	inactive := model.Product{Name: "停产件", Category: "五金", Unit: model.DefaultUnit, CostPrice: dec("1"), IsActive: true}
	require.NoError(t, f.db.Create(&inactive).Error)
	require.NoError(t, f.db.Model(&inactive).Update("is_active", false).Error)
	tool := model.Product{Name: "卷尺", Category: "工具", Unit: model.DefaultUnit, CostPrice: dec("8"), IsActive: true}
	require.NoError(t, f.db.Create(&tool).Error)

	svc := NewCatalogService(repository.NewCatalogRepository(f.db), nil)
	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 3)
	// ordered by category, then name
	assert.Equal(t, "五金", products[0].Category)
	assert.Equal(t, "五金", products[1].Category)
	assert.Equal(t, "卷尺", products[2].Name)
	for _, p := range products {
		assert.NotEqual(t, inactive.ID, p.ID)
	}
}

func TestCatalog_ListPartnersByType(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(repository.NewCatalogRepository(f.db), nil)

	customers, err := svc.ListPartners(context.Background(), "Customer")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, f.customer.ID, customers[0].ID)
	assert.True(t, customers[0].IsActive)

	all, err := svc.ListPartners(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalog_ListWarehousesAndSalesmen(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(repository.NewCatalogRepository(f.db), nil)

	warehouses, err := svc.ListWarehouses(context.Background())
	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	assert.Equal(t, "上海浦东", warehouses[0].Address)

	salesmen, err := svc.ListSalesmen(context.Background())
	require.NoError(t, err)
	require.Len(t, salesmen, 1)
	assert.Equal(t, f.dept.ID, salesmen[0].DeptID)
	assert.Equal(t, "销售一部", salesmen[0].DeptName)
}

func TestCatalog_CreateProductMinStockMatchesStoredRow(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewCatalogRepository(f.db)
	svc := NewCatalogService(repo, nil)

	five := 5
	for name, req := range map[string]dto.CreateProductRequest{
		"without threshold": {Name: "卷尺", Category: "工具", CostPrice: dec("8")},
		"with threshold":    {Name: "钢钉", Category: "五金", CostPrice: dec("0.2"), MinStock: &five},
	} {
		t.Run(name, func(t *testing.T) {
			created, err := svc.CreateProduct(context.Background(), req)
			require.NoError(t, err)

			var stored model.Product
			require.NoError(t, f.db.First(&stored, created.ID).Error)
			assert.Equal(t, req.MinStock, created.MinStock)
			assert.Equal(t, stored.MinStock, created.MinStock)
		})
	}
}
