// cmd/seed/main.go loads demo master data (departments, salesmen, partners,
// warehouses, products). Safe to run repeatedly.
// Usage: go run ./cmd/seed
package main

import (
	"os"
	"time"

	"inventorybi/internal/config"
	"inventorybi/internal/infra"
	"inventorybi/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, true)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.Transaction(seed); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("demo data ready")
}

func seed(tx *gorm.DB) error {
	sales := model.Department{Name: "销售一部", CompanyName: "华东贸易有限公司"}
	if err := tx.Where(model.Department{Name: sales.Name}).FirstOrCreate(&sales).Error; err != nil {
		return err
	}
	purchasing := model.Department{Name: "采购部", CompanyName: "华东贸易有限公司"}
	if err := tx.Where(model.Department{Name: purchasing.Name}).FirstOrCreate(&purchasing).Error; err != nil {
		return err
	}

	salesmen := []model.Salesman{
		{Name: "张三", DeptID: sales.ID, IsActive: true},
		{Name: "李四", DeptID: sales.ID, IsActive: true},
		{Name: "王五", DeptID: purchasing.ID, IsActive: true},
	}
	for i := range salesmen {
		if err := tx.Where(model.Salesman{Name: salesmen[i].Name}).FirstOrCreate(&salesmen[i]).Error; err != nil {
			return err
		}
	}

	partners := []model.Partner{
		{Name: "宏达五金制造厂", Type: model.PartnerSupplier, Region: "华东"},
		{Name: "金鼎建材批发", Type: model.PartnerSupplier, Region: "华北"},
		{Name: "新世纪建材城", Type: model.PartnerCustomer, Region: "华南"},
		{Name: "安居装饰工程", Type: model.PartnerCustomer, Region: "华东"},
	}
	for i := range partners {
		if err := tx.Where(model.Partner{Name: partners[i].Name}).FirstOrCreate(&partners[i]).Error; err != nil {
			return err
		}
	}

	warehouses := []model.Warehouse{
		{Name: "上海一号仓", Location: "上海市浦东新区", IsActive: true},
		{Name: "广州中转仓", Location: "广州市白云区", IsActive: true},
	}
	for i := range warehouses {
		if err := tx.Where(model.Warehouse{Name: warehouses[i].Name}).FirstOrCreate(&warehouses[i]).Error; err != nil {
			return err
		}
	}

	minStock := func(n int) *int { return &n }
	products := []model.Product{
		{Name: "十字螺丝 M4", Category: "五金", Unit: "盒", CostPrice: decimal.RequireFromString("12.50"), MinStock: minStock(20), IsActive: true},
		{Name: "膨胀螺栓 M8", Category: "五金", Unit: "个", CostPrice: decimal.RequireFromString("0.85"), MinStock: minStock(500), IsActive: true},
		{Name: "水泥 42.5", Category: "建材", Unit: "袋", CostPrice: decimal.RequireFromString("28.00"), MinStock: minStock(50), IsActive: true},
		{Name: "乳胶漆 18L", Category: "涂料", Unit: "桶", CostPrice: decimal.RequireFromString("260.00"), MinStock: minStock(10), IsActive: true},
	}
	for i := range products {
		if err := tx.Where(model.Product{Name: products[i].Name}).FirstOrCreate(&products[i]).Error; err != nil {
			return err
		}
	}

	log.Info().
		Int("salesmen", len(salesmen)).
		Int("partners", len(partners)).
		Int("warehouses", len(warehouses)).
		Int("products", len(products)).
		Msg("seeded")
	return nil
}
