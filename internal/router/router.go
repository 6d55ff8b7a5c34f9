package router

import (
	"inventorybi/internal/config"
	"inventorybi/internal/handler"
	"inventorybi/internal/infra"
	"inventorybi/internal/middleware"
	"inventorybi/internal/repository"
	"inventorybi/internal/service"
	"inventorybi/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil; order numbers then come from the in-process generator and
// low-stock alerts are not queued.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	financeRepo := repository.NewFinanceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var alerts service.StockAlertDispatcher
	if rdb != nil {
		alerts = worker.NewDispatcher(rdb)
	}
	orderSvc := service.NewOrderService(
		orderRepo, catalogRepo, stockRepo, movementRepo, financeRepo,
		infra.NewOrderNumberGenerator(rdb), alerts,
	)
	catalogSvc := service.NewCatalogService(catalogRepo, rdb)
	inventorySvc := service.NewInventoryService(stockRepo, movementRepo, rdb)
	financeSvc := service.NewFinanceService(financeRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	businessH := handler.NewBusinessHandler(orderSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc, financeSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	biz := r.Group("/api/v1/business", middleware.JWTAuth(cfg.JWTSecret))
	{
		biz.POST("/inbound", businessH.Inbound)
		biz.POST("/outbound", businessH.Outbound)
		biz.GET("/orders", businessH.ListOrders)
		biz.GET("/orders/:id", businessH.GetOrder)

		biz.POST("/products", catalogH.CreateProduct)
		biz.GET("/products", catalogH.ListProducts)
		biz.GET("/warehouses", catalogH.ListWarehouses)
		biz.GET("/partners", catalogH.ListPartners)
		biz.GET("/salesmen", catalogH.ListSalesmen)

		biz.GET("/stock", inventoryH.ListStock)
		biz.GET("/stock/movements", inventoryH.ListMovements)
		biz.GET("/stock/alerts", inventoryH.LowStockAlerts)
		biz.GET("/stock/alerts/recent", inventoryH.RecentAlerts)
		biz.GET("/finance", inventoryH.ListFinance)
	}

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
