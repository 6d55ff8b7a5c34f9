package handler

import (
	"net/http"

	"inventorybi/internal/dto"
	"inventorybi/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	svc     service.InventoryService
	finance service.FinanceService
}

func NewInventoryHandler(svc service.InventoryService, finance service.FinanceService) *InventoryHandler {
	return &InventoryHandler{svc: svc, finance: finance}
}

// ListStock godoc
// @Summary 当前库存
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param warehouse_id query int false "仓库"
// @Param product_id query int false "商品"
// @Success 200 {object} dto.StockListResponse
// @Router /v1/business/stock [get]
func (h *InventoryHandler) ListStock(c *gin.Context) {
	var filter dto.StockFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListStock(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "获取库存失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements godoc
// @Summary 库存流水
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param warehouse_id query int false "仓库"
// @Param product_id query int false "商品"
// @Param order_id query int false "订单"
// @Param kind query string false "inbound | outbound"
// @Success 200 {object} dto.StockMovementListResponse
// @Router /v1/business/stock/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.StockMovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "获取库存流水失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}

type alertFilter struct {
	WarehouseID *int64 `form:"warehouse_id"`
}

// LowStockAlerts godoc
// @Summary 低库存预警
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param warehouse_id query int false "仓库"
// @Success 200 {array} dto.LowStockAlertResponse
// @Router /v1/business/stock/alerts [get]
func (h *InventoryHandler) LowStockAlerts(c *gin.Context) {
	var filter alertFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.LowStockAlerts(c.Request.Context(), filter.WarehouseID)
	if err != nil {
		writeServiceError(c, err, "获取库存预警失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}

type recentAlertFilter struct {
	Limit int `form:"limit,default=20" validate:"min=1,max=200"`
}

// RecentAlerts godoc
// @Summary 最近发出的低库存预警
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param limit query int false "条数 (1-200)"
// @Success 200 {array} dto.RecentStockAlertResponse
// @Router /v1/business/stock/alerts/recent [get]
func (h *InventoryHandler) RecentAlerts(c *gin.Context) {
	var filter recentAlertFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.RecentAlerts(c.Request.Context(), filter.Limit)
	if err != nil {
		writeServiceError(c, err, "获取最近预警失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListFinance godoc
// @Summary 财务流水
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param type query string false "receivable | payable | expense"
// @Param partner_id query int false "往来单位"
// @Param dept_id query int false "部门"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {object} dto.FinanceListResponse
// @Router /v1/business/finance [get]
func (h *InventoryHandler) ListFinance(c *gin.Context) {
	var filter dto.FinanceFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.finance.ListEntries(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "获取财务流水失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}
