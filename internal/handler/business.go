package handler

import (
	"net/http"

	"inventorybi/internal/dto"
	"inventorybi/internal/service"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct{ svc service.OrderService }

func NewBusinessHandler(svc service.OrderService) *BusinessHandler {
	return &BusinessHandler{svc: svc}
}

// Inbound godoc
// @Summary 采购入库
// @Description Creates a purchase order, increases stock and posts a payable in one transaction
// @Tags business
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.InboundRequest true "入库单"
// @Success 200 {object} dto.BusinessOperationResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Failure 500 {object} apierror.APIError
// @Router /v1/business/inbound [post]
func (h *BusinessHandler) Inbound(c *gin.Context) {
	var req dto.InboundRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateInbound(c.Request.Context(), operatorFrom(c), req)
	if err != nil {
		writeServiceError(c, err, "入库操作失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Outbound godoc
// @Summary 销售出库
// @Description Creates a sales order, decreases stock and posts a receivable in one transaction
// @Tags business
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OutboundRequest true "出库单"
// @Success 200 {object} dto.BusinessOperationResponse
// @Failure 400 {object} apierror.APIError "库存不足"
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Failure 500 {object} apierror.APIError
// @Router /v1/business/outbound [post]
func (h *BusinessHandler) Outbound(c *gin.Context) {
	var req dto.OutboundRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateOutbound(c.Request.Context(), operatorFrom(c), req)
	if err != nil {
		writeServiceError(c, err, "出库操作失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrder godoc
// @Summary 订单详情
// @Tags business
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/business/orders/{id} [get]
func (h *BusinessHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "获取订单失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrders godoc
// @Summary 订单列表
// @Tags business
// @Produce json
// @Security BearerAuth
// @Param type query string false "sales | purchase"
// @Param status query string false "draft | confirmed | completed | cancelled"
// @Param partner_id query int false "往来单位"
// @Param warehouse_id query int false "仓库"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} dto.OrderListResponse
// @Router /v1/business/orders [get]
func (h *BusinessHandler) ListOrders(c *gin.Context) {
	var filter dto.OrderFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListOrders(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "获取订单列表失败: ")
		return
	}
	c.JSON(http.StatusOK, resp)
}
