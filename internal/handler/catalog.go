package handler

import (
	"net/http"

	"inventorybi/internal/dto"
	"inventorybi/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// CreateProduct godoc
// @Summary 新增商品
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateProductRequest true "商品"
// @Success 200 {object} dto.ProductResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/business/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProducts godoc
// @Summary 商品列表
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProductResponse
// @Router /v1/business/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	resp, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListWarehouses godoc
// @Summary 仓库列表
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.WarehouseResponse
// @Router /v1/business/warehouses [get]
func (h *CatalogHandler) ListWarehouses(c *gin.Context) {
	resp, err := h.svc.ListWarehouses(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPartners godoc
// @Summary 往来单位列表
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param type query string false "customer | supplier"
// @Success 200 {array} dto.PartnerResponse
// @Router /v1/business/partners [get]
func (h *CatalogHandler) ListPartners(c *gin.Context) {
	var filter dto.PartnerFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListPartners(c.Request.Context(), filter.Type)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSalesmen godoc
// @Summary 业务员列表
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SalesmanResponse
// @Router /v1/business/salesmen [get]
func (h *CatalogHandler) ListSalesmen(c *gin.Context) {
	resp, err := h.svc.ListSalesmen(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}
