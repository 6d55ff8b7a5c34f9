package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventorybi/internal/config"
	"inventorybi/internal/dto"
	"inventorybi/internal/infra"
	"inventorybi/internal/middleware"
	"inventorybi/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "router-test-secret"

type seeded struct {
	salesman, supplier, customer, warehouse, product int64
}

func setup(t *testing.T) (*gin.Engine, *gorm.DB, seeded) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := infra.NewDatabase("file:router_"+t.Name()+"?mode=memory&cache=shared", true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	dept := model.Department{Name: "销售一部", CompanyName: "华东贸易"}
	require.NoError(t, db.Create(&dept).Error)
	sm := model.Salesman{Name: "李四", DeptID: dept.ID, IsActive: true}
	require.NoError(t, db.Create(&sm).Error)
	sup := model.Partner{Name: "宏达五金", Type: model.PartnerSupplier, Region: "华东"}
	require.NoError(t, db.Create(&sup).Error)
	cus := model.Partner{Name: "新世纪建材", Type: model.PartnerCustomer, Region: "华南"}
	require.NoError(t, db.Create(&cus).Error)
	wh := model.Warehouse{Name: "上海一号仓", Location: "上海浦东", IsActive: true}
	require.NoError(t, db.Create(&wh).Error)
	minStock := 10
	p := model.Product{Name: "螺丝", Category: "五金", Unit: model.DefaultUnit, CostPrice: decimal.NewFromInt(1), MinStock: &minStock, IsActive: true}
	require.NoError(t, db.Create(&p).Error)

	cfg := &config.Config{Env: "test", JWTSecret: testSecret}
	return New(cfg, db, nil), db, seeded{sm.ID, sup.ID, cus.ID, wh.ID, p.ID}
}

func bearer(t *testing.T) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID:           "1",
		Username:         "tester",
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

func send(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_RequireToken(t *testing.T) {
	r, _, _ := setup(t)
	w := send(r, http.MethodGet, "/api/v1/business/products", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth_IsPublic(t *testing.T) {
	r, _, _ := setup(t)
	w := send(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestInboundOutboundFlow(t *testing.T) {
	r, _, s := setup(t)
	token := bearer(t)

	in := fmt.Sprintf(`{"supplier_id":%d,"warehouse_id":%d,"salesman_id":%d,"items":[{"product_id":%d,"quantity":20,"price":1.5}]}`,
		s.supplier, s.warehouse, s.salesman, s.product)
	w := send(r, http.MethodPost, "/api/v1/business/inbound", token, in)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var inResp dto.BusinessOperationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inResp))
	assert.True(t, inResp.Success)
	assert.True(t, strings.HasPrefix(inResp.Order.OrderNo, "PO"))
	assert.True(t, inResp.Order.TotalAmount.Equal(decimal.NewFromInt(30)))

	out := fmt.Sprintf(`{"customer_id":%d,"warehouse_id":%d,"salesman_id":%d,"items":[{"product_id":%d,"quantity":15,"price":3}]}`,
		s.customer, s.warehouse, s.salesman, s.product)
	w = send(r, http.MethodPost, "/api/v1/business/outbound", token, out)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 5 left; asking for 15 again fails and changes nothing
	w = send(r, http.MethodPost, "/api/v1/business/outbound", token, out)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "商品 螺丝 库存不足，当前库存: 5.00")

	w = send(r, http.MethodGet, fmt.Sprintf("/api/v1/business/stock?warehouse_id=%d", s.warehouse), token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var stock dto.StockListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stock))
	require.Len(t, stock.Data, 1)
	assert.True(t, stock.Data[0].Quantity.Equal(decimal.NewFromInt(5)))

	w = send(r, http.MethodGet, "/api/v1/business/stock/alerts", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var alerts []dto.LowStockAlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, 10, alerts[0].MinStock)

	// No Redis in this router: nothing has been raised, and bad limits are rejected.
	w = send(r, http.MethodGet, "/api/v1/business/stock/alerts/recent", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	w = send(r, http.MethodGet, "/api/v1/business/stock/alerts/recent?limit=500", token, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = send(r, http.MethodGet, "/api/v1/business/orders", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders dto.OrderListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Equal(t, int64(2), orders.Total)

	w = send(r, http.MethodGet, "/api/v1/business/finance?type=receivable", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fin dto.FinanceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fin))
	require.Len(t, fin.Data, 1)
	assert.True(t, fin.Data[0].Amount.Equal(decimal.NewFromInt(45)))

	w = send(r, http.MethodGet, "/api/v1/business/stock/movements", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var moves dto.StockMovementListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moves))
	assert.Equal(t, int64(2), moves.Total)
}

func TestOutbound_UnknownCustomer(t *testing.T) {
	r, _, s := setup(t)
	out := fmt.Sprintf(`{"customer_id":%d,"warehouse_id":%d,"salesman_id":%d,"items":[{"product_id":%d,"quantity":1,"price":1}]}`,
		s.supplier, s.warehouse, s.salesman, s.product)
	w := send(r, http.MethodPost, "/api/v1/business/outbound", bearer(t), out)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"客户不存在"}`, w.Body.String())
}

func TestCatalogRoutes(t *testing.T) {
	r, _, _ := setup(t)
	token := bearer(t)

	w := send(r, http.MethodPost, "/api/v1/business/products", token, `{"name":"扳手","category":"工具","cost_price":12.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(r, http.MethodGet, "/api/v1/business/products", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var products []dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 2)

	for _, path := range []string{"/warehouses", "/partners?type=supplier", "/salesmen"} {
		w = send(r, http.MethodGet, "/api/v1/business"+path, token, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
