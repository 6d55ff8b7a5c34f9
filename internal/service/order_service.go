package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventorybi/internal/dto"
	"inventorybi/internal/infra"
	"inventorybi/internal/model"
	"inventorybi/internal/repository"
	"inventorybi/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Operator is the authenticated caller, used for audit logging only.
type Operator struct {
	UserID   string
	Username string
	Role     string
}

// StockAlertDispatcher receives low-stock alerts after an outbound order commits.
type StockAlertDispatcher interface {
	EnqueueLowStock(ctx context.Context, alert worker.LowStockAlert) error
}

type OrderService interface {
	CreateInbound(ctx context.Context, op Operator, req dto.InboundRequest) (*dto.BusinessOperationResponse, error)
	CreateOutbound(ctx context.Context, op Operator, req dto.OutboundRequest) (*dto.BusinessOperationResponse, error)
	GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
}

type orderService struct {
	orders    repository.OrderRepository
	catalog   repository.CatalogRepository
	stock     repository.StockRepository
	movements repository.StockMovementRepository
	finance   repository.FinanceRepository
	numbers   infra.OrderNumberGenerator
	alerts    StockAlertDispatcher // nil disables alerts
	now       func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	catalog repository.CatalogRepository,
	stock repository.StockRepository,
	movements repository.StockMovementRepository,
	finance repository.FinanceRepository,
	numbers infra.OrderNumberGenerator,
	alerts StockAlertDispatcher,
) OrderService {
	return &orderService{
		orders:    orders,
		catalog:   catalog,
		stock:     stock,
		movements: movements,
		finance:   finance,
		numbers:   numbers,
		alerts:    alerts,
		now:       time.Now,
	}
}

// runTx executes fn inside one GORM transaction; any error rolls everything back.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// stockTouch remembers the post-commit quantity of one product for alerting.
type stockTouch struct {
	product *model.Product
	after   decimal.Decimal
}

// ── CreateInbound ────────────────────────────────────────────────────────────
// One transaction:
//   1. supplier (existence + type) → warehouse → salesman
//   2. header with status=confirmed and a PO number
//   3. per line: product exists and is active, line item, get-or-create stock, +qty, movement
//   4. payable finance entry

func (s *orderService) CreateInbound(ctx context.Context, op Operator, req dto.InboundRequest) (*dto.BusinessOperationResponse, error) {
	if err := validateLines(req.Items); err != nil {
		return nil, err
	}
	total := computeTotal(req.Items)

	var order *model.Order
	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		salesman, err := s.resolveParties(tx, req.SupplierID, model.PartnerSupplier, "供应商不存在", req.WarehouseID, req.SalesmanID)
		if err != nil {
			return err
		}

		order, err = s.createHeader(ctx, tx, model.OrderPurchase, infra.PrefixPurchase,
			req.SupplierID, req.WarehouseID, req.SalesmanID, total, req.Remark)
		if err != nil {
			return err
		}

		products, err := s.loadProducts(tx, req.Items)
		if err != nil {
			return err
		}
		for _, line := range req.Items {
			product, err := activeProduct(products, line.ProductID)
			if err != nil {
				return err
			}
			if err := s.createItem(tx, order, product, line); err != nil {
				return err
			}

			if _, err := s.stock.GetOrCreateTx(tx, req.WarehouseID, line.ProductID); err != nil {
				return err
			}
			after, err := s.stock.AdjustTx(tx, req.WarehouseID, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if err := s.recordMovement(tx, order, model.MovementInbound, line.ProductID, line.Quantity, after); err != nil {
				return err
			}
		}

		return s.postFinance(tx, order, model.FinancePayable, salesman, fmt.Sprintf("采购入库 - 订单号: %s", order.OrderNo))
	})
	if err != nil {
		return nil, s.fail("inbound", op, err)
	}

	log.Info().
		Str("order_no", order.OrderNo).
		Str("type", order.Type).
		Str("total", order.TotalAmount.StringFixed(2)).
		Str("operator", op.Username).
		Msg("inbound order committed")

	return &dto.BusinessOperationResponse{
		Success: true,
		Message: fmt.Sprintf("采购入库成功，订单号: %s", order.OrderNo),
		Order:   orderToResponse(order),
	}, nil
}

// ── CreateOutbound ───────────────────────────────────────────────────────────
// Same shape as inbound, plus a sufficiency check on per-product totals before
// the header exists. Each deduction is a conditional decrement, so a request
// that loses a race with another outbound rolls back instead of overselling.

func (s *orderService) CreateOutbound(ctx context.Context, op Operator, req dto.OutboundRequest) (*dto.BusinessOperationResponse, error) {
	if err := validateLines(req.Items); err != nil {
		return nil, err
	}
	total := computeTotal(req.Items)

	var order *model.Order
	touched := make(map[int64]stockTouch)
	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		salesman, err := s.resolveParties(tx, req.CustomerID, model.PartnerCustomer, "客户不存在", req.WarehouseID, req.SalesmanID)
		if err != nil {
			return err
		}

		if err := s.checkSufficiency(tx, req.WarehouseID, req.Items); err != nil {
			return err
		}

		order, err = s.createHeader(ctx, tx, model.OrderSales, infra.PrefixSales,
			req.CustomerID, req.WarehouseID, req.SalesmanID, total, req.Remark)
		if err != nil {
			return err
		}

		products, err := s.loadProducts(tx, req.Items)
		if err != nil {
			return err
		}
		for _, line := range req.Items {
			product, err := activeProduct(products, line.ProductID)
			if err != nil {
				return err
			}
			if err := s.createItem(tx, order, product, line); err != nil {
				return err
			}

			after, ok, err := s.stock.DeductIfAvailableTx(tx, req.WarehouseID, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return s.insufficient(tx, req.WarehouseID, line.ProductID)
			}
			if err := s.recordMovement(tx, order, model.MovementOutbound, line.ProductID, line.Quantity.Neg(), after); err != nil {
				return err
			}
			touched[line.ProductID] = stockTouch{product: product, after: after}
		}

		return s.postFinance(tx, order, model.FinanceReceivable, salesman, fmt.Sprintf("销售出库 - 订单号: %s", order.OrderNo))
	})
	if err != nil {
		return nil, s.fail("outbound", op, err)
	}

	log.Info().
		Str("order_no", order.OrderNo).
		Str("type", order.Type).
		Str("total", order.TotalAmount.StringFixed(2)).
		Str("operator", op.Username).
		Msg("outbound order committed")

	// Best-effort, outside the atomic unit
	s.raiseLowStockAlerts(ctx, order, touched)

	return &dto.BusinessOperationResponse{
		Success: true,
		Message: fmt.Sprintf("销售出库成功，订单号: %s", order.OrderNo),
		Order:   orderToResponse(order),
	}, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *orderService) GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "order", "订单不存在")
	}
	return orderToResponse(o), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	from, to, err := parseDateRange(filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, err
	}
	orders, total, err := s.orders.List(ctx, repository.OrderFilter{
		Type:        filter.Type,
		Status:      filter.Status,
		PartnerID:   filter.PartnerID,
		WarehouseID: filter.WarehouseID,
		DateFrom:    from,
		DateTo:      to,
		Page:        filter.Page,
		Limit:       filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Steps ────────────────────────────────────────────────────────────────────

// resolveParties checks partner (existence + type), warehouse and salesman in
// that order and returns the salesman, whose department owns the finance entry.
func (s *orderService) resolveParties(tx *gorm.DB, partnerID int64, partnerType, partnerMsg string, warehouseID, salesmanID int64) (*model.Salesman, error) {
	partner, err := s.catalog.FindPartnerTx(tx, partnerID)
	if err != nil {
		return nil, lookupErr(err, "partner", partnerMsg)
	}
	if partner.Type != partnerType {
		return nil, notFound("partner", partnerMsg)
	}
	if _, err := s.catalog.FindWarehouseTx(tx, warehouseID); err != nil {
		return nil, lookupErr(err, "warehouse", "仓库不存在")
	}
	salesman, err := s.catalog.FindSalesmanTx(tx, salesmanID)
	if err != nil {
		return nil, lookupErr(err, "salesman", "业务员不存在")
	}
	return salesman, nil
}

// checkSufficiency aggregates the requested quantity per product, so a product
// repeated across lines is checked against its combined demand.
func (s *orderService) checkSufficiency(tx *gorm.DB, warehouseID int64, items []dto.OrderItemRequest) error {
	need := make(map[int64]decimal.Decimal, len(items))
	var seq []int64
	for _, line := range items {
		if _, ok := need[line.ProductID]; !ok {
			seq = append(seq, line.ProductID)
		}
		need[line.ProductID] = need[line.ProductID].Add(line.Quantity)
	}

	for _, pid := range seq {
		st, err := s.stock.FindTx(tx, warehouseID, pid)
		if err != nil {
			return err
		}
		if st == nil || st.Quantity.LessThan(need[pid]) {
			return s.insufficient(tx, warehouseID, pid)
		}
	}
	return nil
}

// insufficient builds the InsufficientStockError for a product, naming it by
// "ID:<id>" when the product row itself is missing.
func (s *orderService) insufficient(tx *gorm.DB, warehouseID, productID int64) error {
	e := &InsufficientStockError{ProductID: productID, ProductName: fmt.Sprintf("ID:%d", productID)}

	st, err := s.stock.FindTx(tx, warehouseID, productID)
	if err != nil {
		return err
	}
	if st != nil {
		e.Current = st.Quantity
		e.HasRecord = true
	}

	p, err := s.catalog.FindProductTx(tx, productID)
	switch {
	case err == nil:
		e.ProductName = p.Name
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	return e
}

// loadProducts fetches every product the request names in one query.
func (s *orderService) loadProducts(tx *gorm.DB, items []dto.OrderItemRequest) (map[int64]model.Product, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, line := range items {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	return s.catalog.FindProductsTx(tx, ids)
}

// activeProduct returns the line's product; a missing or deactivated product
// is reported as not found.
func activeProduct(products map[int64]model.Product, id int64) (*model.Product, error) {
	p, ok := products[id]
	if !ok {
		return nil, notFound("product", fmt.Sprintf("商品ID %d 不存在", id))
	}
	if !p.IsActive {
		return nil, notFound("product", fmt.Sprintf("商品 %s 已停用", p.Name))
	}
	return &p, nil
}

func (s *orderService) createHeader(ctx context.Context, tx *gorm.DB, orderType, prefix string,
	partnerID, warehouseID, salesmanID int64, total decimal.Decimal, remark *string) (*model.Order, error) {
	now := s.now()
	orderNo, err := s.numbers.Next(ctx, prefix, now)
	if err != nil {
		return nil, err
	}
	order := &model.Order{
		OrderNo:     orderNo,
		Type:        orderType,
		OrderDate:   dateOnly(now),
		Status:      model.OrderConfirmed,
		SalesmanID:  salesmanID,
		PartnerID:   partnerID,
		WarehouseID: warehouseID,
		TotalAmount: total,
		Remark:      remark,
	}
	if err := s.orders.CreateTx(tx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) createItem(tx *gorm.DB, order *model.Order, product *model.Product, line dto.OrderItemRequest) error {
	item := model.OrderItem{
		OrderID:   order.ID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Price:     line.Price,
		Subtotal:  lineSubtotal(line),
	}
	if err := s.orders.CreateItemTx(tx, &item); err != nil {
		return err
	}
	item.Product = product
	order.Items = append(order.Items, item)
	return nil
}

func (s *orderService) recordMovement(tx *gorm.DB, order *model.Order, kind string, productID int64, delta, after decimal.Decimal) error {
	orderID := order.ID
	return s.movements.CreateTx(tx, &model.StockMovement{
		WarehouseID:    order.WarehouseID,
		ProductID:      productID,
		OrderID:        &orderID,
		Kind:           kind,
		Quantity:       delta,
		QuantityBefore: after.Sub(delta),
		QuantityAfter:  after,
	})
}

// postFinance appends the order's ledger entry; balance starts equal to amount.
func (s *orderService) postFinance(tx *gorm.DB, order *model.Order, entryType string, salesman *model.Salesman, description string) error {
	balance := order.TotalAmount
	partnerID := order.PartnerID
	salesmanID := salesman.ID
	return s.finance.PostTx(tx, &model.FinanceEntry{
		Type:        entryType,
		TransDate:   order.OrderDate,
		Amount:      order.TotalAmount,
		Balance:     &balance,
		PartnerID:   &partnerID,
		DeptID:      salesman.DeptID,
		SalesmanID:  &salesmanID,
		Description: description,
	})
}

func (s *orderService) raiseLowStockAlerts(ctx context.Context, order *model.Order, touched map[int64]stockTouch) {
	if s.alerts == nil {
		return
	}
	for pid, t := range touched {
		if t.product.MinStock == nil || !t.after.LessThan(decimal.NewFromInt(int64(*t.product.MinStock))) {
			continue
		}
		alert := worker.LowStockAlert{
			WarehouseID: order.WarehouseID,
			ProductID:   pid,
			ProductName: t.product.Name,
			Quantity:    t.after,
			MinStock:    *t.product.MinStock,
			OrderNo:     order.OrderNo,
			RaisedAt:    s.now(),
		}
		if err := s.alerts.EnqueueLowStock(ctx, alert); err != nil {
			log.Warn().Err(err).Str("order_no", order.OrderNo).Int64("product_id", pid).Msg("low stock alert not enqueued")
		}
	}
}

// fail classifies err and logs unexpected failures; the transaction has
// already been rolled back by the time it runs.
func (s *orderService) fail(op string, who Operator, err error) error {
	err = classify(op, err)
	var ie *InternalError
	if errors.As(err, &ie) {
		log.Error().Err(ie.Err).Str("op", op).Str("operator", who.Username).Msg("order rolled back")
	}
	return err
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// validateLines re-checks what the HTTP layer validates so the engine never
// persists a malformed request regardless of its caller.
func validateLines(items []dto.OrderItemRequest) error {
	if len(items) == 0 {
		return &ValidationError{Field: "items", Message: "商品明细不能为空"}
	}
	for i, line := range items {
		if line.ProductID <= 0 {
			return &ValidationError{Field: "items.product_id", Message: fmt.Sprintf("第 %d 行商品ID无效", i+1)}
		}
		if !line.Quantity.IsPositive() {
			return &ValidationError{Field: "items.quantity", Message: fmt.Sprintf("第 %d 行数量必须大于0", i+1)}
		}
		if !line.Price.IsPositive() {
			return &ValidationError{Field: "items.price", Message: fmt.Sprintf("第 %d 行单价必须大于0", i+1)}
		}
		// Quantities and prices are stored as decimal(15,2).
		if !line.Quantity.Equal(line.Quantity.Round(2)) {
			return &ValidationError{Field: "items.quantity", Message: fmt.Sprintf("第 %d 行数量最多保留两位小数", i+1)}
		}
		if !line.Price.Equal(line.Price.Round(2)) {
			return &ValidationError{Field: "items.price", Message: fmt.Sprintf("第 %d 行单价最多保留两位小数", i+1)}
		}
	}
	return nil
}

// computeTotal sums the line subtotals exactly as they are stored, so the
// header total always equals the sum of its items.
func computeTotal(items []dto.OrderItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, line := range items {
		total = total.Add(lineSubtotal(line))
	}
	return total
}

func lineSubtotal(line dto.OrderItemRequest) decimal.Decimal {
	return line.Quantity.Mul(line.Price).Round(2)
}

// dateOnly keeps the local calendar date, normalised to midnight UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

const dateLayout = "2006-01-02"

// parseDateRange turns inclusive YYYY-MM-DD bounds into [from, to+1d).
func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if from != "" {
		d, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, nil, &ValidationError{Field: "date_from", Message: "日期格式错误，应为 YYYY-MM-DD"}
		}
		f = &d
	}
	if to != "" {
		d, err := time.Parse(dateLayout, to)
		if err != nil {
			return nil, nil, &ValidationError{Field: "date_to", Message: "日期格式错误，应为 YYYY-MM-DD"}
		}
		d = d.AddDate(0, 0, 1)
		t = &d
	}
	return f, t, nil
}

// ── Response mappers ─────────────────────────────────────────────────────────

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		r := dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
			Remark:    it.Remark,
		}
		if it.Product != nil {
			r.ProductName = it.Product.Name
		}
		items = append(items, r)
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		Type:        o.Type,
		OrderDate:   o.OrderDate.Format(dateLayout),
		Status:      o.Status,
		SalesmanID:  o.SalesmanID,
		PartnerID:   o.PartnerID,
		WarehouseID: o.WarehouseID,
		TotalAmount: o.TotalAmount,
		Remark:      o.Remark,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		Items:       items,
	}
}
