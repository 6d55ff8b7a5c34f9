package worker

// stock_alert_worker.go
// Processes low-stock alerts enqueued after an outbound order commits.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	// RecentAlertsKey holds the latest alerts, newest first, capped at recentAlertsCap.
	RecentAlertsKey = "alerts:low_stock:recent"
	recentAlertsCap = 200

	alertDedupPrefix = "alerts:low_stock:seen:"
	alertDedupTTL    = time.Hour
)

// LowStockAlert is the job payload sent to QueueStockAlerts.
type LowStockAlert struct {
	WarehouseID int64           `json:"warehouse_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	OrderNo     string          `json:"order_no"`
	RaisedAt    time.Time       `json:"raised_at"`
}

// AlertMailer delivers an alert notification. *infra.Mailer satisfies it.
type AlertMailer interface {
	Send(subject, body string) error
}

// StockAlertWorker raises a low-stock alert once per (warehouse, product) per
// hour: it mails the configured recipients, then records the alert in the
// recent-alerts list served by GET /api/v1/business/stock/alerts/recent.
type StockAlertWorker struct {
	rdb    *redis.Client
	mailer AlertMailer // nil: record only
}

func NewStockAlertWorker(rdb *redis.Client, mailer AlertMailer) *StockAlertWorker {
	return &StockAlertWorker{rdb: rdb, mailer: mailer}
}

func (w *StockAlertWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var alert LowStockAlert
	if err := json.Unmarshal(raw, &alert); err != nil {
		// A malformed payload never succeeds on retry; drop it.
		log.Error().Err(err).Msg("stock_alert_worker: invalid payload")
		return nil
	}
	if alert.WarehouseID == 0 || alert.ProductID == 0 {
		return errors.New("stock_alert_worker: alert without warehouse or product")
	}

	key := fmt.Sprintf("%s%d:%d", alertDedupPrefix, alert.WarehouseID, alert.ProductID)
	fresh, err := w.rdb.SetNX(ctx, key, alert.OrderNo, alertDedupTTL).Result()
	if err != nil {
		return fmt.Errorf("stock_alert_worker: dedup: %w", err)
	}
	if !fresh {
		log.Debug().Int64("warehouse_id", alert.WarehouseID).Int64("product_id", alert.ProductID).
			Msg("stock_alert_worker: alert already raised recently")
		return nil
	}

	if w.mailer != nil {
		subject, body := alertMail(alert)
		if err := w.mailer.Send(subject, body); err != nil {
			// Let the retry path see this alert again.
			w.rdb.Del(ctx, key)
			return fmt.Errorf("stock_alert_worker: mail: %w", err)
		}
	}

	encoded, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	pipe := w.rdb.TxPipeline()
	pipe.LPush(ctx, RecentAlertsKey, encoded)
	pipe.LTrim(ctx, RecentAlertsKey, 0, recentAlertsCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		// Mail already went out; a retry would send it twice.
		log.Error().Err(err).Str("order_no", alert.OrderNo).Msg("stock_alert_worker: recent list not updated")
	}

	log.Warn().
		Int64("warehouse_id", alert.WarehouseID).
		Int64("product_id", alert.ProductID).
		Str("product", alert.ProductName).
		Str("quantity", alert.Quantity.String()).
		Int("min_stock", alert.MinStock).
		Str("order_no", alert.OrderNo).
		Msg("low stock")
	return nil
}

func alertMail(a LowStockAlert) (subject, body string) {
	subject = fmt.Sprintf("低库存预警: %s", a.ProductName)
	body = fmt.Sprintf("商品: %s (ID %d)\n仓库ID: %d\n当前库存: %s\n最低库存: %d\n触发订单: %s\n时间: %s\n",
		a.ProductName, a.ProductID, a.WarehouseID, a.Quantity.StringFixed(2), a.MinStock, a.OrderNo,
		a.RaisedAt.Format("2006-01-02 15:04:05"))
	return subject, body
}

// RecentAlerts returns up to limit recorded alerts, newest first. Entries that
// fail to decode are skipped.
func RecentAlerts(ctx context.Context, rdb *redis.Client, limit int) ([]LowStockAlert, error) {
	if limit <= 0 || limit > recentAlertsCap {
		limit = recentAlertsCap
	}
	raw, err := rdb.LRange(ctx, RecentAlertsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]LowStockAlert, 0, len(raw))
	for _, r := range raw {
		var a LowStockAlert
		if err := json.Unmarshal([]byte(r), &a); err != nil {
			log.Warn().Err(err).Msg("recent alerts: skipping undecodable entry")
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
