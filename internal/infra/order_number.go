package infra

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Order number prefixes.
const (
	PrefixPurchase = "PO"
	PrefixSales    = "SO"
)

const orderNoLayout = "20060102150405"

// OrderNumberGenerator issues "<prefix><yyyyMMddHHmmss>" order numbers.
// The first number issued in a given second is the bare timestamp form; later
// ones in the same second get a "-<n>" suffix so numbers never collide.
type OrderNumberGenerator interface {
	Next(ctx context.Context, prefix string, at time.Time) (string, error)
}

// NewOrderNumberGenerator returns the Redis-backed generator when rdb is set,
// otherwise a process-local one.
func NewOrderNumberGenerator(rdb *redis.Client) OrderNumberGenerator {
	if rdb == nil {
		return NewLocalOrderNumbers()
	}
	return &redisOrderNumbers{rdb: rdb}
}

func formatOrderNo(base string, seq int64) string {
	if seq <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, seq)
}

// ── Redis ────────────────────────────────────────────────────────────────────

// redisOrderNumbers shares one per-second counter across every instance.
type redisOrderNumbers struct{ rdb *redis.Client }

func (g *redisOrderNumbers) Next(ctx context.Context, prefix string, at time.Time) (string, error) {
	base := prefix + at.Format(orderNoLayout)
	key := "seq:order_no:" + base

	pipe := g.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("order number sequence: %w", err)
	}
	return formatOrderNo(base, incr.Val()), nil
}

// ── Local ────────────────────────────────────────────────────────────────────

// LocalOrderNumbers is safe for concurrent use within one process.
type LocalOrderNumbers struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewLocalOrderNumbers() *LocalOrderNumbers {
	return &LocalOrderNumbers{seqs: make(map[string]int64)}
}

func (g *LocalOrderNumbers) Next(_ context.Context, prefix string, at time.Time) (string, error) {
	base := prefix + at.Format(orderNoLayout)

	g.mu.Lock()
	defer g.mu.Unlock()
	// Only the current second can still be issued; drop stale keys.
	for k := range g.seqs {
		if k != base && strings.HasPrefix(k, prefix) {
			delete(g.seqs, k)
		}
	}
	g.seqs[base]++
	return formatOrderNo(base, g.seqs[base]), nil
}
