package worker

// dlq.go
// Alert jobs that exhaust MaxAttempts land in dlq:{queue} so an operator can
// see which stock row never got its notification.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry is one dead alert job. Subject names the stock row the job was
// about, so the list can be read without decoding every payload.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Subject       string          `json:"subject"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// dlqSubject describes the job for operators; unknown or undecodable
// payloads fall back to the job type.
func dlqSubject(job Job) string {
	if job.Type != JobLowStock {
		return job.Type
	}
	var a LowStockAlert
	if err := json.Unmarshal(job.Payload, &a); err != nil || a.ProductID == 0 {
		return job.Type
	}
	s := fmt.Sprintf("warehouse %d / product %d", a.WarehouseID, a.ProductID)
	if a.ProductName != "" {
		s += " (" + a.ProductName + ")"
	}
	if a.OrderNo != "" {
		s += " order " + a.OrderNo
	}
	return s
}

// SendToDLQ parks a failed job. Failures here are logged only: the job is
// already off the work queue and the order it came from is committed.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       job.Type,
		Subject:       dlqSubject(job),
		Payload:       job.Payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      job.Attempts,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("subject", entry.Subject).Msg("dlq: push failed, alert job lost")
		return
	}
	log.Warn().
		Str("subject", entry.Subject).
		Str("reason", reason).
		Int("attempts", job.Attempts).
		Msg("dlq: alert job parked")
}

// DLQLength is reported by /health.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
