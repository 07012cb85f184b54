package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"atm-monitor/models"

	"github.com/go-redis/redis/v8"
)

// ActivityRecorder keeps per-day submission counters next to the report store.
type ActivityRecorder interface {
	RecordReport(ctx context.Context, r *models.Report)
	RecordSLASnapshot(ctx context.Context, date string, s models.Summary)
	Counters(ctx context.Context, date string) (map[string]int64, error)
	Enabled() bool
}

// NewActivityRecorder returns a Redis-backed recorder, or a no-op one when rdb is nil.
func NewActivityRecorder(rdb *redis.Client) ActivityRecorder {
	if rdb == nil {
		return noopActivity{}
	}
	return &RedisActivity{rdb: rdb}
}

// RedisActivity stores counters in hashes keyed by report date.
type RedisActivity struct {
	rdb *redis.Client
}

func activityKey(date string) string { return fmt.Sprintf("atm:activity:%s", date) }

func slaKey(date string) string { return fmt.Sprintf("atm:sla:%s", date) }

func historyKey(branch string) string { return fmt.Sprintf("atm:branch:%s:history", branch) }

// RecordReport bumps the day's totals and appends the report to its branch history.
// Failures are logged; they never fail the submission.
func (a *RedisActivity) RecordReport(ctx context.Context, r *models.Report) {
	key := activityKey(r.ReportDate)
	pipe := a.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, "total", 1)
	pipe.HIncrBy(ctx, key, string(r.AtmStatus), 1)
	pipe.HIncrBy(ctx, key, "window:"+r.ReportingWindow, 1)
	pipe.Expire(ctx, key, 35*24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[REDIS] Error incrementing activity for ATM %s (%s): %v", r.AtmID, r.BranchName, err)
	}

	entry, err := json.Marshal(map[string]interface{}{
		"timestamp": r.CreatedAt.Format(time.RFC3339),
		"atmId":     r.AtmID,
		"status":    r.AtmStatus,
	})
	if err != nil {
		log.Printf("[REDIS] Error serializing history for ATM %s: %v", r.AtmID, err)
		return
	}
	hkey := historyKey(r.BranchName)
	if err := a.rdb.RPush(ctx, hkey, entry).Err(); err != nil {
		log.Printf("[REDIS] Error registering history for branch %s: %v", r.BranchName, err)
		return
	}
	if err := a.rdb.LTrim(ctx, hkey, -1000, -1).Err(); err != nil {
		log.Printf("[REDIS] Error trimming history for branch %s: %v", r.BranchName, err)
	}
}

// RecordSLASnapshot overwrites the day's breach counts with those of s.
func (a *RedisActivity) RecordSLASnapshot(ctx context.Context, date string, s models.Summary) {
	fields := map[string]interface{}{
		"breaches":   len(s.SLA.Breaches),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	for sev, n := range countBySeverity(s.SLA.Breaches) {
		fields[string(sev)] = n
	}
	if err := a.rdb.HSet(ctx, slaKey(date), fields).Err(); err != nil {
		log.Printf("[REDIS] Error storing SLA snapshot for %s: %v", date, err)
	}
}

// Counters returns the activity hash of date with numeric values.
func (a *RedisActivity) Counters(ctx context.Context, date string) (map[string]int64, error) {
	raw, err := a.rdb.HGetAll(ctx, activityKey(date)).Result()
	if err != nil {
		return nil, fmt.Errorf("read activity %s: %w", date, err)
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}

func (a *RedisActivity) Enabled() bool { return true }

type noopActivity struct{}

func (noopActivity) RecordReport(context.Context, *models.Report) {}

func (noopActivity) RecordSLASnapshot(context.Context, string, models.Summary) {}

func (noopActivity) Counters(context.Context, string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (noopActivity) Enabled() bool { return false }

func countBySeverity(breaches []models.SLABreach) map[models.Severity]int {
	counts := map[models.Severity]int{
		models.SeverityLow:    0,
		models.SeverityMedium: 0,
		models.SeverityHigh:   0,
	}
	for _, b := range breaches {
		counts[b.Severity]++
	}
	return counts
}
