package v1

import (
	"context"
	"fmt"
	"log"
	"sync"

	"atm-monitor/models"

	"github.com/robfig/cron/v3"
)

// SLAWatcher periodically rebuilds today's summary so breaches are logged and snapshotted
// even when nobody has the dashboard open.
type SLAWatcher struct {
	Summaries *SummaryService
	Activity  ActivityRecorder

	mu   sync.Mutex
	day  string
	seen map[string]struct{}
}

// Start schedules the sweep and runs it once immediately.
func (w *SLAWatcher) Start(schedule string) (*cron.Cron, error) {
	log.Println("[CRON] Starting SLA sweep scheduler...")
	c := cron.New()
	if _, err := c.AddFunc(schedule, w.Sweep); err != nil {
		return nil, fmt.Errorf("add SLA sweep %q: %w", schedule, err)
	}
	c.Start()
	w.Sweep()
	return c, nil
}

// Sweep evaluates today's reports and logs each breach once per day and severity.
func (w *SLAWatcher) Sweep() {
	w.sweep(context.Background())
}

func (w *SLAWatcher) sweep(ctx context.Context) []models.SLABreach {
	summary, err := w.Summaries.Summary(ctx)
	if err != nil {
		log.Println("[CRON] Error building SLA summary:", err)
		return nil
	}

	if w.Activity != nil {
		w.Activity.RecordSLASnapshot(ctx, summary.Date, *summary)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.day != summary.Date {
		w.day = summary.Date
		w.seen = make(map[string]struct{})
	}

	var fresh []models.SLABreach
	for _, b := range summary.SLA.Breaches {
		key := fmt.Sprintf("%d:%s", b.ReportID, b.Severity)
		if _, ok := w.seen[key]; ok {
			continue
		}
		w.seen[key] = struct{}{}
		fresh = append(fresh, b)
		log.Printf("[SLA] ATM %s (%s) down %d min since %s, severity %s", b.AtmID, b.Branch, b.DownMinutes, b.Since.Format("15:04"), b.Severity)
	}
	return fresh
}
