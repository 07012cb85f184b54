package v1

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"atm-monitor/models"
)

// ErrInvalidTimestamp is returned when a report timestamp cannot be parsed.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// DateLayout is the format of report_date.
const DateLayout = "2006-01-02"

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp accepts RFC3339 or the zone-less forms browsers send from datetime-local
// inputs, the latter read in loc. Blank input yields nil.
func ParseTimestamp(v string, loc *time.Location) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, v)
}

// CalcDowntimeHours returns end-start in hours rounded to two decimals, or nil when either end is missing.
func CalcDowntimeHours(start, end *time.Time) *float64 {
	if start == nil || end == nil {
		return nil
	}
	ms := float64(end.Sub(*start).Milliseconds())
	hours := roundHalfUp(ms/36e5*100) / 100
	return &hours
}

// ComputeWindow buckets t's hour into its even two-hour reporting window, e.g. 13:xx → "12:00-14:00".
func ComputeWindow(t time.Time) string {
	h := t.Hour()
	start := h - h%2
	return fmt.Sprintf("%02d:00-%02d:00", start, start+2)
}

// BuildReport turns a submission into the row to insert. now must already be in the
// server's reporting time zone; it fixes report_date, reporting_window and created_at.
func BuildReport(in models.ReportInput, now time.Time, createdBy int64) (*models.Report, error) {
	r := &models.Report{
		BranchName:      strings.TrimSpace(in.BranchName),
		AtmID:           strings.TrimSpace(in.AtmID),
		AtmStatus:       in.AtmStatus,
		ReportDate:      now.Format(DateLayout),
		ReportingWindow: ComputeWindow(now),
		CreatedAt:       now.UTC(),
	}
	if createdBy > 0 {
		r.CreatedBy = &createdBy
	}

	loc := now.Location()
	if in.AtmStatus == models.StatusDown {
		start, err := ParseTimestamp(in.DowntimeStart, loc)
		if err != nil {
			return nil, fmt.Errorf("downtime_start: %w", err)
		}
		end, err := ParseTimestamp(in.DowntimeEnd, loc)
		if err != nil {
			return nil, fmt.Errorf("downtime_end: %w", err)
		}
		r.DowntimeStart = start
		r.DowntimeEnd = end
		r.DowntimeDurationHours = CalcDowntimeHours(start, end)
	}

	restoration, err := ParseTimestamp(in.ExpectedRestorationTime, loc)
	if err != nil {
		return nil, fmt.Errorf("expected_restoration_time: %w", err)
	}
	r.ExpectedRestorationTime = restoration

	if reason := strings.TrimSpace(in.ReasonForDowntime); reason != "" {
		r.ReasonForDowntime = &reason
	}
	return r, nil
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
