package v1

import (
	"strings"
	"time"

	"atm-monitor/models"
)

// MinutesBetween returns the whole minutes from start to end, counting to now while the
// downtime is still open.
func MinutesBetween(start time.Time, end *time.Time, now time.Time) int {
	e := now
	if end != nil {
		e = *end
	}
	ms := float64(e.Sub(start).Milliseconds())
	return int(roundHalfUp(ms / 60000))
}

// ClassifySeverity grades a downtime by its elapsed minutes.
func ClassifySeverity(minutes int) models.Severity {
	switch {
	case minutes >= 120:
		return models.SeverityHigh
	case minutes >= 60:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// EvaluateBreach reports the SLA breach for r, if any. Only DOWN reports with a start time
// whose elapsed minutes are strictly above thresholdMinutes breach.
func EvaluateBreach(r models.Report, now time.Time, thresholdMinutes int) (models.SLABreach, bool) {
	if r.AtmStatus != models.StatusDown || r.DowntimeStart == nil {
		return models.SLABreach{}, false
	}
	minutes := MinutesBetween(*r.DowntimeStart, r.DowntimeEnd, now)
	if minutes == 0 || minutes <= thresholdMinutes {
		return models.SLABreach{}, false
	}
	return models.SLABreach{
		ReportID:    r.ID,
		AtmID:       r.AtmID,
		Branch:      r.BranchName,
		Issue:       r.ReasonForDowntime,
		DownMinutes: minutes,
		Since:       *r.DowntimeStart,
		Severity:    ClassifySeverity(minutes),
	}, true
}

// NormalizeReason maps free text to a fault key: trimmed, uppercased, whitespace runs
// replaced by a single underscore.
func NormalizeReason(reason string) string {
	return strings.Join(strings.Fields(strings.ToUpper(reason)), "_")
}

// HeatScore weighs breaches, DOWN reports and faults 5/3/1.
func HeatScore(b models.BranchHeat) int {
	return b.SLABreaches*5 + b.Down*3 + b.Faults
}

// HeatLevel buckets a heat score for colouring.
func HeatLevel(score int) string {
	switch {
	case score >= 20:
		return "CRITICAL"
	case score >= 12:
		return "HOT"
	case score >= 6:
		return "WARM"
	case score >= 2:
		return "MILD"
	default:
		return "COOL"
	}
}
