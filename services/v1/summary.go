package v1

import (
	"context"
	"sort"
	"time"

	"atm-monitor/models"
)

// BuildSummary aggregates one day's reports into the dashboard payload. It is pure: now is
// only used to measure downtimes that have not ended yet.
func BuildSummary(reports []models.Report, now time.Time, thresholdMinutes int) models.Summary {
	s := models.Summary{
		Faults: make(map[string]int, len(models.FaultCategories)),
		SLA: models.SLASummary{
			ThresholdMinutes: thresholdMinutes,
			Breaches:         []models.SLABreach{},
		},
		Branches: []models.BranchHeat{},
	}
	for _, key := range models.FaultCategories {
		s.Faults[key] = 0
	}

	branches := make(map[string]*models.BranchHeat)
	var order []string

	for _, r := range reports {
		b, ok := branches[r.BranchName]
		if !ok {
			b = &models.BranchHeat{Branch: r.BranchName}
			branches[r.BranchName] = b
			order = append(order, r.BranchName)
		}

		switch r.AtmStatus {
		case models.StatusUp:
			s.AtmStatus.Up++
			b.Up++
		case models.StatusParked:
			s.AtmStatus.Parked++
			b.Parked++
		case models.StatusDown:
			s.AtmStatus.Down++
			b.Down++
			b.Faults++
			if r.ReasonForDowntime != nil {
				key := NormalizeReason(*r.ReasonForDowntime)
				if _, known := s.Faults[key]; known {
					s.Faults[key]++
				}
			}
		}

		if breach, ok := EvaluateBreach(r, now, thresholdMinutes); ok {
			s.SLA.Breaches = append(s.SLA.Breaches, breach)
			b.SLABreaches++
		}
	}

	for _, name := range order {
		b := branches[name]
		b.HeatScore = HeatScore(*b)
		b.HeatLevel = HeatLevel(b.HeatScore)
		s.Branches = append(s.Branches, *b)
	}
	sort.SliceStable(s.Branches, func(i, j int) bool {
		if s.Branches[i].HeatScore != s.Branches[j].HeatScore {
			return s.Branches[i].HeatScore > s.Branches[j].HeatScore
		}
		return s.Branches[i].Branch < s.Branches[j].Branch
	})

	return s
}

// SummaryService builds today's summary from the report store.
type SummaryService struct {
	Reports          *ReportRepository
	ThresholdMinutes int
	Location         *time.Location
	Metrics          *Metrics
	Now              func() time.Time
}

// Today returns the current time in the reporting time zone.
func (s *SummaryService) Today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Summary reads today's reports and aggregates them.
func (s *SummaryService) Summary(ctx context.Context) (*models.Summary, error) {
	now := s.Today()
	date := now.Format(DateLayout)

	reports, err := s.Reports.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(reports, now, s.ThresholdMinutes)
	summary.Date = date
	s.Metrics.SummaryBuilt(summary)
	return &summary, nil
}
