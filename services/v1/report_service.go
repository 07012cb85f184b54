package v1

import (
	"context"
	"log"
	"time"

	"atm-monitor/models"
)

// ReportService implements the report lifecycle on top of the repository.
type ReportService struct {
	Reports  *ReportRepository
	Activity ActivityRecorder
	Metrics  *Metrics
	Location *time.Location
	Now      func() time.Time
}

func (s *ReportService) now() time.Time {
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

// Create stamps date, window and duration on the submission and stores it.
func (s *ReportService) Create(ctx context.Context, in models.ReportInput, createdBy int64) (*models.Report, error) {
	r, err := BuildReport(in, s.now(), createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.Reports.Create(ctx, r); err != nil {
		return nil, err
	}

	log.Printf("[REPORTS] %s ATM %s (%s) reported %s for window %s", r.ReportDate, r.AtmID, r.BranchName, r.AtmStatus, r.ReportingWindow)
	s.Metrics.ReportCreated(r.AtmStatus)
	if s.Activity != nil {
		s.Activity.RecordReport(ctx, r)
	}
	return r, nil
}

func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	return s.Reports.List(ctx)
}

func (s *ReportService) ListByCreated(ctx context.Context) ([]models.Report, error) {
	return s.Reports.ListByCreated(ctx)
}

// Update replaces the editable fields only. Switching status to or from DOWN keeps the
// stored downtime interval and duration.
func (s *ReportService) Update(ctx context.Context, id int64, u models.ReportUpdate) error {
	return s.Reports.Update(ctx, id, u)
}

func (s *ReportService) Delete(ctx context.Context, id int64) error {
	return s.Reports.Delete(ctx, id)
}

// Today is the current report_date.
func (s *ReportService) Today() string {
	return s.now().Format(DateLayout)
}
