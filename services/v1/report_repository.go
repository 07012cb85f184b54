package v1

import (
	"context"
	"fmt"

	"atm-monitor/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var reportColumns = []string{
	"id",
	"branch_name",
	"atm_id",
	"atm_status",
	"downtime_start",
	"downtime_end",
	"downtime_duration_hours",
	"reason_for_downtime",
	"expected_restoration_time",
	"report_date",
	"reporting_window",
	"created_by",
	"created_at",
}

// ReportRepository reads and writes atm_reports.
type ReportRepository struct {
	db  *sqlx.DB
	sdb sq.StatementBuilderType
}

// NewReportRepository wraps db; sdb must use the placeholder format of db's driver.
func NewReportRepository(db *sqlx.DB, sdb sq.StatementBuilderType) *ReportRepository {
	return &ReportRepository{db: db, sdb: sdb}
}

// Create inserts r. The id is assigned by the store and not read back.
func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) error {
	_, err := r.sdb.Insert("atm_reports").
		Columns(
			"branch_name",
			"atm_id",
			"atm_status",
			"downtime_start",
			"downtime_end",
			"downtime_duration_hours",
			"reason_for_downtime",
			"expected_restoration_time",
			"report_date",
			"reporting_window",
			"created_by",
			"created_at",
		).
		Values(
			rep.BranchName,
			rep.AtmID,
			string(rep.AtmStatus),
			rep.DowntimeStart,
			rep.DowntimeEnd,
			rep.DowntimeDurationHours,
			rep.ReasonForDowntime,
			rep.ExpectedRestorationTime,
			rep.ReportDate,
			rep.ReportingWindow,
			rep.CreatedBy,
			rep.CreatedAt,
		).
		RunWith(r.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// List returns every report, newest reporting day and window first.
func (r *ReportRepository) List(ctx context.Context) ([]models.Report, error) {
	return r.selectReports(ctx, r.sdb.Select(reportColumns...).
		From("atm_reports").
		OrderBy("report_date DESC", "reporting_window DESC", "id DESC"))
}

// ListByCreated returns every report, most recently created first.
func (r *ReportRepository) ListByCreated(ctx context.Context) ([]models.Report, error) {
	return r.selectReports(ctx, r.sdb.Select(reportColumns...).
		From("atm_reports").
		OrderBy("created_at DESC", "id DESC"))
}

// ListByDate returns the reports of one report_date in insertion order.
func (r *ReportRepository) ListByDate(ctx context.Context, date string) ([]models.Report, error) {
	return r.selectReports(ctx, r.sdb.Select(reportColumns...).
		From("atm_reports").
		Where(sq.Eq{"report_date": date}).
		OrderBy("id ASC"))
}

// Update replaces branch, ATM, status and reason. Downtime fields and the window are left
// as they were, and a missing id is not an error.
func (r *ReportRepository) Update(ctx context.Context, id int64, u models.ReportUpdate) error {
	var reason *string
	if u.ReasonForDowntime != "" {
		reason = &u.ReasonForDowntime
	}
	_, err := r.sdb.Update("atm_reports").
		Set("branch_name", u.BranchName).
		Set("atm_id", u.AtmID).
		Set("atm_status", string(u.AtmStatus)).
		Set("reason_for_downtime", reason).
		Where(sq.Eq{"id": id}).
		RunWith(r.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update report %d: %w", id, err)
	}
	return nil
}

// Delete removes the report with id; a missing id is not an error.
func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.sdb.Delete("atm_reports").
		Where(sq.Eq{"id": id}).
		RunWith(r.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	return nil
}

func (r *ReportRepository) selectReports(ctx context.Context, b sq.SelectBuilder) ([]models.Report, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}
	reports := []models.Report{}
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}
