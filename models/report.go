package models

import "time"

// Report is one row of atm_reports.
type Report struct {
	ID                      int64      `db:"id" json:"id"`
	BranchName              string     `db:"branch_name" json:"branch_name"`
	AtmID                   string     `db:"atm_id" json:"atm_id"`
	AtmStatus               Status     `db:"atm_status" json:"atm_status"`
	DowntimeStart           *time.Time `db:"downtime_start" json:"downtime_start"`
	DowntimeEnd             *time.Time `db:"downtime_end" json:"downtime_end"`
	DowntimeDurationHours   *float64   `db:"downtime_duration_hours" json:"downtime_duration_hours"`
	ReasonForDowntime       *string    `db:"reason_for_downtime" json:"reason_for_downtime"`
	ExpectedRestorationTime *time.Time `db:"expected_restoration_time" json:"expected_restoration_time"`
	ReportDate              string     `db:"report_date" json:"report_date"`
	ReportingWindow         string     `db:"reporting_window" json:"reporting_window"`
	CreatedBy               *int64     `db:"created_by" json:"created_by"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
}

// ReportInput is the body of POST /reports. Timestamps are kept as the raw strings the
// client sent; they are parsed when the report is built.
type ReportInput struct {
	BranchName              string `json:"branch_name" binding:"required"`
	AtmID                   string `json:"atm_id" binding:"required"`
	AtmStatus               Status `json:"atm_status" binding:"required,oneof=UP DOWN PARKED"`
	DowntimeStart           string `json:"downtime_start"`
	DowntimeEnd             string `json:"downtime_end"`
	ReasonForDowntime       string `json:"reason_for_downtime"`
	ExpectedRestorationTime string `json:"expected_restoration_time"`
}

// ReportUpdate is the body of PUT /reports/:id.
type ReportUpdate struct {
	BranchName        string `json:"branch_name" binding:"required"`
	AtmID             string `json:"atm_id" binding:"required"`
	AtmStatus         Status `json:"atm_status" binding:"required,oneof=UP DOWN PARKED"`
	ReasonForDowntime string `json:"reason_for_downtime"`
}
