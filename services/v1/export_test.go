package v1

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"atm-monitor/models"

	"github.com/xuri/excelize/v2"
)

func sampleReports(now time.Time) []models.Report {
	start := now.Add(-3 * time.Hour)
	end := now.Add(-90 * time.Minute)
	hours := 1.5
	reason := "CASH_OUT"
	return []models.Report{
		{
			ID: 1, BranchName: "Bole, Main", AtmID: "B-1", AtmStatus: models.StatusDown,
			DowntimeStart: &start, DowntimeEnd: &end, DowntimeDurationHours: &hours, ReasonForDowntime: &reason,
			ReportDate: "2026-10-19", ReportingWindow: "12:00-14:00", CreatedAt: now,
		},
		{
			ID: 2, BranchName: "Piassa", AtmID: "P-1", AtmStatus: models.StatusUp,
			ReportDate: "2026-10-19", ReportingWindow: "12:00-14:00", CreatedAt: now,
		},
	}
}

func TestWriteReportsCSV(t *testing.T) {
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := WriteReportsCSV(&buf, sampleReports(now), time.UTC); err != nil {
		t.Fatalf("WriteReportsCSV() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	if records[0][5] != "Downtime Duration (hrs)" {
		t.Errorf("header = %v", records[0])
	}
	want := []string{"Bole, Main", "B-1", "DOWN", "2026-10-19 10:00:00", "2026-10-19 11:30:00", "1.50", "CASH_OUT", ""}
	for i := range want {
		if records[1][i] != want[i] {
			t.Errorf("row 1 col %d = %q, want %q", i, records[1][i], want[i])
		}
	}
	if records[2][3] != "" || records[2][5] != "" {
		t.Errorf("UP row has downtime values: %v", records[2])
	}
}

func TestReportsWorkbook(t *testing.T) {
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	f, err := ReportsWorkbook(sampleReports(now), time.UTC)
	if err != nil {
		t.Fatalf("ReportsWorkbook() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("ATM Report")
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Branch Name" || rows[1][1] != "B-1" {
		t.Errorf("rows = %v", rows)
	}
}

func TestDashboardWorkbook(t *testing.T) {
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	reports := sampleReports(now)
	summary := BuildSummary(reports, now, 30)
	summary.Date = "2026-10-19"

	f, err := DashboardWorkbook(reports, &summary, time.UTC)
	if err != nil {
		t.Fatalf("DashboardWorkbook() error: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	f.Close()

	reopened, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer reopened.Close()

	sheets := reopened.GetSheetList()
	wantSheets := []string{"Reports", "Summary", "Faults", "SLA Breaches", "Branches"}
	if len(sheets) != len(wantSheets) {
		t.Fatalf("sheets = %v, want %v", sheets, wantSheets)
	}
	for i := range wantSheets {
		if sheets[i] != wantSheets[i] {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i], wantSheets[i])
		}
	}

	breaches, _ := reopened.GetRows("SLA Breaches")
	if len(breaches) != 2 || breaches[1][0] != "B-1" || breaches[1][5] != "MEDIUM" {
		t.Errorf("SLA Breaches rows = %v", breaches)
	}
	faults, _ := reopened.GetRows("Faults")
	if len(faults) != 1+len(models.FaultCategories) || faults[2][0] != "Cash Out" || faults[2][1] != "1" {
		t.Errorf("Faults rows = %v", faults)
	}
}

func TestWriteDashboardPDF(t *testing.T) {
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	summary := BuildSummary(sampleReports(now), now, 30)
	summary.Date = "2026-10-19"

	var buf bytes.Buffer
	if err := WriteDashboardPDF(&buf, &summary, now); err != nil {
		t.Fatalf("WriteDashboardPDF() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestCharts(t *testing.T) {
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	summary := BuildSummary(sampleReports(now), now, 30)
	pngMagic := []byte("\x89PNG")

	var buf bytes.Buffer
	if err := RenderStatusChart(&buf, &summary); err != nil {
		t.Fatalf("RenderStatusChart() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("status chart is not a PNG")
	}

	buf.Reset()
	if err := RenderFaultChart(&buf, &summary); err != nil {
		t.Fatalf("RenderFaultChart() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("fault chart is not a PNG")
	}

	empty := BuildSummary(nil, now, 30)
	if err := RenderStatusChart(&buf, &empty); !errors.Is(err, ErrNoChartData) {
		t.Errorf("RenderStatusChart(empty) error = %v, want ErrNoChartData", err)
	}
	if err := RenderFaultChart(&buf, &empty); !errors.Is(err, ErrNoChartData) {
		t.Errorf("RenderFaultChart(empty) error = %v, want ErrNoChartData", err)
	}
}

func TestTitleFromKey(t *testing.T) {
	tests := map[string]string{
		"CASH_OUT":           "Cash Out",
		"APP_OUT_OF_SERVICE": "App Out Of Service",
		"cash out":           "Cash out",
		"écran_hors_service": "Écran Hors Service",
		"":                   "",
	}
	for in, want := range tests {
		if got := TitleFromKey(in); got != want {
			t.Errorf("TitleFromKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBreachRowsKeepIssueText(t *testing.T) {
	since := time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC)
	breaches := []models.SLABreach{
		{AtmID: "B-1", Branch: "Bole", Issue: ptr("ATM door jam"), DownMinutes: 95, Since: since, Severity: models.SeverityMedium},
		{AtmID: "B-2", Branch: "Bole", Issue: ptr("écran hors service"), DownMinutes: 45, Since: since, Severity: models.SeverityLow},
		{AtmID: "B-3", Branch: "Bole", DownMinutes: 130, Since: since, Severity: models.SeverityHigh},
	}

	rows := breachRows(breaches, time.UTC)

	wantIssues := []string{"ATM door jam", "écran hors service", "-"}
	for i, want := range wantIssues {
		if got := rows[i][2]; got != want {
			t.Errorf("row %d issue = %q, want %q", i, got, want)
		}
		if !utf8.ValidString(rows[i][2]) {
			t.Errorf("row %d issue is not valid UTF-8", i)
		}
	}
	if got := rows[0][3]; got != "1 hour 35 minutes" {
		t.Errorf("row 0 down = %q, want %q", got, "1 hour 35 minutes")
	}
	if got := rows[0][4]; got != "10-19 09:05" {
		t.Errorf("row 0 since = %q, want %q", got, "10-19 09:05")
	}
}
