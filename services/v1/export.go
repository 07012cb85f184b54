package v1

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"atm-monitor/models"

	"github.com/go-pdf/fpdf"
	"github.com/hako/durafmt"
	"github.com/xuri/excelize/v2"
)

const (
	exportTimeLayout = "2006-01-02 15:04:05"
	maxPDFBreaches   = 50
)

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(exportTimeLayout)
}

func formatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', 2, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var csvHeader = []string{
	"Branch Name", "ATM ID", "ATM Status",
	"Downtime Start", "Downtime End", "Downtime Duration (hrs)",
	"Reason for Downtime", "Expected Restoration Time",
}

// WriteReportsCSV writes one line per report under a fixed header.
func WriteReportsCSV(w io.Writer, reports []models.Report, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range reports {
		err := cw.Write([]string{
			r.BranchName,
			r.AtmID,
			string(r.AtmStatus),
			formatTime(r.DowntimeStart, loc),
			formatTime(r.DowntimeEnd, loc),
			formatHours(r.DowntimeDurationHours),
			deref(r.ReasonForDowntime),
			formatTime(r.ExpectedRestorationTime, loc),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type column struct {
	header string
	width  float64
}

// sheetWriter fills one worksheet row by row.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	bold  int
}

func newSheet(f *excelize.File, name string, first bool, bold int, cols []column) (*sheetWriter, error) {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	sw := &sheetWriter{f: f, sheet: name, bold: bold}
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.header
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, colName, colName, c.width); err != nil {
			return nil, err
		}
	}
	if err := sw.append(header...); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return nil, err
	}
	return sw, nil
}

func (sw *sheetWriter) append(values ...interface{}) error {
	sw.row++
	cell, err := excelize.CoordinatesToCellName(1, sw.row)
	if err != nil {
		return err
	}
	return sw.f.SetSheetRow(sw.sheet, cell, &values)
}

func newWorkbook() (*excelize.File, int, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, bold, nil
}

func hoursCell(h *float64) interface{} {
	if h == nil {
		return ""
	}
	return *h
}

// ReportsWorkbook renders the report list sheet. The caller closes the file.
func ReportsWorkbook(reports []models.Report, loc *time.Location) (*excelize.File, error) {
	f, bold, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	sw, err := newSheet(f, "ATM Report", true, bold, []column{
		{"Branch Name", 25}, {"ATM ID", 15}, {"ATM Status", 12}, {"Reason", 30},
		{"Report Date", 14}, {"Window", 14}, {"Created At", 20},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	for _, r := range reports {
		err := sw.append(r.BranchName, r.AtmID, string(r.AtmStatus), deref(r.ReasonForDowntime),
			r.ReportDate, r.ReportingWindow, r.CreatedAt.In(loc).Format(exportTimeLayout))
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// DashboardWorkbook renders every report plus the summary's counts, faults, breaches and
// branch heat. The caller closes the file.
func DashboardWorkbook(reports []models.Report, s *models.Summary, loc *time.Location) (_ *excelize.File, err error) {
	f, bold, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			f.Close()
		}
	}()

	sw, err := newSheet(f, "Reports", true, bold, []column{
		{"Branch", 25}, {"ATM ID", 15}, {"Status", 12},
		{"Downtime Start", 20}, {"Downtime End", 20}, {"Duration (hrs)", 14},
		{"Reason", 30}, {"Report Date", 14}, {"Window", 14},
	})
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		err = sw.append(r.BranchName, r.AtmID, string(r.AtmStatus),
			formatTime(r.DowntimeStart, loc), formatTime(r.DowntimeEnd, loc), hoursCell(r.DowntimeDurationHours),
			deref(r.ReasonForDowntime), r.ReportDate, r.ReportingWindow)
		if err != nil {
			return nil, err
		}
	}

	if sw, err = newSheet(f, "Summary", false, bold, []column{{"Metric", 28}, {"Value", 14}}); err != nil {
		return nil, err
	}
	rows := [][]interface{}{
		{"Date", s.Date},
		{"UP", s.AtmStatus.Up},
		{"DOWN", s.AtmStatus.Down},
		{"PARKED", s.AtmStatus.Parked},
		{"SLA Threshold (minutes)", s.SLA.ThresholdMinutes},
		{"SLA Breaches", len(s.SLA.Breaches)},
	}
	for _, row := range rows {
		if err = sw.append(row...); err != nil {
			return nil, err
		}
	}

	if sw, err = newSheet(f, "Faults", false, bold, []column{{"Fault Type", 28}, {"Count", 10}}); err != nil {
		return nil, err
	}
	for _, key := range models.FaultCategories {
		if err = sw.append(TitleFromKey(key), s.Faults[key]); err != nil {
			return nil, err
		}
	}

	if sw, err = newSheet(f, "SLA Breaches", false, bold, []column{
		{"ATM ID", 15}, {"Branch", 25}, {"Issue", 28}, {"Down (min)", 12}, {"Since", 20}, {"Severity", 10},
	}); err != nil {
		return nil, err
	}
	for _, b := range s.SLA.Breaches {
		since := b.Since
		if err = sw.append(b.AtmID, b.Branch, deref(b.Issue), b.DownMinutes, formatTime(&since, loc), string(b.Severity)); err != nil {
			return nil, err
		}
	}

	if sw, err = newSheet(f, "Branches", false, bold, []column{
		{"Branch", 25}, {"UP", 8}, {"DOWN", 8}, {"PARKED", 8}, {"Faults", 8}, {"SLA Breaches", 12}, {"Heat Score", 10},
	}); err != nil {
		return nil, err
	}
	for _, b := range s.Branches {
		if err = sw.append(b.Branch, b.Up, b.Down, b.Parked, b.Faults, b.SLABreaches, b.HeatScore); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// TitleFromKey turns a fault key such as CASH_OUT into "Cash Out".
func TitleFromKey(key string) string {
	words := strings.Split(strings.ToLower(key), "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size > 0 {
			words[i] = string(unicode.ToUpper(r)) + w[size:]
		}
	}
	return strings.Join(words, " ")
}

// breachRows formats breaches for the PDF table. The issue is printed as the operator typed it.
func breachRows(breaches []models.SLABreach, loc *time.Location) [][]string {
	body := make([][]string, 0, len(breaches))
	for _, b := range breaches {
		issue := "-"
		if reason := deref(b.Issue); reason != "" {
			issue = reason
		}
		down := durafmt.Parse(time.Duration(b.DownMinutes) * time.Minute).LimitFirstN(2).String()
		body = append(body, []string{
			b.AtmID, b.Branch, issue, down, b.Since.In(loc).Format("01-02 15:04"), string(b.Severity),
		})
	}
	return body
}

// WriteDashboardPDF renders the summary as a set of tables on A4.
func WriteDashboardPDF(w io.Writer, s *models.Summary, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "ATM Status Dashboard Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Report date: %s", s.Date))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", generatedAt.Format(exportTimeLayout)))
	pdf.Ln(8)

	table := func(widths []float64, head []string, body [][]string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range head {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for _, row := range body {
			for i, cell := range row {
				pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	table([]float64{70, 40}, []string{"Summary", "Value"}, [][]string{
		{"UP", strconv.Itoa(s.AtmStatus.Up)},
		{"DOWN", strconv.Itoa(s.AtmStatus.Down)},
		{"PARKED", strconv.Itoa(s.AtmStatus.Parked)},
		{"SLA Threshold (minutes)", strconv.Itoa(s.SLA.ThresholdMinutes)},
		{"SLA Breaches", strconv.Itoa(len(s.SLA.Breaches))},
	})

	faults := make([][]string, 0, len(models.FaultCategories))
	for _, key := range models.FaultCategories {
		faults = append(faults, []string{TitleFromKey(key), strconv.Itoa(s.Faults[key])})
	}
	table([]float64{70, 40}, []string{"Fault Type", "Count"}, faults)

	branches := make([][]string, 0, len(s.Branches))
	for _, b := range s.Branches {
		branches = append(branches, []string{
			b.Branch, strconv.Itoa(b.Up), strconv.Itoa(b.Down), strconv.Itoa(b.Parked),
			strconv.Itoa(b.Faults), strconv.Itoa(b.SLABreaches), strconv.Itoa(b.HeatScore),
		})
	}
	table([]float64{52, 18, 18, 20, 18, 30, 20}, []string{"Branch", "UP", "DOWN", "PARKED", "Faults", "SLA Breaches", "Heat"}, branches)

	if len(s.SLA.Breaches) > 0 {
		breaches := s.SLA.Breaches
		if len(breaches) > maxPDFBreaches {
			breaches = breaches[:maxPDFBreaches]
		}
		table([]float64{22, 38, 40, 38, 22, 22}, []string{"ATM ID", "Branch", "Issue", "Down", "Since", "Severity"},
			breachRows(breaches, generatedAt.Location()))
	}

	return pdf.Output(w)
}
