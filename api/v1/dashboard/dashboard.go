package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"atm-monitor/models"
	v1 "atm-monitor/services/v1"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Summaries *v1.SummaryService
	Reports   *v1.ReportService
	Activity  v1.ActivityRecorder
	Location  *time.Location
}

func (h *Handler) summary(c *gin.Context) (*models.Summary, bool) {
	s, err := h.Summaries.Summary(c.Request.Context())
	if err != nil {
		log.Println("[DASHBOARD] Summary error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return nil, false
	}
	return s, true
}

// Summary returns today's status counts, fault categories, SLA breaches and branch heat.
func (h *Handler) Summary(c *gin.Context) {
	s, ok := h.summary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) ExportXLSX(c *gin.Context) {
	s, ok := h.summary(c)
	if !ok {
		return
	}
	rows, err := h.Reports.List(c.Request.Context())
	if err != nil {
		log.Println("[DASHBOARD] Excel export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	f, err := v1.DashboardWorkbook(rows, s, h.Location)
	if err != nil {
		log.Println("[DASHBOARD] Excel export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Dashboard Excel export failed"})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		log.Println("[DASHBOARD] Excel export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Dashboard Excel export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ATM_Dashboard_%s.xlsx", s.Date))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) ExportPDF(c *gin.Context) {
	s, ok := h.summary(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := v1.WriteDashboardPDF(&buf, s, h.Summaries.Today()); err != nil {
		log.Println("[DASHBOARD] PDF export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Dashboard PDF export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ATM_Dashboard_%s.pdf", s.Date))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Handler) chart(c *gin.Context, render func(io.Writer, *models.Summary) error) {
	s, ok := h.summary(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := render(&buf, s)
	if errors.Is(err, v1.ErrNoChartData) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		log.Println("[DASHBOARD] Chart error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Chart rendering failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) StatusChart(c *gin.Context) { h.chart(c, v1.RenderStatusChart) }

func (h *Handler) FaultChart(c *gin.Context) { h.chart(c, v1.RenderFaultChart) }

// ActivityCounters returns today's submission counters. enabled is false when no Redis is configured.
func (h *Handler) ActivityCounters(c *gin.Context) {
	date := h.Reports.Today()
	counters, err := h.Activity.Counters(c.Request.Context(), date)
	if err != nil {
		log.Println("[DASHBOARD] Activity error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"enabled":  h.Activity.Enabled(),
		"counters": counters,
	})
}
