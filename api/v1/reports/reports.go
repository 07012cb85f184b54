package reports

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"atm-monitor/api/middleware"
	"atm-monitor/models"
	v1 "atm-monitor/services/v1"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Reports  *v1.ReportService
	Location *time.Location
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid report id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var in models.ReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "branch_name, atm_id and atm_status (UP, DOWN or PARKED) are required"})
		return
	}

	var createdBy int64
	if user := middleware.CurrentUser(c); user != nil {
		createdBy = user.ID
	}

	if _, err := h.Reports.Create(c.Request.Context(), in, createdBy); err != nil {
		if errors.Is(err, v1.ErrInvalidTimestamp) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		log.Println("[REPORTS] Save error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) List(c *gin.Context) {
	rows, err := h.Reports.List(c.Request.Context())
	if err != nil {
		log.Println("[REPORTS] List error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Update replaces branch, ATM, status and reason. An unknown id still answers ok.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var u models.ReportUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "branch_name, atm_id and atm_status (UP, DOWN or PARKED) are required"})
		return
	}
	if err := h.Reports.Update(c.Request.Context(), id, u); err != nil {
		log.Println("[REPORTS] Update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes a report. An unknown id still answers ok.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Reports.Delete(c.Request.Context(), id); err != nil {
		log.Println("[REPORTS] Delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ExportCSV(c *gin.Context) {
	rows, err := h.Reports.List(c.Request.Context())
	if err != nil {
		log.Println("[REPORTS] CSV export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := v1.WriteReportsCSV(&buf, rows, h.Location); err != nil {
		log.Println("[REPORTS] CSV export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "CSV export failed"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=ATM_Report.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) ExportXLSX(c *gin.Context) {
	rows, err := h.Reports.ListByCreated(c.Request.Context())
	if err != nil {
		log.Println("[REPORTS] Excel export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	f, err := v1.ReportsWorkbook(rows, h.Location)
	if err != nil {
		log.Println("[REPORTS] Excel export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Excel export failed"})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		log.Println("[REPORTS] Excel export error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Excel export failed"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=ATM_Report.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
