package handler

import (
	"fmt"
	"net/http"
	"time"

	"unitflow/internal/bucket"
	"unitflow/internal/export"
	"unitflow/internal/logger"
	"unitflow/internal/model"
	"unitflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	logbook  *service.Logbook
	selector *service.Selector
}

func NewExportHandler(logbook *service.Logbook, selector *service.Selector) *ExportHandler {
	return &ExportHandler{logbook: logbook, selector: selector}
}

// GET /api/export.csv?selected=1
func (h *ExportHandler) CSV(c *gin.Context) {
	logs, prefix, ok := h.pick(c)
	if !ok {
		return
	}
	name := export.Filename(prefix, time.Now())
	logger.Info("export.csv", "records", len(logs), "file", name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.CSV(logs)))
}

// GET /api/export.xlsx?selected=1
func (h *ExportHandler) XLSX(c *gin.Context) {
	logs, prefix, ok := h.pick(c)
	if !ok {
		return
	}
	data, err := export.XLSX(logs)
	if err != nil {
		logger.Error("xlsx export failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	name := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("2006-01-02"))
	logger.Info("export.xlsx", "records", len(logs), "file", name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GET /api/selection/table — the standalone printable document for the
// current selection. Opened in a new browsing context by the client.
func (h *ExportHandler) Table(c *gin.Context) {
	logs := h.selector.SelectedRecords(c.Request.Context())
	if len(logs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	doc, err := export.TableHTML(logs, export.SelectionTitle(h.selector.Scope()), time.Now())
	if err != nil {
		logger.Error("table render failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// GET /api/table?scope=today|week — the printable document for a whole
// bucket, backing the per-pane print button. An empty bucket still renders
// a header-only table.
func (h *ExportHandler) BucketTable(c *gin.Context) {
	scope := c.DefaultQuery("scope", bucket.ScopeToday)
	if scope != bucket.ScopeToday && scope != bucket.ScopeWeek {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown scope"})
		return
	}
	logs := h.logbook.BucketRecords(c.Request.Context(), scope)
	doc, err := export.TableHTML(logs, export.BucketTitle(scope), time.Now())
	if err != nil {
		logger.Error("table render failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// pick resolves the record set for an export: the current selection when
// selected=1 (empty selection is a no-op answered with 204), otherwise the
// whole list.
func (h *ExportHandler) pick(c *gin.Context) ([]model.LogRecord, string, bool) {
	if c.Query("selected") == "1" || c.Query("selected") == "true" {
		logs := h.selector.SelectedRecords(c.Request.Context())
		if len(logs) == 0 {
			c.Status(http.StatusNoContent)
			return nil, "", false
		}
		return logs, "unitflow_selected", true
	}
	return h.logbook.Records(c.Request.Context()), "unitflow_logs", true
}
