package handler

import (
	"net/http"

	"unitflow/internal/logger"
	"unitflow/internal/model"
	"unitflow/internal/service"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	logbook  *service.Logbook
	selector *service.Selector
}

func NewLogHandler(logbook *service.Logbook, selector *service.Selector) *LogHandler {
	return &LogHandler{logbook: logbook, selector: selector}
}

// GET /api/view
func (h *LogHandler) View(c *gin.Context) {
	vm := h.logbook.View(c.Request.Context(), h.selector.Snapshot())
	c.JSON(http.StatusOK, vm)
}

// POST /api/logs
func (h *LogHandler) Create(c *gin.Context) {
	var req model.NewEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec, warn, err := h.logbook.Append(c.Request.Context(), req)
	if err != nil {
		logger.Error("append entry failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("entry.saved", "id", rec.ID, "type", rec.Type, "severity", rec.Severity, "phi_warn", warn)
	c.JSON(http.StatusOK, model.NewEntryResponse{Record: rec, PHIWarn: warn})
}

// GET /api/author
func (h *LogHandler) Author(c *gin.Context) {
	c.JSON(http.StatusOK, model.AuthorResponse{Author: h.logbook.Author(c.Request.Context())})
}

// POST /api/logs/purge — destructive, so the body must carry an explicit
// confirmation. A successful purge also drops any active selection.
func (h *LogHandler) Purge(c *gin.Context) {
	var req model.PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purge requires confirmation"})
		return
	}
	if err := h.logbook.Purge(c.Request.Context()); err != nil {
		logger.Error("purge failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.selector.Exit()
	logger.Info("logs.purged")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/health
func (h *LogHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
