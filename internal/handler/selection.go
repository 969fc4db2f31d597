package handler

import (
	"net/http"

	"unitflow/internal/model"
	"unitflow/internal/service"

	"github.com/gin-gonic/gin"
)

type SelectionHandler struct {
	selector *service.Selector
}

func NewSelectionHandler(selector *service.Selector) *SelectionHandler {
	return &SelectionHandler{selector: selector}
}

// POST /api/selection/enter  body: {"scope":"today"|"week"}
func (h *SelectionHandler) Enter(c *gin.Context) {
	var req model.SelectionEnterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.selector.Enter(req.Scope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "scope": req.Scope})
}

// POST /api/selection/exit — also fired by every tab switch so stale
// scoped state cannot survive a tab change.
func (h *SelectionHandler) Exit(c *gin.Context) {
	h.selector.Exit()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/selection/toggle  body: {"id":"...","checked":true}
func (h *SelectionHandler) Toggle(c *gin.Context) {
	var req model.SelectionToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	accepted, count := h.selector.Toggle(c.Request.Context(), req.ID, req.Checked)
	c.JSON(http.StatusOK, model.SelectionToggleResponse{Accepted: accepted, Count: count})
}

// GET /api/selection
func (h *SelectionHandler) State(c *gin.Context) {
	snap := h.selector.Snapshot()
	ids := make([]string, 0, len(snap.IDs))
	for id := range snap.IDs {
		ids = append(ids, id)
	}
	c.JSON(http.StatusOK, gin.H{
		"active": snap.Active,
		"scope":  snap.Scope,
		"count":  snap.Count(),
		"ids":    ids,
	})
}
