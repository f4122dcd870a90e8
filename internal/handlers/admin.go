package handlers

import (
	"net/http"
	"strconv"

	"sefer/internal/models"

	"github.com/gin-gonic/gin"
)

// Admin handlers: sweeper, settings and audit read paths.

// RunSweep - POST /api/sweeper/run
// Запустить проход sweeper'а вручную
func (h *Handlers) RunSweep(c *gin.Context) {
	cancelled, err := h.services.Sweeper.ProcessTimeouts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProcessTimeoutsResponse{Cancelled: cancelled})
}

// ListAutoCancellations - GET /api/sweeper/logs
// Журнал автоматических отмен
func (h *Handlers) ListAutoCancellations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
		return
	}

	entries, err := h.services.Sweeper.AutoCancellationLogs(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetSettings - GET /api/settings
func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{TimeoutMinutes: settings.TimeoutMinutes})
}

// UpdateSettings - PUT /api/settings
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Settings.Update(c.Request.Context(), req.TimeoutMinutes); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// ListAuditLog - GET /api/audit?entity_id=&limit=
// Журнал аудита, только чтение
func (h *Handlers) ListAuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
		return
	}

	var entityID *int64
	if param := c.Query("entity_id"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "entity_id must be a positive integer"})
			return
		}
		entityID = &id
	}

	entries, err := h.services.Audit.List(c.Request.Context(), entityID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
