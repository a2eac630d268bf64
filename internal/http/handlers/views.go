package handlers

import (
	"net/http"

	"tasktracker/internal/insights"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// TodayView handles GET /views/today
func (h *Handler) TodayView(c *gin.Context) {
	v, err := h.Views.Today(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ArchiveView handles GET /views/archive?q=&range=
func (h *Handler) ArchiveView(c *gin.Context) {
	r, ok := insights.ParseDateRange(c.Query("range"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "range must be one of all, today, week, month"})
		return
	}
	v, err := h.Views.Archive(c.Request.Context(), service.ArchiveFilter{Query: c.Query("q"), Range: r})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// InsightsView handles GET /views/insights
func (h *Handler) InsightsView(c *gin.Context) {
	v, err := h.Views.Insights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
