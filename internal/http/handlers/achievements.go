package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListAchievements handles GET /achievements; ?limit= returns the most recent ones
func (h *Handler) ListAchievements(c *gin.Context) {
	ctx := c.Request.Context()
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		list, err := h.Achievements.ListRecent(ctx, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
		return
	}

	list, err := h.Achievements.ListAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetAchievement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.Achievements.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type checkRequest struct {
	CompletedTasks *int `json:"completedTasks"`
	StreakDays     *int `json:"streakDays"`
}

// CheckAchievements handles POST /achievements/check. With explicit counts
// it evaluates them; with an empty body it derives them from the tasks.
func (h *Handler) CheckAchievements(c *gin.Context) {
	ctx := c.Request.Context()

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.CompletedTasks == nil && req.StreakDays == nil {
		earned, err := h.Achievements.AwardForProgress(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"achievements": earned})
		return
	}

	completed, streak := 0, 0
	if req.CompletedTasks != nil {
		completed = *req.CompletedTasks
	}
	if req.StreakDays != nil {
		streak = *req.StreakDays
	}
	if completed < 0 || streak < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "counts must not be negative"})
		return
	}
	earned, err := h.Achievements.CheckAndAward(ctx, completed, streak)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": earned})
}
