package handlers

import (
	"net/http"
	"strconv"

	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler serves the tracker API
type Handler struct {
	Tasks        *service.TaskService
	Projects     *service.ProjectService
	Achievements *service.AchievementService
	Templates    *service.TemplateService
	Views        *service.ViewService
}

func NewHandler(tasks *service.TaskService, projects *service.ProjectService, achievements *service.AchievementService, templates *service.TemplateService, views *service.ViewService) *Handler {
	return &Handler{
		Tasks:        tasks,
		Projects:     projects,
		Achievements: achievements,
		Templates:    templates,
		Views:        views,
	}
}

// pathID parses the :id parameter, answering 400 when it is not a positive integer
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body, answering 400 on malformed input
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
