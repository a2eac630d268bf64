package http

import (
	"tasktracker/internal/http/handlers"
	"tasktracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the router needs
type Deps struct {
	Handler    *handlers.Handler
	Health     *handlers.HealthHandler
	Limiter    *middleware.RateLimiter
	Superseder *middleware.Superseder
}

// NewRouter builds the gin engine with the shared middleware chain
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health checks (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")
	registerAPIRoutes(v1, d)

	// Legacy /api routes, same handlers
	api := r.Group("/api")
	api.GET("/health", d.Health.Health)
	registerAPIRoutes(api, d)
}

func registerAPIRoutes(api *gin.RouterGroup, d Deps) {
	h := d.Handler
	if d.Limiter != nil {
		api.Use(d.Limiter.Handler())
	}

	// Tasks
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/today", h.TodayTasks)
	api.GET("/tasks/completed", h.CompletedTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.POST("/tasks", h.CreateTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.POST("/tasks/:id/complete", h.CompleteTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	// Projects
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:id", h.GetProject)
	api.GET("/projects/:id/tasks", h.ProjectTasks)
	api.POST("/projects", h.CreateProject)
	api.PATCH("/projects/:id", h.UpdateProject)
	api.DELETE("/projects/:id", h.DeleteProject)

	// Achievements
	api.GET("/achievements", h.ListAchievements)
	api.GET("/achievements/:id", h.GetAchievement)
	api.POST("/achievements/check", h.CheckAchievements)

	// Templates (in memory)
	api.GET("/templates", h.ListTemplates)
	api.GET("/templates/:id", h.GetTemplate)
	api.GET("/templates/:id/apply", h.ApplyTemplate)
	api.POST("/templates", h.CreateTemplate)
	api.PATCH("/templates/:id", h.UpdateTemplate)
	api.DELETE("/templates/:id", h.DeleteTemplate)

	// Page loads; a newer request for the same region cancels the older one
	views := api.Group("/views")
	if d.Superseder != nil {
		views.Use(d.Superseder.Handler())
	}
	{
		views.GET("/today", h.TodayView)
		views.GET("/archive", h.ArchiveView)
		views.GET("/insights", h.InsightsView)
	}
}
