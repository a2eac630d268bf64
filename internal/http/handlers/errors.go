package handlers

import (
	"context"
	"errors"
	"net/http"

	"tasktracker/internal/domain"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto a status code
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	log := logger.WithContext(ctx)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	case middleware.Superseded(ctx):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrSuperseded.Error()})
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the response
		log.Debug("request cancelled", "error", err)
		c.Status(499)
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		log.Error("store unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		log.Error("internal error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
