package handlers

import (
	"net/http"

	"tasktracker/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.Templates.List(c.Request.Context()))
}

func (h *Handler) GetTemplate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Templates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ApplyTemplate returns a new-task payload prefilled from the template
func (h *Handler) ApplyTemplate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, err := h.Templates.Apply(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var in domain.Template
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.Templates.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.TemplatePatch
	if !bindJSON(c, &patch) {
		return
	}
	t, err := h.Templates.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Templates.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
