package handlers

import (
	"net/http"
	"strconv"

	"tasktracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListTasks handles GET /tasks with optional ?completed= and ?projectId= filters
func (h *Handler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	var completed *bool
	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true or false"})
			return
		}
		completed = &b
	}

	var (
		tasks []*domain.Task
		err   error
	)
	switch {
	case c.Query("projectId") != "":
		projectID, perr := strconv.ParseInt(c.Query("projectId"), 10, 64)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
			return
		}
		tasks, err = h.Tasks.ListByProject(ctx, projectID)
	case completed != nil && *completed:
		tasks, err = h.Tasks.ListCompleted(ctx)
	default:
		tasks, err = h.Tasks.ListAll(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if completed != nil {
		filtered := make([]*domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Completed == *completed {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) TodayTasks(c *gin.Context) {
	tasks, err := h.Tasks.ListDueToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CompletedTasks(c *gin.Context) {
	tasks, err := h.Tasks.ListCompleted(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var in domain.TaskInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.Tasks.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTask handles PATCH /tasks/:id. Absent fields are left alone,
// null clears dueDate and projectId.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.TaskPatch
	if !bindJSON(c, &patch) {
		return
	}
	t, err := h.Tasks.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) CompleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Tasks.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTask returns the deleted task
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Tasks.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
