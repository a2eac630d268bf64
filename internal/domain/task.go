package domain

import (
	"strings"
	"time"
)

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the recognized priorities, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the recognized priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          int64      `db:"id" json:"Id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	Priority    Priority   `db:"priority" json:"priority"`
	ProjectID   *int64     `db:"project_id" json:"projectId"`
	Completed   bool       `db:"completed" json:"completed"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt"`
}

// InProject reports whether the task belongs to the given project.
func (t *Task) InProject(projectID int64) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID
}

// SetCompleted flips the completion flag keeping completedAt in step:
// stamped on the false->true transition, cleared on un-complete.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	if completed {
		if !t.Completed || t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
	} else {
		t.CompletedAt = nil
	}
	t.Completed = completed
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.ProjectID != nil {
		p := *t.ProjectID
		c.ProjectID = &p
	}
	if t.CompletedAt != nil {
		ca := *t.CompletedAt
		c.CompletedAt = &ca
	}
	return &c
}

// TaskInput is the payload for creating a task
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Priority    Priority `json:"priority"`
	ProjectID   *int64   `json:"projectId"`
}

// TaskPatch carries a partial update. Id is deliberately absent.
type TaskPatch struct {
	Title       Nullable[string]   `json:"title"`
	Description Nullable[string]   `json:"description"`
	DueDate     Nullable[string]   `json:"dueDate"`
	Priority    Nullable[Priority] `json:"priority"`
	ProjectID   Nullable[int64]    `json:"projectId"`
	Completed   Nullable[bool]     `json:"completed"`
}

// TaskSort selects the list order
type TaskSort int

const (
	// SortByID is the store's default order.
	SortByID TaskSort = iota
	// SortCompletedDesc orders by completedAt, most recent first.
	SortCompletedDesc
)

// TaskQuery filters a task listing. Zero value lists everything.
type TaskQuery struct {
	Completed *bool
	ProjectID *int64
	// DueFrom is inclusive, DueBefore exclusive.
	DueFrom   *time.Time
	DueBefore *time.Time
	Sort      TaskSort
	Limit     int
	Offset    int
}

// ParseDueDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates,
// the latter interpreted as midnight in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.DateOnly, s, loc)
}
