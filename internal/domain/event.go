package domain

import "time"

// Event represents a domain change published after a successful mutation
type Event struct {
	Action   string    `json:"action"`
	Category string    `json:"category"`
	ID       int64     `json:"id"`
	At       time.Time `json:"at"`
	Data     any       `json:"data,omitempty"`
}

// Subject returns the routing key, e.g. "task.completed".
func (e Event) Subject() string {
	return e.Category + "." + e.Action
}

// Event categories
const (
	EventCategoryTask        = "task"
	EventCategoryProject     = "project"
	EventCategoryAchievement = "achievement"
)

// Event actions
const (
	EventActionCreated   = "created"
	EventActionUpdated   = "updated"
	EventActionCompleted = "completed"
	EventActionDeleted   = "deleted"
	EventActionEarned    = "earned"
)
