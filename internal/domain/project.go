package domain

import (
	"regexp"
	"time"
)

const (
	DefaultProjectColor = "#FF6B6B"
	DefaultProjectIcon  = "Folder"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether c is a #RGB or #RRGGBB hex color.
func ValidColor(c string) bool {
	return hexColor.MatchString(c)
}

// Project groups tasks. TaskCount and CompletedCount are derived from the
// task collection on every read and are never stored.
type Project struct {
	ID             int64     `db:"id" json:"Id"`
	Name           string    `db:"name" json:"name"`
	Color          string    `db:"color" json:"color"`
	Icon           string    `db:"icon" json:"icon"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	TaskCount      int       `db:"-" json:"taskCount"`
	CompletedCount int       `db:"-" json:"completedCount"`
}

// ApplyCounts recomputes TaskCount and CompletedCount from tasks.
func (p *Project) ApplyCounts(tasks []*Task) {
	p.TaskCount, p.CompletedCount = 0, 0
	for _, t := range tasks {
		if !t.InProject(p.ID) {
			continue
		}
		p.TaskCount++
		if t.Completed {
			p.CompletedCount++
		}
	}
}

// ProjectInput is the payload for creating a project
type ProjectInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ProjectPatch carries a partial update.
type ProjectPatch struct {
	Name  Nullable[string] `json:"name"`
	Color Nullable[string] `json:"color"`
	Icon  Nullable[string] `json:"icon"`
}
