package local

import (
	"time"

	"tasktracker/internal/domain"
)

type taskModel struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"not null"`
	Description string     `gorm:"not null"`
	DueDate     *time.Time `gorm:"index"`
	Priority    string     `gorm:"not null"`
	ProjectID   *int64     `gorm:"index"`
	Completed   bool       `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	CompletedAt *time.Time `gorm:"index"`
}

func (taskModel) TableName() string { return "tasks" }

func newTaskModel(t *domain.Task) taskModel {
	return taskModel{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     utcPtr(t.DueDate),
		Priority:    string(t.Priority),
		ProjectID:   t.ProjectID,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC(),
		CompletedAt: utcPtr(t.CompletedAt),
	}
}

func (m *taskModel) toDomain() *domain.Task {
	return &domain.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate,
		Priority:    domain.Priority(m.Priority),
		ProjectID:   m.ProjectID,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
		CompletedAt: m.CompletedAt,
	}
}

type projectModel struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Color     string    `gorm:"not null"`
	Icon      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (projectModel) TableName() string { return "projects" }

func newProjectModel(p *domain.Project) projectModel {
	return projectModel{ID: p.ID, Name: p.Name, Color: p.Color, Icon: p.Icon, CreatedAt: p.CreatedAt.UTC()}
}

func (m *projectModel) toDomain() *domain.Project {
	return &domain.Project{ID: m.ID, Name: m.Name, Color: m.Color, Icon: m.Icon, CreatedAt: m.CreatedAt}
}

type achievementModel struct {
	ID        int64     `gorm:"primaryKey"`
	Type      string    `gorm:"not null;uniqueIndex:idx_achievement_type_milestone"`
	Milestone *int      `gorm:"uniqueIndex:idx_achievement_type_milestone"`
	Message   string    `gorm:"not null"`
	EarnedAt  time.Time `gorm:"not null;index"`
}

func (achievementModel) TableName() string { return "achievements" }

func newAchievementModel(a *domain.Achievement) achievementModel {
	m := achievementModel{ID: a.ID, Type: string(a.Type), Message: a.Message, EarnedAt: a.EarnedAt.UTC()}
	if a.Milestone != 0 {
		v := a.Milestone
		m.Milestone = &v
	}
	return m
}

func (m *achievementModel) toDomain() *domain.Achievement {
	a := &domain.Achievement{ID: m.ID, Type: domain.AchievementType(m.Type), Message: m.Message, EarnedAt: m.EarnedAt}
	if m.Milestone != nil {
		a.Milestone = *m.Milestone
	}
	return a
}

// SQLite keeps timestamps as text, so everything is written in UTC to keep
// range filters and ordering consistent.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
