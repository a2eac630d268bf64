package service

import (
	"context"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
)

// TaskStore is implemented by repository.TaskRepository and local.TaskRepository
type TaskStore interface {
	List(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// ProjectStore is implemented by repository.ProjectRepository and local.ProjectRepository
type ProjectStore interface {
	List(ctx context.Context) ([]*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

// AchievementStore is append-only
type AchievementStore interface {
	List(ctx context.Context, q domain.AchievementQuery) ([]*domain.Achievement, error)
	GetByID(ctx context.Context, id int64) (*domain.Achievement, error)
	Create(ctx context.Context, a *domain.Achievement) error
}

// Publisher delivers domain events after a successful mutation
type Publisher interface {
	Publish(ctx context.Context, e domain.Event) error
}

// Clock gives the current time in the tracker's location. "Today" and every
// day boundary is computed from it.
type Clock struct {
	Location *time.Location
	// Now overrides time.Now, for tests.
	Now func() time.Time
}

// Current returns the current time in the configured location.
func (c Clock) Current() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// publish sends the event and logs delivery failures. The mutation already
// happened, so a lost event never fails the call.
func publish(ctx context.Context, pub Publisher, category, action string, id int64, at time.Time, data any) {
	if pub == nil {
		return
	}
	e := domain.Event{Action: action, Category: category, ID: id, At: at, Data: data}
	if err := pub.Publish(ctx, e); err != nil {
		logger.WithContext(ctx).Warn("failed to publish event", "subject", e.Subject(), "error", err)
	}
}
