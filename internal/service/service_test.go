package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"tasktracker/internal/achievement"
	"tasktracker/internal/domain"
	"tasktracker/internal/repository/local"
	"tasktracker/internal/templates"

	"github.com/stretchr/testify/require"
)

// Thursday morning
var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject())
	}
	return out
}

type fixture struct {
	now time.Time
	pub *recordingPublisher

	Tasks        *TaskService
	Projects     *ProjectService
	Achievements *AchievementService
	Templates    *TemplateService
	Views        *ViewService
}

type fixtureConfig struct {
	tasks        TaskStore
	achievements AchievementStore
	trigger      achievement.Trigger
}

type fixtureOption func(*fixtureConfig)

// wrapTasks replaces the task store, typically with a failing wrapper
func wrapTasks(wrap func(TaskStore) TaskStore) fixtureOption {
	return func(c *fixtureConfig) { c.tasks = wrap(c.tasks) }
}

func wrapAchievements(wrap func(AchievementStore) AchievementStore) fixtureOption {
	return func(c *fixtureConfig) { c.achievements = wrap(c.achievements) }
}

func withTrigger(tr achievement.Trigger) fixtureOption {
	return func(c *fixtureConfig) { c.trigger = tr }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	db, err := local.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close(db) })

	cfg := &fixtureConfig{
		tasks:        local.NewTaskRepository(db),
		achievements: local.NewAchievementRepository(db),
		trigger:      achievement.TriggerExact,
	}
	for _, o := range opts {
		o(cfg)
	}
	projects := local.NewProjectRepository(db)

	f := &fixture{now: testNow, pub: &recordingPublisher{}}
	clock := Clock{Location: time.UTC, Now: func() time.Time { return f.now }}

	f.Tasks = NewTaskService(cfg.tasks, projects, f.pub, clock)
	f.Projects = NewProjectService(projects, cfg.tasks, f.pub, clock)
	f.Achievements = NewAchievementService(cfg.achievements, cfg.tasks, achievement.NewEvaluator(cfg.trigger), f.pub, clock)
	f.Tasks.SetAwarder(f.Achievements)
	f.Templates = NewTemplateService(templates.NewCatalog(templates.Builtin()))
	f.Views = NewViewService(f.Tasks, f.Projects, f.Achievements, clock)
	return f
}

// setNow moves the fixture clock
func (f *fixture) setNow(t time.Time) {
	f.now = t
}

func (f *fixture) createTask(t *testing.T, in domain.TaskInput) *domain.Task {
	t.Helper()
	task, err := f.Tasks.Create(context.Background(), in)
	require.NoError(t, err)
	return task
}

func (f *fixture) createProject(t *testing.T, name string) *domain.Project {
	t.Helper()
	p, err := f.Projects.Create(context.Background(), domain.ProjectInput{Name: name})
	require.NoError(t, err)
	return p
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
