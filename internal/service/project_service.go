package service

import (
	"context"
	"strings"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"

	"golang.org/x/sync/errgroup"
)

// ProjectService handles projects. Task counts are never stored; every read
// recomputes them from the task collection.
type ProjectService struct {
	projects ProjectStore
	tasks    TaskStore
	pub      Publisher
	clock    Clock
}

// NewProjectService creates a new project service
func NewProjectService(projects ProjectStore, tasks TaskStore, pub Publisher, clock Clock) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		pub:      pub,
		clock:    clock,
	}
}

// ListAll returns every project with fresh counts
func (s *ProjectService) ListAll(ctx context.Context) ([]*domain.Project, error) {
	var (
		projects []*domain.Project
		tasks    []*domain.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.projects.List(gctx)
		return observe("project.list", err)
	})
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.List(gctx, domain.TaskQuery{})
		return observe("task.list", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range projects {
		p.ApplyCounts(tasks)
	}
	return projects, nil
}

// GetByID returns the project with fresh counts
func (s *ProjectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var (
		project *domain.Project
		tasks   []*domain.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = s.projects.GetByID(gctx, id)
		return observe("project.get", err)
	})
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.List(gctx, domain.TaskQuery{ProjectID: &id})
		return observe("task.list", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	project.ApplyCounts(tasks)
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	now := s.clock.Current()
	p := &domain.Project{
		Name:      strings.TrimSpace(in.Name),
		Color:     strings.TrimSpace(in.Color),
		Icon:      strings.TrimSpace(in.Icon),
		CreatedAt: now,
	}
	if p.Color == "" {
		p.Color = domain.DefaultProjectColor
	}
	if p.Icon == "" {
		p.Icon = domain.DefaultProjectIcon
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, observe("project.create", err)
	}

	logger.WithContext(ctx).Info("project created", "project_id", p.ID)
	publish(ctx, s.pub, domain.EventCategoryProject, domain.EventActionCreated, p.ID, now, p)
	return p, nil
}

// Update applies a partial update. A null color or icon resets it to the default.
func (s *ProjectService) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, observe("project.get", err)
	}

	if patch.Name.Set {
		p.Name = strings.TrimSpace(patch.Name.Value)
	}
	if patch.Color.Set {
		p.Color = strings.TrimSpace(patch.Color.Value)
		if p.Color == "" {
			p.Color = domain.DefaultProjectColor
		}
	}
	if patch.Icon.Set {
		p.Icon = strings.TrimSpace(patch.Icon.Value)
		if p.Icon == "" {
			p.Icon = domain.DefaultProjectIcon
		}
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, observe("project.update", err)
	}

	fresh, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.pub, domain.EventCategoryProject, domain.EventActionUpdated, id, s.clock.Current(), fresh)
	return fresh, nil
}

// Delete removes the project and returns its last snapshot. Its tasks are
// kept and detached from the project.
func (s *ProjectService) Delete(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return nil, observe("project.delete", err)
	}

	logger.WithContext(ctx).Info("project deleted", "project_id", id, "detached_tasks", p.TaskCount)
	publish(ctx, s.pub, domain.EventCategoryProject, domain.EventActionDeleted, id, s.clock.Current(), p)
	return p, nil
}

func validateProject(p *domain.Project) error {
	verr := &domain.ValidationError{}
	if p.Name == "" {
		verr.Add("name", "name is required")
	}
	if !domain.ValidColor(p.Color) {
		verr.Add("color", "must be a hex color like #FF6B6B")
	}
	return verr.OrNil()
}
