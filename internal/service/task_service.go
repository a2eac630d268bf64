package service

import (
	"context"
	"errors"
	"strings"

	"tasktracker/internal/domain"
	"tasktracker/internal/insights"
	"tasktracker/internal/logger"
)

// ProgressAwarder mints achievements after a task is completed
type ProgressAwarder interface {
	AwardForProgress(ctx context.Context) ([]*domain.Achievement, error)
}

// TaskService handles task business logic
type TaskService struct {
	tasks    TaskStore
	projects ProjectStore
	pub      Publisher
	clock    Clock
	awarder  ProgressAwarder
}

// NewTaskService creates a new task service
func NewTaskService(tasks TaskStore, projects ProjectStore, pub Publisher, clock Clock) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		pub:      pub,
		clock:    clock,
	}
}

// SetAwarder makes completions run the achievement check
func (s *TaskService) SetAwarder(a ProgressAwarder) {
	s.awarder = a
}

// ListAll returns every task in store order
func (s *TaskService) ListAll(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, domain.TaskQuery{})
	return tasks, observe("task.list", err)
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	return t, observe("task.get", err)
}

// ListDueToday returns incomplete tasks due within the current calendar day
func (s *TaskService) ListDueToday(ctx context.Context) ([]*domain.Task, error) {
	open := false
	return s.dueToday(ctx, &open)
}

// ListScheduledToday returns every task due within the current calendar
// day, including the ones already completed
func (s *TaskService) ListScheduledToday(ctx context.Context) ([]*domain.Task, error) {
	return s.dueToday(ctx, nil)
}

func (s *TaskService) dueToday(ctx context.Context, completed *bool) ([]*domain.Task, error) {
	from := insights.StartOfDay(s.clock.Current())
	to := from.AddDate(0, 0, 1)
	tasks, err := s.tasks.List(ctx, domain.TaskQuery{
		Completed: completed,
		DueFrom:   &from,
		DueBefore: &to,
	})
	return tasks, observe("task.list", err)
}

// ListByProject returns the project's tasks, completed or not
func (s *TaskService) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, domain.TaskQuery{ProjectID: &projectID})
	return tasks, observe("task.list", err)
}

// ListCompleted returns completed tasks, most recently completed first
func (s *TaskService) ListCompleted(ctx context.Context) ([]*domain.Task, error) {
	done := true
	tasks, err := s.tasks.List(ctx, domain.TaskQuery{Completed: &done, Sort: domain.SortCompletedDesc})
	return tasks, observe("task.list", err)
}

// Create validates the input and stores a new, incomplete task
func (s *TaskService) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	now := s.clock.Current()
	t := &domain.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    in.Priority,
		ProjectID:   in.ProjectID,
		CreatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}

	verr := &domain.ValidationError{}
	if t.Title == "" {
		verr.Add("title", "title is required")
	}
	if !t.Priority.Valid() {
		verr.Add("priority", "must be one of low, medium, high")
	}
	if in.DueDate != nil && strings.TrimSpace(*in.DueDate) != "" {
		due, err := domain.ParseDueDate(*in.DueDate, now.Location())
		if err != nil {
			verr.Add("dueDate", "must be an RFC 3339 timestamp or YYYY-MM-DD")
		} else {
			t.DueDate = &due
		}
	}
	if err := s.checkProject(ctx, t.ProjectID, verr); err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, observe("task.create", err)
	}

	logger.WithContext(ctx).Info("task created", "task_id", t.ID)
	publish(ctx, s.pub, domain.EventCategoryTask, domain.EventActionCreated, t.ID, now, t)
	return t, nil
}

// Update applies a partial update. Completing stamps completedAt only on the
// transition; un-completing clears it.
func (s *TaskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, observe("task.get", err)
	}
	wasCompleted := t.Completed
	now := s.clock.Current()

	verr := &domain.ValidationError{}
	if patch.Title.Set {
		title := strings.TrimSpace(patch.Title.Value)
		if !patch.Title.Valid || title == "" {
			verr.Add("title", "title is required")
		}
		t.Title = title
	}
	if patch.Description.Set {
		t.Description = patch.Description.Value
	}
	if patch.DueDate.Set {
		if !patch.DueDate.Valid || strings.TrimSpace(patch.DueDate.Value) == "" {
			t.DueDate = nil
		} else if due, err := domain.ParseDueDate(patch.DueDate.Value, now.Location()); err != nil {
			verr.Add("dueDate", "must be an RFC 3339 timestamp or YYYY-MM-DD")
		} else {
			t.DueDate = &due
		}
	}
	if patch.Priority.Set {
		if !patch.Priority.Valid || !patch.Priority.Value.Valid() {
			verr.Add("priority", "must be one of low, medium, high")
		}
		t.Priority = patch.Priority.Value
	}
	if patch.ProjectID.Set {
		t.ProjectID = patch.ProjectID.Ptr()
		if err := s.checkProject(ctx, t.ProjectID, verr); err != nil {
			return nil, err
		}
	}
	if patch.Completed.Set {
		if !patch.Completed.Valid {
			verr.Add("completed", "must be true or false")
		}
		t.SetCompleted(patch.Completed.Value, now)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, observe("task.update", err)
	}

	action := domain.EventActionUpdated
	if t.Completed && !wasCompleted {
		action = domain.EventActionCompleted
	}
	publish(ctx, s.pub, domain.EventCategoryTask, action, t.ID, now, t)

	if action == domain.EventActionCompleted {
		logger.WithContext(ctx).Info("task completed", "task_id", t.ID)
		s.award(ctx)
	}
	return t, nil
}

// Complete marks the task as done
func (s *TaskService) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	return s.Update(ctx, id, domain.TaskPatch{Completed: domain.Some(true)})
}

// Delete removes the task and returns its last snapshot
func (s *TaskService) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, observe("task.get", err)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return nil, observe("task.delete", err)
	}

	logger.WithContext(ctx).Info("task deleted", "task_id", id)
	publish(ctx, s.pub, domain.EventCategoryTask, domain.EventActionDeleted, id, s.clock.Current(), t)
	return t, nil
}

// checkProject adds a field error when projectID names a missing project.
// Store failures other than not-found are returned as is.
func (s *TaskService) checkProject(ctx context.Context, projectID *int64, verr *domain.ValidationError) error {
	if projectID == nil {
		return nil
	}
	_, err := s.projects.GetByID(ctx, *projectID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		verr.Add("projectId", "project does not exist")
		return nil
	}
	return observe("project.get", err)
}

func (s *TaskService) award(ctx context.Context) {
	if s.awarder == nil {
		return
	}
	earned, err := s.awarder.AwardForProgress(ctx)
	if err != nil {
		logger.WithContext(ctx).Warn("achievement check failed", "error", err)
		return
	}
	for _, a := range earned {
		logger.WithContext(ctx).Info("achievement earned", "type", a.Type, "milestone", a.Milestone)
	}
}
