package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasktracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateDefaults(t *testing.T) {
	f := newFixture(t)

	task := f.createTask(t, domain.TaskInput{Title: "  Write report  "})

	assert.NotZero(t, task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.ProjectID)
	assert.True(t, task.CreatedAt.Equal(testNow))
	assert.Equal(t, []string{"task.created"}, f.pub.subjects())

	stored, err := f.Tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, stored.Title)
}

func TestTaskService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.Tasks.Create(context.Background(), domain.TaskInput{
		Title:     " ",
		Priority:  "urgent",
		DueDate:   strPtr("next tuesday"),
		ProjectID: int64Ptr(42),
	})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"title", "priority", "dueDate", "projectId"}, fields)
	assert.Empty(t, f.pub.subjects())
}

func TestTaskService_CreateWithProjectAndDueDate(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Work")

	task := f.createTask(t, domain.TaskInput{
		Title:     "Ship",
		DueDate:   strPtr("2026-10-15"),
		Priority:  domain.PriorityHigh,
		ProjectID: &p.ID,
	})
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-10-15", task.DueDate.Format(time.DateOnly))
	assert.True(t, task.InProject(p.ID))
}

func TestTaskService_CompleteStampsOnTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.createTask(t, domain.TaskInput{Title: "A"})

	done, err := f.Tasks.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(testNow))

	// completing again later keeps the original stamp
	f.setNow(testNow.Add(time.Hour))
	again, err := f.Tasks.Update(ctx, task.ID, domain.TaskPatch{Completed: domain.Some(true)})
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, again.CompletedAt.Equal(testNow))

	undone, err := f.Tasks.Update(ctx, task.ID, domain.TaskPatch{Completed: domain.Some(false)})
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)

	stored, err := f.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	assert.Nil(t, stored.CompletedAt)

	assert.Equal(t, []string{
		"task.created",
		"task.completed",
		"achievement.earned",
		"task.updated",
		"task.updated",
	}, f.pub.subjects())
}

func TestTaskService_UpdatePatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t, "Home")
	task := f.createTask(t, domain.TaskInput{
		Title:     "Paint",
		DueDate:   strPtr("2026-10-20"),
		ProjectID: &p.ID,
	})

	updated, err := f.Tasks.Update(ctx, task.ID, domain.TaskPatch{
		Description: domain.Some("two coats"),
		DueDate:     domain.Null[string](),
		ProjectID:   domain.Null[int64](),
		Priority:    domain.Some(domain.PriorityLow),
	})
	require.NoError(t, err)
	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, "Paint", updated.Title)
	assert.Equal(t, "two coats", updated.Description)
	assert.Nil(t, updated.DueDate)
	assert.Nil(t, updated.ProjectID)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
	assert.True(t, updated.CreatedAt.Equal(task.CreatedAt))

	_, err = f.Tasks.Update(ctx, task.ID, domain.TaskPatch{Title: domain.Null[string]()})
	assert.True(t, domain.IsValidation(err))

	_, err = f.Tasks.Update(ctx, 999, domain.TaskPatch{Title: domain.Some("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t, "Work")
	keep := f.createTask(t, domain.TaskInput{Title: "keep", ProjectID: &p.ID})
	gone := f.createTask(t, domain.TaskInput{Title: "gone", ProjectID: &p.ID})

	snapshot, err := f.Tasks.Delete(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, "gone", snapshot.Title)

	_, err = f.Tasks.GetByID(ctx, gone.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.Tasks.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	project, err := f.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, project.TaskCount)

	_, err = f.Tasks.Delete(ctx, gone.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskService_ListDueToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dueNow := f.createTask(t, domain.TaskInput{Title: "today", DueDate: strPtr("2026-10-15T18:00:00Z")})
	f.createTask(t, domain.TaskInput{Title: "midnight", DueDate: strPtr("2026-10-15")})
	f.createTask(t, domain.TaskInput{Title: "tomorrow", DueDate: strPtr("2026-10-16")})
	f.createTask(t, domain.TaskInput{Title: "yesterday", DueDate: strPtr("2026-10-14T23:59:59Z")})
	f.createTask(t, domain.TaskInput{Title: "undated"})
	done := f.createTask(t, domain.TaskInput{Title: "done today", DueDate: strPtr("2026-10-15")})
	_, err := f.Tasks.Complete(ctx, done.ID)
	require.NoError(t, err)

	tasks, err := f.Tasks.ListDueToday(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"today", "midnight"}, titles)
	assert.Equal(t, dueNow.ID, tasks[0].ID)

	scheduled, err := f.Tasks.ListScheduledToday(ctx)
	require.NoError(t, err)
	require.Len(t, scheduled, 3)
	assert.Equal(t, done.ID, scheduled[2].ID)
	assert.True(t, scheduled[2].Completed)
}

func TestTaskService_ListCompletedOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.createTask(t, domain.TaskInput{Title: "first"})
	second := f.createTask(t, domain.TaskInput{Title: "second"})
	f.createTask(t, domain.TaskInput{Title: "open"})

	_, err := f.Tasks.Complete(ctx, first.ID)
	require.NoError(t, err)
	f.setNow(testNow.Add(2 * time.Hour))
	_, err = f.Tasks.Complete(ctx, second.ID)
	require.NoError(t, err)

	done, err := f.Tasks.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, second.ID, done[0].ID)
	assert.Equal(t, first.ID, done[1].ID)
}

func TestTaskService_ListByProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createProject(t, "A")
	b := f.createProject(t, "B")

	t1 := f.createTask(t, domain.TaskInput{Title: "a1", ProjectID: &a.ID})
	f.createTask(t, domain.TaskInput{Title: "b1", ProjectID: &b.ID})
	t3 := f.createTask(t, domain.TaskInput{Title: "a2", ProjectID: &a.ID})
	_, err := f.Tasks.Complete(ctx, t3.ID)
	require.NoError(t, err)

	tasks, err := f.Tasks.ListByProject(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, t1.ID, tasks[0].ID)
	assert.Equal(t, t3.ID, tasks[1].ID)
}

type failingTaskStore struct {
	TaskStore
	err error
}

func (s failingTaskStore) List(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error) {
	return nil, s.err
}

func TestTaskService_ReadErrorsPropagate(t *testing.T) {
	storeErr := domain.Unavailable("list tasks", errors.New("connection refused"))
	f := newFixture(t, wrapTasks(func(s TaskStore) TaskStore {
		return failingTaskStore{TaskStore: s, err: storeErr}
	}))

	_, err := f.Tasks.ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = f.Projects.ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
