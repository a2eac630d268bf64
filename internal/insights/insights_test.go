package insights

import (
	"testing"
	"time"

	"tasktracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) // Thursday

func task(priority domain.Priority, completedAt *time.Time, projectID *int64) *domain.Task {
	t := &domain.Task{Title: "t", Priority: priority, ProjectID: projectID, CreatedAt: now.AddDate(0, 0, -30)}
	if completedAt != nil {
		t.Completed = true
		t.CompletedAt = completedAt
	}
	return t
}

func daysAgo(n int) *time.Time {
	t := now.AddDate(0, 0, -n)
	return &t
}

func id(v int64) *int64 { return &v }

func TestCompletionRate_ScenarioA(t *testing.T) {
	tasks := []*domain.Task{
		task(domain.PriorityLow, daysAgo(0), nil),
		task(domain.PriorityLow, daysAgo(1), nil),
		task(domain.PriorityLow, daysAgo(2), nil),
		task(domain.PriorityLow, nil, nil),
	}
	assert.Equal(t, 75, CompletionRate(tasks))
}

func TestCompletionRate_Empty(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(nil))
	assert.Equal(t, 0, CompletionRate([]*domain.Task{}))
}

func TestCompletionRate_RoundsHalfUp(t *testing.T) {
	// 1 of 8 = 12.5%
	tasks := []*domain.Task{task(domain.PriorityLow, daysAgo(0), nil)}
	for i := 0; i < 7; i++ {
		tasks = append(tasks, task(domain.PriorityLow, nil, nil))
	}
	assert.Equal(t, 13, CompletionRate(tasks))

	// 2 of 3 = 66.67%
	tasks = []*domain.Task{
		task(domain.PriorityLow, daysAgo(0), nil),
		task(domain.PriorityLow, daysAgo(0), nil),
		task(domain.PriorityLow, nil, nil),
	}
	assert.Equal(t, 67, CompletionRate(tasks))
}

func TestCompletionRate_Bounds(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for done := 0; done <= total; done++ {
			rate := Percent(done, total)
			assert.GreaterOrEqual(t, rate, 0)
			assert.LessOrEqual(t, rate, 100)
		}
	}
}

func TestPriorityBreakdown(t *testing.T) {
	tasks := []*domain.Task{
		task(domain.PriorityHigh, nil, nil),
		task(domain.PriorityHigh, nil, nil),
		task(domain.PriorityMedium, nil, nil),
		task("urgent", nil, nil),
	}

	stats := PriorityBreakdown(tasks)
	require.Len(t, stats, 3)
	assert.Equal(t, domain.PriorityHigh, stats[0].Priority)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 50, stats[0].Percentage)
	assert.Equal(t, 1, stats[1].Count)
	assert.Equal(t, 25, stats[1].Percentage)
	assert.Equal(t, 0, stats[2].Count)
	assert.Equal(t, 0, stats[2].Percentage)

	sum := 0
	for _, s := range stats {
		sum += s.Percentage
		assert.Equal(t, Percent(s.Count, len(tasks)), s.Percentage)
	}
	assert.LessOrEqual(t, sum, 100)
}

func TestPriorityBreakdown_Empty(t *testing.T) {
	for _, s := range PriorityBreakdown(nil) {
		assert.Zero(t, s.Count)
		assert.Zero(t, s.Percentage)
	}
}

func TestProjectPerformance_ScenarioC(t *testing.T) {
	projects := []*domain.Project{
		{ID: 1, Name: "Small"},
		{ID: 2, Name: "Work"},
	}
	tasks := []*domain.Task{
		task(domain.PriorityLow, daysAgo(0), id(2)),
		task(domain.PriorityLow, daysAgo(1), id(2)),
		task(domain.PriorityLow, daysAgo(2), id(2)),
		task(domain.PriorityLow, nil, id(2)),
		task(domain.PriorityLow, nil, id(1)),
		task(domain.PriorityLow, nil, nil),
	}

	stats := ProjectPerformance(projects, tasks)
	require.Len(t, stats, 2)
	assert.Equal(t, "Work", stats[0].Name)
	assert.Equal(t, 4, stats[0].TaskCount)
	assert.Equal(t, 3, stats[0].CompletedCount)
	assert.Equal(t, 75, stats[0].CompletionRate)
	assert.Equal(t, "Small", stats[1].Name)
	assert.Equal(t, 1, stats[1].TaskCount)
	assert.Equal(t, 0, stats[1].CompletionRate)
}

func TestProjectPerformance_DoesNotMutateInput(t *testing.T) {
	p := &domain.Project{ID: 1, TaskCount: 99}
	ProjectPerformance([]*domain.Project{p}, nil)
	assert.Equal(t, 99, p.TaskCount)
}

func TestWeeklyTrend_ScenarioD(t *testing.T) {
	tasks := []*domain.Task{
		task(domain.PriorityLow, daysAgo(3), nil),
		task(domain.PriorityLow, daysAgo(3), nil),
		task(domain.PriorityLow, daysAgo(3), nil),
		task(domain.PriorityLow, daysAgo(6), nil),
		task(domain.PriorityLow, daysAgo(7), nil), // outside the window
		task(domain.PriorityLow, nil, nil),
	}

	w := WeeklyTrend(tasks, now)
	require.Len(t, w.Days, 7)
	assert.Equal(t, 4, w.Total)
	assert.Equal(t, 0.6, w.Average)
	assert.Equal(t, 3, w.Max)

	assert.Equal(t, "2026-10-09", w.Days[0].Date)
	assert.Equal(t, "Fri", w.Days[0].Day)
	assert.Equal(t, 1, w.Days[0].Completed)
	assert.Equal(t, 3, w.Days[3].Completed)
	assert.Equal(t, "2026-10-15", w.Days[6].Date)
	assert.True(t, w.Days[6].IsToday)

	sum := 0
	for _, d := range w.Days {
		assert.GreaterOrEqual(t, d.Completed, 0)
		sum += d.Completed
	}
	assert.Equal(t, w.Total, sum)
}

func TestWeeklyTrend_UsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	local := time.Date(2026, 10, 15, 1, 0, 0, 0, loc)
	// 23:30 UTC on the 14th is already the 15th in UTC+3
	done := time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)
	w := WeeklyTrend([]*domain.Task{task(domain.PriorityLow, &done, nil)}, local)
	assert.Equal(t, 1, w.Days[6].Completed)
}

func TestWeeklyTrend_Empty(t *testing.T) {
	w := WeeklyTrend(nil, now)
	require.Len(t, w.Days, 7)
	assert.Zero(t, w.Total)
	assert.Zero(t, w.Average)
	assert.Equal(t, 1, w.Max)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want int
	}{
		{"none", nil, 0},
		{"today only", []int{0}, 1},
		{"three through today", []int{0, 1, 2}, 3},
		{"alive from yesterday", []int{1, 2, 3}, 3},
		{"broken", []int{0, 2, 3}, 1},
		{"stale", []int{2, 3}, 0},
		{"several per day", []int{0, 0, 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tasks []*domain.Task
			for _, d := range tt.days {
				tasks = append(tasks, task(domain.PriorityLow, daysAgo(d), nil))
			}
			assert.Equal(t, tt.want, Streak(tasks, now))
		})
	}
}

func TestBuildReport_ScenarioE(t *testing.T) {
	r := BuildReport(nil, nil, now)
	assert.Zero(t, r.CompletionRate)
	assert.Zero(t, r.TotalTasks)
	assert.Empty(t, r.Insights)
	assert.Empty(t, r.Projects)
	require.Len(t, r.Weekly.Days, 7)
	for _, d := range r.Weekly.Days {
		assert.Zero(t, d.Completed)
	}
}

func TestBuildReport_Counts(t *testing.T) {
	tasks := []*domain.Task{
		task(domain.PriorityHigh, daysAgo(0), id(1)),
		task(domain.PriorityLow, nil, id(1)),
	}
	r := BuildReport(tasks, []*domain.Project{{ID: 1, Name: "Home"}}, now)
	assert.Equal(t, 2, r.TotalTasks)
	assert.Equal(t, 1, r.CompletedTasks)
	assert.Equal(t, 50, r.CompletionRate)
	assert.Equal(t, 1, r.Streak)
	require.Len(t, r.Projects, 1)
	assert.Equal(t, 2, r.Projects[0].TaskCount)
}
