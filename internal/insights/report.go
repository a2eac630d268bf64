package insights

import (
	"time"

	"tasktracker/internal/domain"
)

// Report bundles everything the Insights view renders
type Report struct {
	TotalTasks     int            `json:"totalTasks"`
	CompletedTasks int            `json:"completedTasks"`
	CompletionRate int            `json:"completionRate"`
	Streak         int            `json:"streak"`
	Priority       []PriorityStat `json:"priority"`
	Projects       []ProjectStat  `json:"projects"`
	Weekly         Weekly         `json:"weekly"`
	Insights       []Insight      `json:"insights"`
}

// BuildReport computes the full report from a snapshot.
func BuildReport(tasks []*domain.Task, projects []*domain.Project, now time.Time) Report {
	r := Report{
		TotalTasks:     len(tasks),
		CompletedTasks: CountCompleted(tasks),
		CompletionRate: CompletionRate(tasks),
		Streak:         Streak(tasks, now),
		Priority:       PriorityBreakdown(tasks),
		Projects:       ProjectPerformance(projects, tasks),
		Weekly:         WeeklyTrend(tasks, now),
	}
	r.Insights = GenerateInsights(Stats{
		TotalTasks:     r.TotalTasks,
		CompletionRate: r.CompletionRate,
		Priority:       r.Priority,
		Weekly:         r.Weekly,
		Projects:       r.Projects,
	})
	return r
}
