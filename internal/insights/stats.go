// Package insights computes the derived statistics shown on the Insights
// and Archive views. Everything here is pure: callers pass an in-memory
// snapshot of tasks and projects plus the current time.
package insights

import (
	"math"
	"sort"

	"tasktracker/internal/domain"
)

// roundHalfUp rounds to the nearest integer, halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// roundTenths rounds to one decimal place, halves going up.
func roundTenths(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// Percent returns round(100*part/total), 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(total) * 100)
}

// CountCompleted returns how many tasks are completed.
func CountCompleted(tasks []*domain.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// CompletionRate is the integer percentage of completed tasks.
func CompletionRate(tasks []*domain.Task) int {
	return Percent(CountCompleted(tasks), len(tasks))
}

// PriorityStat is one row of the priority breakdown
type PriorityStat struct {
	Priority   domain.Priority `json:"priority"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
}

// PriorityBreakdown counts tasks per priority, ordered high, medium, low.
// Tasks with an unrecognized priority count towards the total only.
func PriorityBreakdown(tasks []*domain.Task) []PriorityStat {
	counts := make(map[domain.Priority]int, len(domain.Priorities))
	for _, t := range tasks {
		counts[t.Priority]++
	}
	out := make([]PriorityStat, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		out = append(out, PriorityStat{
			Priority:   p,
			Count:      counts[p],
			Percentage: Percent(counts[p], len(tasks)),
		})
	}
	return out
}

// ProjectStat is a project with counts recomputed from the task list
type ProjectStat struct {
	domain.Project
	CompletionRate int `json:"completionRate"`
}

// ProjectPerformance recomputes counts and completion rate per project and
// orders the result by task count, largest first. Ties keep input order.
func ProjectPerformance(projects []*domain.Project, tasks []*domain.Task) []ProjectStat {
	out := make([]ProjectStat, 0, len(projects))
	for _, p := range projects {
		ps := ProjectStat{Project: *p}
		ps.ApplyCounts(tasks)
		ps.CompletionRate = Percent(ps.CompletedCount, ps.TaskCount)
		out = append(out, ps)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TaskCount > out[j].TaskCount
	})
	return out
}
