package insights

import (
	"fmt"
	"strconv"
)

// InsightType classifies an insight for display
type InsightType string

const (
	InsightPositive   InsightType = "positive"
	InsightNeutral    InsightType = "neutral"
	InsightSuggestion InsightType = "suggestion"
)

// Insight is a qualitative observation derived from the statistics
type Insight struct {
	Type        InsightType `json:"type"`
	Icon        string      `json:"icon"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// Stats is the input to the insight rules
type Stats struct {
	TotalTasks     int
	CompletionRate int
	Priority       []PriorityStat
	Weekly         Weekly
	// Projects must already be ordered as ProjectPerformance returns them.
	Projects []ProjectStat
}

func (s Stats) priorityCount(p string) int {
	for _, ps := range s.Priority {
		if string(ps.Priority) == p {
			return ps.Count
		}
	}
	return 0
}

// GenerateInsights evaluates the rules in order. The completion-rate rules
// are exclusive of each other; every other rule fires independently.
func GenerateInsights(s Stats) []Insight {
	out := []Insight{}

	switch {
	case s.CompletionRate >= 80:
		out = append(out, Insight{
			Type:        InsightPositive,
			Icon:        "TrendingUp",
			Title:       "Excellent Progress!",
			Description: fmt.Sprintf("You've completed %d%% of your tasks. Keep up the amazing work!", s.CompletionRate),
		})
	case s.CompletionRate >= 60:
		out = append(out, Insight{
			Type:        InsightNeutral,
			Icon:        "Target",
			Title:       "Good Momentum",
			Description: fmt.Sprintf("%d%% completion rate. You're making steady progress!", s.CompletionRate),
		})
	case s.TotalTasks > 0:
		out = append(out, Insight{
			Type:        InsightSuggestion,
			Icon:        "Lightbulb",
			Title:       "Room for Growth",
			Description: fmt.Sprintf("%d%% completion rate. Consider breaking down larger tasks into smaller ones.", s.CompletionRate),
		})
	}

	if s.priorityCount("high") > s.priorityCount("medium")+s.priorityCount("low") {
		out = append(out, Insight{
			Type:        InsightSuggestion,
			Icon:        "AlertTriangle",
			Title:       "High Priority Focus",
			Description: "You have many high-priority tasks. Consider balancing your workload.",
		})
	}

	if s.Weekly.Average > 3 {
		out = append(out, Insight{
			Type:        InsightPositive,
			Icon:        "Zap",
			Title:       "Productive Week!",
			Description: fmt.Sprintf("You've completed an average of %s tasks per day this week.", strconv.FormatFloat(s.Weekly.Average, 'f', -1, 64)),
		})
	}

	if best, ok := topProject(s.Projects); ok && best.CompletionRate > 75 && best.TaskCount > 2 {
		out = append(out, Insight{
			Type:        InsightPositive,
			Icon:        "Star",
			Title:       "Project Champion!",
			Description: fmt.Sprintf("%s is your top performer with %d%% completion rate.", best.Name, best.CompletionRate),
		})
	}

	return out
}

// topProject returns the first project whose rate equals the maximum.
func topProject(projects []ProjectStat) (ProjectStat, bool) {
	if len(projects) == 0 {
		return ProjectStat{}, false
	}
	maxRate := projects[0].CompletionRate
	for _, p := range projects[1:] {
		if p.CompletionRate > maxRate {
			maxRate = p.CompletionRate
		}
	}
	for _, p := range projects {
		if p.CompletionRate == maxRate {
			return p, true
		}
	}
	return ProjectStat{}, false
}
