package insights

import (
	"testing"

	"tasktracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(in []Insight) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.Title)
	}
	return out
}

func priorities(high, medium, low int) []PriorityStat {
	return []PriorityStat{
		{Priority: domain.PriorityHigh, Count: high},
		{Priority: domain.PriorityMedium, Count: medium},
		{Priority: domain.PriorityLow, Count: low},
	}
}

func TestGenerateInsights_CompletionCascade(t *testing.T) {
	tests := []struct {
		rate  int
		total int
		want  []string
	}{
		{100, 5, []string{"Excellent Progress!"}},
		{80, 5, []string{"Excellent Progress!"}},
		{79, 5, []string{"Good Momentum"}},
		{60, 5, []string{"Good Momentum"}},
		{59, 5, []string{"Room for Growth"}},
		{0, 5, []string{"Room for Growth"}},
		{0, 0, []string{}},
	}
	for _, tt := range tests {
		got := GenerateInsights(Stats{TotalTasks: tt.total, CompletionRate: tt.rate})
		assert.Equal(t, tt.want, titles(got), "rate=%d total=%d", tt.rate, tt.total)
	}
}

func TestGenerateInsights_Descriptions(t *testing.T) {
	got := GenerateInsights(Stats{TotalTasks: 4, CompletionRate: 75})
	require.Len(t, got, 1)
	assert.Equal(t, InsightNeutral, got[0].Type)
	assert.Equal(t, "Target", got[0].Icon)
	assert.Equal(t, "75% completion rate. You're making steady progress!", got[0].Description)
}

func TestGenerateInsights_HighPriority(t *testing.T) {
	got := GenerateInsights(Stats{TotalTasks: 4, CompletionRate: 90, Priority: priorities(3, 1, 0)})
	assert.Equal(t, []string{"Excellent Progress!", "High Priority Focus"}, titles(got))

	got = GenerateInsights(Stats{TotalTasks: 4, CompletionRate: 90, Priority: priorities(2, 1, 1)})
	assert.Equal(t, []string{"Excellent Progress!"}, titles(got))
}

func TestGenerateInsights_ProductiveWeek(t *testing.T) {
	got := GenerateInsights(Stats{TotalTasks: 30, CompletionRate: 90, Weekly: Weekly{Average: 3.1}})
	require.Len(t, got, 2)
	assert.Equal(t, "You've completed an average of 3.1 tasks per day this week.", got[1].Description)

	got = GenerateInsights(Stats{TotalTasks: 30, CompletionRate: 90, Weekly: Weekly{Average: 3}})
	assert.Len(t, got, 1)
}

func TestGenerateInsights_ProjectChampion(t *testing.T) {
	projects := []ProjectStat{
		{Project: domain.Project{Name: "Big", TaskCount: 10}, CompletionRate: 50},
		{Project: domain.Project{Name: "Home", TaskCount: 4}, CompletionRate: 100},
		{Project: domain.Project{Name: "Side", TaskCount: 2}, CompletionRate: 100},
	}
	got := GenerateInsights(Stats{TotalTasks: 16, CompletionRate: 60, Projects: projects})
	require.Len(t, got, 2)
	assert.Equal(t, "Project Champion!", got[1].Title)
	assert.Equal(t, "Home is your top performer with 100% completion rate.", got[1].Description)
}

func TestGenerateInsights_ChampionNeedsEnoughTasks(t *testing.T) {
	// the first project at the maximum rate decides, even if a later one would qualify
	projects := []ProjectStat{
		{Project: domain.Project{Name: "Tiny", TaskCount: 2}, CompletionRate: 100},
		{Project: domain.Project{Name: "Home", TaskCount: 1}, CompletionRate: 100},
	}
	got := GenerateInsights(Stats{TotalTasks: 3, CompletionRate: 100, Projects: projects})
	assert.Equal(t, []string{"Excellent Progress!"}, titles(got))

	projects = []ProjectStat{{Project: domain.Project{Name: "Home", TaskCount: 4}, CompletionRate: 75}}
	got = GenerateInsights(Stats{TotalTasks: 4, CompletionRate: 75, Projects: projects})
	assert.Equal(t, []string{"Good Momentum"}, titles(got))
}
