package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tasktracker/internal/achievement"
	"tasktracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementService_FirstCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task := f.createTask(t, domain.TaskInput{Title: "first"})
	_, err := f.Tasks.Complete(ctx, task.ID)
	require.NoError(t, err)

	all, err := f.Achievements.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.AchievementTasksCompleted, all[0].Type)
	assert.Equal(t, 1, all[0].Milestone)
	assert.Equal(t, "Completed 1 tasks! You're on fire! 🔥", all[0].Message)

	got, err := f.Achievements.GetByID(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Message, got.Message)
}

func TestAchievementService_NoDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	earned, err := f.Achievements.CheckAndAward(ctx, 5, 3)
	require.NoError(t, err)
	require.Len(t, earned, 2)
	assert.Equal(t, 5, earned[0].Milestone)
	assert.Equal(t, domain.AchievementStreak, earned[1].Type)

	again, err := f.Achievements.CheckAndAward(ctx, 5, 3)
	require.NoError(t, err)
	assert.Empty(t, again)

	all, err := f.Achievements.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAchievementService_ExactTriggerSkipsPastMilestones(t *testing.T) {
	f := newFixture(t)

	earned, err := f.Achievements.CheckAndAward(context.Background(), 6, 0)
	require.NoError(t, err)
	assert.Empty(t, earned)
}

func TestAchievementService_ReachedTrigger(t *testing.T) {
	f := newFixture(t, withTrigger(achievement.TriggerReached))

	earned, err := f.Achievements.CheckAndAward(context.Background(), 11, 7)
	require.NoError(t, err)

	var got []string
	for _, a := range earned {
		got = append(got, fmt.Sprintf("%s:%d", a.Type, a.Milestone))
	}
	assert.Equal(t, []string{
		"tasks_completed:1", "tasks_completed:5", "tasks_completed:10",
		"streak:3", "streak:7",
	}, got)
}

// losingAchievementStore simulates another caller winning the insert race
type losingAchievementStore struct {
	AchievementStore
	lost map[int]bool
}

func (s losingAchievementStore) Create(ctx context.Context, a *domain.Achievement) error {
	if s.lost[a.Milestone] {
		return fmt.Errorf("create achievement: %w", domain.ErrConflict)
	}
	return s.AchievementStore.Create(ctx, a)
}

func TestAchievementService_ConflictIsSkipped(t *testing.T) {
	f := newFixture(t,
		withTrigger(achievement.TriggerReached),
		wrapAchievements(func(s AchievementStore) AchievementStore {
			return losingAchievementStore{AchievementStore: s, lost: map[int]bool{1: true}}
		}),
	)

	earned, err := f.Achievements.CheckAndAward(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, 5, earned[0].Milestone)
}

func TestAchievementService_ListRecent(t *testing.T) {
	f := newFixture(t, withTrigger(achievement.TriggerReached))
	ctx := context.Background()

	for i, n := range []int{1, 5, 10, 25, 50, 100} {
		f.setNow(testNow.Add(time.Duration(i) * time.Minute))
		_, err := f.Achievements.CheckAndAward(ctx, n, 0)
		require.NoError(t, err)
	}

	recent, err := f.Achievements.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, DefaultRecentAchievements)
	assert.Equal(t, 100, recent[0].Milestone)
	assert.Equal(t, 5, recent[4].Milestone)

	three, err := f.Achievements.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, three, 3)
}

func TestAchievementService_AwardForProgressStreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// one completion on each of the three days ending today
	for i := 2; i >= 0; i-- {
		f.setNow(testNow.AddDate(0, 0, -i))
		task := f.createTask(t, domain.TaskInput{Title: "daily"})
		_, err := f.Tasks.Complete(ctx, task.ID)
		require.NoError(t, err)
	}

	streaks, err := f.Achievements.achievements.List(ctx, domain.AchievementQuery{Type: domain.AchievementStreak})
	require.NoError(t, err)
	require.Len(t, streaks, 1)
	assert.Equal(t, 3, streaks[0].Milestone)
	assert.Equal(t, "3 day streak! You're unstoppable! ⭐", streaks[0].Message)
}
