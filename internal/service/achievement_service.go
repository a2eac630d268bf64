package service

import (
	"context"
	"errors"

	"tasktracker/internal/achievement"
	"tasktracker/internal/domain"
	"tasktracker/internal/insights"
	"tasktracker/internal/logger"
)

// DefaultRecentAchievements is the ListRecent size when none is given
const DefaultRecentAchievements = 5

// AchievementService mints and lists achievements
type AchievementService struct {
	achievements AchievementStore
	tasks        TaskStore
	evaluator    *achievement.Evaluator
	pub          Publisher
	clock        Clock
}

// NewAchievementService creates a new achievement service
func NewAchievementService(achievements AchievementStore, tasks TaskStore, evaluator *achievement.Evaluator, pub Publisher, clock Clock) *AchievementService {
	if evaluator == nil {
		evaluator = achievement.NewEvaluator(achievement.TriggerExact)
	}
	return &AchievementService{
		achievements: achievements,
		tasks:        tasks,
		evaluator:    evaluator,
		pub:          pub,
		clock:        clock,
	}
}

// ListAll returns every achievement, most recent first
func (s *AchievementService) ListAll(ctx context.Context) ([]*domain.Achievement, error) {
	list, err := s.achievements.List(ctx, domain.AchievementQuery{})
	return list, observe("achievement.list", err)
}

func (s *AchievementService) GetByID(ctx context.Context, id int64) (*domain.Achievement, error) {
	a, err := s.achievements.GetByID(ctx, id)
	return a, observe("achievement.get", err)
}

// ListRecent returns the newest achievements; limit <= 0 means the default
func (s *AchievementService) ListRecent(ctx context.Context, limit int) ([]*domain.Achievement, error) {
	if limit <= 0 {
		limit = DefaultRecentAchievements
	}
	list, err := s.achievements.List(ctx, domain.AchievementQuery{Limit: limit})
	return list, observe("achievement.list", err)
}

// CheckAndAward creates the achievements due for the given counts and
// returns the ones created by this call. An award that loses a race on the
// unique (type, milestone) key is skipped.
func (s *AchievementService) CheckAndAward(ctx context.Context, completedTasks, streakDays int) ([]*domain.Achievement, error) {
	existing, err := s.achievements.List(ctx, domain.AchievementQuery{})
	if err != nil {
		return nil, observe("achievement.list", err)
	}

	earned := []*domain.Achievement{}
	for _, award := range s.evaluator.Evaluate(existing, completedTasks, streakDays) {
		a := award.Achievement()
		a.EarnedAt = s.clock.Current()
		if err := s.achievements.Create(ctx, a); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				logger.WithContext(ctx).Debug("achievement already awarded", "type", a.Type, "milestone", a.Milestone)
				continue
			}
			return earned, observe("achievement.create", err)
		}

		AchievementsAwarded.WithLabelValues(string(a.Type)).Inc()
		publish(ctx, s.pub, domain.EventCategoryAchievement, domain.EventActionEarned, a.ID, a.EarnedAt, a)
		earned = append(earned, a)
	}
	return earned, nil
}

// AwardForProgress derives the completed count and the current streak from
// the task store and runs CheckAndAward.
func (s *AchievementService) AwardForProgress(ctx context.Context) ([]*domain.Achievement, error) {
	done := true
	completed, err := s.tasks.List(ctx, domain.TaskQuery{Completed: &done})
	if err != nil {
		return nil, observe("task.list", err)
	}
	streak := insights.Streak(completed, s.clock.Current())
	return s.CheckAndAward(ctx, len(completed), streak)
}
