// Package achievement decides which milestone achievements should be minted.
package achievement

import (
	"fmt"
	"regexp"
	"strconv"

	"tasktracker/internal/domain"
)

var (
	// TaskMilestones are completed-task counts that earn an achievement.
	TaskMilestones = []int{1, 5, 10, 25, 50, 100}
	// StreakMilestones are consecutive-day streak lengths that earn an achievement.
	StreakMilestones = []int{3, 7, 14, 30}
)

// Trigger selects when a milestone counts as reached
type Trigger string

const (
	// TriggerExact awards only when the count equals the milestone.
	TriggerExact Trigger = "exact"
	// TriggerReached awards any milestone at or below the count that has
	// not been awarded yet, so a skipped value is never lost.
	TriggerReached Trigger = "reached"
)

// ParseTrigger maps a config value to a Trigger, defaulting to exact.
func ParseTrigger(s string) (Trigger, error) {
	switch Trigger(s) {
	case "", TriggerExact:
		return TriggerExact, nil
	case TriggerReached:
		return TriggerReached, nil
	}
	return "", fmt.Errorf("unknown achievement trigger %q", s)
}

// Award is an achievement that should be created
type Award struct {
	Type      domain.AchievementType
	Milestone int
	Message   string
}

// Achievement converts the award to a record ready to persist.
func (a Award) Achievement() *domain.Achievement {
	return &domain.Achievement{Type: a.Type, Milestone: a.Milestone, Message: a.Message}
}

// Message returns the fixed text for a milestone.
func Message(t domain.AchievementType, milestone int) string {
	switch t {
	case domain.AchievementStreak:
		return fmt.Sprintf("%d day streak! You're unstoppable! ⭐", milestone)
	default:
		return fmt.Sprintf("Completed %d tasks! You're on fire! 🔥", milestone)
	}
}

// Evaluator applies the milestone rules
type Evaluator struct {
	Trigger Trigger
}

// NewEvaluator creates an evaluator with the given trigger.
func NewEvaluator(trigger Trigger) *Evaluator {
	return &Evaluator{Trigger: trigger}
}

// Evaluate returns the awards due for the given counts, task milestones
// first, each list ascending. Milestones already present in existing are
// skipped.
func (e *Evaluator) Evaluate(existing []*domain.Achievement, completedTasks, streakDays int) []Award {
	var out []Award
	out = e.collect(out, existing, domain.AchievementTasksCompleted, TaskMilestones, completedTasks)
	out = e.collect(out, existing, domain.AchievementStreak, StreakMilestones, streakDays)
	return out
}

func (e *Evaluator) collect(out []Award, existing []*domain.Achievement, t domain.AchievementType, milestones []int, count int) []Award {
	for _, m := range milestones {
		if !e.due(m, count) || Awarded(existing, t, m) {
			continue
		}
		out = append(out, Award{Type: t, Milestone: m, Message: Message(t, m)})
	}
	return out
}

func (e *Evaluator) due(milestone, count int) bool {
	if e.Trigger == TriggerReached {
		return count >= milestone
	}
	return count == milestone
}

var number = regexp.MustCompile(`\d+`)

// Awarded reports whether existing already holds the (type, milestone) pair.
// Rows without a stored milestone are matched on a whole number in the message.
func Awarded(existing []*domain.Achievement, t domain.AchievementType, milestone int) bool {
	for _, a := range existing {
		if a.Type != t {
			continue
		}
		if a.Milestone != 0 {
			if a.Milestone == milestone {
				return true
			}
			continue
		}
		for _, n := range number.FindAllString(a.Message, -1) {
			if v, err := strconv.Atoi(n); err == nil && v == milestone {
				return true
			}
		}
	}
	return false
}
