package domain

import "time"

// AchievementType - kind of milestone an achievement was earned for
type AchievementType string

const (
	AchievementTasksCompleted AchievementType = "tasks_completed"
	AchievementStreak         AchievementType = "streak"
)

type Achievement struct {
	ID   int64           `db:"id" json:"Id"`
	Type AchievementType `db:"type" json:"type"`
	// Milestone is zero for rows written before milestones were stored.
	Milestone int       `db:"milestone" json:"milestone,omitempty"`
	Message   string    `db:"message" json:"message"`
	EarnedAt  time.Time `db:"earned_at" json:"earnedAt"`
}

// AchievementQuery filters an achievement listing, always earnedAt desc
type AchievementQuery struct {
	Type  AchievementType
	Limit int
}
