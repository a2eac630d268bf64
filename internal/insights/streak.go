package insights

import (
	"time"

	"tasktracker/internal/domain"
)

// Streak counts consecutive calendar days with at least one completed task.
// The run ends today, or yesterday when nothing has been completed yet
// today, so an unbroken streak is not reset before the day is over.
func Streak(tasks []*domain.Task, now time.Time) int {
	loc := now.Location()
	days := make(map[string]bool)
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil {
			days[DayKey(*t.CompletedAt, loc)] = true
		}
	}

	day := StartOfDay(now)
	if !days[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day.Format(time.DateOnly)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
