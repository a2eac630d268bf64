package insights

import (
	"time"

	"tasktracker/internal/domain"
)

// DayCount is one day of the weekly trend
type DayCount struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	IsToday   bool   `json:"isToday"`
}

// Weekly is the completion trend over the last seven calendar days
type Weekly struct {
	Days    []DayCount `json:"days"`
	Total   int        `json:"total"`
	Average float64    `json:"average"`
	// Max is the largest daily count, at least 1, used to scale bars.
	Max int `json:"max"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey formats the calendar day of t as seen in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

// WeeklyTrend counts completions for each of the seven days ending today,
// oldest first. Days are calendar days in now's location.
func WeeklyTrend(tasks []*domain.Task, now time.Time) Weekly {
	loc := now.Location()
	perDay := make(map[string]int)
	for _, t := range tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		perDay[DayKey(*t.CompletedAt, loc)]++
	}

	today := StartOfDay(now)
	w := Weekly{Days: make([]DayCount, 0, 7), Max: 1}
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(time.DateOnly)
		n := perDay[key]
		w.Days = append(w.Days, DayCount{
			Day:       day.Format("Mon"),
			Date:      key,
			Completed: n,
			IsToday:   i == 0,
		})
		w.Total += n
		if n > w.Max {
			w.Max = n
		}
	}
	w.Average = roundTenths(float64(w.Total) / 7)
	return w
}
