package insights

import (
	"sort"
	"strings"
	"time"

	"tasktracker/internal/domain"
)

// DateRange limits the archive to a period around now
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// ParseDateRange accepts "", all, today, week, this-week, month and this-month.
func ParseDateRange(s string) (DateRange, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all-time":
		return RangeAll, true
	case "today":
		return RangeToday, true
	case "week", "this-week":
		return RangeWeek, true
	case "month", "this-month":
		return RangeMonth, true
	}
	return "", false
}

// Bounds returns the [from, to) interval of r around now. ok is false for RangeAll.
// Weeks start on Sunday.
func (r DateRange) Bounds(now time.Time) (from, to time.Time, ok bool) {
	today := StartOfDay(now)
	switch r {
	case RangeToday:
		return today, today.AddDate(0, 0, 1), true
	case RangeWeek:
		from = today.AddDate(0, 0, -int(today.Weekday()))
		return from, from.AddDate(0, 0, 7), true
	case RangeMonth:
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return from, from.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// MatchesQuery does a case-insensitive substring match on title or description.
func MatchesQuery(t *domain.Task, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// FilterArchive applies the search and date-range filters. A bounded range
// drops tasks without a completion time.
func FilterArchive(tasks []*domain.Task, query string, r DateRange, now time.Time) []*domain.Task {
	from, to, bounded := r.Bounds(now)
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !MatchesQuery(t, query) {
			continue
		}
		if bounded {
			if t.CompletedAt == nil {
				continue
			}
			at := t.CompletedAt.In(now.Location())
			if at.Before(from) || !at.Before(to) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// DayGroup is one day bucket of the archive
type DayGroup struct {
	Date  string         `json:"date"`
	Label string         `json:"formattedDate"`
	Tasks []*domain.Task `json:"tasks"`
}

// GroupByDay buckets tasks by the calendar day of completedAt in loc.
// Buckets are most recent first, and so are the tasks inside each bucket.
func GroupByDay(tasks []*domain.Task, loc *time.Location) []DayGroup {
	buckets := make(map[string]*DayGroup)
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		at := t.CompletedAt.In(loc)
		key := at.Format(time.DateOnly)
		g, ok := buckets[key]
		if !ok {
			g = &DayGroup{Date: key, Label: at.Format("Monday, January 2, 2006")}
			buckets[key] = g
		}
		g.Tasks = append(g.Tasks, t)
	}

	out := make([]DayGroup, 0, len(buckets))
	for _, g := range buckets {
		sort.SliceStable(g.Tasks, func(i, j int) bool {
			return g.Tasks[i].CompletedAt.After(*g.Tasks[j].CompletedAt)
		})
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
