package timeline

import (
	"sort"
	"time"

	"github.com/parleyapp/parley/internal/models"
)

// Truncate drops the time-of-day, keeping the calendar date in the
// timestamp's own location. Every bucket key goes through here so a
// conversation can never straddle buckets around midnight.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GroupByDate partitions messages into per-date buckets and orders the
// buckets by descending date. Within a bucket the original append order is
// preserved; the partition is stable and never re-sorts messages.
func GroupByDate(messages []models.Message) []models.DateGroup {
	index := make(map[time.Time]int)
	groups := make([]models.DateGroup, 0)

	for _, msg := range messages {
		day := Truncate(msg.Date)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, models.DateGroup{Date: day})
		}
		groups[i].Messages = append(groups[i].Messages, msg)
	}

	sort.Slice(groups, func(a, b int) bool {
		return groups[a].Date.After(groups[b].Date)
	})

	return groups
}

// DateLabel renders a bucket date for display: "Today" for the current
// calendar day, the weekday name within a week of now in either direction,
// an absolute date otherwise. Pure given (date, now).
func DateLabel(date, now time.Time) string {
	day := Truncate(date)
	today := Truncate(now)

	if day.Equal(today) {
		return "Today"
	}

	days := int(today.Sub(day).Hours() / 24)
	if days < 0 {
		days = -days
	}
	if days <= 7 {
		return day.Weekday().String()
	}

	return day.Format("Jan 2, 2006")
}
