package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley/internal/models"
)

func day(daysAgo int, hour int) time.Time {
	return testNow.AddDate(0, 0, -daysAgo).Add(time.Duration(hour-15) * time.Hour)
}

func TestGroupByDateEmpty(t *testing.T) {
	assert.Empty(t, GroupByDate(nil))
	assert.Empty(t, GroupByDate([]models.Message{}))
}

func TestGroupByDateBucketsDescending(t *testing.T) {
	messages := []models.Message{
		{ID: 0, Text: "old", Date: day(3, 9)},
		{ID: 1, Text: "older still same day", Date: day(3, 18)},
		{ID: 2, Text: "yesterday", Date: day(1, 12)},
		{ID: 3, Text: "today", Date: day(0, 8)},
	}

	groups := GroupByDate(messages)
	require.Len(t, groups, 3)

	for i := 1; i < len(groups); i++ {
		assert.True(t, groups[i-1].Date.After(groups[i].Date),
			"bucket dates must be strictly descending")
	}

	assert.True(t, groups[0].Date.Equal(Truncate(testNow)))
	assert.Equal(t, "today", groups[0].Messages[0].Text)
}

func TestGroupByDatePreservesAppendOrderWithinBucket(t *testing.T) {
	messages := []models.Message{
		{ID: 0, Text: "first", Date: day(0, 23)},
		{ID: 1, Text: "second", Date: day(0, 1)},
		{ID: 2, Text: "third", Date: day(0, 12)},
	}

	groups := GroupByDate(messages)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Messages, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{
		groups[0].Messages[0].ID,
		groups[0].Messages[1].ID,
		groups[0].Messages[2].ID,
	})
}

func TestGroupByDateNoDuplicateKeys(t *testing.T) {
	var messages []models.Message
	for i := 0; i < 40; i++ {
		messages = append(messages, models.Message{ID: i, Text: "m", Date: day(i%4, i%24)})
	}

	groups := GroupByDate(messages)
	seen := map[time.Time]bool{}
	total := 0
	for _, g := range groups {
		require.False(t, seen[g.Date], "duplicate bucket for %v", g.Date)
		seen[g.Date] = true
		total += len(g.Messages)
	}
	assert.Equal(t, len(messages), total, "partition must not drop or split messages")
}

func TestTruncateKeepsCalendarDate(t *testing.T) {
	almostMidnight := time.Date(2026, time.August, 20, 23, 59, 59, 0, time.UTC)
	justAfter := time.Date(2026, time.August, 21, 0, 0, 1, 0, time.UTC)

	assert.False(t, Truncate(almostMidnight).Equal(Truncate(justAfter)))
	assert.Equal(t, time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), Truncate(almostMidnight))
}

func TestDateLabel(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"today", testNow, "Today"},
		{"today morning", day(0, 1), "Today"},
		{"yesterday", day(1, 12), testNow.AddDate(0, 0, -1).Weekday().String()},
		{"seven days ago", day(7, 12), testNow.AddDate(0, 0, -7).Weekday().String()},
		{"tomorrow", day(-1, 12), testNow.AddDate(0, 0, 1).Weekday().String()},
		{"eight days ago", day(8, 12), testNow.AddDate(0, 0, -8).Format("Jan 2, 2006")},
		{"last year", testNow.AddDate(-1, 0, 0), testNow.AddDate(-1, 0, 0).Format("Jan 2, 2006")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DateLabel(tc.date, testNow))
		})
	}
}
