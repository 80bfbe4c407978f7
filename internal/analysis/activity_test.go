package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

func TestMonthlyActivity(t *testing.T) {
	tl := build(t, chat)

	got := MonthlyActivity(tl, timeline.Overall, "")
	require.Len(t, got, 2)
	assert.Equal(t, "January-2023", got[0].Label())
	assert.Equal(t, 5, got[0].Count)
	assert.Equal(t, "February-2023", got[1].Label())
	assert.Equal(t, 2, got[1].Count)

	pos := MonthlyActivity(tl, timeline.Overall, sentiment.Positive)
	require.Len(t, pos, 1)
	assert.Equal(t, 1, pos[0].Count)
}

func TestMonthlyActivity_AcrossYears(t *testing.T) {
	tl := build(t,
		"3/1/24, 9:00 AM - Alice: later\n"+
			"12/31/23, 9:00 PM - Alice: earlier\n")

	got := MonthlyActivity(tl, timeline.Overall, "")
	require.Len(t, got, 2)
	assert.Equal(t, "December-2023", got[0].Label())
	assert.Equal(t, "March-2024", got[1].Label())
}

func TestDailyActivity(t *testing.T) {
	tl := build(t, chat)

	got := DailyActivity(tl, timeline.Overall, "")
	day := func(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, []DayCount{
		{day(time.January, 2), 3},
		{day(time.January, 3), 2},
		{day(time.February, 14), 1},
		{day(time.February, 15), 1},
	}, got)
}

func TestMonthlyTotalsMatchDaily(t *testing.T) {
	tl := build(t, chat)
	for _, author := range append(tl.Authors(), timeline.Overall) {
		for _, label := range append(sentiment.Labels(), "") {
			var monthly, daily int
			for _, m := range MonthlyActivity(tl, author, label) {
				monthly += m.Count
			}
			for _, d := range DailyActivity(tl, author, label) {
				daily += d.Count
			}
			assert.Equal(t, monthly, daily, "%s/%s", author, label)
		}
	}
}

func TestWeekdayAndMonthActivity(t *testing.T) {
	tl := build(t, chat)

	assert.Equal(t, []NameCount{{"Monday", 3}, {"Tuesday", 3}, {"Wednesday", 1}}, WeekdayActivity(tl, timeline.Overall))
	assert.Equal(t, []NameCount{{"January", 5}, {"February", 2}}, MonthActivity(tl, timeline.Overall))
	assert.Equal(t, []NameCount{{"Tuesday", 1}}, WeekdayActivity(tl, "Carol"))
}

func TestWeeklyHeatmap(t *testing.T) {
	tl := build(t, chat)
	h := WeeklyHeatmap(tl, timeline.Overall)

	assert.Len(t, h.Weekdays, 7)
	assert.Len(t, h.Buckets, 24)
	assert.Equal(t, 2, h.At("Monday", "10-11 AM"))
	assert.Equal(t, 1, h.At("Monday", "11-00 PM"))
	assert.Equal(t, 1, h.At("Tuesday", "12-1 AM"))
	assert.Equal(t, 0, h.At("Sunday", "12-1 AM"))
	assert.Equal(t, 0, h.At("Someday", "12-1 AM"))
	assert.Equal(t, 2, h.Max())
	assert.Equal(t, tl.Len(), h.Total())

	assert.Equal(t, 3, WeeklyHeatmap(tl, "Alice").Total())
}

func TestSentimentBusyUsers(t *testing.T) {
	tl := build(t, chat)
	m := SentimentBusyUsers(tl)

	assert.Equal(t, []string{"Alice", "Bob", "Carol", "group_notification"}, m.Authors)
	assert.Equal(t, 1, m.Get("Alice", sentiment.Positive))
	assert.Equal(t, 1, m.Get("Alice", sentiment.Negative))
	assert.Equal(t, 2, m.Get("Bob", sentiment.Neutral))
	for _, a := range m.Authors {
		row, ok := m.Counts[a]
		require.True(t, ok)
		assert.Len(t, row, 3, "row for %s is zero-filled", a)
	}
	assert.Zero(t, m.Get("Carol", sentiment.Negative))
}

func TestSentimentBreakdown(t *testing.T) {
	tl := build(t, chat)
	assert.Equal(t, []LabelCount{
		{sentiment.Negative, 1},
		{sentiment.Neutral, 5},
		{sentiment.Positive, 1},
	}, SentimentBreakdown(tl, timeline.Overall))
}
