package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

func TestFetchStats_MediaAndWords(t *testing.T) {
	tl := build(t, "1/2/23, 10:00 AM - Alice: Hello world\n1/2/23, 10:05 AM - Bob: <Media omitted>\n")

	require.Equal(t, 2, tl.Len())
	assert.Equal(t, Stats{Messages: 2, Words: 2, Media: 1, Links: 0}, FetchStats(tl, timeline.Overall, MediaOmitted))

	days := WeekdayActivity(tl, timeline.Overall)
	require.Len(t, days, 1)
	assert.Equal(t, NameCount{Name: "Monday", Count: 2}, days[0])
}

func TestFetchStats(t *testing.T) {
	tl := build(t, chat)

	tests := []struct {
		author string
		want   Stats
	}{
		{timeline.Overall, Stats{Messages: 7, Words: 21, Media: 1, Links: 1}},
		{"Alice", Stats{Messages: 3, Words: 11, Media: 0, Links: 0}},
		{"Bob", Stats{Messages: 2, Words: 3, Media: 1, Links: 1}},
		{"Nobody", Stats{}},
	}
	for _, tt := range tests {
		t.Run(tt.author, func(t *testing.T) {
			assert.Equal(t, tt.want, FetchStats(tl, tt.author, MediaOmitted))
		})
	}
}

func TestFetchStats_OverallDominatesAuthors(t *testing.T) {
	tl := build(t, chat)
	overall := FetchStats(tl, timeline.Overall, MediaOmitted)
	for _, a := range tl.Authors() {
		s := FetchStats(tl, a, MediaOmitted)
		assert.LessOrEqual(t, s.Words, overall.Words, a)
		assert.LessOrEqual(t, s.Messages, overall.Messages, a)
	}
}

func TestFetchStats_CustomPlaceholder(t *testing.T) {
	tl := build(t, "1/2/23, 10:00 AM - Alice: <attached>\n1/2/23, 10:05 AM - Bob: <Media omitted>\n")
	s := FetchStats(tl, timeline.Overall, "<attached>")
	assert.Equal(t, 1, s.Media)
	assert.Equal(t, 2, s.Words)
}

func TestUsers(t *testing.T) {
	tl := build(t, chat)
	assert.Equal(t, []string{timeline.Overall, "Alice", "Bob", "Carol"}, Users(tl))
	assert.NotContains(t, Users(tl), parse.GroupNotification)

	assert.Equal(t, []string{timeline.Overall}, Users(timeline.Timeline{}))
}

func TestMostBusyUsers(t *testing.T) {
	tl := build(t, chat)
	busy := MostBusyUsers(tl, 5)

	assert.Equal(t, []AuthorCount{
		{"Alice", 3},
		{"Bob", 2},
		{parse.GroupNotification, 1},
		{"Carol", 1},
	}, busy.Top)

	require.Len(t, busy.Share, 4)
	assert.Equal(t, AuthorShare{"Alice", 42.86}, busy.Share[0])
	assert.Equal(t, AuthorShare{"Bob", 28.57}, busy.Share[1])

	var sum float64
	for _, s := range busy.Share {
		sum += s.Percent
	}
	assert.InDelta(t, 100, sum, 0.05)
}

func TestMostBusyUsers_LimitsTop(t *testing.T) {
	tl := build(t, chat)
	busy := MostBusyUsers(tl, 2)
	assert.Len(t, busy.Top, 2)
	assert.Len(t, busy.Share, 4)
}

func TestEmptyTimeline(t *testing.T) {
	var tl timeline.Timeline

	assert.Equal(t, Stats{}, FetchStats(tl, timeline.Overall, MediaOmitted))
	busy := MostBusyUsers(tl, 5)
	assert.Empty(t, busy.Top)
	assert.Empty(t, busy.Share)
	assert.Empty(t, WordFrequency(tl, timeline.Overall, MediaOmitted, nil, 20))
	assert.Empty(t, EmojiFrequency(tl, timeline.Overall))
	assert.Empty(t, MonthlyActivity(tl, timeline.Overall, ""))
	assert.Empty(t, DailyActivity(tl, timeline.Overall, ""))
	assert.Empty(t, WeekdayActivity(tl, timeline.Overall))
	assert.Zero(t, WeeklyHeatmap(tl, timeline.Overall).Total())
	assert.Empty(t, SentimentBusyUsers(tl).Authors)
	assert.Equal(t, Language{}, DetectLanguage(tl, MediaOmitted))
}
