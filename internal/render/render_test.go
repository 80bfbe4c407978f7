package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

const chat = "1/2/23, 10:00 AM - Alice: I love pizza 😀\n" +
	"1/2/23, 10:05 AM - Bob: <Media omitted>\n" +
	"1/3/23, 8:00 PM - Alice: awful day\n" +
	"1/4/23, 9:00 AM - Carol added Dave\n" +
	"2/4/23, 9:30 AM - Bob: see https://example.com\n"

func build(t *testing.T) timeline.Timeline {
	t.Helper()
	raw, err := parse.Parse(chat)
	require.NoError(t, err)
	tl, _ := timeline.Build(raw, sentiment.NewLexicon())
	return tl
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abc"}, wrapLine("abc", 0))
	assert.Equal(t, []string{"abc", "def", "g"}, wrapLine("abcdefg", 3))
	assert.Equal(t, []string{""}, wrapLine("", 5))
	// escape sequences take no columns
	assert.Equal(t, []string{"\033[1mab\033[0m"}, wrapLine("\033[1mab\033[0m", 2))
	// wide runes count double
	assert.Equal(t, []string{"日", "本"}, wrapLine("日本", 3))
}

func TestHighlightKeywords(t *testing.T) {
	assert.Equal(t, "I "+colorBoldRed+"Love"+colorReset+" it", highlightKeywords("I Love it", "love"))
	assert.Equal(t, "plain", highlightKeywords("plain", ""))
	assert.Equal(t, "x", stripANSI(highlightKeywords("x", "x")))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  a\n  b", indentLines("a\nb", "  "))
}

func TestConversation_Window(t *testing.T) {
	tl := build(t)

	out, hit := Conversation(tl, ConversationOptions{Hit: 2, Context: 1, Query: "awful"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "... (1 messages before) ...", lines[0])
	assert.Equal(t, 3, hit)
	assert.True(t, strings.HasPrefix(lines[hit], ">> #2 Alice > 2023-01-03 20:00 [-] <<"), lines[hit])
	assert.Equal(t, "  awful day", lines[hit+1])
	assert.Equal(t, "... (1 messages after) ...", lines[len(lines)-1])
	assert.NotContains(t, out, "\033[")
}

func TestConversation_NoHitShowsAll(t *testing.T) {
	out, hit := Conversation(build(t), ConversationOptions{Hit: -1})
	assert.Equal(t, -1, hit)
	assert.Contains(t, out, "#0 Alice >")
	assert.Contains(t, out, "#4 Bob >")
	assert.NotContains(t, out, "messages before")

	empty, hit := Conversation(timeline.Timeline{}, ConversationOptions{Hit: -1})
	assert.Equal(t, "(empty chat)", empty)
	assert.Equal(t, -1, hit)
}

func TestConversation_Color(t *testing.T) {
	out, _ := Conversation(build(t), ConversationOptions{Hit: 0, Context: 1, Color: true, Query: "pizza"})
	assert.Contains(t, out, colorHit)
	assert.Contains(t, out, colorBoldRed+"pizza"+colorReset)
}

func TestReport(t *testing.T) {
	e, err := analysis.NewEngine(build(t), analysis.DefaultOptions())
	require.NoError(t, err)
	s, err := e.Snapshot(context.Background(), timeline.Overall, "")
	require.NoError(t, err)

	out := Report(s, Options{})
	for _, want := range []string{
		"## Chat report: Overall",
		"## Most busy users",
		"## Sentiment by author",
		"January-2023",
		"February-2023",
		"2023-02-04",
		"## Weekly activity map",
		"😀",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\033[")

	colored := Report(s, Options{Color: true})
	assert.Contains(t, colored, "╭")
}

func TestReport_AuthorOmitsOverallTables(t *testing.T) {
	e, err := analysis.NewEngine(build(t), analysis.DefaultOptions())
	require.NoError(t, err)
	s, err := e.Snapshot(context.Background(), "Bob", "")
	require.NoError(t, err)

	out := Report(s, Options{MaxDays: 1})
	assert.Contains(t, out, "## Chat report: Bob")
	assert.NotContains(t, out, "Most busy users")
	assert.Contains(t, out, "(last 1 of 2 days)")
	assert.Contains(t, out, "(no emojis)")
}

func TestHeatmap(t *testing.T) {
	h := analysis.WeeklyHeatmap(build(t), timeline.Overall)
	out := Heatmap(h)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[1], "Monday"))
	assert.True(t, strings.HasSuffix(lines[1], " 2"))
	assert.Contains(t, lines[8], "12-1 AM ... 11-00 PM")
}

func TestBarAndShade(t *testing.T) {
	assert.Equal(t, "", bar(0, 10, 10))
	assert.Equal(t, "█", bar(1, 100, 10))
	assert.Equal(t, strings.Repeat("█", 10), bar(10, 10, 10))
	assert.Equal(t, "·", shade(0, 5))
	assert.Equal(t, "█", shade(5, 5))
}
