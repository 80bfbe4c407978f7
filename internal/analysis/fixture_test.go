package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

const chat = "1/2/23, 10:00 AM - Alice: I love this group 😀\n" +
	"1/2/23, 10:05 AM - Bob: <Media omitted>\n" +
	"1/2/23, 11:30 PM - Bob: see https://example.com now\n" +
	"1/3/23, 12:15 AM - Alice: this is awful 😀😀\n" +
	"1/3/23, 9:00 AM - Carol added Dave\n" +
	"2/14/23, 6:45 PM - Carol: pizza pizza tonight 👍🏽\n" +
	"2/15/23, 7:00 PM - Alice: pizza again\n"

func build(t *testing.T, text string) timeline.Timeline {
	t.Helper()
	raw, err := parse.Parse(text)
	require.NoError(t, err)
	tl, stats := timeline.Build(raw, sentiment.NewLexicon())
	require.Zero(t, stats.Dropped)
	return tl
}
