package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/stopwords"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

func TestWordFrequency(t *testing.T) {
	tl := build(t, chat)
	stop := stopwords.New("i this is now again", stopwords.MatchExact)

	got := WordFrequency(tl, timeline.Overall, MediaOmitted, stop, 3)
	assert.Equal(t, []WordCount{{"pizza", 3}, {"love", 1}, {"group", 1}}, got)

	for _, w := range WordFrequency(tl, timeline.Overall, MediaOmitted, stop, 100) {
		assert.NotEqual(t, "carol", w.Word, "system lines are skipped")
		assert.NotContains(t, w.Word, "omitted")
	}
}

func TestWordFrequency_StableTies(t *testing.T) {
	var b strings.Builder
	for i := range 30 {
		fmt.Fprintf(&b, "1/2/23, 10:%02d AM - Alice: w%02d\n", i, i)
	}
	tl := build(t, b.String())

	got := WordFrequency(tl, timeline.Overall, MediaOmitted, nil, 20)
	require.Len(t, got, 20)
	for i, w := range got {
		assert.Equal(t, fmt.Sprintf("w%02d", i), w.Word)
	}
}

func TestWordFrequency_SubstringStopWords(t *testing.T) {
	tl := build(t, "1/2/23, 10:00 AM - Alice: abo abo pizza\n")

	sub := stopwords.New("about", stopwords.MatchSubstring)
	assert.Equal(t, []WordCount{{"pizza", 1}}, WordFrequency(tl, timeline.Overall, MediaOmitted, sub, 20))

	exact := stopwords.New("about", stopwords.MatchExact)
	assert.Equal(t, []WordCount{{"abo", 2}, {"pizza", 1}}, WordFrequency(tl, timeline.Overall, MediaOmitted, exact, 20))
}

func TestWordCloud_BySentiment(t *testing.T) {
	tl := build(t, chat)
	stop := stopwords.New("i this is", stopwords.MatchExact)

	neg := WordCloud(tl, timeline.Overall, sentiment.Negative, MediaOmitted, stop)
	assert.Equal(t, []WordCount{{"awful", 1}, {"😀😀", 1}}, neg)

	all := WordCloud(tl, "Alice", "", MediaOmitted, stop)
	assert.Len(t, all, 7)
	assert.Equal(t, WordCount{"love", 1}, all[0])
}

func TestEmojiFrequency(t *testing.T) {
	tl := build(t, chat)

	got := EmojiFrequency(tl, timeline.Overall)
	assert.Equal(t, []EmojiCount{{"😀", 3}, {"👍🏽", 1}}, got)

	assert.Equal(t, []EmojiCount{{"😀", 3}}, EmojiFrequency(tl, "Alice"))
	assert.Empty(t, EmojiFrequency(tl, "Bob"))
}
