package analysis

import (
	"strings"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/stopwords"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordFrequency returns the n most common lowercased words for author,
// skipping system lines, media placeholders and stop words.
func WordFrequency(tl timeline.Timeline, author, media string, stop *stopwords.Set, n int) []WordCount {
	counts := countWords(tl.ForAuthor(author), media, stop)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// WordCloud returns every counted word for author, optionally restricted to
// one sentiment label, for sizing a word cloud.
func WordCloud(tl timeline.Timeline, author string, label sentiment.Label, media string, stop *stopwords.Set) []WordCount {
	return countWords(tl.ForAuthor(author).WithSentiment(label), media, stop)
}

func countWords(tl timeline.Timeline, media string, stop *stopwords.Set) []WordCount {
	c := newCounter[string]()
	for _, r := range tl.All() {
		if r.IsNotification() || r.Message == media {
			continue
		}
		for _, w := range strings.Fields(strings.ToLower(r.Message)) {
			if stop.Contains(w) {
				continue
			}
			c.add(w)
		}
	}

	ranked := c.ranked()
	out := make([]WordCount, len(ranked))
	for i, w := range ranked {
		out[i] = WordCount{Word: w, Count: c.counts[w]}
	}
	return out
}
