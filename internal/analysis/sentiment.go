package analysis

import (
	"sort"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

// SentimentMatrix counts messages per author and label, zero-filled.
type SentimentMatrix struct {
	Authors []string                           `json:"authors"`
	Labels  []sentiment.Label                  `json:"labels"`
	Counts  map[string]map[sentiment.Label]int `json:"counts"`
}

func (m SentimentMatrix) Get(author string, label sentiment.Label) int {
	return m.Counts[author][label]
}

// SentimentBusyUsers tallies every author (including system lines) by label.
// Authors are sorted by name.
func SentimentBusyUsers(tl timeline.Timeline) SentimentMatrix {
	m := SentimentMatrix{
		Labels: sentiment.Labels(),
		Counts: make(map[string]map[sentiment.Label]int),
	}
	for _, r := range tl.All() {
		row, ok := m.Counts[r.Author]
		if !ok {
			row = make(map[sentiment.Label]int, len(m.Labels))
			for _, l := range m.Labels {
				row[l] = 0
			}
			m.Counts[r.Author] = row
			m.Authors = append(m.Authors, r.Author)
		}
		row[r.Sentiment]++
	}
	sort.Strings(m.Authors)
	return m
}

type LabelCount struct {
	Label sentiment.Label `json:"label"`
	Count int             `json:"count"`
}

// SentimentBreakdown counts author's messages per label in Labels order.
func SentimentBreakdown(tl timeline.Timeline, author string) []LabelCount {
	counts := make(map[sentiment.Label]int)
	for _, r := range tl.ForAuthor(author).All() {
		counts[r.Sentiment]++
	}
	out := make([]LabelCount, 0, 3)
	for _, l := range sentiment.Labels() {
		out = append(out, LabelCount{Label: l, Count: counts[l]})
	}
	return out
}
