// Package timeline turns parsed chat records into the enriched,
// sentiment-labeled sequence every aggregation reads from.
package timeline

import (
	"fmt"
	"iter"

	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
)

// Overall is the author filter that selects every record.
const Overall = "Overall"

// Timeline is an immutable, ordered sequence of records. Filtering returns a
// new Timeline; nothing mutates an existing one.
type Timeline struct {
	records []Record
}

// BuildStats reports what happened to the raw records during construction.
type BuildStats struct {
	Parsed       int
	Kept         int
	Dropped      int
	DroppedLines []int
}

func (s BuildStats) String() string {
	return fmt.Sprintf("parsed=%d kept=%d dropped=%d", s.Parsed, s.Kept, s.Dropped)
}

// Build enriches and labels raw records in order. Records whose timestamp
// cannot be resolved are left out and counted in BuildStats.Dropped.
func Build(raw []parse.RawRecord, scorer sentiment.Scorer) (Timeline, BuildStats) {
	stats := BuildStats{Parsed: len(raw)}
	records := make([]Record, 0, len(raw))
	labels := make(map[string]sentiment.Label)

	for _, r := range raw {
		rec, err := Enrich(r)
		if err != nil {
			stats.Dropped++
			stats.DroppedLines = append(stats.DroppedLines, r.LineNumber)
			continue
		}
		label, ok := labels[r.Message]
		if !ok {
			label = sentiment.Classify(scorer, r.Message)
			labels[r.Message] = label
		}
		rec.Sentiment = label
		records = append(records, rec)
	}

	stats.Kept = len(records)
	return Timeline{records: records}, stats
}

// New wraps a copy of records.
func New(records []Record) Timeline {
	return Timeline{records: append([]Record(nil), records...)}
}

func (t Timeline) Len() int {
	return len(t.records)
}

func (t Timeline) At(i int) Record {
	return t.records[i]
}

// All yields records in order.
func (t Timeline) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range t.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of the underlying slice.
func (t Timeline) Records() []Record {
	return append([]Record(nil), t.records...)
}

// Filter returns the records for which keep is true.
func (t Timeline) Filter(keep func(Record) bool) Timeline {
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return Timeline{records: out}
}

// ForAuthor restricts to one author. "" and Overall return t unchanged.
func (t Timeline) ForAuthor(author string) Timeline {
	if author == "" || author == Overall {
		return t
	}
	return t.Filter(func(r Record) bool { return r.Author == author })
}

// WithSentiment restricts to one label. The empty label returns t unchanged.
func (t Timeline) WithSentiment(label sentiment.Label) Timeline {
	if label == "" {
		return t
	}
	return t.Filter(func(r Record) bool { return r.Sentiment == label })
}

// Authors lists distinct authors in order of first appearance, including
// the group_notification sentinel when present.
func (t Timeline) Authors() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.records {
		if _, ok := seen[r.Author]; ok {
			continue
		}
		seen[r.Author] = struct{}{}
		out = append(out, r.Author)
	}
	return out
}

// Span returns the first and last records.
func (t Timeline) Span() (first, last Record, ok bool) {
	if len(t.records) == 0 {
		return Record{}, Record{}, false
	}
	return t.records[0], t.records[len(t.records)-1], true
}
