// Package search finds messages in a Timeline by case-insensitive terms.
package search

import (
	"slices"
	"sort"
	"strings"
	"time"

	goahocorasick "github.com/anknown/ahocorasick"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

type Result struct {
	Index      int // position in the searched Timeline
	LineNumber int
	Author     string
	Timestamp  time.Time
	Sentiment  sentiment.Label
	Snippet    string
	Rank       int // total term occurrences
}

type Options struct {
	Query     string
	Author    string          // "" or Overall = all
	Sentiment sentiment.Label // "" = all
	Since     time.Time       // zero = no filter
	Limit     int
}

// snippetContext is the number of runes kept on each side of the first hit.
const snippetContext = 30

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match (or case folding moved byte offsets), return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	// find rune position of idx
	runePos := len([]rune(text[:idx]))
	start := max(runePos-contextChars, 0)
	end := min(runePos+len(qRunes)+contextChars, len(runes))
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return strings.ReplaceAll(prefix+snippet+suffix, "\n", " ")
}

// Search returns messages containing every term of opts.Query, best ranked
// first and newest first among equal ranks. System lines are searched too.
func Search(tl timeline.Timeline, opts Options) []Result {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	terms := strings.Fields(strings.ToLower(opts.Query))
	if len(terms) == 0 {
		return nil
	}
	first := terms[0]
	slices.Sort(terms)
	terms = slices.Compact(terms)

	m, err := newMatcher(terms)
	if err != nil {
		return nil
	}

	var results []Result
	for i, r := range tl.All() {
		if !matchesFilters(r, opts) {
			continue
		}
		rank := m.rank(r.Message, len(terms))
		if rank == 0 {
			continue
		}
		results = append(results, Result{
			Index:      i,
			LineNumber: r.LineNumber,
			Author:     r.Author,
			Timestamp:  r.Timestamp,
			Sentiment:  r.Sentiment,
			Snippet:    makeSnippet(r.Message, first, snippetContext),
			Rank:       rank,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank > results[j].Rank
		}
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// matcher finds all query terms in one pass over a message.
type matcher struct {
	machine *goahocorasick.Machine
}

func newMatcher(terms []string) (*matcher, error) {
	patterns := make([][]rune, len(terms))
	for i, t := range terms {
		patterns[i] = []rune(t)
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &matcher{machine: m}, nil
}

// rank is the total number of term hits, or 0 unless all want terms occur.
func (m *matcher) rank(text string, want int) int {
	hits := m.machine.MultiPatternSearch([]rune(strings.ToLower(text)), false)
	seen := make(map[string]bool, want)
	for _, h := range hits {
		seen[string(h.Word)] = true
	}
	if len(seen) < want {
		return 0
	}
	return len(hits)
}

func matchesFilters(r timeline.Record, opts Options) bool {
	if opts.Author != "" && opts.Author != timeline.Overall && r.Author != opts.Author {
		return false
	}
	if opts.Sentiment != "" && r.Sentiment != opts.Sentiment {
		return false
	}
	if !opts.Since.IsZero() && r.Timestamp.Before(opts.Since) {
		return false
	}
	return true
}
