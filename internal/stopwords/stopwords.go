// Package stopwords holds the immutable stop-word list used by word
// frequency analysis.
package stopwords

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed default.txt
var defaultList string

// Match selects how a word is tested against the list.
type Match string

const (
	// MatchSubstring treats a word as a stop word when it occurs anywhere in
	// the list text, e.g. "he" is filtered because "the" is listed. This is
	// how the list has always been applied and it over-filters short words.
	MatchSubstring Match = "substring"
	// MatchExact filters only words that are listed tokens.
	MatchExact Match = "exact"
)

// Set is safe for concurrent use; it is never modified after Load.
type Set struct {
	text   string
	tokens map[string]struct{}
	match  Match
}

// Default returns the built-in English/Hinglish list.
func Default(match Match) *Set {
	return New(defaultList, match)
}

// Load reads a whitespace-delimited list from path. An empty path yields the default list.
func Load(path string, match Match) (*Set, error) {
	if path == "" {
		return Default(match), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stop words %s: %w", path, err)
	}
	return New(string(data), match), nil
}

// New builds a set from raw list text.
func New(text string, match Match) *Set {
	if match == "" {
		match = MatchSubstring
	}
	lower := strings.ToLower(text)
	fields := strings.Fields(lower)
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return &Set{text: lower, tokens: tokens, match: match}
}

// Contains reports whether word should be filtered out. word is compared lowercased.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	w := strings.ToLower(word)
	if s.match == MatchExact {
		_, ok := s.tokens[w]
		return ok
	}
	return strings.Contains(s.text, w)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tokens)
}

func (s *Set) Match() Match {
	return s.match
}
