// Package sentiment labels message text as Positive, Neutral or Negative from
// a polarity score in [-1, 1].
package sentiment

import (
	"fmt"
	"strings"
)

type Label string

const (
	Positive Label = "Positive"
	Neutral  Label = "Neutral"
	Negative Label = "Negative"
)

// Labels returns every label in column order (alphabetical).
func Labels() []Label {
	return []Label{Negative, Neutral, Positive}
}

// ParseLabel accepts a label name in any case. The empty string means "no label".
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "positive":
		return Positive, nil
	case "neutral":
		return Neutral, nil
	case "negative":
		return Negative, nil
	default:
		return "", fmt.Errorf("unknown sentiment %q (want positive, neutral or negative)", s)
	}
}

// Scorer produces a polarity score for a piece of text.
type Scorer interface {
	Polarity(text string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(text string) float64

func (f ScorerFunc) Polarity(text string) float64 {
	return f(text)
}

// Classify maps the scorer's polarity to a label: above zero is Positive,
// below zero is Negative, exactly zero is Neutral.
func Classify(s Scorer, text string) Label {
	p := s.Polarity(text)
	switch {
	case p > 0:
		return Positive
	case p < 0:
		return Negative
	default:
		return Neutral
	}
}

// New builds a scorer by name. Only "lexicon" (the default) exists today.
func New(name string) (Scorer, error) {
	switch name {
	case "", "lexicon":
		return NewLexicon(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment scorer %q", name)
	}
}
