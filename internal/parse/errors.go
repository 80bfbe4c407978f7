package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for a blob with no non-blank content.
	ErrEmptyInput = errors.New("empty chat export")
	// ErrNoMatches is returned when text is present but no line matches the timestamp grammar.
	ErrNoMatches = errors.New("no messages matched the chat export format")
)

// ParseError describes input that produced zero records.
type ParseError struct {
	Size  int
	Lines int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse chat export (%d bytes, %d lines): %v", e.Size, e.Lines, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
