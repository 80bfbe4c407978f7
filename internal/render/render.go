package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

const (
	colorReset   = "\033[0m"
	colorAuthor  = "\033[1;34m" // bold blue
	colorSystem  = "\033[2;35m" // dim magenta for group notifications
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
	colorGreen   = "\033[32m"
	colorRed     = "\033[31m"
)

type ConversationOptions struct {
	Hit     int    // index of the record to highlight, -1 for none
	Context int    // records before/after hit to show
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
	Color   bool
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	for _, term := range strings.Fields(query) {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// stripANSI removes the escape sequences this package emits.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func sentimentMark(l sentiment.Label) string {
	switch l {
	case sentiment.Positive:
		return "+"
	case sentiment.Negative:
		return "-"
	}
	return "="
}

// Conversation renders the records around opts.Hit and returns the text and
// the 0-based output line of the hit header (-1 if no hit).
func Conversation(tl timeline.Timeline, opts ConversationOptions) (string, int) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	total := tl.Len()
	if total == 0 {
		return "(empty chat)", -1
	}

	start, end := 0, total
	if opts.Hit >= 0 && opts.Hit < total && opts.Context > 0 {
		start = max(opts.Hit-opts.Context, 0)
		end = min(opts.Hit+opts.Context+1, total)
	}

	paint := func(color, s string) string {
		if !opts.Color {
			return s
		}
		return color + s + colorReset
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0

	// helper to track line count; wraps long lines if Width is set
	writeLine := func(s string) {
		if !opts.Color {
			s = stripANSI(s)
		}
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	if start > 0 {
		writeLine(paint(colorDim, fmt.Sprintf("... (%d messages before) ...", start)))
	}

	for i := start; i < end; i++ {
		r := tl.At(i)
		stamp := r.Timestamp.Format("2006-01-02 15:04")
		if i == opts.Hit {
			hitLine = lineCount
			writeLine(paint(colorHit, fmt.Sprintf(">> #%d %s > %s [%s] <<", i, r.Author, stamp, sentimentMark(r.Sentiment))))
		} else {
			color := colorAuthor
			if r.IsNotification() {
				color = colorSystem
			}
			writeLine(fmt.Sprintf("%s %s", paint(color, fmt.Sprintf("#%d %s >", i, r.Author)), paint(colorDim, stamp)))
		}

		text := highlightKeywords(r.Message, opts.Query)
		for _, l := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(l)
		}
	}

	if after := total - end; after > 0 {
		writeLine(paint(colorDim, fmt.Sprintf("... (%d messages after) ...", after)))
	}

	return b.String(), hitLine
}
