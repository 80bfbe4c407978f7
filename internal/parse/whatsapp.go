package parse

import (
	"os"
	"regexp"
	"strings"
	"time"
)

// headerRe matches the timestamp prefix of a message: "M/D/YY, H:MM[ AM|PM] - ".
// Newer exports put a narrow no-break space before the meridiem.
var headerRe = regexp.MustCompile(`(?m)^(\d{1,2}/\d{1,2}/\d{2}), (\d{1,2}:\d{2})(?:[ \x{202F}\x{00A0}]?((?i:am|pm)))? - `)

// authorRe splits "Author: body". The author is everything before the first colon on the line.
var authorRe = regexp.MustCompile(`(?s)^([^:\n]+): (.*)$`)

// ParseFile reads a chat export from disk and parses it.
func ParseFile(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	result, err := ParseText(string(data))
	if err != nil {
		return nil, err
	}
	result.Meta.FilePath = filePath
	return result, nil
}

// ParseText parses an in-memory export and fills the source metadata.
func ParseText(text string) (*ParseResult, error) {
	records, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		Meta: SourceMeta{
			Size:     int64(len(text)),
			Lines:    countLines(text),
			ParsedAt: time.Now(),
		},
		Records: records,
	}, nil
}

// Parse turns raw export text into records in the order they appear. A message
// runs from its timestamp prefix to the next prefix (or end of text), so
// continuation lines stay part of the same body.
func Parse(text string) ([]RawRecord, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Size: len(text), Lines: countLines(text), Err: ErrEmptyInput}
	}

	matches := headerRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, &ParseError{Size: len(text), Lines: countLines(text), Err: ErrNoMatches}
	}

	records := make([]RawRecord, 0, len(matches))
	line := 1
	prev := 0
	for i, m := range matches {
		line += strings.Count(text[prev:m[0]], "\n")
		prev = m[0]

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		rest := strings.TrimRight(text[m[1]:end], "\r\n")

		rec := RawRecord{
			Date:       text[m[2]:m[3]],
			Time:       text[m[4]:m[5]],
			LineNumber: line,
		}
		if m[6] >= 0 {
			rec.Meridiem = strings.ToUpper(text[m[6]:m[7]])
		}

		if parts := authorRe.FindStringSubmatch(rest); parts != nil {
			rec.Author = parts[1]
			rec.Message = parts[2]
		} else {
			rec.Author = GroupNotification
			rec.Message = rest
		}
		records = append(records, rec)
	}
	return records, nil
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
