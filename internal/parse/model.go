package parse

import "time"

// GroupNotification is the author recorded for system lines such as
// "X added Y" that carry no "Author: " prefix.
const GroupNotification = "group_notification"

type RawRecord struct {
	Date       string // M/D/YY as written in the export
	Time       string // H:MM
	Meridiem   string // "AM", "PM" or "" when the export omits it
	Author     string
	Message    string
	LineNumber int // line of the timestamp in the source text
}

// IsNotification reports whether the record is a system line.
func (r RawRecord) IsNotification() bool {
	return r.Author == GroupNotification
}

type SourceMeta struct {
	FilePath string
	Size     int64
	Lines    int
	ParsedAt time.Time
}

type ParseResult struct {
	Meta    SourceMeta
	Records []RawRecord
}
