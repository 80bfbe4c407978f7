package timeline

import (
	"time"

	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
)

// Record is one enriched, sentiment-labeled message.
type Record struct {
	parse.RawRecord

	Timestamp    time.Time
	CalendarDate time.Time // Timestamp truncated to midnight
	Year         int
	MonthNumber  int
	MonthName    string
	Day          int
	Weekday      string
	Hour         int
	Minute       int

	Sentiment sentiment.Label
}

// HourBucket is derived from Hour on every call.
func (r Record) HourBucket() string {
	return HourBucket(r.Hour)
}

// DateKey formats CalendarDate as YYYY-MM-DD.
func (r Record) DateKey() string {
	return r.CalendarDate.Format(time.DateOnly)
}
