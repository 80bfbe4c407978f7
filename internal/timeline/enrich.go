package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zuo-Peng/chatlens/internal/parse"
)

// timestampLayout is month/day/2-digit-year hour:minute AM|PM.
const timestampLayout = "1/2/06 3:04 PM"

var (
	ErrMissingMeridiem = errors.New("missing AM/PM marker")
	ErrBadTimestamp    = errors.New("invalid timestamp")
)

// Enrich resolves the record's date, time and meridiem into a timestamp and
// derives its calendar fields. Sentiment is left empty.
func Enrich(raw parse.RawRecord) (Record, error) {
	ts, err := ParseTimestamp(raw.Date, raw.Time, raw.Meridiem)
	if err != nil {
		return Record{}, err
	}
	return Record{
		RawRecord:    raw,
		Timestamp:    ts,
		CalendarDate: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		Year:         ts.Year(),
		MonthNumber:  int(ts.Month()),
		MonthName:    ts.Month().String(),
		Day:          ts.Day(),
		Weekday:      ts.Weekday().String(),
		Hour:         ts.Hour(),
		Minute:       ts.Minute(),
	}, nil
}

// ParseTimestamp combines the three captured parts. The clock is 12-hour, so
// a missing meridiem cannot be resolved and is an error.
func ParseTimestamp(date, clock, meridiem string) (time.Time, error) {
	if meridiem == "" {
		return time.Time{}, fmt.Errorf("%s %s: %w", date, clock, ErrMissingMeridiem)
	}
	h, _, ok := strings.Cut(clock, ":")
	if hour, err := strconv.Atoi(h); !ok || err != nil || hour < 1 || hour > 12 {
		return time.Time{}, fmt.Errorf("%s %s %s: %w", date, clock, meridiem, ErrBadTimestamp)
	}
	ts, err := time.ParseInLocation(timestampLayout, date+" "+clock+" "+strings.ToUpper(meridiem), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadTimestamp, err)
	}
	return ts, nil
}

// HourBucket labels the one-hour interval starting at hour (0-23), e.g.
// 0 -> "12-1 AM", 13 -> "1-2 PM", 23 -> "11-00 PM".
func HourBucket(hour int) string {
	start := hour % 12
	if start == 0 {
		start = 12
	}
	switch hour {
	case 23:
		return fmt.Sprintf("%d-00 PM", start)
	case 0:
		return "12-1 AM"
	}
	next := (hour + 1) % 12
	if next == 0 {
		next = 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d-%d %s", start, next, suffix)
}

// HourBuckets lists all 24 labels in hour order.
func HourBuckets() []string {
	out := make([]string, 24)
	for h := range out {
		out[h] = HourBucket(h)
	}
	return out
}

// Weekdays lists weekday names Monday first.
func Weekdays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}

// MonthNames lists month names January first.
func MonthNames() []string {
	out := make([]string, 12)
	for i := range out {
		out[i] = time.Month(i + 1).String()
	}
	return out
}
