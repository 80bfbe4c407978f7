package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

type MonthCount struct {
	Year        int    `json:"year"`
	MonthNumber int    `json:"month_number"`
	MonthName   string `json:"month_name"`
	Count       int    `json:"count"`
}

// Label is the "Month-Year" axis label, e.g. "January-2023".
func (m MonthCount) Label() string {
	return fmt.Sprintf("%s-%d", m.MonthName, m.Year)
}

type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthlyActivity buckets messages by calendar month in chronological order.
// A non-empty label keeps only messages with that sentiment.
func MonthlyActivity(tl timeline.Timeline, author string, label sentiment.Label) []MonthCount {
	type key struct{ year, month int }
	counts := make(map[key]*MonthCount)
	for _, r := range tl.ForAuthor(author).WithSentiment(label).All() {
		k := key{r.Year, r.MonthNumber}
		if m, ok := counts[k]; ok {
			m.Count++
			continue
		}
		counts[k] = &MonthCount{Year: r.Year, MonthNumber: r.MonthNumber, MonthName: r.MonthName, Count: 1}
	}

	out := make([]MonthCount, 0, len(counts))
	for _, m := range counts {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].MonthNumber < out[j].MonthNumber
	})
	return out
}

// DailyActivity buckets messages by calendar date in chronological order.
func DailyActivity(tl timeline.Timeline, author string, label sentiment.Label) []DayCount {
	counts := make(map[time.Time]int)
	for _, r := range tl.ForAuthor(author).WithSentiment(label).All() {
		counts[r.CalendarDate]++
	}

	out := make([]DayCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, DayCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// WeekdayActivity ranks weekday names by message count.
func WeekdayActivity(tl timeline.Timeline, author string) []NameCount {
	return rankBy(tl.ForAuthor(author), func(r timeline.Record) string { return r.Weekday })
}

// MonthActivity ranks month names by message count, across years.
func MonthActivity(tl timeline.Timeline, author string) []NameCount {
	return rankBy(tl.ForAuthor(author), func(r timeline.Record) string { return r.MonthName })
}

func rankBy(tl timeline.Timeline, name func(timeline.Record) string) []NameCount {
	c := newCounter[string]()
	for _, r := range tl.All() {
		c.add(name(r))
	}
	ranked := c.ranked()
	out := make([]NameCount, len(ranked))
	for i, n := range ranked {
		out[i] = NameCount{Name: n, Count: c.counts[n]}
	}
	return out
}
