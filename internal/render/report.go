package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
)

type Options struct {
	Color    bool
	BarWidth int // widest bar in columns
	MaxDays  int // most recent days shown in the daily timeline (0 = all)
}

// shades grade heatmap cells from empty to busiest.
var shades = []string{"·", "░", "▒", "▓", "█"}

func bar(n, top, width int) string {
	if top <= 0 || n <= 0 {
		return ""
	}
	w := max(n*width/top, 1)
	return strings.Repeat("█", w)
}

func shade(n, top int) string {
	if top <= 0 || n <= 0 {
		return shades[0]
	}
	i := 1 + (n-1)*(len(shades)-1)/top
	return shades[min(i, len(shades)-1)]
}

// Report renders every section of a Snapshot as terminal text.
func Report(s *analysis.Snapshot, opts Options) string {
	if opts.BarWidth <= 0 {
		opts.BarWidth = 30
	}
	var b strings.Builder
	c := opts.Color

	head := fmt.Sprintf("Chat report: %s", s.Author)
	if s.Sentiment != "" {
		head += fmt.Sprintf(" (%s timelines)", s.Sentiment)
	}
	b.WriteString(title(head, c))
	if !s.First.IsZero() {
		fmt.Fprintf(&b, "%s to %s\n", s.First.Format("2006-01-02 15:04"), s.Last.Format("2006-01-02 15:04"))
	}
	if s.Language.Name != "" {
		fmt.Fprintf(&b, "Language: %s (%.0f%%)\n", s.Language.Name, s.Language.Confidence*100)
	}
	b.WriteString("\n")

	b.WriteString(Table(
		[]string{"Messages", "Words", "Media", "Links"},
		[][]string{{
			humanize.Comma(int64(s.Stats.Messages)),
			humanize.Comma(int64(s.Stats.Words)),
			humanize.Comma(int64(s.Stats.Media)),
			humanize.Comma(int64(s.Stats.Links)),
		}}, c))
	b.WriteString("\n")

	if s.BusyUsers != nil && len(s.BusyUsers.Top) > 0 {
		b.WriteString(title("Most busy users", c))
		rows := make([][]string, 0, len(s.BusyUsers.Share))
		counts := make(map[string]int, len(s.BusyUsers.Top))
		for _, u := range s.BusyUsers.Top {
			counts[u.Author] = u.Count
		}
		for _, u := range s.BusyUsers.Share {
			n := ""
			if v, ok := counts[u.Author]; ok {
				n = humanize.Comma(int64(v))
			}
			rows = append(rows, []string{u.Author, n, fmt.Sprintf("%.2f", u.Percent)})
		}
		b.WriteString(Table([]string{"Author", "Messages", "%"}, rows, c))
		b.WriteString("\n")
	}

	b.WriteString(title("Sentiment", c))
	rows := make([][]string, 0, len(s.Sentiments))
	for _, l := range s.Sentiments {
		rows = append(rows, []string{string(l.Label), strconv.Itoa(l.Count)})
	}
	b.WriteString(Table([]string{"Label", "Messages"}, rows, c))
	b.WriteString("\n")

	if s.ByAuthor != nil && len(s.ByAuthor.Authors) > 0 {
		b.WriteString(title("Sentiment by author", c))
		headers := []string{"Author"}
		for _, l := range s.ByAuthor.Labels {
			headers = append(headers, string(l))
		}
		rows := make([][]string, 0, len(s.ByAuthor.Authors))
		for _, a := range s.ByAuthor.Authors {
			row := []string{a}
			for _, l := range s.ByAuthor.Labels {
				row = append(row, strconv.Itoa(s.ByAuthor.Get(a, l)))
			}
			rows = append(rows, row)
		}
		b.WriteString(Table(headers, rows, c))
		b.WriteString("\n")
	}

	b.WriteString(title("Monthly timeline", c))
	top := 0
	for _, m := range s.Monthly {
		top = max(top, m.Count)
	}
	for _, m := range s.Monthly {
		fmt.Fprintf(&b, "%-16s %6d %s\n", m.Label(), m.Count, paintBar(bar(m.Count, top, opts.BarWidth), s.Sentiment, c))
	}
	b.WriteString("\n")

	b.WriteString(title("Daily timeline", c))
	daily := s.Daily
	if opts.MaxDays > 0 && len(daily) > opts.MaxDays {
		fmt.Fprintf(&b, "(last %d of %d days)\n", opts.MaxDays, len(daily))
		daily = daily[len(daily)-opts.MaxDays:]
	}
	top = 0
	for _, d := range daily {
		top = max(top, d.Count)
	}
	for _, d := range daily {
		fmt.Fprintf(&b, "%s %6d %s\n", d.Date.Format("2006-01-02"), d.Count, paintBar(bar(d.Count, top, opts.BarWidth), s.Sentiment, c))
	}
	b.WriteString("\n")

	writeRanked(&b, "Most busy day", s.Weekdays, opts)
	writeRanked(&b, "Most busy month", s.Months, opts)

	b.WriteString(title("Weekly activity map", c))
	b.WriteString(Heatmap(s.Heatmap))
	b.WriteString("\n")

	if len(s.Words) > 0 {
		b.WriteString(title("Most common words", c))
		rows := make([][]string, 0, len(s.Words))
		for _, w := range s.Words {
			rows = append(rows, []string{w.Word, strconv.Itoa(w.Count)})
		}
		b.WriteString(Table([]string{"Word", "Count"}, rows, c))
		b.WriteString("\n")
	}

	b.WriteString(title("Emoji analysis", c))
	if len(s.Emojis) == 0 {
		b.WriteString("(no emojis)\n")
	} else {
		rows := make([][]string, 0, len(s.Emojis))
		for _, e := range s.Emojis {
			rows = append(rows, []string{e.Emoji, strconv.Itoa(e.Count)})
		}
		b.WriteString(Table([]string{"Emoji", "Count"}, rows, c))
	}

	return b.String()
}

func writeRanked(b *strings.Builder, name string, counts []analysis.NameCount, opts Options) {
	b.WriteString(title(name, opts.Color))
	top := 0
	for _, n := range counts {
		top = max(top, n.Count)
	}
	for _, n := range counts {
		fmt.Fprintf(b, "%-10s %6d %s\n", n.Name, n.Count, paintBar(bar(n.Count, top, opts.BarWidth), "", opts.Color))
	}
	b.WriteString("\n")
}

func paintBar(s string, label sentiment.Label, color bool) string {
	if !color || s == "" {
		return s
	}
	switch label {
	case sentiment.Positive:
		return colorGreen + s + colorReset
	case sentiment.Negative:
		return colorRed + s + colorReset
	}
	return colorAuthor + s + colorReset
}

// Heatmap draws one row per weekday and one shaded cell per hour bucket.
func Heatmap(h analysis.Heatmap) string {
	var b strings.Builder
	top := h.Max()
	b.WriteString("          ")
	for hour := range h.Buckets {
		if hour%3 == 0 {
			fmt.Fprintf(&b, "%-3d", hour)
		}
	}
	b.WriteString("\n")
	for d, day := range h.Weekdays {
		fmt.Fprintf(&b, "%-9s ", day)
		for hour := range h.Buckets {
			b.WriteString(shade(h.Counts[d][hour], top))
		}
		fmt.Fprintf(&b, " %d\n", rowTotal(h.Counts[d]))
	}
	if len(h.Buckets) > 0 {
		fmt.Fprintf(&b, "columns: %s ... %s, peak %d\n", h.Buckets[0], h.Buckets[len(h.Buckets)-1], top)
	}
	return b.String()
}

func rowTotal(row [24]int) int {
	n := 0
	for _, v := range row {
		n += v
	}
	return n
}
