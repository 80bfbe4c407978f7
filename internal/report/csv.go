package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
)

// WriteCSV writes the snapshot as "section,key,value" rows so every table
// fits one sheet.
func WriteCSV(w io.Writer, s *analysis.Snapshot) error {
	cw := csv.NewWriter(w)
	var werr error
	row := func(section, key string, value any) {
		if werr == nil {
			werr = cw.Write([]string{section, key, fmt.Sprint(value)})
		}
	}

	row("section", "key", "value")
	row("meta", "author", s.Author)
	if s.Sentiment != "" {
		row("meta", "sentiment", s.Sentiment)
	}
	if !s.First.IsZero() {
		row("meta", "first", s.First.Format("2006-01-02 15:04"))
		row("meta", "last", s.Last.Format("2006-01-02 15:04"))
	}
	if s.Language.Code != "" {
		row("meta", "language", s.Language.Code)
	}

	row("stats", "messages", s.Stats.Messages)
	row("stats", "words", s.Stats.Words)
	row("stats", "media", s.Stats.Media)
	row("stats", "links", s.Stats.Links)

	if s.BusyUsers != nil {
		for _, u := range s.BusyUsers.Top {
			row("busy_users", u.Author, u.Count)
		}
		for _, u := range s.BusyUsers.Share {
			row("busy_users_percent", u.Author, strconv.FormatFloat(u.Percent, 'f', 2, 64))
		}
	}
	for _, l := range s.Sentiments {
		row("sentiment", string(l.Label), l.Count)
	}
	if s.ByAuthor != nil {
		for _, a := range s.ByAuthor.Authors {
			for _, l := range s.ByAuthor.Labels {
				// authors never contain ':' (the parser splits on it)
				row("sentiment_by_author", a+":"+string(l), s.ByAuthor.Get(a, l))
			}
		}
	}
	for _, m := range s.Monthly {
		row("monthly", m.Label(), m.Count)
	}
	for _, d := range s.Daily {
		row("daily", d.Date.Format("2006-01-02"), d.Count)
	}
	for _, n := range s.Weekdays {
		row("weekday", n.Name, n.Count)
	}
	for _, n := range s.Months {
		row("month", n.Name, n.Count)
	}
	for d, day := range s.Heatmap.Weekdays {
		for h, bucket := range s.Heatmap.Buckets {
			if c := s.Heatmap.Counts[d][h]; c > 0 {
				row("heatmap", day+" "+bucket, c)
			}
		}
	}
	for _, wc := range s.Words {
		row("word", wc.Word, wc.Count)
	}
	for _, e := range s.Emojis {
		row("emoji", e.Emoji, e.Count)
	}

	if werr != nil {
		return fmt.Errorf("write csv: %w", werr)
	}
	cw.Flush()
	return cw.Error()
}
