package analysis

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/stopwords"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

const viewCacheSize = 64

type Options struct {
	MediaPlaceholder string
	StopWords        *stopwords.Set
	TopUsers         int
	TopWords         int
}

func DefaultOptions() Options {
	return Options{
		MediaPlaceholder: MediaOmitted,
		StopWords:        stopwords.Default(stopwords.MatchSubstring),
		TopUsers:         5,
		TopWords:         20,
	}
}

// Engine serves aggregations for one Timeline and memoizes per-author views.
// It is safe for concurrent use.
type Engine struct {
	tl    timeline.Timeline
	opts  Options
	views *lru.Cache[string, timeline.Timeline]
}

func NewEngine(tl timeline.Timeline, opts Options) (*Engine, error) {
	views, err := lru.New[string, timeline.Timeline](viewCacheSize)
	if err != nil {
		return nil, err
	}
	if opts.MediaPlaceholder == "" {
		opts.MediaPlaceholder = MediaOmitted
	}
	if opts.TopUsers <= 0 {
		opts.TopUsers = 5
	}
	if opts.TopWords <= 0 {
		opts.TopWords = 20
	}
	return &Engine{tl: tl, opts: opts, views: views}, nil
}

func (e *Engine) Timeline() timeline.Timeline {
	return e.tl
}

func (e *Engine) Options() Options {
	return e.opts
}

// View returns the Timeline restricted to author, computing it at most once
// while it stays in the cache.
func (e *Engine) View(author string) timeline.Timeline {
	if author == "" || author == timeline.Overall {
		return e.tl
	}
	if v, ok := e.views.Get(author); ok {
		return v
	}
	v := e.tl.ForAuthor(author)
	e.views.Add(author, v)
	return v
}

func (e *Engine) Users() []string {
	return Users(e.tl)
}

// Snapshot is every aggregation for one author filter.
type Snapshot struct {
	Author      string           `json:"author"`
	Sentiment   sentiment.Label  `json:"sentiment,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	First       time.Time        `json:"first"`
	Last        time.Time        `json:"last"`
	Language    Language         `json:"language"`
	Stats       Stats            `json:"stats"`
	Sentiments  []LabelCount     `json:"sentiments"`
	Monthly     []MonthCount     `json:"monthly"`
	Daily       []DayCount       `json:"daily"`
	Weekdays    []NameCount      `json:"weekdays"`
	Months      []NameCount      `json:"months"`
	Heatmap     Heatmap          `json:"heatmap"`
	Words       []WordCount      `json:"words"`
	Emojis      []EmojiCount     `json:"emojis"`
	BusyUsers   *BusyUsers       `json:"busy_users,omitempty"`
	ByAuthor    *SentimentMatrix `json:"sentiment_by_author,omitempty"`
}

// IsOverall reports whether the snapshot covers every author.
func (s *Snapshot) IsOverall() bool {
	return s.Author == "" || s.Author == timeline.Overall
}

// Snapshot computes all aggregations for author concurrently. label, when
// set, restricts the monthly and daily timelines. Overall snapshots also
// carry the busiest-users and per-author sentiment tables.
func (e *Engine) Snapshot(ctx context.Context, author string, label sentiment.Label) (*Snapshot, error) {
	if author == "" {
		author = timeline.Overall
	}
	view := e.View(author)
	media := e.opts.MediaPlaceholder
	s := &Snapshot{Author: author, Sentiment: label, GeneratedAt: time.Now()}
	if first, last, ok := view.Span(); ok {
		s.First, s.Last = first.Timestamp, last.Timestamp
	}

	g, ctx := errgroup.WithContext(ctx)
	run := func(f func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f()
			return nil
		})
	}

	// view is already filtered, so each call uses Overall.
	all := timeline.Overall
	run(func() { s.Stats = FetchStats(view, all, media) })
	run(func() { s.Sentiments = SentimentBreakdown(view, all) })
	run(func() { s.Monthly = MonthlyActivity(view, all, label) })
	run(func() { s.Daily = DailyActivity(view, all, label) })
	run(func() { s.Weekdays = WeekdayActivity(view, all) })
	run(func() { s.Months = MonthActivity(view, all) })
	run(func() { s.Heatmap = WeeklyHeatmap(view, all) })
	run(func() { s.Words = WordFrequency(view, all, media, e.opts.StopWords, e.opts.TopWords) })
	run(func() { s.Emojis = EmojiFrequency(view, all) })
	run(func() { s.Language = DetectLanguage(view, media) })
	if s.IsOverall() {
		run(func() {
			b := MostBusyUsers(view, e.opts.TopUsers)
			s.BusyUsers = &b
		})
		run(func() {
			m := SentimentBusyUsers(view)
			s.ByAuthor = &m
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
