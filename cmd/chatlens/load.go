package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mama165/sdk-go/logs"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/config"
	"github.com/Zuo-Peng/chatlens/internal/history"
	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/scan"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/stopwords"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

// chat is one loaded export with everything the commands need.
type chat struct {
	cfg    *config.Config
	log    *slog.Logger
	source scan.Source
	sum    string
	build  timeline.BuildStats
	engine *analysis.Engine
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logs.GetLoggerFromString(cfg.LogLevel), nil
}

// loadChat reads, parses and enriches the export at path.
func loadChat(path string) (*chat, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	stop, err := stopwords.Load(cfg.StopWordsPath, stopwords.Match(cfg.StopWordsMatch))
	if err != nil {
		return nil, err
	}
	scorer, err := sentiment.New(cfg.Scorer)
	if err != nil {
		return nil, err
	}

	src, text, err := scan.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	result, err := parse.ParseText(text)
	if err != nil {
		if errors.Is(err, parse.ErrNoMatches) {
			return nil, fmt.Errorf("%s: %w (expected lines like \"1/2/23, 10:00 AM - Name: message\")", src.Display(), err)
		}
		return nil, fmt.Errorf("%s: %w", src.Display(), err)
	}
	result.Meta.FilePath = src.Display()
	log.Debug("parsed chat export",
		"source", src.Display(), "kind", src.Kind,
		"records", len(result.Records), "lines", result.Meta.Lines, "bytes", result.Meta.Size)

	tl, build := timeline.Build(result.Records, scorer)
	if build.Dropped > 0 {
		log.Warn("dropped records with unresolvable timestamps",
			"dropped", build.Dropped, "lines", build.DroppedLines)
	}
	log.Debug("built timeline", "stats", build.String(), "scorer", cfg.Scorer)

	engine, err := analysis.NewEngine(tl, analysis.Options{
		MediaPlaceholder: cfg.MediaPlaceholder,
		StopWords:        stop,
		TopUsers:         cfg.TopUsers,
		TopWords:         cfg.TopWords,
	})
	if err != nil {
		return nil, err
	}

	return &chat{
		cfg:    cfg,
		log:    log,
		source: src,
		sum:    history.Checksum(text),
		build:  build,
		engine: engine,
	}, nil
}

// checkAuthor rejects authors that are not in the selectable user list.
func (c *chat) checkAuthor(author string) (string, error) {
	if author == "" {
		return timeline.Overall, nil
	}
	for _, u := range c.engine.Users() {
		if u == author {
			return author, nil
		}
	}
	return "", fmt.Errorf("unknown user %q (see 'chatlens users')", author)
}

// snapshot computes the author's snapshot and logs the run to history.
func (c *chat) snapshot(ctx context.Context, author string, label sentiment.Label) (*analysis.Snapshot, error) {
	s, err := c.engine.Snapshot(ctx, author, label)
	if err != nil {
		return nil, err
	}
	c.recordRun()
	return s, nil
}

// recordRun appends the overall numbers to the history log. Failures are
// logged, never fatal.
func (c *chat) recordRun() {
	if !c.cfg.HistoryEnabled {
		return
	}
	db, err := history.OpenDB(c.cfg.HistoryDB)
	if err != nil {
		c.log.Warn("history unavailable", "path", c.cfg.HistoryDB, "error", err)
		return
	}
	defer db.Close()

	if prev, err := db.PreviousFor(c.sum); err == nil && len(prev) > 0 {
		c.log.Debug("export analyzed before", "runs", len(prev), "last", prev[0].ID)
	}

	overall := analysis.FetchStats(c.engine.Timeline(), timeline.Overall, c.cfg.MediaPlaceholder)
	run, err := db.Record(history.Run{
		SourcePath: c.source.Display(),
		SHA256:     c.sum,
		Records:    c.build.Kept,
		Dropped:    c.build.Dropped,
		Messages:   overall.Messages,
		Words:      overall.Words,
		Media:      overall.Media,
		Links:      overall.Links,
	})
	if err != nil {
		c.log.Warn("record history", "error", err)
		return
	}
	c.log.Debug("recorded run", "id", run.ID)
}
