package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/config"
	"github.com/Zuo-Peng/chatlens/internal/history"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/stopwords"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, stop words, scorer and history DB",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}

			fmt.Println("=== Config ===")
			cfgPath := config.Path(home)
			if _, err := os.Stat(cfgPath); err != nil {
				fmt.Printf("  File: %s (not found, using defaults)\n", cfgPath)
			} else {
				fmt.Printf("  File: %s (OK)\n", cfgPath)
			}
			cfg, _, err := loadConfig()
			if err != nil {
				fmt.Printf("  Status: INVALID (%v)\n", err)
				return nil
			}
			fmt.Printf("  Log level: %s\n", cfg.LogLevel)
			fmt.Printf("  Media placeholder: %q\n", cfg.MediaPlaceholder)
			fmt.Printf("  Top users/words: %d/%d\n", cfg.TopUsers, cfg.TopWords)

			fmt.Println("\n=== Stop Words ===")
			stop, err := stopwords.Load(cfg.StopWordsPath, stopwords.Match(cfg.StopWordsMatch))
			if err != nil {
				fmt.Printf("  Error: %v\n", err)
			} else {
				src := cfg.StopWordsPath
				if src == "" {
					src = "built-in"
				}
				fmt.Printf("  Source: %s\n", src)
				fmt.Printf("  Words: %d (match: %s)\n", stop.Len(), stop.Match())
			}

			fmt.Println("\n=== Sentiment ===")
			if sc, err := sentiment.New(cfg.Scorer); err != nil {
				fmt.Printf("  Error: %v\n", err)
			} else {
				fmt.Printf("  Scorer: %s (\"great day\" -> %s)\n", cfg.Scorer, sentiment.Classify(sc, "great day"))
			}

			fmt.Println("\n=== History ===")
			if !cfg.HistoryEnabled {
				fmt.Println("  Status: disabled")
				return nil
			}
			fmt.Printf("  Path: %s\n", cfg.HistoryDB)
			if _, err := os.Stat(cfg.HistoryDB); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first analysis)")
				return nil
			}

			db, err := history.OpenDB(cfg.HistoryDB)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			n, err := db.Count()
			if err != nil {
				return fmt.Errorf("count runs: %w", err)
			}
			fmt.Printf("  Runs: %d\n", n)
			if v, err := db.SchemaVersion(); err == nil {
				fmt.Printf("  Schema: v%s\n", v)
			}

			if info, err := os.Stat(cfg.HistoryDB); err == nil {
				fmt.Printf("\n=== DB Size: %s ===\n", humanize.Bytes(uint64(info.Size())))
			}

			return nil
		},
	}
}
