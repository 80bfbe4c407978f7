package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/history"
	"github.com/Zuo-Peng/chatlens/internal/render"
)

func historyCmd() *cobra.Command {
	var limit, pruneDays int
	var id string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.HistoryDB); os.IsNotExist(err) {
				fmt.Fprintln(os.Stderr, "No history yet.")
				return nil
			}

			db, err := history.OpenDB(cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer db.Close()

			if pruneDays > 0 {
				n, err := db.Prune(time.Now().AddDate(0, 0, -pruneDays))
				if err != nil {
					return fmt.Errorf("prune: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Pruned %d runs older than %d days\n", n, pruneDays)
			}

			var runs []history.Run
			if id != "" {
				r, err := db.Get(id)
				if err != nil {
					return err
				}
				runs = append(runs, *r)
			} else if runs, err = db.List(limit); err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(os.Stderr, "No history yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.ID,
					humanize.Time(r.AnalyzedAt),
					r.SourcePath,
					humanize.Comma(int64(r.Messages)),
					humanize.Comma(int64(r.Words)),
					fmt.Sprint(r.Media),
					fmt.Sprint(r.Links),
					fmt.Sprint(r.Dropped),
					r.SHA256[:min(12, len(r.SHA256))],
				})
			}
			fmt.Print(render.Table(
				[]string{"ID", "When", "Source", "Messages", "Words", "Media", "Links", "Dropped", "SHA256"},
				rows, isTerminal()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max runs (0 = all)")
	cmd.Flags().StringVar(&id, "id", "", "Show one run by ID or unique prefix")
	cmd.Flags().IntVar(&pruneDays, "prune-days", 0, "Delete runs older than N days first")

	return cmd
}
