package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/open"
	"github.com/Zuo-Peng/chatlens/internal/render"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/tui"
)

func analyzeCmd() *cobra.Command {
	var user, label string
	var plain bool
	var days int

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Show the full chat report (dashboard on a terminal, text for pipes)",
		Long: `Analyze a WhatsApp chat export: a .txt file, the .zip WhatsApp produces, or a
directory holding exports (the newest .txt is used).

On a terminal this opens a dashboard: pick a user on the left to see their
report, Tab switches to message search, Enter copies the report (or opens a
search hit in $EDITOR). When stdout is not a terminal the report is printed
as plain text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := parseLabel(label)
			if err != nil {
				return err
			}
			c, err := loadChat(args[0])
			if err != nil {
				return err
			}
			author, err := c.checkAuthor(user)
			if err != nil {
				return err
			}

			if isTerminal() && !plain {
				c.recordRun()
				sel, err := tui.Run(c.engine, author, l)
				if err != nil {
					return err
				}
				if sel != nil && sel.Record >= 0 {
					return open.Record(c.engine.Timeline(), sel.Record, c.source.EditablePath())
				}
				return nil
			}

			s, err := c.snapshot(cmd.Context(), author, l)
			if err != nil {
				return err
			}
			fmt.Print(render.Report(s, render.Options{Color: isTerminal(), MaxDays: days}))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Restrict the report to one author (default Overall)")
	cmd.Flags().StringVar(&label, "sentiment", "", "Restrict timelines to Positive, Neutral or Negative messages")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the report instead of opening the dashboard")
	cmd.Flags().IntVar(&days, "days", 0, "Show only the last N days of the daily timeline (0 = all)")

	return cmd
}

func parseLabel(s string) (sentiment.Label, error) {
	if s == "" {
		return "", nil
	}
	return sentiment.ParseLabel(s)
}
