package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/search"
)

func colorizeSnippet(snippet string) string {
	if !color.Enable {
		return snippet
	}
	snippet = strings.ReplaceAll(snippet, ">>>", "\033[1;31m")
	snippet = strings.ReplaceAll(snippet, "<<<", "\033[0m")
	return snippet
}

func searchCmd() *cobra.Command {
	var user, label, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <path> <query>",
		Short: "Find messages containing every query term",
		Long: `Search the messages of a chat export. Output is TSV:
  record, line, time, author, sentiment, snippet

The record number works with 'chatlens show' and 'chatlens open'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := parseLabel(label)
			if err != nil {
				return err
			}
			opts := search.Options{Query: args[1], Sentiment: l, Limit: limit}
			if since != "" {
				t, err := time.Parse(time.DateOnly, since)
				if err != nil {
					return fmt.Errorf("--since: %w", err)
				}
				opts.Since = t
			}

			c, err := loadChat(args[0])
			if err != nil {
				return err
			}
			if opts.Author, err = c.checkAuthor(user); err != nil {
				return err
			}

			results := search.Search(c.engine.Timeline(), opts)
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				// first field stays plain for scripts
				fmt.Printf("%d\t%d\t%s\t%s\t%s\t%s\n",
					r.Index,
					r.LineNumber,
					color.Gray.Sprint(r.Timestamp.Format("2006-01-02 15:04")),
					color.Blue.Sprint(r.Author),
					r.Sentiment,
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Only messages by this author")
	cmd.Flags().StringVar(&label, "sentiment", "", "Only Positive, Neutral or Negative messages")
	cmd.Flags().StringVar(&since, "since", "", "Only messages on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
