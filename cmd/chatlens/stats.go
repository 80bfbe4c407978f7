package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
)

func statsCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "stats <path>",
		Short: "Print message, word, media and link counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadChat(args[0])
			if err != nil {
				return err
			}
			author, err := c.checkAuthor(user)
			if err != nil {
				return err
			}

			s := analysis.FetchStats(c.engine.Timeline(), author, c.cfg.MediaPlaceholder)
			fmt.Println(color.Bold.Sprintf("=== %s ===", author))
			printStat("Messages", s.Messages)
			printStat("Words", s.Words)
			printStat("Media", s.Media)
			printStat("Links", s.Links)
			if c.build.Dropped > 0 {
				fmt.Println(color.Yellow.Sprintf("  (%d records skipped: unresolvable timestamps)", c.build.Dropped))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Author to count (default Overall)")
	return cmd
}

func printStat(name string, n int) {
	fmt.Printf("  %-9s %s\n", name+":", color.Cyan.Sprint(humanize.Comma(int64(n))))
}
