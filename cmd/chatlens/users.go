package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/render"
)

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users <path>",
		Short: "List the authors a report can be restricted to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadChat(args[0])
			if err != nil {
				return err
			}

			tl := c.engine.Timeline()
			var rows [][]string
			for _, u := range c.engine.Users() {
				s := analysis.FetchStats(tl, u, c.cfg.MediaPlaceholder)
				rows = append(rows, []string{u, fmt.Sprint(s.Messages), fmt.Sprint(s.Words)})
			}
			fmt.Print(render.Table([]string{"User", "Messages", "Words"}, rows, isTerminal()))
			return nil
		},
	}
}
