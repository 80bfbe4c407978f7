package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/render"
)

func showCmd() *cobra.Command {
	var record, context int
	var query string

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Print the conversation around a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadChat(args[0])
			if err != nil {
				return err
			}
			tl := c.engine.Timeline()
			if record < 0 || record >= tl.Len() {
				return fmt.Errorf("record %d out of range (0-%d)", record, tl.Len()-1)
			}

			out, _ := render.Conversation(tl, render.ConversationOptions{
				Hit:     record,
				Context: context,
				Query:   query,
				Color:   isTerminal(),
			})
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&record, "record", -1, "Record to highlight (from 'chatlens search')")
	cmd.Flags().IntVar(&context, "context", 10, "Records before/after to show")
	cmd.Flags().StringVar(&query, "query", "", "Terms to highlight")

	return cmd
}
