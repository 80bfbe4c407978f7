package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/open"
)

func openCmd() *cobra.Command {
	var record int

	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open the export in $EDITOR at a record's line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadChat(args[0])
			if err != nil {
				return err
			}
			return open.Record(c.engine.Timeline(), record, c.source.EditablePath())
		},
	}

	cmd.Flags().IntVar(&record, "record", 0, "Record to jump to (from 'chatlens search')")

	return cmd
}
