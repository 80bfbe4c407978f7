package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatlens/internal/report"
)

func exportCmd() *cobra.Command {
	var user, label, format, output string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the report as PDF, JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
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

			s, err := c.snapshot(cmd.Context(), author, l)
			if err != nil {
				return err
			}

			if output == "-" {
				return report.Write(os.Stdout, s, f)
			}
			if output == "" {
				output = filepath.Join(c.cfg.ReportDir, report.FileName(author, f))
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("create report dir: %w", err)
			}
			out, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := report.Write(out, s, f); err != nil {
				out.Close()
				return fmt.Errorf("write %s report: %w", f, err)
			}
			if err := out.Close(); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Author to report on (default Overall)")
	cmd.Flags().StringVar(&label, "sentiment", "", "Restrict timelines to Positive, Neutral or Negative messages")
	cmd.Flags().StringVar(&format, "format", "pdf", "Report format: pdf, json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file ('-' for stdout; default <report_dir>/chatlens-<user>.<format>)")

	return cmd
}
