// Package report exports a Snapshot as a downloadable PDF, JSON or CSV file.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPDF, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want pdf, json or csv)", s)
}

// Write encodes s in format f.
func Write(w io.Writer, s *analysis.Snapshot, f Format) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	case FormatCSV:
		return WriteCSV(w, s)
	}
	return fmt.Errorf("unknown report format %q", f)
}

// FileName is the default output name for author's report, e.g.
// "chatlens-overall.pdf".
func FileName(author string, f Format) string {
	var b strings.Builder
	for _, r := range strings.ToLower(author) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "overall"
	}
	return fmt.Sprintf("chatlens-%s.%s", name, f)
}
