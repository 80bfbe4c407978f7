package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
)

const (
	pdfLineH   = 6.0
	pdfLabelW  = 45.0
	pdfCountW  = 18.0
	pdfMaxRows = 40
)

type rgb struct{ r, g, b int }

var (
	barNeutral  = rgb{66, 133, 244}
	barPositive = rgb{52, 168, 83}
	barNegative = rgb{234, 67, 53}
	barHeat     = rgb{255, 152, 0}
)

type pdfWriter struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	barW float64
}

// WritePDF renders the snapshot as an A4 report. Bars are drawn as filled
// rectangles; text outside the core font's code page is replaced.
func WritePDF(w io.Writer, s *analysis.Snapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Chat report: "+s.Author, true)
	pdf.SetCreator("chatlens", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	p := &pdfWriter{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		barW: pageW - left - right - pdfLabelW - pdfCountW,
	}

	pdf.SetFont("Helvetica", "B", 18)
	p.cell(0, 10, "Chat report: "+s.Author)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	if !s.First.IsZero() {
		p.cell(0, pdfLineH, fmt.Sprintf("%s to %s", s.First.Format("2006-01-02"), s.Last.Format("2006-01-02")))
		pdf.Ln(pdfLineH)
	}
	if s.Language.Name != "" {
		p.cell(0, pdfLineH, fmt.Sprintf("Language: %s", s.Language.Name))
		pdf.Ln(pdfLineH)
	}
	if s.Sentiment != "" {
		p.cell(0, pdfLineH, fmt.Sprintf("Timelines restricted to %s messages", s.Sentiment))
		pdf.Ln(pdfLineH)
	}
	pdf.Ln(3)

	p.section("Top statistics")
	p.table([]string{"Messages", "Words", "Media", "Links"}, [][]string{{
		fmt.Sprint(s.Stats.Messages),
		fmt.Sprint(s.Stats.Words),
		fmt.Sprint(s.Stats.Media),
		fmt.Sprint(s.Stats.Links),
	}})

	if s.BusyUsers != nil && len(s.BusyUsers.Top) > 0 {
		p.section("Most busy users")
		for _, u := range s.BusyUsers.Top {
			p.bar(u.Author, u.Count, s.BusyUsers.Top[0].Count, barNeutral)
		}
		rows := make([][]string, 0, len(s.BusyUsers.Share))
		for _, u := range s.BusyUsers.Share {
			rows = append(rows, []string{u.Author, fmt.Sprintf("%.2f", u.Percent)})
		}
		pdf.Ln(2)
		p.table([]string{"Author", "Percent"}, rows)
	}

	color := barNeutral
	switch s.Sentiment {
	case sentiment.Positive:
		color = barPositive
	case sentiment.Negative:
		color = barNegative
	}

	p.section("Monthly timeline")
	top := 0
	for _, m := range s.Monthly {
		top = max(top, m.Count)
	}
	for _, m := range s.Monthly {
		p.bar(m.Label(), m.Count, top, color)
	}

	p.section("Daily timeline")
	daily := s.Daily
	if len(daily) > pdfMaxRows {
		daily = daily[len(daily)-pdfMaxRows:]
	}
	top = 0
	for _, d := range daily {
		top = max(top, d.Count)
	}
	for _, d := range daily {
		p.bar(d.Date.Format("2006-01-02"), d.Count, top, color)
	}

	p.ranked("Most busy day", s.Weekdays)
	p.ranked("Most busy month", s.Months)

	p.section("Weekly activity map")
	p.heatmap(s.Heatmap)

	if len(s.Words) > 0 {
		p.section("Most common words")
		top = s.Words[0].Count
		for _, wc := range s.Words {
			p.bar(wc.Word, wc.Count, top, barNeutral)
		}
	}

	p.section("Emoji analysis")
	if len(s.Emojis) == 0 {
		p.cell(0, pdfLineH, "No emojis")
		pdf.Ln(pdfLineH)
	} else {
		rows := make([][]string, 0, min(len(s.Emojis), pdfMaxRows))
		for _, e := range s.Emojis[:min(len(s.Emojis), pdfMaxRows)] {
			rows = append(rows, []string{codePoints(e.Emoji), fmt.Sprint(e.Count)})
		}
		p.table([]string{"Emoji", "Count"}, rows)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func (p *pdfWriter) cell(w, h float64, text string) {
	p.pdf.CellFormat(w, h, p.tr(text), "", 0, "L", false, 0, "")
}

func (p *pdfWriter) section(name string) {
	p.pdf.Ln(4)
	p.pdf.SetFont("Helvetica", "B", 13)
	p.cell(0, 8, name)
	p.pdf.Ln(8)
	p.pdf.SetFont("Helvetica", "", 10)
}

func (p *pdfWriter) bar(label string, n, top int, c rgb) {
	p.cell(pdfLabelW, pdfLineH, label)
	x, y := p.pdf.GetX(), p.pdf.GetY()
	if top > 0 && n > 0 {
		p.pdf.SetFillColor(c.r, c.g, c.b)
		p.pdf.Rect(x, y+1, p.barW*float64(n)/float64(top), pdfLineH-2, "F")
	}
	p.pdf.SetX(x + p.barW)
	p.pdf.CellFormat(pdfCountW, pdfLineH, fmt.Sprint(n), "", 1, "R", false, 0, "")
}

func (p *pdfWriter) ranked(name string, counts []analysis.NameCount) {
	p.section(name)
	top := 0
	for _, n := range counts {
		top = max(top, n.Count)
	}
	for _, n := range counts {
		p.bar(n.Name, n.Count, top, barNeutral)
	}
}

func (p *pdfWriter) table(headers []string, rows [][]string) {
	colW := 35.0
	p.pdf.SetFont("Helvetica", "B", 10)
	for _, h := range headers {
		p.pdf.CellFormat(colW, pdfLineH, p.tr(h), "1", 0, "C", false, 0, "")
	}
	p.pdf.Ln(pdfLineH)
	p.pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for _, v := range row {
			p.pdf.CellFormat(colW, pdfLineH, p.tr(v), "1", 0, "L", false, 0, "")
		}
		p.pdf.Ln(pdfLineH)
	}
}

// heatmap draws one row per weekday with a cell per hour, shaded by count.
func (p *pdfWriter) heatmap(h analysis.Heatmap) {
	top := h.Max()
	cellW := p.barW / float64(max(len(h.Buckets), 1))
	p.pdf.SetFont("Helvetica", "", 7)
	p.pdf.SetX(p.pdf.GetX() + pdfLabelW)
	for hour := range h.Buckets {
		p.pdf.CellFormat(cellW, 4, fmt.Sprint(hour), "", 0, "C", false, 0, "")
	}
	p.pdf.Ln(4)
	p.pdf.SetFont("Helvetica", "", 10)
	for d, day := range h.Weekdays {
		p.cell(pdfLabelW, pdfLineH, day)
		x, y := p.pdf.GetX(), p.pdf.GetY()
		for hour := range h.Buckets {
			n := h.Counts[d][hour]
			shade := 245
			if top > 0 && n > 0 {
				shade = 235 - 200*n/top
			}
			if n > 0 {
				p.pdf.SetFillColor(barHeat.r, shade, shade/3)
			} else {
				p.pdf.SetFillColor(shade, shade, shade)
			}
			p.pdf.Rect(x+float64(hour)*cellW, y, cellW-0.3, pdfLineH-0.5, "F")
		}
		p.pdf.Ln(pdfLineH)
	}
	if len(h.Buckets) > 0 {
		p.pdf.SetFont("Helvetica", "I", 8)
		p.cell(0, 5, fmt.Sprintf("Columns are hour buckets %s ... %s", h.Buckets[0], h.Buckets[len(h.Buckets)-1]))
		p.pdf.Ln(5)
		p.pdf.SetFont("Helvetica", "", 10)
	}
}

// codePoints spells an emoji as U+XXXX since the core fonts cannot draw it.
func codePoints(s string) string {
	parts := make([]string, 0, 2)
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("U+%04X", r))
	}
	return strings.Join(parts, " ")
}
