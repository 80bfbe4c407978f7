package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/render"
	"github.com/Zuo-Peng/chatlens/internal/search"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	plain   string // uncolored report for the clipboard
	hitLine int
	err     error
}

func reportKey(author string, label sentiment.Label) string {
	return fmt.Sprintf("report:%s:%s", author, label)
}

func recordKey(index int) string {
	return fmt.Sprintf("record:%d", index)
}

// loadReportCmd computes the author's snapshot and renders it async.
func loadReportCmd(e *analysis.Engine, author string, label sentiment.Label, width int) tea.Cmd {
	return func() tea.Msg {
		key := reportKey(author, label)
		s, err := e.Snapshot(context.Background(), author, label)
		if err != nil {
			return previewRenderedMsg{key: key, err: err}
		}
		bw := max(width-30, 10)
		return previewRenderedMsg{
			key:     key,
			content: render.Report(s, render.Options{Color: true, BarWidth: bw, MaxDays: 60}),
			plain:   render.Report(s, render.Options{BarWidth: bw}),
			hitLine: -1,
		}
	}
}

// loadRecordCmd renders the conversation around a search hit async.
func loadRecordCmd(e *analysis.Engine, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine := render.Conversation(e.Timeline(), render.ConversationOptions{
			Hit:     r.Index,
			Context: 15,
			Width:   width,
			Query:   query,
			Color:   true,
		})
		return previewRenderedMsg{key: recordKey(r.Index), content: content, hitLine: hitLine}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
