package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/search"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

// linesPerItem is the number of terminal lines each list entry occupies.
const linesPerItem = 2

// item is one list entry: an author in users mode or a hit in search mode.
type item struct {
	author string
	stats  analysis.Stats
	result *search.Result
}

// renderList renders the left panel with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.items) == 0 {
		msg := "No users"
		if m.mode == modeSearch {
			msg = "No results"
			if m.query == "" {
				msg = "Type to search"
			}
		}
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(msg)
	}

	var lines []string
	for i, it := range m.items {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatItem(it, width, i == m.cursor)...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

func truncate(s string, w int) string {
	w = max(w, 0)
	if runewidth.StringWidth(s) > w {
		return runewidth.Truncate(s, w, "")
	}
	return s
}

// formatItem formats an entry as two lines:
//
//	line 1: [>] author (or author  date)
//	line 2:    counts, or the snippet (dimmed)
func formatItem(it item, width int, selected bool) []string {
	var line1, line2 string
	if r := it.result; r != nil {
		author := truncate(r.Author, width-2-17)
		if r.Author == parse.GroupNotification {
			author = styleSystem.Render(author)
		}
		line1 = fmt.Sprintf("%s %s %s",
			sentimentStyle(r.Sentiment).Render("●"),
			r.Timestamp.Format("06-01-02 15:04"),
			author)

		snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
		snippet = strings.ReplaceAll(snippet, ">>>", "")
		snippet = strings.ReplaceAll(snippet, "<<<", "")
		line2 = truncate(snippet, width-4)
	} else {
		name := truncate(it.author, width-2)
		if it.author == timeline.Overall {
			name = styleOverall.Render(name)
		}
		line1 = name
		line2 = truncate(fmt.Sprintf("%d msgs, %d words, %d media", it.stats.Messages, it.stats.Words, it.stats.Media), width-4)
	}

	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}
	line2 = "    " + lipgloss.NewStyle().Foreground(colorDim).Render(line2)
	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := max(listHeight/linesPerItem, 1)
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
