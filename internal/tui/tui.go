// Package tui is the interactive chat dashboard: authors (or search hits) on
// the left, the rendered report (or conversation) on the right.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
	"github.com/Zuo-Peng/chatlens/internal/search"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

const debounceDelay = 200 * time.Millisecond

type tuiMode int

const (
	modeUsers tuiMode = iota
	modeSearch
)

// Selection is what the user picked before leaving the dashboard.
type Selection struct {
	Author string
	Report string // plain report text, set when an author was picked
	Record int    // timeline index, -1 unless a search hit was picked
}

// message types

type searchResultMsg struct {
	query   string
	results []search.Result
}

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	engine      *analysis.Engine
	mode        tuiMode
	label       sentiment.Label
	query       string
	filter      string
	users       []item
	items       []item
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // avoids duplicate renders
	plain       string // plain text of the report being shown
	width       int
	height      int
	ready       bool
	quitting    bool
	selection   *Selection
}

func initialModel(e *analysis.Engine, author string, label sentiment.Label) model {
	ti := textinput.New()
	ti.Placeholder = "Filter users..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	tl := e.Timeline()
	var users []item
	for _, u := range e.Users() {
		users = append(users, item{author: u, stats: analysis.FetchStats(tl, u, e.Options().MediaPlaceholder)})
	}

	m := model{
		engine:      e,
		label:       label,
		users:       users,
		items:       users,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
	for i, u := range users {
		if u.author == author {
			m.cursor = i
		}
	}
	return m
}

// Run starts the dashboard and blocks until it exits. Picking an author
// copies their plain report to the clipboard; picking a search hit is
// returned so the caller can open it.
func Run(e *analysis.Engine, author string, label sentiment.Label) (*Selection, error) {
	m := initialModel(e, author, label)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selection != nil && fm.selection.Report != "" {
		copyReport(fm.selection)
	}
	return fm.selection, nil
}

func copyReport(s *Selection) {
	if err := clipboard.WriteAll(s.Report); err != nil {
		fmt.Print(s.Report)
		return
	}
	fmt.Printf("Copied %s report to clipboard (%d bytes)\n", s.Author, len(s.Report))
}

// Init loads the preview for the initial selection.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCurrentPreview())
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		// Re-render preview at the new width
		m.previewKey = ""
		cmds = append(cmds, m.loadCurrentPreview())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if it, ok := m.current(); ok {
				m.selection = m.selectItem(it)
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Mode):
			m.switchMode()
			return m, m.loadCurrentPreview()

		case key.Matches(msg, keys.Sentiment):
			m.label = nextLabel(m.label)
			if m.mode == modeUsers {
				return m, m.loadCurrentPreview()
			}
			return m, m.doSearch(m.query)

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		value := m.filterInput.Value()
		if m.mode == modeUsers {
			if value != m.filter {
				m.filter = value
				m.applyUserFilter()
				cmds = append(cmds, m.loadCurrentPreview())
			}
		} else if value != m.query {
			m.query = value
			cmds = append(cmds, m.scheduleDebouncedSearch(value))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.items) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.panelHeight() / linesPerItem
			maxOffset := max(len(m.items)-visibleItems, 0)
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.items) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case debounceTickMsg:
		// Only fire search if query hasn't changed since debounce was scheduled
		if msg.query == m.query && m.mode == modeSearch {
			cmds = append(cmds, m.doSearch(msg.query))
		}
		return m, tea.Batch(cmds...)

	case searchResultMsg:
		// Only apply if this result matches current query
		if msg.query != m.query || m.mode != modeSearch {
			return m, nil
		}
		m.items = m.items[:0:0]
		for i := range msg.results {
			m.items = append(m.items, item{result: &msg.results[i]})
		}
		m.cursor = 0
		m.listOffset = 0
		if len(m.items) > 0 {
			cmds = append(cmds, m.loadCurrentPreview())
		} else {
			m.preview.SetContent("")
			m.previewKey = ""
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		if msg.key == m.previewKey {
			// Already showing this preview, skip
			return m, nil
		}
		// Check if this preview is still the one we want
		if msg.key != m.wantKey() {
			return m, nil // stale preview
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			if msg.hitLine > 0 {
				m.preview.SetYOffset(msg.hitLine)
			} else {
				m.preview.GotoTop()
			}
		}
		m.plain = msg.plain
		m.previewKey = msg.key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m model) current() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item{}, false
	}
	return m.items[m.cursor], true
}

func (m model) selectItem(it item) *Selection {
	if it.result != nil {
		return &Selection{Author: it.result.Author, Record: it.result.Index}
	}
	return &Selection{Author: it.author, Report: m.plain, Record: -1}
}

func (m *model) switchMode() {
	m.cursor = 0
	m.listOffset = 0
	m.previewKey = ""
	if m.mode == modeUsers {
		m.mode = modeSearch
		m.filterInput.Placeholder = "Search messages..."
		m.filterInput.SetValue(m.query)
		m.items = nil
		m.preview.SetContent("")
		return
	}
	m.mode = modeUsers
	m.filterInput.Placeholder = "Filter users..."
	m.filterInput.SetValue(m.filter)
	m.applyUserFilter()
}

func (m *model) applyUserFilter() {
	f := strings.ToLower(strings.TrimSpace(m.filter))
	m.items = m.items[:0:0]
	for _, u := range m.users {
		if f == "" || strings.Contains(strings.ToLower(u.author), f) {
			m.items = append(m.items, u)
		}
	}
	m.cursor = 0
	m.listOffset = 0
}

func nextLabel(l sentiment.Label) sentiment.Label {
	switch l {
	case "":
		return sentiment.Positive
	case sentiment.Positive:
		return sentiment.Neutral
	case sentiment.Neutral:
		return sentiment.Negative
	}
	return ""
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 30
	}
	// 30% for list, minus border padding
	return max(m.width*30/100-4, 20)
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 70
	}
	// 70% for preview, minus border padding
	return max(m.width*70/100-4, 20)
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	return max(m.height-6, 5)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + (relY / linesPerItem)
	}

	if x > listBoxRight+1 {
		return regionPreview, -1
	}

	return regionNone, -1
}

func (m model) statusBar() string {
	var parts []string
	if m.mode == modeUsers {
		parts = append(parts, fmt.Sprintf("%d users", len(m.items)))
		parts = append(parts, "Enter copy report")
	} else {
		parts = append(parts, fmt.Sprintf("%d results", len(m.items)))
		parts = append(parts, "Enter open in editor")
	}
	label := "all"
	if m.label != "" {
		label = string(m.label)
	}
	parts = append(parts, "C-s sentiment: "+label)
	parts = append(parts, "Tab users/search")
	parts = append(parts, "C-u/C-d preview")
	parts = append(parts, "Esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) doSearch(query string) tea.Cmd {
	tl := m.engine.Timeline()
	opts := search.Options{Query: query, Sentiment: m.label, Limit: 200}
	return func() tea.Msg {
		if strings.TrimSpace(query) == "" {
			return searchResultMsg{query: query}
		}
		return searchResultMsg{query: query, results: search.Search(tl, opts)}
	}
}

func (m model) scheduleDebouncedSearch(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

// wantKey is the preview key for the current selection.
func (m model) wantKey() string {
	it, ok := m.current()
	if !ok {
		return ""
	}
	if it.result != nil {
		return recordKey(it.result.Index)
	}
	return reportKey(it.author, m.label)
}

func (m model) loadCurrentPreview() tea.Cmd {
	it, ok := m.current()
	if !ok {
		return nil
	}
	if m.wantKey() == m.previewKey {
		return nil // already showing this preview
	}
	if it.result != nil {
		return loadRecordCmd(m.engine, *it.result, m.query, m.previewWidth())
	}
	author := it.author
	if author == "" {
		author = timeline.Overall
	}
	return loadReportCmd(m.engine, author, m.label, m.previewWidth())
}
