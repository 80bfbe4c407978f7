package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chatlens/internal/sentiment"
)

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorPositive  = lipgloss.Color("10")  // bright green
	colorNegative  = lipgloss.Color("9")   // bright red
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// List items
	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleOverall = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)

func sentimentStyle(l sentiment.Label) lipgloss.Style {
	switch l {
	case sentiment.Positive:
		return lipgloss.NewStyle().Foreground(colorPositive)
	case sentiment.Negative:
		return lipgloss.NewStyle().Foreground(colorNegative)
	}
	return lipgloss.NewStyle().Foreground(colorDim)
}
