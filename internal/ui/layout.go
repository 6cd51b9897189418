package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ticketboard/internal/theme"
)

// Layout manages the header / board / status bar frame dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the board, accounting for
// the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 0)
}

// RenderHeader renders the top bar: title on the left, fetch status on
// the right.
func (l Layout) RenderHeader(title string, fetchStatus string) string {
	return spread(theme.HeaderStyle, l.Width, title, fetchStatus)
}

// RenderStatusBar renders the bottom bar with keyboard hints on the left
// and an optional note (such as the last fetch time) on the right.
func (l Layout) RenderStatusBar(hints string, note string) string {
	return spread(theme.StatusBarStyle, l.Width, hints, note)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// spread renders left and right inside one bar of the given width,
// filling the gap with the bar's background.
func spread(style lipgloss.Style, width int, left, right string) string {
	leftRendered := style.Render(left)
	rightRendered := ""
	if right != "" {
		rightRendered = style.Render(right)
	}

	gap := width -
		lipgloss.Width(leftRendered) -
		lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftRendered,
		filler,
		rightRendered,
	)
}
