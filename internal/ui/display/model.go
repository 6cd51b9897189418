// Package display implements the Display menu that picks the board's
// grouping and ordering.
package display

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/keys"
	"github.com/nhle/ticketboard/internal/theme"
)

// Row identifies a menu row.
type Row int

const (
	RowGrouping Row = iota
	RowOrdering
	rowCount
)

// ChangedMsg is sent when the user picks a new grouping or ordering.
type ChangedMsg struct {
	GroupBy board.GroupKey
	SortBy  board.SortKey
}

// Model is the Display menu. It owns its open/closed state.
type Model struct {
	keys    *keys.KeyMap
	open    bool
	row     Row
	groupBy board.GroupKey
	sortBy  board.SortKey

	// Screen position of the menu's top-left corner, used to tell clicks
	// inside the box from clicks outside it.
	x, y int
}

// New creates a closed menu showing the given selection.
func New(k *keys.KeyMap, groupBy board.GroupKey, sortBy board.SortKey) Model {
	return Model{
		keys:    k,
		groupBy: groupBy,
		sortBy:  sortBy,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Toggle opens a closed menu and closes an open one.
func (m *Model) Toggle() {
	m.open = !m.open
	if m.open {
		m.row = RowGrouping
	}
}

// Close hides the menu.
func (m *Model) Close() {
	m.open = false
}

// IsOpen reports whether the menu is showing.
func (m Model) IsOpen() bool {
	return m.open
}

// Selection returns the current grouping and ordering.
func (m Model) Selection() (board.GroupKey, board.SortKey) {
	return m.groupBy, m.sortBy
}

// SetSelection updates the options shown without emitting ChangedMsg.
func (m *Model) SetSelection(groupBy board.GroupKey, sortBy board.SortKey) {
	m.groupBy = groupBy
	m.sortBy = sortBy
}

// SetOrigin records where the menu is drawn on screen.
func (m *Model) SetOrigin(x, y int) {
	m.x = x
	m.y = y
}

// Update handles input while the menu is open. Keys the menu does not use
// and clicks outside its box close it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.row > RowGrouping {
			m.row--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.row < rowCount-1 {
			m.row++
		}
		return m, nil
	case key.Matches(msg, m.keys.Left):
		return m.change(-1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Select):
		return m.change(1)
	}

	m.open = false
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	w, h := lipgloss.Size(m.View())
	inside := msg.X >= m.x && msg.X < m.x+w && msg.Y >= m.y && msg.Y < m.y+h
	if !inside {
		m.open = false
		return m, nil
	}

	// Row lines start below the top border and the title.
	row := Row(msg.Y - m.y - 2)
	if row < RowGrouping || row >= rowCount {
		return m, nil
	}
	m.row = row
	return m.change(1)
}

// change steps the focused row's option by delta, then closes the menu.
func (m Model) change(delta int) (Model, tea.Cmd) {
	switch m.row {
	case RowGrouping:
		if delta < 0 {
			m.groupBy = m.groupBy.Prev()
		} else {
			m.groupBy = m.groupBy.Next()
		}
	case RowOrdering:
		if delta < 0 {
			m.sortBy = m.sortBy.Prev()
		} else {
			m.sortBy = m.sortBy.Next()
		}
	}
	m.open = false

	changed := ChangedMsg{GroupBy: m.groupBy, SortBy: m.sortBy}
	return m, func() tea.Msg { return changed }
}

// View renders the menu box. It renders even when closed so callers can
// measure it.
func (m Model) View() string {
	title := theme.ColumnHeaderStyle.Render("Display")
	rows := []string{
		m.renderRow(RowGrouping, "Grouping", m.groupBy.Label()),
		m.renderRow(RowOrdering, "Ordering", m.sortBy.Label()),
	}
	return theme.MenuStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title}, rows...)...))
}

func (m Model) renderRow(row Row, name, value string) string {
	line := fmt.Sprintf("%-10s ‹ %-8s ›", name, value)
	if row == m.row {
		return theme.MenuFocusStyle.Render("▸ " + line)
	}
	return "  " + line
}
