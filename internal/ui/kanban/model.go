// Package kanban renders an arrangement as columns of ticket cards and
// tracks which card has focus.
package kanban

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/keys"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/theme"
)

// Model is the board view component.
type Model struct {
	keys *keys.KeyMap
	arr  board.Arrangement

	col    int   // focused column
	rows   []int // focused card per column
	scroll []int // first visible card per column
	offset int   // first visible column

	width  int
	height int
}

// New creates an empty board view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetArrangement replaces the displayed arrangement. Focus stays on the
// column with the same label when it still exists.
func (m *Model) SetArrangement(arr board.Arrangement) {
	prevLabel := ""
	if m.col < len(m.arr.Groups) {
		prevLabel = m.arr.Groups[m.col].Label
	}

	m.arr = arr
	m.rows = make([]int, len(arr.Groups))
	m.scroll = make([]int, len(arr.Groups))
	m.col = 0
	m.offset = 0
	for i, g := range arr.Groups {
		if g.Label == prevLabel {
			m.col = i
			break
		}
	}
	m.clampOffset()
}

// Arrangement returns the arrangement being displayed.
func (m Model) Arrangement() board.Arrangement {
	return m.arr
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.arr.Groups) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.col < len(m.arr.Groups)-1 {
			m.col++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.rows[m.col] < len(m.arr.Groups[m.col].Tickets)-1 {
			m.rows[m.col]++
		}
	case key.Matches(keyMsg, m.keys.Top):
		m.rows[m.col] = 0
	case key.Matches(keyMsg, m.keys.End):
		m.rows[m.col] = max(len(m.arr.Groups[m.col].Tickets)-1, 0)
	default:
		return m, nil
	}

	m.clampOffset()
	m.clampScroll()
	return m, nil
}

// Focus returns the focused column and card indexes.
func (m Model) Focus() (col, row int) {
	if len(m.arr.Groups) == 0 {
		return 0, 0
	}
	return m.col, m.rows[m.col]
}

// Selected returns the focused ticket, if the focused column has any.
func (m Model) Selected() (model.Ticket, bool) {
	if len(m.arr.Groups) == 0 {
		return model.Ticket{}, false
	}
	tickets := m.arr.Groups[m.col].Tickets
	row := m.rows[m.col]
	if row >= len(tickets) {
		return model.Ticket{}, false
	}
	return tickets[row], true
}

// View renders the visible window of columns.
func (m Model) View() string {
	if len(m.arr.Groups) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No tickets to show.\n\nPress r to refetch.")
	}

	end := min(m.offset+visibleColumns(m.width-2), len(m.arr.Groups))
	columns := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		columns = append(columns, renderColumn(m.arr.GroupBy, m.arr.Groups[i], columnState{
			focused:  i == m.col,
			selected: m.rows[i],
			scroll:   m.scroll[i],
			height:   m.height,
		}))
	}

	left, right := " ", " "
	if m.offset > 0 {
		left = theme.HelpStyle.Render("‹")
	}
	if end < len(m.arr.Groups) {
		right = theme.HelpStyle.Render("›")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		left, lipgloss.JoinHorizontal(lipgloss.Top, columns...), right)
}

// Position describes the focus for the status bar, e.g. "2/5 · 3/7".
func (m Model) Position() string {
	if len(m.arr.Groups) == 0 {
		return ""
	}
	n := len(m.arr.Groups[m.col].Tickets)
	if n == 0 {
		return fmt.Sprintf("%d/%d", m.col+1, len(m.arr.Groups))
	}
	return fmt.Sprintf("%d/%d · %d/%d", m.col+1, len(m.arr.Groups), m.rows[m.col]+1, n)
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
	m.clampScroll()
}

// clampOffset slides the column window so the focused column is visible.
func (m *Model) clampOffset() {
	// Two cells are reserved for the ‹ › indicators.
	n := visibleColumns(m.width - 2)
	if m.col < m.offset {
		m.offset = m.col
	}
	if m.col >= m.offset+n {
		m.offset = m.col - n + 1
	}
	m.offset = max(min(m.offset, len(m.arr.Groups)-n), 0)
}

// clampScroll keeps the focused card inside its column's window.
func (m *Model) clampScroll() {
	if len(m.arr.Groups) == 0 {
		return
	}
	limit := cardsPerColumn(m.height)
	if limit == 0 {
		return
	}
	row := m.rows[m.col]
	if row < m.scroll[m.col] {
		m.scroll[m.col] = row
	}
	if row >= m.scroll[m.col]+limit {
		m.scroll[m.col] = row - limit + 1
	}
}
