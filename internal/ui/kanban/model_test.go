package kanban

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/keys"
	"github.com/nhle/ticketboard/tests/testutil"
)

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
	return m
}

func newBoard(t *testing.T, groupBy board.GroupKey, width int) Model {
	t.Helper()
	snap := testutil.SampleSnapshot()
	m := New(keys.DefaultKeyMap(), width, 40)
	m.SetArrangement(board.Arrange(snap.Tickets, snap.Users, groupBy, board.SortByPriority))
	return m
}

func TestModel_Navigation(t *testing.T) {
	m := newBoard(t, board.GroupByStatus, 400)

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "CAM-1", sel.ID, "first Todo card")

	m = press(m, "l")
	sel, _ = m.Selected()
	assert.Equal(t, "CAM-2", sel.ID, "In progress sorted by priority")

	m = press(m, "j")
	sel, _ = m.Selected()
	assert.Equal(t, "CAM-3", sel.ID)

	m = press(m, "j")
	col, row := m.Focus()
	assert.Equal(t, 1, col)
	assert.Equal(t, 1, row, "down stops at the last card")

	m = press(m, "h", "h")
	col, _ = m.Focus()
	assert.Equal(t, 0, col, "left stops at the first column")
}

func TestModel_EmptyColumnHasNoSelection(t *testing.T) {
	m := newBoard(t, board.GroupByStatus, 400)

	// Todo, In progress, Backlog, Done, Cancelled
	m = press(m, "l", "l", "l", "l")

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), EmptyColumnText)
	assert.Equal(t, "5/5", m.Position())
}

func TestModel_FocusFollowsLabelAcrossArrangements(t *testing.T) {
	m := newBoard(t, board.GroupByStatus, 400)
	m = press(m, "l", "l")

	snap := testutil.SampleSnapshot()
	m.SetArrangement(board.Arrange(snap.Tickets, snap.Users, board.GroupByStatus, board.SortByTitle))

	col, row := m.Focus()
	assert.Equal(t, 2, col, "Backlog keeps focus")
	assert.Equal(t, 0, row)
}

func TestModel_ColumnWindowFollowsFocus(t *testing.T) {
	// Room for a single column.
	m := newBoard(t, board.GroupByStatus, ColumnWidth+columnChrome+2)
	assert.Contains(t, m.View(), "Todo")

	m = press(m, "l", "l", "l")
	view := m.View()
	assert.Contains(t, view, "Done")
	assert.NotContains(t, view, "Todo")
}

func TestModel_EmptyArrangement(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetArrangement(board.Arrange(nil, nil, board.GroupByUser, board.SortByPriority))

	m = press(m, "l", "j")
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No tickets")
	assert.Empty(t, m.Position())
}

func TestRender_HeadersAndCards(t *testing.T) {
	snap := testutil.SampleSnapshot()
	arr := board.Arrange(snap.Tickets, snap.Users, board.GroupByUser, board.SortByPriority)

	out := Render(arr, 0, 0)

	for _, label := range []string{"Anoop Sharma", "Yogesh", board.UnknownLabel} {
		assert.Contains(t, out, label)
	}
	for _, tk := range snap.Tickets {
		assert.Contains(t, out, tk.ID)
	}
	assert.Contains(t, out, "Feature request")
}

func TestRender_LimitsColumnsToWidth(t *testing.T) {
	snap := testutil.SampleSnapshot()
	arr := board.Arrange(snap.Tickets, snap.Users, board.GroupByStatus, board.SortByPriority)

	out := Render(arr, ColumnWidth+columnChrome, 0)

	assert.Contains(t, out, "Todo")
	assert.NotContains(t, out, "Cancelled")
	assert.Contains(t, out, "4 more column(s) not shown")
}

func TestCardsPerColumn(t *testing.T) {
	assert.Equal(t, 0, cardsPerColumn(0))
	assert.Equal(t, 1, cardsPerColumn(3))
	assert.Equal(t, 2, cardsPerColumn(13))
}
