package kanban

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/theme"
)

const (
	// ColumnWidth is the content width of one column, borders excluded.
	ColumnWidth = 32

	// CardHeight is the number of lines one card takes, spacing included.
	CardHeight = 4

	// columnChrome is border (2) plus padding (2) around a column's content.
	columnChrome = 4

	// columnOverhead is top and bottom border, the header, and the
	// indicator line above the cards.
	columnOverhead = 4

	// EmptyColumnText is shown in a column that has no tickets.
	EmptyColumnText = "No tickets"
)

// Render draws the whole arrangement without focus. A zero height lets
// every column grow to fit its cards.
func Render(arr board.Arrangement, width, height int) string {
	if len(arr.Groups) == 0 {
		return theme.DimmedStyle.Render(EmptyColumnText)
	}

	visible := len(arr.Groups)
	if width > 0 {
		visible = min(visibleColumns(width), len(arr.Groups))
	}

	columns := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		columns = append(columns, renderColumn(arr.GroupBy, arr.Groups[i], columnState{
			selected: -1,
			height:   height,
		}))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	if hidden := len(arr.Groups) - visible; hidden > 0 {
		out = lipgloss.JoinVertical(lipgloss.Left, out,
			theme.HelpStyle.Render(fmt.Sprintf("%d more column(s) not shown", hidden)))
	}
	return out
}

// visibleColumns returns how many columns fit in width, at least one.
func visibleColumns(width int) int {
	return max(width/(ColumnWidth+columnChrome), 1)
}

// cardsPerColumn returns how many cards fit in a column of the given
// total height. Zero means unlimited.
func cardsPerColumn(height int) int {
	if height <= 0 {
		return 0
	}
	return max((height-columnOverhead-1)/CardHeight, 1)
}

type columnState struct {
	focused  bool
	selected int
	scroll   int
	height   int
}

func renderColumn(groupBy board.GroupKey, g board.Group, st columnState) string {
	lines := []string{renderColumnHeader(groupBy, g)}

	if len(g.Tickets) == 0 {
		lines = append(lines, "", theme.DimmedStyle.Render(EmptyColumnText))
	} else {
		limit := cardsPerColumn(st.height)
		end := len(g.Tickets)
		if limit > 0 {
			end = min(st.scroll+limit, len(g.Tickets))
		}

		if st.scroll > 0 {
			lines = append(lines, theme.HelpStyle.Render(fmt.Sprintf("▲ %d more", st.scroll)))
		} else {
			lines = append(lines, "")
		}

		for i := st.scroll; i < end; i++ {
			lines = append(lines, renderCard(g.Tickets[i], st.focused && i == st.selected), "")
		}

		if rest := len(g.Tickets) - end; rest > 0 {
			lines = append(lines, theme.HelpStyle.Render(fmt.Sprintf("▼ %d more", rest)))
		}
	}

	style := theme.ColumnStyle
	if st.focused {
		style = theme.FocusedColumnStyle
	}
	style = style.Width(ColumnWidth + 2)
	if st.height > 0 {
		// Height sets the content area, borders are added outside it.
		style = style.Height(max(st.height-2, 1)).MaxHeight(st.height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderColumnHeader(groupBy board.GroupKey, g board.Group) string {
	label := theme.ColumnHeaderStyle.Render(truncate(g.Label, ColumnWidth-6))
	count := theme.CountStyle.Render(fmt.Sprintf("%d", len(g.Tickets)))
	if icon, ok := theme.GroupIcon(groupBy, g.Label); ok {
		return icon.Render() + " " + label + " " + count
	}
	return label + " " + count
}

func renderCard(t model.Ticket, selected bool) string {
	// Card width; one cell of it is the left padding.
	inner := ColumnWidth - 2
	text := inner - 1

	id := theme.TicketIDStyle.Render(truncate(t.ID, text))
	title := theme.StatusIcon(t.Status).Render() + " " + truncate(t.Title, text-2)

	meta := theme.PriorityIcon(t.Priority).Render()
	if tag := t.Tag(); tag != "" {
		chip := theme.TagDot.Render() + " " + truncate(tag, text-9)
		meta += " " + theme.TagStyle.Render(chip)
	}

	style := theme.CardStyle
	if selected {
		style = theme.SelectedCardStyle
	}
	return style.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, id, title, meta))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
