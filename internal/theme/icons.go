package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/model"
)

// Icon is a one-cell glyph with its color.
type Icon struct {
	Glyph string
	Color lipgloss.TerminalColor
}

// Render returns the glyph styled in the icon's color.
func (i Icon) Render() string {
	if i.Glyph == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(i.Color).Render(i.Glyph)
}

var (
	iconTodo       = Icon{Glyph: "○", Color: ColorWhite}
	iconInProgress = Icon{Glyph: "◐", Color: ColorYellow}
	iconBacklog    = Icon{Glyph: "◌", Color: ColorGray}
	iconDone       = Icon{Glyph: "●", Color: ColorMagenta}
	iconCancelled  = Icon{Glyph: "⊘", Color: ColorGray}

	iconUrgentColour = Icon{Glyph: "!", Color: ColorRed}
	iconUrgentGrey   = Icon{Glyph: "!", Color: ColorGray}
	iconHigh         = Icon{Glyph: "▮▮▮", Color: ColorGray}
	iconMedium       = Icon{Glyph: "▮▮▯", Color: ColorGray}
	iconLow          = Icon{Glyph: "▮▯▯", Color: ColorGray}
	iconNoPriority   = Icon{Glyph: "···", Color: ColorGray}

	// TagDot precedes a card's tag chip.
	TagDot = Icon{Glyph: "•", Color: ColorGreen}
)

var statusIcons = map[model.Status]Icon{
	model.StatusTodo:       iconTodo,
	model.StatusInProgress: iconInProgress,
	model.StatusBacklog:    iconBacklog,
	model.StatusDone:       iconDone,
	model.StatusCancelled:  iconCancelled,
}

// Cards show urgent tickets in colour; group headers use the grey variant.
var cardPriorityIcons = map[model.Priority]Icon{
	model.PriorityUrgent: iconUrgentColour,
	model.PriorityHigh:   iconHigh,
	model.PriorityMedium: iconMedium,
	model.PriorityLow:    iconLow,
	model.PriorityNone:   iconNoPriority,
}

var headerPriorityIcons = map[string]Icon{
	model.PriorityUrgent.Name(): iconUrgentGrey,
	model.PriorityHigh.Name():   iconHigh,
	model.PriorityMedium.Name(): iconMedium,
	model.PriorityLow.Name():    iconLow,
	model.PriorityNone.Name():   iconNoPriority,
}

// StatusIcon returns the icon for a ticket status. Statuses outside the
// canonical set use the Done icon.
func StatusIcon(status model.Status) Icon {
	if icon, ok := statusIcons[status]; ok {
		return icon
	}
	return iconDone
}

// PriorityIcon returns the card icon for a priority level. Levels outside
// 0..4 use the No Priority icon.
func PriorityIcon(p model.Priority) Icon {
	if icon, ok := cardPriorityIcons[p]; ok {
		return icon
	}
	return iconNoPriority
}

// GroupIcon returns the column header icon for a group label. User groups
// have no icon. Labels that are neither a status nor a priority name use
// the Done icon.
func GroupIcon(groupBy board.GroupKey, label string) (Icon, bool) {
	if groupBy == board.GroupByUser {
		return Icon{}, false
	}
	if icon, ok := statusIcons[model.Status(label)]; ok {
		return icon, true
	}
	if icon, ok := headerPriorityIcons[label]; ok {
		return icon, true
	}
	return iconDone, true
}
