package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ticketboard/internal/keys"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/theme"
)

// BackMsg signals the parent to return to the board.
type BackMsg struct{}

// Model is the ticket detail panel.
type Model struct {
	ticket   *model.Ticket
	user     *model.User
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, max(height-2, 1))
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Show loads a ticket and its assignee, if known, into the panel.
func (m *Model) Show(t model.Ticket, user *model.User) {
	m.ticket = &t
	m.user = user
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Ticket returns the ticket being shown.
func (m Model) Ticket() (model.Ticket, bool) {
	if m.ticket == nil {
		return model.Ticket{}, false
	}
	return *m.ticket, true
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Select) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.ticket == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No ticket selected")
	}

	footer := theme.HelpStyle.Render("esc back · j/k scroll")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), "", footer)
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.ticket == nil {
		return ""
	}
	t := m.ticket

	var sections []string

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Width(max(min(m.width-4, 80), 10))
	sections = append(sections, theme.TicketIDStyle.Render(t.ID))
	sections = append(sections, titleStyle.Render(t.Title))

	status := string(t.Status)
	if status == "" {
		status = "(none)"
	}
	priority := t.Priority.Name()
	if priority == "" {
		priority = fmt.Sprintf("Unknown (%d)", t.Priority)
	}
	statusBadge := theme.StatusIcon(t.Status).Render() + " " +
		theme.StatusStyle(t.Status).Render(status)
	priBadge := theme.PriorityIcon(t.Priority).Render() + " " +
		theme.PriorityStyle(t.Priority).Render(priority)

	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top, statusBadge, "   ", priBadge,
	))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) string {
		return fmt.Sprintf("%s %s", metaStyle.Render(fmt.Sprintf("%-9s", label+":")), valStyle.Render(value))
	}

	switch {
	case m.user != nil:
		availability := "away"
		if m.user.Available {
			availability = "available"
		}
		sections = append(sections, row("Assignee", fmt.Sprintf("%s (%s)", m.user.Name, availability)))
	case t.UserID != "":
		sections = append(sections, row("Assignee", t.UserID+" (unknown user)"))
	default:
		sections = append(sections, row("Assignee", "unassigned"))
	}

	if len(t.Tags) > 0 {
		chips := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			chips = append(chips, theme.TagStyle.Render(theme.TagDot.Render()+" "+tag))
		}
		sections = append(sections, row("Tags", strings.Join(chips, " ")))
	}

	return strings.Join(sections, "\n")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	if m.ticket != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
