package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/keys"
	"github.com/nhle/ticketboard/internal/model"
	appsync "github.com/nhle/ticketboard/internal/sync"
	"github.com/nhle/ticketboard/internal/theme"
	"github.com/nhle/ticketboard/internal/ui"
	"github.com/nhle/ticketboard/internal/ui/detail"
	"github.com/nhle/ticketboard/internal/ui/display"
	helpview "github.com/nhle/ticketboard/internal/ui/help"
	"github.com/nhle/ticketboard/internal/ui/kanban"
)

// Options holds the initial arrangement for a session.
type Options struct {
	GroupBy board.GroupKey
	SortBy  board.SortKey
}

// Model is the root Bubble Tea model. It owns the fetched snapshot and the
// current grouping and ordering, and re-arranges whenever either changes.
type Model struct {
	layout   ui.Layout
	keys     *keys.KeyMap
	fetcher  *appsync.Fetcher
	log      *zap.Logger
	snapshot *model.Snapshot
	groupBy  board.GroupKey
	sortBy   board.SortKey

	columns  kanban.Model
	menu     display.Model
	detail   detail.Model
	helpView helpview.Model
	hints    help.Model
	spinner  spinner.Model

	showDetail bool
	lastErr    error
	lastFetch  time.Time
	ready      bool
}

// New creates a new root application model around fetcher.
func New(fetcher *appsync.Fetcher, opts Options, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	k := keys.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorWhite)

	st := fetcher.Status()
	m := Model{
		keys:     k,
		fetcher:  fetcher,
		log:      log.Named("app"),
		snapshot: model.EmptySnapshot(),
		groupBy:  opts.GroupBy,
		sortBy:   opts.SortBy,
		columns:  kanban.New(k, 80, 22),
		menu:     display.New(k, opts.GroupBy, opts.SortBy),
		detail:   detail.New(k, 80, 22),
		helpView: helpview.New(k, fmt.Sprintf("%s %s", st.SourceType, st.Location), 80, 22),
		hints:    help.New(),
		spinner:  sp,
	}
	m.rearrange()
	return m
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.refetch()
}

// Update handles messages and dispatches to the focused component.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.columns.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		m.detail.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		m.helpView.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		m.hints.Width = msg.Width
		m.menu.SetOrigin(0, m.layout.HeaderHeight)
		return m, nil

	case spinner.TickMsg:
		if m.fetcher.Status().State != appsync.FetchRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case appsync.SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.lastFetch = time.Now()
		}
		m.rearrange()
		return m, nil

	case detail.BackMsg:
		m.showDetail = false
		return m, nil

	case display.ChangedMsg:
		m.groupBy = msg.GroupBy
		m.sortBy = msg.SortBy
		m.rearrange()
		return m, nil

	case tea.MouseMsg:
		if m.menu.IsOpen() {
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.helpView.Visible() {
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	if m.menu.IsOpen() {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	if m.showDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpView.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Display):
		m.menu.SetSelection(m.groupBy, m.sortBy)
		m.menu.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.CycleGroup):
		m.groupBy = m.groupBy.Next()
		m.rearrange()
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.sortBy = m.sortBy.Next()
		m.rearrange()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refetch()

	case key.Matches(msg, m.keys.Select):
		t, ok := m.columns.Selected()
		if !ok {
			return m, nil
		}
		var assignee *model.User
		if u, ok := m.snapshot.User(t.UserID); ok {
			assignee = &u
		}
		m.detail.Show(t, assignee)
		m.showDetail = true
		return m, nil
	}

	var cmd tea.Cmd
	m.columns, cmd = m.columns.Update(msg)
	return m, cmd
}

// refetch starts a fetch unless one is already outstanding.
func (m Model) refetch() tea.Cmd {
	cmd := m.fetcher.Fetch()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// rearrange recomputes the board from the snapshot and current keys.
func (m *Model) rearrange() {
	arr := board.Arrange(m.snapshot.Tickets, m.snapshot.Users, m.groupBy, m.sortBy)
	m.columns.SetArrangement(arr)
	m.menu.SetSelection(m.groupBy, m.sortBy)
	m.log.Debug("arranged",
		zap.String("group_by", string(m.groupBy)),
		zap.String("sort_by", string(m.sortBy)),
		zap.Int("groups", len(arr.Groups)),
		zap.Int("tickets", arr.Len()),
	)
}

// Arrangement returns what the board currently shows.
func (m Model) Arrangement() board.Arrangement {
	return m.columns.Arrangement()
}

// View renders the full frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := fmt.Sprintf("Ticketboard · %s · %s", m.groupBy.Label(), m.sortBy.Label())
	header := m.layout.RenderHeader(title, m.fetchStatus())
	statusBar := m.layout.RenderStatusBar(m.statusHints(), m.statusNote())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

func (m Model) renderContent() string {
	height := m.layout.ContentHeight()
	if m.helpView.Visible() {
		return m.helpView.View()
	}
	content := m.columns.View()
	if m.showDetail {
		content = m.detail.View()
	}
	if m.menu.IsOpen() {
		content = lipgloss.JoinVertical(lipgloss.Left, m.menu.View(), content)
	}
	return lipgloss.NewStyle().
		Width(m.layout.ContentWidth()).
		Height(height).
		MaxHeight(height).
		Render(content)
}

func (m Model) fetchStatus() string {
	switch st := m.fetcher.Status(); st.State {
	case appsync.FetchRunning:
		return m.spinner.View() + " fetching"
	case appsync.FetchError:
		return "fetch failed"
	default:
		return fmt.Sprintf("%d tickets", len(m.snapshot.Tickets))
	}
}

func (m Model) statusHints() string {
	if m.lastErr != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("%v · showing empty board · r to retry", m.lastErr))
	}
	return m.hints.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) statusNote() string {
	note := m.columns.Position()
	if !m.lastFetch.IsZero() {
		if note != "" {
			note += " · "
		}
		note += "fetched " + m.lastFetch.Format("15:04:05")
	}
	return note
}
