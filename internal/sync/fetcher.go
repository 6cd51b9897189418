package sync

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
)

// FetchState represents the current state of the snapshot fetch.
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchRunning
	FetchError
)

// String returns a short label for the status bar.
func (s FetchState) String() string {
	switch s {
	case FetchRunning:
		return "fetching"
	case FetchError:
		return "error"
	default:
		return "idle"
	}
}

// FetchStatus holds the fetch state for the configured source.
type FetchStatus struct {
	SourceType  source.SourceType
	Location    string
	State       FetchState
	LastSuccess time.Time
	Error       error
}

// SnapshotMsg is a tea.Msg sent when a fetch completes. Snapshot is never
// nil: a failed fetch carries an empty snapshot alongside Err.
type SnapshotMsg struct {
	Snapshot *model.Snapshot
	Err      error
	Duration time.Duration
}

// ErrFetchInProgress is returned by Run while another fetch is outstanding.
var ErrFetchInProgress = errors.New("fetch already in progress")

// defaultFetchTimeout is used when the configured timeout is not positive.
const defaultFetchTimeout = 30 * time.Second

// Fetcher performs one snapshot fetch at a time against a single source.
type Fetcher struct {
	src     source.Source
	timeout time.Duration
	log     *zap.Logger

	mu      gosync.Mutex
	running bool
	status  FetchStatus
}

// New creates a Fetcher for src.
func New(src source.Source, timeout time.Duration, log *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		src:     src,
		timeout: timeout,
		log:     log.Named("fetch"),
		status: FetchStatus{
			SourceType: src.Type(),
			Location:   src.Describe(),
			State:      FetchIdle,
		},
	}
}

// Fetch returns a tea.Cmd that fetches a snapshot and yields a SnapshotMsg.
// It returns nil while a previous fetch is still outstanding.
func (f *Fetcher) Fetch() tea.Cmd {
	if !f.begin() {
		return nil
	}
	return func() tea.Msg {
		return f.fetch(context.Background())
	}
}

// Run fetches synchronously. It is used by the one-shot commands.
func (f *Fetcher) Run(ctx context.Context) SnapshotMsg {
	if !f.begin() {
		return SnapshotMsg{Snapshot: model.EmptySnapshot(), Err: ErrFetchInProgress}
	}
	return f.fetch(ctx)
}

// Status returns the current fetch status.
func (f *Fetcher) Status() FetchStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Fetcher) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return false
	}
	f.running = true
	f.status.State = FetchRunning
	return true
}

func (f *Fetcher) fetch(parent context.Context) SnapshotMsg {
	ctx, cancel := context.WithTimeout(parent, f.timeout)
	defer cancel()

	start := time.Now()
	snap, err := f.src.FetchSnapshot(ctx)
	elapsed := time.Since(start)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false

	if err != nil {
		f.status.State = FetchError
		f.status.Error = err
		f.log.Error("fetch failed, showing empty board",
			zap.String("source", string(f.status.SourceType)),
			zap.String("location", f.status.Location),
			zap.Bool("auth", source.IsAuthError(err)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return SnapshotMsg{Snapshot: model.EmptySnapshot(), Err: err, Duration: elapsed}
	}

	if snap == nil {
		snap = model.EmptySnapshot()
	}
	f.status.State = FetchIdle
	f.status.Error = nil
	f.status.LastSuccess = time.Now()
	f.log.Info("fetch complete",
		zap.String("source", string(f.status.SourceType)),
		zap.Int("tickets", len(snap.Tickets)),
		zap.Int("users", len(snap.Users)),
		zap.Duration("elapsed", elapsed),
	)
	return SnapshotMsg{Snapshot: snap, Duration: elapsed}
}
