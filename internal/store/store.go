package store

import (
	"context"

	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
)

// SnapshotStore persists one snapshot at a time. Saving replaces whatever
// was stored before; tickets and users come back in the order they were
// saved.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap *model.Snapshot, origin string) error
	LoadSnapshot(ctx context.Context) (*model.Snapshot, error)
	Close() error
}

// Source adapts a SQLiteStore to source.Source so an exported snapshot can
// back the board.
type Source struct {
	store *SQLiteStore
}

// NewSource wraps s as a snapshot source.
func NewSource(s *SQLiteStore) *Source {
	return &Source{store: s}
}

// Type returns source.SourceTypeSQLite.
func (s *Source) Type() source.SourceType { return source.SourceTypeSQLite }

// Describe returns the database path.
func (s *Source) Describe() string { return s.store.path }

// FetchSnapshot loads the stored snapshot.
func (s *Source) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, &source.FetchError{
			SourceType: source.SourceTypeSQLite,
			Location:   s.store.path,
			Err:        err,
		}
	}
	return snap, nil
}
