package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/ticketboard/internal/source"
)

func TestSource_FetchSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"tickets": [{"id": "CAM-1", "title": "t", "status": "Done", "priority": 0, "userId": "usr-1"}],
		"users": [{"id": "usr-1", "name": "Anoop"}]
	}`), 0o644))

	s := New(path, nil)
	snap, err := s.FetchSnapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Tickets, 1)
	assert.Len(t, snap.Users, 1)
	assert.False(t, snap.FetchedAt.IsZero())
	assert.Equal(t, path, s.Describe())
}

func TestSource_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"), nil)

	_, err := s.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.True(t, source.IsFetchError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("irrelevant.json", nil).FetchSnapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
