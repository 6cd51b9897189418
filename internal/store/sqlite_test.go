package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/ticketboard/internal/board"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
	"github.com/nhle/ticketboard/internal/store"
	"github.com/nhle/ticketboard/tests/testutil"
)

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	want := testutil.SampleSnapshot()

	require.NoError(t, s.SaveSnapshot(ctx, want, "http://example.test"))

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Tickets, got.Tickets)
	assert.Equal(t, want.Users, got.Users)
	assert.WithinDuration(t, want.FetchedAt, got.FetchedAt, time.Second)
}

func TestSQLiteStore_SaveReplacesPrevious(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, testutil.SampleSnapshot(), "first"))

	second := &model.Snapshot{
		Tickets:   []model.Ticket{{ID: "NEW-1", Title: "only one", Status: model.StatusTodo}},
		FetchedAt: time.Now(),
	}
	require.NoError(t, s.SaveSnapshot(ctx, second, "second"))

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NEW-1"}, []string{got.Tickets[0].ID})
	assert.Len(t, got.Tickets, 1)
	assert.Empty(t, got.Users)
}

func TestSQLiteStore_DuplicateIDsRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	want := &model.Snapshot{
		Tickets: []model.Ticket{
			{ID: "T1", Title: "first copy", Status: model.StatusTodo, UserID: "u"},
			{ID: "T1", Title: "second copy", Status: model.StatusDone, UserID: "u"},
		},
		Users: []model.User{
			{ID: "u", Name: "First"},
			{ID: "u", Name: "Second"},
		},
		FetchedAt: time.Now(),
	}
	before := board.Arrange(want.Tickets, want.Users, board.GroupByUser, board.SortByPriority)

	require.NoError(t, s.SaveSnapshot(ctx, want, "dupes"))
	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Tickets, got.Tickets)
	assert.Equal(t, want.Users, got.Users)

	after := board.Arrange(got.Tickets, got.Users, board.GroupByUser, board.SortByPriority)
	assert.Equal(t, []string{"First"}, after.Labels())
	assert.Equal(t, before.Labels(), after.Labels())
	assert.Equal(t, 2, after.Len())
}

func TestSQLiteStore_LoadWithoutSnapshot(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, store.ErrNoSnapshot)
}

func TestSQLiteStore_ReopenKeepsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(ctx, testutil.SampleSnapshot(), "origin"))
	require.NoError(t, s.Close())

	reopened, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Tickets, len(testutil.SampleSnapshot().Tickets))
}

func TestSource_WrapsStoreErrors(t *testing.T) {
	src := store.NewSource(testutil.NewTestStore(t))

	_, err := src.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.True(t, source.IsFetchError(err))
	assert.ErrorIs(t, err, store.ErrNoSnapshot)
	assert.Equal(t, source.SourceTypeSQLite, src.Type())
	assert.Equal(t, ":memory:", src.Describe())
}
