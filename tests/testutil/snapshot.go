package testutil

import (
	"context"
	"time"

	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
)

// SampleSnapshot returns a small snapshot shaped like the real endpoint's
// data: every canonical status except Cancelled, one ticket per priority,
// and one ticket whose user does not exist.
func SampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Tickets: []model.Ticket{
			{ID: "CAM-1", Title: "Update user profile page UI", Status: model.StatusTodo, Priority: 4, UserID: "usr-1", Tags: []string{"Feature request"}},
			{ID: "CAM-2", Title: "Add multi-language support", Status: model.StatusInProgress, Priority: 3, UserID: "usr-2", Tags: []string{"Feature request"}},
			{ID: "CAM-3", Title: "Optimize database queries", Status: model.StatusInProgress, Priority: 1, UserID: "usr-2", Tags: []string{"Feature request"}},
			{ID: "CAM-4", Title: "Implement email notification system", Status: model.StatusBacklog, Priority: 2, UserID: "usr-1", Tags: []string{"Feature request"}},
			{ID: "CAM-5", Title: "Enhance search functionality", Status: model.StatusDone, Priority: 0, UserID: "usr-9"},
		},
		Users: []model.User{
			{ID: "usr-1", Name: "Anoop Sharma", Available: false},
			{ID: "usr-2", Name: "Yogesh", Available: true},
		},
		FetchedAt: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
	}
}

// StaticSource is a source.Source returning a fixed snapshot or error.
type StaticSource struct {
	Snapshot *model.Snapshot
	Err      error
	Calls    int
}

// Type returns source.SourceTypeFile; tests only care about the payload.
func (s *StaticSource) Type() source.SourceType { return source.SourceTypeFile }

// Describe returns a fixed label.
func (s *StaticSource) Describe() string { return "static" }

// FetchSnapshot returns the configured snapshot or error.
func (s *StaticSource) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	s.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Snapshot, nil
}
