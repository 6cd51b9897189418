package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/ticketboard/internal/model"
)

const samplePayload = `{
  "tickets": [
    {"id": "CAM-1", "title": "Update user profile page UI", "tag": ["Feature request"],
     "userId": "usr-1", "status": "Todo", "priority": 4},
    {"id": 7, "title": "Numeric id", "tag": "Bug", "userId": 2, "status": "Done"},
    {"title": "No id at all", "status": "Todo", "priority": 1},
    {"id": "CAM-3", "title": "Null tag", "tag": null, "userId": null, "status": "Backlog", "priority": 9}
  ],
  "users": [
    {"id": "usr-1", "name": "Anoop Sharma", "available": false},
    {"id": 2, "name": "Yogesh", "available": true},
    {"name": "ghost"}
  ]
}`

func TestDecodePayload_ToSnapshot(t *testing.T) {
	p, err := DecodePayload([]byte(samplePayload))
	require.NoError(t, err)

	snap, skipped := p.ToSnapshot()

	assert.Equal(t, 2, skipped)
	require.Len(t, snap.Tickets, 3)
	require.Len(t, snap.Users, 2)

	first := snap.Tickets[0]
	assert.Equal(t, "CAM-1", first.ID)
	assert.Equal(t, model.StatusTodo, first.Status)
	assert.Equal(t, model.PriorityUrgent, first.Priority)
	assert.Equal(t, []string{"Feature request"}, first.Tags)

	numeric := snap.Tickets[1]
	assert.Equal(t, "7", numeric.ID)
	assert.Equal(t, "2", numeric.UserID)
	assert.Equal(t, model.PriorityNone, numeric.Priority, "missing priority defaults to 0")
	assert.Equal(t, "Bug", numeric.Tag())

	offScale := snap.Tickets[2]
	assert.Nil(t, offScale.Tags)
	assert.Empty(t, offScale.UserID)
	assert.Equal(t, model.Priority(9), offScale.Priority, "priority is not clamped")

	name, ok := snap.UserName("2")
	assert.True(t, ok)
	assert.Equal(t, "Yogesh", name)
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, err := DecodePayload([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodePayload([]byte(`{"tickets": 5}`))
	assert.Error(t, err)
}

func TestDecodePayload_BadRecordKeepsTheRest(t *testing.T) {
	p, err := DecodePayload([]byte(`{
	  "tickets": [
	    {"id": "CAM-1", "title": "good", "status": "Todo", "priority": 4},
	    {"id": "CAM-2", "title": "string priority", "priority": "3"},
	    {"id": "CAM-3", "title": 42},
	    {"id": {"nested": true}},
	    {"id": "CAM-4", "title": "also good", "status": "Done", "priority": 1}
	  ],
	  "users": [
	    {"id": "usr-1", "name": "Anoop Sharma"},
	    {"id": "usr-2", "name": ["not", "a", "name"]}
	  ]
	}`))
	require.NoError(t, err)

	snap, skipped := p.ToSnapshot()

	assert.Equal(t, 4, skipped)
	require.Len(t, snap.Tickets, 2)
	assert.Equal(t, "CAM-1", snap.Tickets[0].ID)
	assert.Equal(t, model.PriorityUrgent, snap.Tickets[0].Priority)
	assert.Equal(t, "CAM-4", snap.Tickets[1].ID)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "usr-1", snap.Users[0].ID)
}

func TestDecodePayload_EmptyObject(t *testing.T) {
	p, err := DecodePayload([]byte(`{}`))
	require.NoError(t, err)

	snap, skipped := p.ToSnapshot()
	assert.Zero(t, skipped)
	assert.True(t, snap.Empty())
	assert.NotNil(t, snap.Tickets)
}

func TestFromSnapshot_RoundTripsThroughToSnapshot(t *testing.T) {
	in := &model.Snapshot{
		Tickets: []model.Ticket{
			{ID: "CAM-1", Title: "a", Status: model.StatusDone, Priority: 3, UserID: "usr-1", Tags: []string{"x", "y"}},
		},
		Users: []model.User{{ID: "usr-1", Name: "Anoop"}},
	}

	out, skipped := FromSnapshot(in).ToSnapshot()

	assert.Zero(t, skipped)
	assert.Equal(t, in.Tickets, out.Tickets)
	assert.Equal(t, in.Users, out.Users)
}

func TestErrorHelpers(t *testing.T) {
	auth := &AuthError{SourceType: SourceTypeAPI, Message: "401"}
	fetch := &FetchError{SourceType: SourceTypeAPI, Location: "http://x", Err: auth}

	assert.True(t, IsAuthError(fetch))
	assert.True(t, IsFetchError(fetch))
	assert.False(t, IsFetchError(auth))
	assert.Contains(t, fetch.Error(), "http://x")
}
