package model

import (
	"strings"
	"time"
)

// Status is the workflow state of a ticket as reported by the source.
type Status string

// Canonical status values. A board grouped by status always shows these
// five columns, even when they are empty.
const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In progress"
	StatusBacklog    Status = "Backlog"
	StatusDone       Status = "Done"
	StatusCancelled  Status = "Cancelled"
)

var canonicalStatuses = []Status{
	StatusTodo,
	StatusInProgress,
	StatusBacklog,
	StatusDone,
	StatusCancelled,
}

// CanonicalStatuses returns the fixed status vocabulary in display order.
func CanonicalStatuses() []Status {
	out := make([]Status, len(canonicalStatuses))
	copy(out, canonicalStatuses)
	return out
}

// IsCanonical reports whether s is one of the five canonical statuses.
func (s Status) IsCanonical() bool {
	for _, c := range canonicalStatuses {
		if s == c {
			return true
		}
	}
	return false
}

// Priority is the urgency of a ticket on a 0 (none) to 4 (urgent) scale.
type Priority int

// Priority scale (higher number = more urgent).
const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4
)

var priorityNames = map[Priority]string{
	PriorityUrgent: "Urgent",
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
	PriorityNone:   "No Priority",
}

// Valid reports whether p is on the 0..4 scale.
func (p Priority) Valid() bool {
	return p >= PriorityNone && p <= PriorityUrgent
}

// Name returns the display name of the priority, or "" when p is off the
// scale.
func (p Priority) Name() string {
	return priorityNames[p]
}

// PriorityNames returns the priority vocabulary from most to least urgent.
func PriorityNames() []string {
	return []string{
		PriorityUrgent.Name(),
		PriorityHigh.Name(),
		PriorityMedium.Name(),
		PriorityLow.Name(),
		PriorityNone.Name(),
	}
}

// Ticket is a single unit of work from the snapshot. Tickets are read-only
// for the whole session; nothing in this module mutates one after ingest.
type Ticket struct {
	// ID is the source's opaque identifier (e.g. "CAM-1").
	ID string `json:"id" db:"id"`

	// Title is the one-line summary shown on the card.
	Title string `json:"title" db:"title"`

	// Status is the raw workflow state. Non-canonical values are kept as-is.
	Status Status `json:"status" db:"status"`

	// Priority is kept as reported; values off the 0..4 scale are not clamped.
	Priority Priority `json:"priority" db:"priority"`

	// UserID references User.ID. It may be empty or point at no user.
	UserID string `json:"userId" db:"user_id"`

	// Tags are free-form labels; the endpoint usually sends exactly one.
	Tags []string `json:"tag,omitempty" db:"-"`
}

// Tag returns the ticket's labels joined for display.
func (t Ticket) Tag() string {
	return strings.Join(t.Tags, ", ")
}

// User is a person tickets can be assigned to.
type User struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Available is reported by the endpoint but only used for display.
	Available bool `json:"available" db:"available"`
}

// Snapshot is the point-in-time copy of tickets and users fetched at session
// start (or on a manual refresh).
type Snapshot struct {
	Tickets   []Ticket  `json:"tickets"`
	Users     []User    `json:"users"`
	FetchedAt time.Time `json:"fetched_at"`
}

// EmptySnapshot is what the board renders when no fetch has succeeded.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Tickets: []Ticket{},
		Users:   []User{},
	}
}

// Empty reports whether the snapshot holds no tickets and no users.
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.Tickets) == 0 && len(s.Users) == 0)
}

// User returns the first user with the given id.
func (s *Snapshot) User(id string) (User, bool) {
	if s == nil {
		return User{}, false
	}
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// UserName resolves a user id to a display name.
func (s *Snapshot) UserName(id string) (string, bool) {
	u, ok := s.User(id)
	return u.Name, ok
}
