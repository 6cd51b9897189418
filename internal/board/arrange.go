// Package board arranges a flat ticket snapshot into labelled columns.
//
// Arrange does no I/O and never mutates its inputs. The UI calls it on
// every option change without refetching.
package board

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nhle/ticketboard/internal/model"
)

// UnknownLabel holds tickets whose user, priority or status cannot be
// resolved to a label.
const UnknownLabel = "Unknown"

// UngroupedLabel names the single bucket returned for an unrecognized
// grouping key.
const UngroupedLabel = "All"

// Group is one column of the board.
type Group struct {
	Label   string
	Tickets []model.Ticket
}

// Arrangement is the ordered mapping from group label to tickets.
type Arrangement struct {
	GroupBy GroupKey
	SortBy  SortKey
	Groups  []Group
}

// Len returns the total number of tickets across all groups.
func (a Arrangement) Len() int {
	n := 0
	for _, g := range a.Groups {
		n += len(g.Tickets)
	}
	return n
}

// Labels returns the group labels in order.
func (a Arrangement) Labels() []string {
	labels := make([]string, len(a.Groups))
	for i, g := range a.Groups {
		labels[i] = g.Label
	}
	return labels
}

// Lookup returns the tickets under label.
func (a Arrangement) Lookup(label string) ([]model.Ticket, bool) {
	for _, g := range a.Groups {
		if g.Label == label {
			return g.Tickets, true
		}
	}
	return nil, false
}

// Grouped reports whether the arrangement used a known grouping key.
func (a Arrangement) Grouped() bool {
	return a.GroupBy.Known()
}

// Arrange sorts tickets by sortBy and partitions them by groupBy.
//
// Every input ticket lands in exactly one group. Within a group tickets
// keep their post-sort order; groups are ordered by first appearance, and
// when grouping by status the canonical statuses missing from the data are
// appended as empty groups.
func Arrange(
	tickets []model.Ticket,
	users []model.User,
	groupBy GroupKey,
	sortBy SortKey,
) Arrangement {
	sorted := Sort(tickets, sortBy)

	arr := Arrangement{GroupBy: groupBy, SortBy: sortBy}

	var labelOf func(model.Ticket) string
	switch groupBy {
	case GroupByStatus:
		labelOf = statusLabel
	case GroupByUser:
		labelOf = userLabeler(users)
	case GroupByPriority:
		labelOf = priorityLabel
	default:
		arr.Groups = []Group{{Label: UngroupedLabel, Tickets: sorted}}
		return arr
	}

	index := make(map[string]int)
	for _, t := range sorted {
		label := labelOf(t)
		i, ok := index[label]
		if !ok {
			i = len(arr.Groups)
			index[label] = i
			arr.Groups = append(arr.Groups, Group{Label: label})
		}
		arr.Groups[i].Tickets = append(arr.Groups[i].Tickets, t)
	}

	if groupBy == GroupByStatus {
		for _, s := range model.CanonicalStatuses() {
			if _, ok := index[string(s)]; !ok {
				index[string(s)] = len(arr.Groups)
				arr.Groups = append(arr.Groups, Group{Label: string(s), Tickets: []model.Ticket{}})
			}
		}
	}

	return arr
}

// Sort returns a copy of tickets ordered by key. Priority orders from
// urgent to none and title orders by root-locale collation; both are
// stable. Unknown keys keep the input order.
func Sort(tickets []model.Ticket, key SortKey) []model.Ticket {
	out := make([]model.Ticket, len(tickets))
	copy(out, tickets)

	switch key {
	case SortByPriority:
		slices.SortStableFunc(out, func(a, b model.Ticket) int {
			return cmp.Compare(b.Priority, a.Priority)
		})
	case SortByTitle:
		c := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b model.Ticket) int {
			return c.CompareString(a.Title, b.Title)
		})
	}

	return out
}

func statusLabel(t model.Ticket) string {
	if t.Status == "" {
		return UnknownLabel
	}
	return string(t.Status)
}

func priorityLabel(t model.Ticket) string {
	if !t.Priority.Valid() {
		return UnknownLabel
	}
	return t.Priority.Name()
}

func userLabeler(users []model.User) func(model.Ticket) string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		// First match wins, as with a linear search.
		if _, dup := names[u.ID]; !dup {
			names[u.ID] = u.Name
		}
	}
	return func(t model.Ticket) string {
		if name, ok := names[t.UserID]; ok && name != "" {
			return name
		}
		return UnknownLabel
	}
}
