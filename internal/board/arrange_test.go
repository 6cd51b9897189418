package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nhle/ticketboard/internal/model"
)

func ticket(id string, p model.Priority, status model.Status, user, title string) model.Ticket {
	return model.Ticket{ID: id, Title: title, Status: status, Priority: p, UserID: user}
}

func ids(tickets []model.Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

var testUsers = []model.User{
	{ID: "usr-1", Name: "Anoop Sharma"},
	{ID: "usr-2", Name: "Yogesh"},
}

func TestArrange_EmptyStatusHasCanonicalColumns(t *testing.T) {
	arr := Arrange(nil, nil, GroupByStatus, SortByPriority)

	assert.Equal(t,
		[]string{"Todo", "In progress", "Backlog", "Done", "Cancelled"},
		arr.Labels(),
	)
	for _, g := range arr.Groups {
		assert.NotNil(t, g.Tickets, "group %q", g.Label)
		assert.Empty(t, g.Tickets, "group %q", g.Label)
	}
}

func TestArrange_StatusAppendsMissingCanonicalAfterPopulated(t *testing.T) {
	tickets := []model.Ticket{
		ticket("CAM-1", 1, model.StatusDone, "usr-1", "a"),
		ticket("CAM-2", 4, model.StatusBacklog, "usr-1", "b"),
		ticket("CAM-3", 2, "Blocked", "usr-2", "c"),
	}

	arr := Arrange(tickets, testUsers, GroupByStatus, SortByPriority)

	// Sorted order is CAM-2 (4), CAM-3 (2), CAM-1 (1); labels follow first
	// appearance, then the missing canonical statuses in canonical order.
	assert.Equal(t,
		[]string{"Backlog", "Blocked", "Done", "Todo", "In progress", "Cancelled"},
		arr.Labels(),
	)
	blocked, ok := arr.Lookup("Blocked")
	require.True(t, ok)
	assert.Equal(t, []string{"CAM-3"}, ids(blocked))
}

func TestArrange_EmptyStatusGoesToUnknown(t *testing.T) {
	arr := Arrange(
		[]model.Ticket{ticket("CAM-1", 0, "", "", "x")},
		nil, GroupByStatus, SortByTitle,
	)

	got, ok := arr.Lookup(UnknownLabel)
	require.True(t, ok)
	assert.Equal(t, []string{"CAM-1"}, ids(got))
	assert.Len(t, arr.Groups, 6)
}

func TestSort_PriorityDescending(t *testing.T) {
	tickets := []model.Ticket{
		ticket("a", 1, model.StatusTodo, "", ""),
		ticket("b", 4, model.StatusTodo, "", ""),
		ticket("c", 0, model.StatusTodo, "", ""),
		ticket("d", 3, model.StatusTodo, "", ""),
	}

	sorted := Sort(tickets, SortByPriority)

	var got []model.Priority
	for _, tk := range sorted {
		got = append(got, tk.Priority)
	}
	assert.Equal(t, []model.Priority{4, 3, 1, 0}, got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(tickets), "input must not be reordered")
}

func TestSort_TitleUsesCollation(t *testing.T) {
	tickets := []model.Ticket{
		ticket("1", 0, "", "", "banana"),
		ticket("2", 0, "", "", "Apple"),
		ticket("3", 0, "", "", "apple"),
		ticket("4", 0, "", "", "Cherry"),
	}

	sorted := Sort(tickets, SortByTitle)

	// Case is a tertiary difference: "Apple" and "apple" sort before
	// "banana" regardless of byte order, and "Cherry" comes last.
	got := ids(sorted)
	assert.Equal(t, "1", got[2])
	assert.Equal(t, "4", got[3])
	assert.ElementsMatch(t, []string{"2", "3"}, got[:2])
}

func TestSort_UnknownKeyKeepsInputOrder(t *testing.T) {
	tickets := []model.Ticket{
		ticket("x", 0, "", "", "z"),
		ticket("y", 4, "", "", "a"),
	}
	assert.Equal(t, []string{"x", "y"}, ids(Sort(tickets, "bogus")))
}

func TestArrange_UserFallbackToUnknown(t *testing.T) {
	tickets := []model.Ticket{
		ticket("CAM-1", 2, model.StatusTodo, "usr-1", "a"),
		ticket("CAM-2", 2, model.StatusTodo, "usr-404", "b"),
		ticket("CAM-3", 2, model.StatusTodo, "", "c"),
	}

	arr := Arrange(tickets, testUsers, GroupByUser, SortByPriority)

	assert.Equal(t, []string{"Anoop Sharma", "Unknown"}, arr.Labels())
	unknown, _ := arr.Lookup(UnknownLabel)
	assert.Equal(t, []string{"CAM-2", "CAM-3"}, ids(unknown))
}

func TestArrange_UserNoUsersAllUnknown(t *testing.T) {
	tickets := []model.Ticket{ticket("CAM-1", 2, model.StatusTodo, "usr-1", "a")}
	arr := Arrange(tickets, nil, GroupByUser, SortByTitle)
	assert.Equal(t, []string{UnknownLabel}, arr.Labels())
}

func TestArrange_PriorityLabels(t *testing.T) {
	tickets := []model.Ticket{
		ticket("a", 0, "", "", ""),
		ticket("b", 4, "", "", ""),
		ticket("c", 9, "", "", ""),
		ticket("d", 2, "", "", ""),
		ticket("e", -1, "", "", ""),
	}

	arr := Arrange(tickets, nil, GroupByPriority, SortByPriority)

	// 9 sorts first and -1 last; both are off the scale.
	assert.Equal(t, []string{"Unknown", "Urgent", "Medium", "No Priority"}, arr.Labels())
	unknown, _ := arr.Lookup(UnknownLabel)
	assert.Equal(t, []string{"c", "e"}, ids(unknown))
	for _, label := range arr.Labels() {
		if label == UnknownLabel {
			continue
		}
		assert.Contains(t, model.PriorityNames(), label)
	}
}

func TestArrange_UnknownGroupKeyPassthrough(t *testing.T) {
	tickets := []model.Ticket{
		ticket("a", 1, model.StatusTodo, "", ""),
		ticket("b", 4, model.StatusDone, "", ""),
		ticket("c", 0, model.StatusTodo, "", ""),
		ticket("d", 3, model.StatusBacklog, "", ""),
	}

	arr := Arrange(tickets, testUsers, "bogus", SortByPriority)

	require.Len(t, arr.Groups, 1)
	assert.Equal(t, UngroupedLabel, arr.Groups[0].Label)
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(arr.Groups[0].Tickets))
	assert.False(t, arr.Grouped())
}

func TestArrange_DoesNotMutateInput(t *testing.T) {
	tickets := []model.Ticket{
		ticket("a", 0, model.StatusTodo, "usr-1", "b"),
		ticket("b", 4, model.StatusTodo, "usr-2", "a"),
	}
	before := append([]model.Ticket(nil), tickets...)

	for _, g := range GroupKeys() {
		for _, s := range SortKeys() {
			Arrange(tickets, testUsers, g, s)
		}
	}

	assert.Equal(t, before, tickets)
}

// genTicket draws tickets with small value domains so ties are common.
func genTicket(i int) *rapid.Generator[model.Ticket] {
	return rapid.Custom(func(t *rapid.T) model.Ticket {
		return model.Ticket{
			ID:       fmt.Sprintf("T-%d", i),
			Title:    rapid.SampledFrom([]string{"", "alpha", "Alpha", "beta", "gamma"}).Draw(t, "title"),
			Status:   model.Status(rapid.SampledFrom([]string{"Todo", "In progress", "Backlog", "Done", "Cancelled", "Blocked", ""}).Draw(t, "status")),
			Priority: model.Priority(rapid.IntRange(-1, 5).Draw(t, "priority")),
			UserID:   rapid.SampledFrom([]string{"usr-1", "usr-2", "usr-3", ""}).Draw(t, "user"),
		}
	})
}

func genTickets(t *rapid.T) []model.Ticket {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	out := make([]model.Ticket, n)
	for i := range out {
		out[i] = genTicket(i).Draw(t, fmt.Sprintf("ticket%d", i))
	}
	return out
}

func genGroupKey() *rapid.Generator[GroupKey] {
	return rapid.SampledFrom([]GroupKey{GroupByStatus, GroupByUser, GroupByPriority, "bogus"})
}

func genSortKey() *rapid.Generator[SortKey] {
	return rapid.SampledFrom([]SortKey{SortByPriority, SortByTitle, "bogus"})
}

func TestArrange_PartitionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tickets := genTickets(t)
		arr := Arrange(tickets, testUsers, genGroupKey().Draw(t, "group"), genSortKey().Draw(t, "sort"))

		if arr.Len() != len(tickets) {
			t.Fatalf("arrangement holds %d tickets, input had %d", arr.Len(), len(tickets))
		}
		seen := make(map[string]int)
		for _, g := range arr.Groups {
			for _, tk := range g.Tickets {
				seen[tk.ID]++
			}
		}
		for _, tk := range tickets {
			if seen[tk.ID] != 1 {
				t.Fatalf("ticket %s appears %d times", tk.ID, seen[tk.ID])
			}
		}
	})
}

func TestArrange_LabelsAreUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		arr := Arrange(genTickets(t), testUsers, genGroupKey().Draw(t, "group"), genSortKey().Draw(t, "sort"))
		seen := make(map[string]bool)
		for _, l := range arr.Labels() {
			if seen[l] {
				t.Fatalf("duplicate label %q", l)
			}
			seen[l] = true
		}
	})
}

func TestSort_StableProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tickets := genTickets(t)
		key := rapid.SampledFrom([]SortKey{SortByPriority, SortByTitle}).Draw(t, "sort")

		pos := make(map[string]int, len(tickets))
		for i, tk := range tickets {
			pos[tk.ID] = i
		}

		sorted := Sort(tickets, key)
		for i := 1; i < len(sorted); i++ {
			a, b := sorted[i-1], sorted[i]
			tie := a.Priority == b.Priority
			if key == SortByTitle {
				tie = a.Title == b.Title
			}
			if key == SortByPriority && a.Priority < b.Priority {
				t.Fatalf("priority %d before %d", a.Priority, b.Priority)
			}
			if tie && pos[a.ID] > pos[b.ID] {
				t.Fatalf("tie between %s and %s reordered", a.ID, b.ID)
			}
		}
	})
}

func TestArrange_GroupsPreserveSortedOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tickets := genTickets(t)
		sortBy := genSortKey().Draw(t, "sort")
		sorted := Sort(tickets, sortBy)
		rank := make(map[string]int, len(sorted))
		for i, tk := range sorted {
			rank[tk.ID] = i
		}

		arr := Arrange(tickets, testUsers, genGroupKey().Draw(t, "group"), sortBy)
		for _, g := range arr.Groups {
			for i := 1; i < len(g.Tickets); i++ {
				if rank[g.Tickets[i-1].ID] > rank[g.Tickets[i].ID] {
					t.Fatalf("group %q out of sorted order", g.Label)
				}
			}
		}
	})
}

func TestArrange_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tickets := genTickets(t)
		g := genGroupKey().Draw(t, "group")
		s := genSortKey().Draw(t, "sort")

		first := Arrange(tickets, testUsers, g, s)
		second := Arrange(tickets, testUsers, g, s)

		assert.Equal(t, first, second)
	})
}

func TestArrange_StatusAlwaysHasCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		arr := Arrange(genTickets(t), testUsers, GroupByStatus, genSortKey().Draw(t, "sort"))
		for _, s := range model.CanonicalStatuses() {
			if _, ok := arr.Lookup(string(s)); !ok {
				t.Fatalf("missing canonical status %q", s)
			}
		}
	})
}
