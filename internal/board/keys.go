package board

import "strings"

// GroupKey selects how tickets are partitioned into columns.
type GroupKey string

// Known grouping keys. Any other value is accepted and selects the
// ungrouped fallback.
const (
	GroupByStatus   GroupKey = "status"
	GroupByUser     GroupKey = "user"
	GroupByPriority GroupKey = "priority"
)

// SortKey selects the order of tickets within each column.
type SortKey string

// Known ordering keys. Any other value keeps the input order.
const (
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
)

var (
	groupKeys = []GroupKey{GroupByStatus, GroupByUser, GroupByPriority}
	sortKeys  = []SortKey{SortByPriority, SortByTitle}
)

// GroupKeys returns the selectable grouping keys in menu order.
func GroupKeys() []GroupKey {
	return append([]GroupKey(nil), groupKeys...)
}

// SortKeys returns the selectable ordering keys in menu order.
func SortKeys() []SortKey {
	return append([]SortKey(nil), sortKeys...)
}

// ParseGroupKey normalizes s. Unknown values are returned verbatim so the
// caller gets the documented fallback rather than an error.
func ParseGroupKey(s string) GroupKey {
	return GroupKey(strings.ToLower(strings.TrimSpace(s)))
}

// ParseSortKey normalizes s. Unknown values are returned verbatim.
func ParseSortKey(s string) SortKey {
	return SortKey(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether k is one of the selectable grouping keys.
func (k GroupKey) Known() bool {
	for _, g := range groupKeys {
		if g == k {
			return true
		}
	}
	return false
}

// Known reports whether k is one of the selectable ordering keys.
func (k SortKey) Known() bool {
	for _, s := range sortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// Next cycles to the following grouping key. Unknown keys restart at status.
func (k GroupKey) Next() GroupKey {
	for i, g := range groupKeys {
		if g == k {
			return groupKeys[(i+1)%len(groupKeys)]
		}
	}
	return groupKeys[0]
}

// Prev cycles to the preceding grouping key.
func (k GroupKey) Prev() GroupKey {
	for i, g := range groupKeys {
		if g == k {
			return groupKeys[(i+len(groupKeys)-1)%len(groupKeys)]
		}
	}
	return groupKeys[0]
}

// Next cycles to the following ordering key. Unknown keys restart at priority.
func (k SortKey) Next() SortKey {
	for i, s := range sortKeys {
		if s == k {
			return sortKeys[(i+1)%len(sortKeys)]
		}
	}
	return sortKeys[0]
}

// Prev cycles to the preceding ordering key.
func (k SortKey) Prev() SortKey {
	for i, s := range sortKeys {
		if s == k {
			return sortKeys[(i+len(sortKeys)-1)%len(sortKeys)]
		}
	}
	return sortKeys[0]
}

// Label is the menu text for the key.
func (k GroupKey) Label() string {
	switch k {
	case GroupByStatus:
		return "Status"
	case GroupByUser:
		return "User"
	case GroupByPriority:
		return "Priority"
	default:
		return string(k)
	}
}

// Label is the menu text for the key.
func (k SortKey) Label() string {
	switch k {
	case SortByPriority:
		return "Priority"
	case SortByTitle:
		return "Title"
	default:
		return string(k)
	}
}
