package task

import "sort"

// SortField selects the comparison key for the sorted task view.
type SortField string

const (
	SortByPriority SortField = "priority"
	SortByCategory SortField = "category"
	SortByDate     SortField = "date"
)

// SortOrder flips the comparison direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SortPolicy is the active sort configuration.
type SortPolicy struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSortPolicy sorts by priority, descending.
func DefaultSortPolicy() SortPolicy {
	return SortPolicy{Field: SortByPriority, Order: OrderDesc}
}

// Toggle applies a field selection to the policy: reselecting the current
// field flips the order, a new field resets the order to descending.
func (p SortPolicy) Toggle(field SortField) SortPolicy {
	if p.Field == field {
		if p.Order == OrderDesc {
			p.Order = OrderAsc
		} else {
			p.Order = OrderDesc
		}
		return p
	}
	return SortPolicy{Field: field, Order: OrderDesc}
}

// Sorted returns a new ordered slice; the input collection is never
// reordered. Completed tasks always sort after incomplete ones and tasks
// without a due date always sort after dated ones, regardless of field
// and order.
func Sorted(tasks []Task, categories []string, policy SortPolicy) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	catIndex := make(map[string]int, len(categories))
	for i, c := range categories {
		catIndex[c] = i
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}

		cmp := 0
		switch policy.Field {
		case SortByPriority:
			cmp = b.Priority.Weight() - a.Priority.Weight()
		case SortByCategory:
			cmp = categoryRank(catIndex, a.Category) - categoryRank(catIndex, b.Category)
		case SortByDate:
			dueA, okA := a.DueAt()
			dueB, okB := b.DueAt()
			switch {
			case !okA && !okB:
				cmp = 0
			case !okA:
				return false
			case !okB:
				return true
			case dueA.Before(dueB):
				cmp = -1
			case dueB.Before(dueA):
				cmp = 1
			}
		}

		if policy.Order == OrderAsc {
			cmp = -cmp
		}
		return cmp < 0
	})

	return out
}

// categoryRank returns the positional index of a category; unknown
// categories sort after known ones.
func categoryRank(index map[string]int, category string) int {
	if i, ok := index[category]; ok {
		return i
	}
	return len(index)
}
