package task

import (
	"testing"
)

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortedByPriority(t *testing.T) {
	tasks := []Task{
		{ID: "low", Priority: PriorityLow},
		{ID: "high", Priority: PriorityHigh},
		{ID: "med", Priority: PriorityMedium},
	}

	got := Sorted(tasks, nil, SortPolicy{Field: SortByPriority, Order: OrderDesc})
	if want := []string{"high", "med", "low"}; !equalIDs(ids(got), want) {
		t.Errorf("desc order = %v, want %v", ids(got), want)
	}

	got = Sorted(tasks, nil, SortPolicy{Field: SortByPriority, Order: OrderAsc})
	if want := []string{"low", "med", "high"}; !equalIDs(ids(got), want) {
		t.Errorf("asc order = %v, want %v", ids(got), want)
	}
}

func TestSortedCompletedAlwaysLast(t *testing.T) {
	tasks := []Task{
		{ID: "done", Priority: PriorityHigh, Completed: true},
		{ID: "open", Priority: PriorityLow},
	}

	for _, order := range []SortOrder{OrderAsc, OrderDesc} {
		got := Sorted(tasks, nil, SortPolicy{Field: SortByPriority, Order: order})
		if got[len(got)-1].ID != "done" {
			t.Errorf("order %s: completed task not last: %v", order, ids(got))
		}
	}
}

func TestSortedMissingDueDatesAlwaysLast(t *testing.T) {
	tasks := []Task{
		{ID: "undated"},
		{ID: "late", DueDate: "2024-06-01"},
		{ID: "early", DueDate: "2024-01-15"},
	}

	got := Sorted(tasks, nil, SortPolicy{Field: SortByDate, Order: OrderDesc})
	if want := []string{"early", "late", "undated"}; !equalIDs(ids(got), want) {
		t.Errorf("desc order = %v, want %v", ids(got), want)
	}

	got = Sorted(tasks, nil, SortPolicy{Field: SortByDate, Order: OrderAsc})
	if got[len(got)-1].ID != "undated" {
		t.Errorf("asc order = %v, want undated last", ids(got))
	}
}

func TestSortedDueTimeBreaksDateTie(t *testing.T) {
	tasks := []Task{
		{ID: "evening", DueDate: "2024-03-10", DueTime: "18:00"},
		{ID: "morning", DueDate: "2024-03-10", DueTime: "08:00"},
		{ID: "default", DueDate: "2024-03-10"}, // no time resolves to 23:59
	}

	got := Sorted(tasks, nil, SortPolicy{Field: SortByDate, Order: OrderDesc})
	if want := []string{"morning", "evening", "default"}; !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestSortedByCategoryPositional(t *testing.T) {
	categories := []string{"Work", "Personal", "Study"}
	tasks := []Task{
		{ID: "s", Category: "Study"},
		{ID: "x", Category: "Deleted"}, // unknown sorts after known
		{ID: "w", Category: "Work"},
		{ID: "p", Category: "Personal"},
	}

	got := Sorted(tasks, categories, SortPolicy{Field: SortByCategory, Order: OrderDesc})
	if want := []string{"w", "p", "s", "x"}; !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestSortedStableWithinEqualKeys(t *testing.T) {
	tasks := []Task{
		{ID: "a", Priority: PriorityMedium},
		{ID: "b", Priority: PriorityMedium},
		{ID: "c", Priority: PriorityMedium},
	}

	got := Sorted(tasks, nil, SortPolicy{Field: SortByPriority, Order: OrderDesc})
	if want := []string{"a", "b", "c"}; !equalIDs(ids(got), want) {
		t.Errorf("equal keys reordered: %v", ids(got))
	}
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	tasks := []Task{
		{ID: "low", Priority: PriorityLow},
		{ID: "high", Priority: PriorityHigh},
	}
	Sorted(tasks, nil, DefaultSortPolicy())
	if tasks[0].ID != "low" {
		t.Error("input slice was reordered")
	}
}

func TestPolicyToggle(t *testing.T) {
	p := DefaultSortPolicy()
	if p.Field != SortByPriority || p.Order != OrderDesc {
		t.Fatalf("default policy = %+v", p)
	}

	p = p.Toggle(SortByPriority)
	if p.Order != OrderAsc {
		t.Errorf("reselecting the field should flip to asc, got %s", p.Order)
	}

	p = p.Toggle(SortByDate)
	if p.Field != SortByDate || p.Order != OrderDesc {
		t.Errorf("new field should reset to desc, got %+v", p)
	}
}
