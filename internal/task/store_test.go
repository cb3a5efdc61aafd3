package task

import (
	"errors"
	"testing"
	"time"

	"focusquest/internal/clock"
)

// eventRecorder captures domain events for assertions.
type eventRecorder struct {
	completed []Priority
	sessions  []int
}

func (r *eventRecorder) TaskCompleted(p Priority)       { r.completed = append(r.completed, p) }
func (r *eventRecorder) FocusSessionCompleted(mins int) { r.sessions = append(r.sessions, mins) }

func newTestStore(t *testing.T) (*Store, *clock.Fake, *eventRecorder) {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	rec := &eventRecorder{}
	return NewStore(clk, rec), clk, rec
}

func mustAdd(t *testing.T, s *Store, d Draft) Task {
	t.Helper()
	created, err := s.Add(d)
	if err != nil {
		t.Fatalf("Add(%+v) failed: %v", d, err)
	}
	return created
}

func TestAddDefaults(t *testing.T) {
	s, _, _ := newTestStore(t)

	created := mustAdd(t, s, Draft{Text: "write report"})
	if created.Priority != PriorityMedium {
		t.Errorf("default priority = %s, want Medium", created.Priority)
	}
	if created.EstimatedSessions != 1 {
		t.Errorf("default estimate = %d, want 1", created.EstimatedSessions)
	}
	if created.Recurrence != RecurNone {
		t.Errorf("default recurrence = %s, want none", created.Recurrence)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}

	if _, err := s.Add(Draft{}); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestTaskIDsSortable(t *testing.T) {
	s, clk, _ := newTestStore(t)

	first := mustAdd(t, s, Draft{Text: "first"})
	clk.Advance(time.Second)
	second := mustAdd(t, s, Draft{Text: "second"})

	if !(first.ID < second.ID) {
		t.Errorf("ids not time-ordered: %s >= %s", first.ID, second.ID)
	}
}

func TestToggleCompleteEmitsEventOnce(t *testing.T) {
	s, _, rec := newTestStore(t)
	created := mustAdd(t, s, Draft{Text: "t", Priority: PriorityHigh})

	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete (reopen): %v", err)
	}
	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete (again): %v", err)
	}

	if len(rec.completed) != 1 {
		t.Fatalf("TaskCompleted fired %d times, want 1", len(rec.completed))
	}
	if rec.completed[0] != PriorityHigh {
		t.Errorf("event priority = %s, want High", rec.completed[0])
	}
}

func TestRecurringCompletionAwardsOnce(t *testing.T) {
	s, _, rec := newTestStore(t)
	created := mustAdd(t, s, Draft{
		Text:       "water plants",
		Priority:   PriorityLow,
		Recurrence: RecurWeekly,
	})

	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	// The successor append must not lose the original's grant flag.
	original, ok := s.Get(created.ID)
	if !ok {
		t.Fatalf("original task %s missing after completion", created.ID)
	}
	if !original.XPAwarded {
		t.Fatal("completed task lost the experience-grant flag")
	}

	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete (reopen): %v", err)
	}
	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete (again): %v", err)
	}

	if len(rec.completed) != 1 {
		t.Fatalf("TaskCompleted fired %d times, want 1", len(rec.completed))
	}
}

func TestWeeklyRecurrenceSpawnsSuccessor(t *testing.T) {
	s, _, _ := newTestStore(t)
	created := mustAdd(t, s, Draft{
		Text:       "weekly review",
		Priority:   PriorityHigh,
		DueDate:    "2024-01-01",
		Recurrence: RecurWeekly,
	})
	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2 (original plus successor)", len(tasks))
	}

	original, _ := s.Get(created.ID)
	if !original.Completed {
		t.Error("original should stay completed")
	}

	successor := tasks[1]
	if successor.ID == created.ID {
		t.Fatal("successor must have a new id")
	}
	if successor.DueDate != "2024-01-08" {
		t.Errorf("successor due = %s, want 2024-01-08", successor.DueDate)
	}
	if successor.Completed {
		t.Error("successor must start incomplete")
	}
	if successor.Sessions != 0 {
		t.Errorf("successor sessions = %d, want 0", successor.Sessions)
	}
	if successor.XPAwarded {
		t.Error("successor must not carry the experience-grant flag")
	}
	if successor.Text != created.Text || successor.Priority != created.Priority {
		t.Error("successor must copy the remaining fields")
	}
}

func TestMonthlyRecurrenceWithoutDueDateUsesToday(t *testing.T) {
	s, _, _ := newTestStore(t)
	created := mustAdd(t, s, Draft{Text: "rent", Recurrence: RecurMonthly})

	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[1].DueDate != "2024-02-01" {
		t.Errorf("successor due = %s, want 2024-02-01", tasks[1].DueDate)
	}
}

func TestFocusAdvancesToNextIncomplete(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "a", Priority: PriorityHigh})
	b := mustAdd(t, s, Draft{Text: "b", Priority: PriorityMedium})
	c := mustAdd(t, s, Draft{Text: "c", Priority: PriorityLow})

	if err := s.SetFocus(a.ID); err != nil {
		t.Fatalf("SetFocus: %v", err)
	}
	if err := s.ToggleComplete(a.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if s.FocusID() != b.ID {
		t.Errorf("focus = %s, want next task %s", s.FocusID(), b.ID)
	}
	_ = c
}

func TestFocusWrapsToFirstIncomplete(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "a", Priority: PriorityHigh})
	b := mustAdd(t, s, Draft{Text: "b", Priority: PriorityLow})

	// b sorts last; completing it should wrap the focus to a.
	if err := s.SetFocus(b.ID); err != nil {
		t.Fatalf("SetFocus: %v", err)
	}
	if err := s.ToggleComplete(b.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if s.FocusID() != a.ID {
		t.Errorf("focus = %s, want wrap to %s", s.FocusID(), a.ID)
	}
}

func TestFocusClearsWhenNothingLeft(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "only"})

	if err := s.SetFocus(a.ID); err != nil {
		t.Fatalf("SetFocus: %v", err)
	}
	if err := s.ToggleComplete(a.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if s.FocusID() != "" {
		t.Errorf("focus = %s, want empty", s.FocusID())
	}
}

func TestSetFocusRejectsCompletedTask(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "done already"})
	if err := s.ToggleComplete(a.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	if err := s.SetFocus(a.ID); !errors.Is(err, ErrTaskCompleted) {
		t.Errorf("SetFocus on completed task = %v, want ErrTaskCompleted", err)
	}
	if err := s.SetFocus("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("SetFocus on missing task = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteClearsFocus(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "a"})
	if err := s.SetFocus(a.ID); err != nil {
		t.Fatalf("SetFocus: %v", err)
	}
	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.FocusID() != "" {
		t.Error("focus should be cleared after deleting the focused task")
	}
}

func TestRecordSessionCompleted(t *testing.T) {
	s, _, rec := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "a"})
	if err := s.SetFocus(a.ID); err != nil {
		t.Fatalf("SetFocus: %v", err)
	}

	s.RecordSessionCompleted()
	s.RecordSessionCompleted()

	if got := s.Daily().Count; got != 2 {
		t.Errorf("daily count = %d, want 2", got)
	}
	if got := s.CycleCount(); got != 2 {
		t.Errorf("cycle count = %d, want 2", got)
	}
	focused, _ := s.Get(a.ID)
	if focused.Sessions != 2 {
		t.Errorf("focused task sessions = %d, want 2", focused.Sessions)
	}
	if len(rec.sessions) != 2 || rec.sessions[0] != 25 {
		t.Errorf("session events = %v, want two events of 25 minutes", rec.sessions)
	}
}

func TestDailyRolloverIdempotent(t *testing.T) {
	s, clk, _ := newTestStore(t)
	s.RecordSessionCompleted()

	first := s.Daily()
	second := s.Daily()
	if first != second {
		t.Errorf("redundant rollover changed stats: %+v vs %+v", first, second)
	}

	clk.AdvanceDays(1)
	rolled := s.Daily()
	if rolled.Count != 0 {
		t.Errorf("count after day change = %d, want 0", rolled.Count)
	}
	if rolled.Date != "2024-01-02" {
		t.Errorf("day key = %s, want 2024-01-02", rolled.Date)
	}
}

func TestSubtasks(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "parent"})

	sub, err := s.AddSubtask(a.ID, "child")
	if err != nil {
		t.Fatalf("AddSubtask: %v", err)
	}
	if err := s.ToggleSubtask(a.ID, sub.ID); err != nil {
		t.Fatalf("ToggleSubtask: %v", err)
	}

	got, _ := s.Get(a.ID)
	if len(got.Subtasks) != 1 || !got.Subtasks[0].Completed {
		t.Errorf("subtasks = %+v, want one completed", got.Subtasks)
	}

	if err := s.DeleteSubtask(a.ID, sub.ID); err != nil {
		t.Fatalf("DeleteSubtask: %v", err)
	}
	got, _ = s.Get(a.ID)
	if len(got.Subtasks) != 0 {
		t.Errorf("subtasks after delete = %d, want 0", len(got.Subtasks))
	}

	if err := s.ToggleSubtask(a.ID, "missing"); !errors.Is(err, ErrSubtaskNotFound) {
		t.Errorf("ToggleSubtask missing = %v, want ErrSubtaskNotFound", err)
	}
}

func TestAttachments(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "with file"})

	att, err := s.AddAttachment(a.ID, "notes.pdf", "file:///tmp/notes.pdf")
	if err != nil {
		t.Fatalf("AddAttachment: %v", err)
	}
	got, _ := s.Get(a.ID)
	if len(got.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(got.Attachments))
	}
	if err := s.RemoveAttachment(a.ID, att.ID); err != nil {
		t.Fatalf("RemoveAttachment: %v", err)
	}
}

func TestUpdatePatch(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Text: "old", Priority: PriorityLow})

	text := "new"
	prio := PriorityHigh
	notes := "remember the milk"
	if err := s.Update(a.ID, Patch{Text: &text, Priority: &prio, Notes: &notes}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := s.Get(a.ID)
	if got.Text != "new" || got.Priority != PriorityHigh || got.Notes != notes {
		t.Errorf("patched task = %+v", got)
	}
	if got.Category != a.Category {
		t.Error("unpatched fields must not change")
	}

	bad := Priority("Urgent")
	if err := s.Update(a.ID, Patch{Priority: &bad}); err == nil {
		t.Error("expected error for invalid priority")
	}
}

func TestCategories(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.AddCategory("Errands")
	s.AddCategory("Errands") // duplicate is ignored
	cats := s.Categories()
	if cats[len(cats)-1] != "Errands" {
		t.Errorf("categories = %v, want Errands appended", cats)
	}
	count := 0
	for _, c := range cats {
		if c == "Errands" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Errands appears %d times, want 1", count)
	}

	if err := s.RemoveCategory("Errands"); err != nil {
		t.Fatalf("RemoveCategory: %v", err)
	}
	if err := s.RemoveCategory("Errands"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("RemoveCategory twice = %v, want ErrUnknownCategory", err)
	}
}

func TestChangeListenerFires(t *testing.T) {
	s, _, _ := newTestStore(t)

	changes := 0
	s.SetChangeListener(func() { changes++ })

	created := mustAdd(t, s, Draft{Text: "x"})
	if err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	s.RecordSessionCompleted()

	if changes != 3 {
		t.Errorf("change listener fired %d times, want 3", changes)
	}
}
