package task

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"focusquest/internal/clock"
)

// Sentinel errors for store operations.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrTaskCompleted   = errors.New("task is completed")
	ErrUnknownCategory = errors.New("unknown category")
)

// Events receives typed domain events raised by the store. The progression
// engine subscribes through this interface; the store never calls it
// directly by type.
type Events interface {
	// TaskCompleted fires exactly once per task lifetime, on the first
	// incomplete-to-complete transition.
	TaskCompleted(priority Priority)

	// FocusSessionCompleted fires when a focus session finishes, with the
	// session length in minutes.
	FocusSessionCompleted(minutes int)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) TaskCompleted(Priority)    {}
func (NopEvents) FocusSessionCompleted(int) {}

var _ Events = NopEvents{}

// MultiEvents fans each event out to every subscriber in order.
type MultiEvents []Events

func (m MultiEvents) TaskCompleted(p Priority) {
	for _, e := range m {
		e.TaskCompleted(p)
	}
}

func (m MultiEvents) FocusSessionCompleted(minutes int) {
	for _, e := range m {
		e.FocusSessionCompleted(minutes)
	}
}

var _ Events = MultiEvents{}

// Draft holds the user-supplied fields for a new task.
type Draft struct {
	Text              string
	Category          string
	Priority          Priority
	DueDate           string
	DueTime           string
	EstimatedSessions int
	Recurrence        Recurrence
}

// Patch holds optional field updates; nil pointers leave the field as-is.
type Patch struct {
	Text              *string
	Category          *string
	Priority          *Priority
	DueDate           *string
	DueTime           *string
	EstimatedSessions *int
	Recurrence        *Recurrence
	Notes             *string
}

// Store owns the task collection, the focus pointer, the category set,
// the timer settings, and the per-day session counters. All mutators are
// synchronous; the store is meant to be driven from a single goroutine.
type Store struct {
	clk     clock.Clock
	events  Events
	entropy *ulid.MonotonicEntropy

	tasks      []Task
	categories []string
	focusID    string
	policy     SortPolicy

	timer      TimerSettings
	daily      DailyStats
	cycleCount int

	onChange func()
}

// NewStore creates an empty store with default categories and timer
// durations.
func NewStore(clk clock.Clock, events Events) *Store {
	if events == nil {
		events = NopEvents{}
	}
	return &Store{
		clk:        clk,
		events:     events,
		entropy:    ulid.Monotonic(rand.Reader, 0),
		categories: append([]string(nil), DefaultCategories...),
		policy:     DefaultSortPolicy(),
		timer:      DefaultTimerSettings(),
		daily:      DailyStats{Date: clk.Today()},
	}
}

// SetChangeListener registers a callback invoked after every observable
// mutation. The reconciliation engine uses it for write-through.
func (s *Store) SetChangeListener(fn func()) { s.onChange = fn }

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// newTaskID returns a time-derived, lexically sortable id.
func (s *Store) newTaskID() string {
	return ulid.MustNew(ulid.Timestamp(s.clk.Now()), s.entropy).String()
}

// =============================================================================
// Task Operations
// =============================================================================

// Add creates a task from a draft and returns it.
func (s *Store) Add(d Draft) (Task, error) {
	if d.Text == "" {
		return Task{}, errors.New("task text is required")
	}
	if !d.Priority.Valid() {
		d.Priority = PriorityMedium
	}
	if d.EstimatedSessions <= 0 {
		d.EstimatedSessions = 1
	}
	if d.Recurrence == "" {
		d.Recurrence = RecurNone
	}

	t := Task{
		ID:                s.newTaskID(),
		Text:              d.Text,
		Category:          d.Category,
		Priority:          d.Priority,
		DueDate:           d.DueDate,
		DueTime:           d.DueTime,
		EstimatedSessions: d.EstimatedSessions,
		Recurrence:        d.Recurrence,
		Subtasks:          []Subtask{},
		CreatedAt:         s.clk.Now(),
	}
	s.tasks = append(s.tasks, t)
	s.changed()
	return t.Clone(), nil
}

// Update applies a patch to the identified task.
func (s *Store) Update(id string, p Patch) error {
	t := s.find(id)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return fmt.Errorf("invalid priority: %s", *p.Priority)
		}
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.EstimatedSessions != nil {
		t.EstimatedSessions = *p.EstimatedSessions
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	s.changed()
	return nil
}

// ToggleComplete flips the completion flag. On the incomplete-to-complete
// transition it projects the recurrence successor, advances the focus
// pointer past the completed task, and raises TaskCompleted exactly once
// per task lifetime. Completing a task again after un-completing it never
// re-raises the event.
func (s *Store) ToggleComplete(id string) error {
	t := s.find(id)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	t.Completed = !t.Completed
	if !t.Completed {
		s.changed()
		return nil
	}

	// Mark the award before spawning: the successor append can grow the
	// backing array and leave t pointing at a stale element.
	if !t.XPAwarded {
		t.XPAwarded = true
		s.events.TaskCompleted(t.Priority)
	}
	if t.Recurrence != RecurNone && t.Recurrence != "" {
		s.spawnSuccessor(t)
	}
	if s.focusID == id {
		s.advanceFocus(id)
	}
	s.changed()
	return nil
}

// spawnSuccessor appends the projected copy of a completed recurring task.
func (s *Store) spawnSuccessor(t *Task) {
	next := t.Clone()
	next.ID = s.newTaskID()
	next.Completed = false
	next.Sessions = 0
	next.XPAwarded = false
	next.DueDate = NextDueDate(t.Recurrence, t.DueDate, s.clk.Today())
	next.CreatedAt = s.clk.Now()
	s.tasks = append(s.tasks, next)
}

// advanceFocus moves the focus pointer to the next incomplete task in the
// sorted view, strictly after the completed one, wrapping to the first
// incomplete task otherwise. With no incomplete task left the pointer is
// cleared.
func (s *Store) advanceFocus(completedID string) {
	sorted := Sorted(s.tasks, s.categories, s.policy)

	idx := -1
	for i := range sorted {
		if sorted[i].ID == completedID {
			idx = i
			break
		}
	}

	for i := idx + 1; i < len(sorted); i++ {
		if !sorted[i].Completed {
			s.focusID = sorted[i].ID
			return
		}
	}
	for i := range sorted {
		if !sorted[i].Completed && sorted[i].ID != completedID {
			s.focusID = sorted[i].ID
			return
		}
	}
	s.focusID = ""
}

// Delete removes a task. A focus pointer referencing it is cleared.
func (s *Store) Delete(id string) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if s.focusID == id {
				s.focusID = ""
			}
			s.changed()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// SetFocus points the focus at an existing incomplete task. An empty id
// clears the pointer.
func (s *Store) SetFocus(id string) error {
	if id == "" {
		s.focusID = ""
		s.changed()
		return nil
	}
	t := s.find(id)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if t.Completed {
		return fmt.Errorf("%w: %s", ErrTaskCompleted, id)
	}
	s.focusID = id
	s.changed()
	return nil
}

// =============================================================================
// Subtasks & Attachments
// =============================================================================

// AddSubtask appends a subtask to the identified task.
func (s *Store) AddSubtask(taskID, text string) (Subtask, error) {
	t := s.find(taskID)
	if t == nil {
		return Subtask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	sub := Subtask{ID: uuid.New().String(), Text: text}
	t.Subtasks = append(t.Subtasks, sub)
	s.changed()
	return sub, nil
}

// ToggleSubtask flips a subtask's done flag.
func (s *Store) ToggleSubtask(taskID, subtaskID string) error {
	t := s.find(taskID)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks[i].Completed = !t.Subtasks[i].Completed
			s.changed()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSubtaskNotFound, subtaskID)
}

// DeleteSubtask removes a subtask.
func (s *Store) DeleteSubtask(taskID, subtaskID string) error {
	t := s.find(taskID)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
			s.changed()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSubtaskNotFound, subtaskID)
}

// AddAttachment records an attachment reference on a task.
func (s *Store) AddAttachment(taskID, name, uri string) (Attachment, error) {
	t := s.find(taskID)
	if t == nil {
		return Attachment{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	a := Attachment{ID: uuid.New().String(), Name: name, URI: uri, AddedAt: s.clk.Now()}
	t.Attachments = append(t.Attachments, a)
	s.changed()
	return a, nil
}

// RemoveAttachment deletes an attachment reference.
func (s *Store) RemoveAttachment(taskID, attachmentID string) error {
	t := s.find(taskID)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	for i := range t.Attachments {
		if t.Attachments[i].ID == attachmentID {
			t.Attachments = append(t.Attachments[:i], t.Attachments[i+1:]...)
			s.changed()
			return nil
		}
	}
	return fmt.Errorf("attachment not found: %s", attachmentID)
}

// =============================================================================
// Sessions, Sorting, Settings
// =============================================================================

// RecordSessionCompleted registers one finished focus session: the daily
// counter and the consecutive-session counter advance, the focused task's
// session count increments, and FocusSessionCompleted is raised with the
// configured work duration.
func (s *Store) RecordSessionCompleted() {
	s.rolloverDaily()
	s.daily.Count++
	s.cycleCount++
	if t := s.find(s.focusID); t != nil {
		t.Sessions++
	}
	s.events.FocusSessionCompleted(s.timer.Work)
	s.changed()
}

// rolloverDaily resets the daily counter when the day key changes.
// Calling it redundantly on the same day is a no-op.
func (s *Store) rolloverDaily() {
	today := s.clk.Today()
	if s.daily.Date != today {
		s.daily = DailyStats{Date: today}
	}
}

// SetSortPolicy selects a sort field: reselecting the active field flips
// the order, a new field resets the order to descending.
func (s *Store) SetSortPolicy(field SortField) {
	s.policy = s.policy.Toggle(field)
	s.changed()
}

// UpdateTimerSettings patches the session durations; zero values keep the
// current duration.
func (s *Store) UpdateTimerSettings(p TimerSettings) {
	if p.Work > 0 {
		s.timer.Work = p.Work
	}
	if p.ShortBreak > 0 {
		s.timer.ShortBreak = p.ShortBreak
	}
	if p.LongBreak > 0 {
		s.timer.LongBreak = p.LongBreak
	}
	s.changed()
}

// AddCategory appends a category if it is not already present.
func (s *Store) AddCategory(name string) {
	for _, c := range s.categories {
		if c == name {
			return
		}
	}
	s.categories = append(s.categories, name)
	s.changed()
}

// RemoveCategory drops a category from the set. Tasks keep their category
// string; they sort after known categories.
func (s *Store) RemoveCategory(name string) error {
	for i, c := range s.categories {
		if c == name {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.changed()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
}

// =============================================================================
// Accessors
// =============================================================================

func (s *Store) find(id string) *Task {
	if id == "" {
		return nil
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// Get returns a copy of the identified task.
func (s *Store) Get(id string) (Task, bool) {
	if t := s.find(id); t != nil {
		return t.Clone(), true
	}
	return Task{}, false
}

// Tasks returns a copy of the canonical (insertion-ordered) collection.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].Clone()
	}
	return out
}

// SortedView returns the tasks ordered by the active sort policy.
func (s *Store) SortedView() []Task {
	return Sorted(s.tasks, s.categories, s.policy)
}

// Focused returns the focused task, if any.
func (s *Store) Focused() (Task, bool) {
	return s.Get(s.focusID)
}

// FocusID returns the focused task id, or empty.
func (s *Store) FocusID() string { return s.focusID }

// Categories returns a copy of the category set.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Policy returns the active sort policy.
func (s *Store) Policy() SortPolicy { return s.policy }

// Timer returns the session durations.
func (s *Store) Timer() TimerSettings { return s.timer }

// Daily returns today's session stats after applying the rollover check.
func (s *Store) Daily() DailyStats {
	s.rolloverDaily()
	return s.daily
}

// CycleCount returns the consecutive-session counter.
func (s *Store) CycleCount() int { return s.cycleCount }

// =============================================================================
// Bulk load (reconciliation only)
// =============================================================================

// State is the exportable task-store state used by snapshots.
type State struct {
	Tasks      []Task
	Categories []string
	Timer      TimerSettings
	Daily      DailyStats
	CycleCount int
}

// Export returns a value copy of the full store state.
func (s *Store) Export() State {
	return State{
		Tasks:      s.Tasks(),
		Categories: s.Categories(),
		Timer:      s.timer,
		Daily:      s.daily,
		CycleCount: s.cycleCount,
	}
}

// Load replaces the store state wholesale. It is reserved for the
// reconciliation engine's bulk load after a successful parse; it clears a
// focus pointer that no longer references an existing incomplete task.
func (s *Store) Load(st State) {
	s.tasks = make([]Task, len(st.Tasks))
	for i := range st.Tasks {
		s.tasks[i] = st.Tasks[i].Clone()
	}
	if st.Categories != nil {
		s.categories = append([]string(nil), st.Categories...)
	}
	if st.Timer != (TimerSettings{}) {
		s.timer = st.Timer
	}
	if st.Daily.Date != "" {
		s.daily = st.Daily
	}
	s.cycleCount = st.CycleCount

	if t := s.find(s.focusID); t == nil || t.Completed {
		s.focusID = ""
	}
	s.changed()
}
