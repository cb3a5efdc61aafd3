// Package task implements the task collection, recurrence projection,
// focus-queue advancement, and the daily session counters.
package task

import (
	"time"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Weight returns the numeric rank of a priority (High > Medium > Low).
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Recurrence is the repeat rule applied when a task is completed.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// Subtask is a checklist entry under a task.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Attachment is a metadata-only reference to an external resource.
// No file content is copied.
type Attachment struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	URI     string    `json:"uri"`
	AddedAt time.Time `json:"addedAt"`
}

// DueDateLayout is the wire format for due dates.
const DueDateLayout = "2006-01-02"

// DueTimeLayout is the wire format for due times.
const DueTimeLayout = "15:04"

// Task is a single todo item. JSON tags match the snapshot file format.
type Task struct {
	ID                string       `json:"id"`
	Text              string       `json:"text"`
	Category          string       `json:"category"`
	Priority          Priority     `json:"priority"`
	DueDate           string       `json:"dueDate,omitempty"` // YYYY-MM-DD, empty when unset
	DueTime           string       `json:"dueTime,omitempty"` // HH:MM, empty when unset
	Completed         bool         `json:"completed"`
	EstimatedSessions int          `json:"estimatedPomodoros"`
	Sessions          int          `json:"pomodoros"`
	Notes             string       `json:"notes"`
	Subtasks          []Subtask    `json:"subtasks"`
	Attachments       []Attachment `json:"attachments,omitempty"`
	Recurrence        Recurrence   `json:"recurring,omitempty"`
	XPAwarded         bool         `json:"xpAwarded"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// Clone returns a deep value copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Subtasks = append([]Subtask(nil), t.Subtasks...)
	c.Attachments = append([]Attachment(nil), t.Attachments...)
	return c
}

// DueAt resolves the task's due date and time to an instant for sorting.
// A date without a time defaults to 23:59. Returns false when no due date
// is set.
func (t Task) DueAt() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	due := t.DueTime
	if due == "" {
		due = "23:59"
	}
	at, err := time.Parse(DueDateLayout+"T"+DueTimeLayout, t.DueDate+"T"+due)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// NextDueDate projects the successor due date for a recurring task.
// The base is the current due date, or today when no due date is set.
func NextDueDate(rule Recurrence, dueDate string, today string) string {
	base, err := time.Parse(DueDateLayout, dueDate)
	if err != nil {
		base, err = time.Parse(DueDateLayout, today)
		if err != nil {
			return ""
		}
	}
	switch rule {
	case RecurDaily:
		return base.AddDate(0, 0, 1).Format(DueDateLayout)
	case RecurWeekly:
		return base.AddDate(0, 0, 7).Format(DueDateLayout)
	case RecurMonthly:
		return base.AddDate(0, 1, 0).Format(DueDateLayout)
	}
	return dueDate
}

// TimerSettings holds the session durations in minutes.
type TimerSettings struct {
	Work       int `json:"work" yaml:"work"`
	ShortBreak int `json:"shortBreak" yaml:"short_break"`
	LongBreak  int `json:"longBreak" yaml:"long_break"`
}

// DefaultTimerSettings returns the standard pomodoro durations.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{Work: 25, ShortBreak: 5, LongBreak: 15}
}

// DailyStats counts focus sessions completed on one calendar day.
type DailyStats struct {
	Date  string `json:"date"` // day key, YYYY-MM-DD
	Count int    `json:"count"`
}

// DefaultCategories seeds a fresh store.
var DefaultCategories = []string{"Work", "Personal", "Study", "Fitness"}
