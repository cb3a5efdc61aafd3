// Package snapshot defines the persisted snapshot format: the serializable
// union of tasks, settings, daily stats, and the progression profile.
//
// The wire format is pretty-printed UTF-8 JSON, human-diffable. Unknown
// top-level fields are ignored on read and every known field is optional:
// absent fields keep the current in-memory values.
package snapshot

import (
	"encoding/json"
	"fmt"

	"focusquest/internal/progress"
	"focusquest/internal/task"
)

// Snapshot is the unit of file and cache persistence.
type Snapshot struct {
	Tasks      []task.Task           `json:"todos,omitempty"`
	Categories []string              `json:"categories,omitempty"`
	Timer      *task.TimerSettings   `json:"timerSettings,omitempty"`
	Daily      *task.DailyStats      `json:"dailyStats,omitempty"`
	CycleCount *int                  `json:"pomodoroCycle,omitempty"`
	Profile    *progress.ProfileData `json:"gamification,omitempty"`
}

// FromState composes a snapshot from the two stores' exportable state.
func FromState(st task.State, profile progress.ProfileData) Snapshot {
	cycle := st.CycleCount
	timer := st.Timer
	daily := st.Daily
	return Snapshot{
		Tasks:      st.Tasks,
		Categories: st.Categories,
		Timer:      &timer,
		Daily:      &daily,
		CycleCount: &cycle,
		Profile:    &profile,
	}
}

// TaskState projects the snapshot onto a task-store state, keeping values
// from current for every absent field.
func (s Snapshot) TaskState(current task.State) task.State {
	st := current
	if s.Tasks != nil {
		st.Tasks = s.Tasks
	}
	if s.Categories != nil {
		st.Categories = s.Categories
	}
	if s.Timer != nil {
		st.Timer = *s.Timer
	}
	if s.Daily != nil {
		st.Daily = *s.Daily
	}
	if s.CycleCount != nil {
		st.CycleCount = *s.CycleCount
	}
	return st
}

// Encode renders the snapshot as pretty-printed JSON.
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses snapshot JSON. The parse either succeeds fully or fails
// without producing a partial snapshot; callers must not apply anything
// on error.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("malformed snapshot: %w", err)
	}
	return s, nil
}
