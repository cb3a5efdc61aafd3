package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusquest/internal/progress"
	"focusquest/internal/task"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cycle := 3
	in := Snapshot{
		Tasks: []task.Task{
			{ID: "01HQ", Text: "write tests", Priority: task.PriorityHigh, DueDate: "2024-02-01"},
		},
		Categories: []string{"Work", "Personal"},
		Timer:      &task.TimerSettings{Work: 50, ShortBreak: 10, LongBreak: 20},
		Daily:      &task.DailyStats{Date: "2024-01-15", Count: 4},
		CycleCount: &cycle,
	}

	data, err := Encode(in)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"), "encoded snapshot ends with a newline")

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in.Tasks, out.Tasks)
	assert.Equal(t, in.Categories, out.Categories)
	assert.Equal(t, in.Timer, out.Timer)
	assert.Equal(t, in.Daily, out.Daily)
	assert.Equal(t, &cycle, out.CycleCount)
}

func TestEncodeUsesExternalFieldNames(t *testing.T) {
	data, err := Encode(Snapshot{
		Tasks: []task.Task{{ID: "a", Text: "x", EstimatedSessions: 2, Sessions: 1}},
	})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"todos"`)
	assert.Contains(t, s, `"estimatedPomodoros"`)
	assert.Contains(t, s, `"pomodoros"`)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	out, err := Decode([]byte(`{"schemaVersion": 7, "categories": ["Work"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Work"}, out.Categories)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"todos": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed snapshot")

	_, err = Decode([]byte(``))
	require.Error(t, err)
}

func TestTaskStateKeepsCurrentForAbsentFields(t *testing.T) {
	current := task.State{
		Tasks:      []task.Task{{ID: "keep", Text: "current"}},
		Categories: []string{"Work"},
		Timer:      task.DefaultTimerSettings(),
		Daily:      task.DailyStats{Date: "2024-01-15", Count: 2},
		CycleCount: 5,
	}

	// An empty snapshot changes nothing except the cycle counter, which it
	// does not carry either.
	st := Snapshot{}.TaskState(current)
	assert.Equal(t, current, st)

	// Present fields replace, absent ones stay.
	timer := task.TimerSettings{Work: 45, ShortBreak: 5, LongBreak: 15}
	st = Snapshot{Timer: &timer}.TaskState(current)
	assert.Equal(t, timer, st.Timer)
	assert.Equal(t, current.Tasks, st.Tasks)
	assert.Equal(t, current.Daily, st.Daily)
	assert.Equal(t, current.CycleCount, st.CycleCount)
}

func TestFromStateCarriesEverything(t *testing.T) {
	xp := 120
	st := task.State{
		Tasks:      []task.Task{{ID: "a", Text: "x"}},
		Categories: []string{"Work"},
		Timer:      task.DefaultTimerSettings(),
		Daily:      task.DailyStats{Date: "2024-01-15", Count: 1},
		CycleCount: 2,
	}

	s := FromState(st, progress.ProfileData{XP: &xp})
	assert.Equal(t, st.Tasks, s.Tasks)
	assert.Equal(t, st.Categories, s.Categories)
	require.NotNil(t, s.Timer)
	assert.Equal(t, st.Timer, *s.Timer)
	require.NotNil(t, s.CycleCount)
	assert.Equal(t, 2, *s.CycleCount)
	require.NotNil(t, s.Profile)
	assert.Equal(t, &xp, s.Profile.XP)
}
