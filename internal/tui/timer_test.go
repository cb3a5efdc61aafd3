package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func TestTickCountsDown(t *testing.T) {
	m := New("Write report", 25)

	updated, _ := m.Update(tickMsg(time.Now()))
	got := updated.(Model)

	if got.remaining != 25*time.Minute-time.Second {
		t.Errorf("remaining = %v", got.remaining)
	}
	if got.completed || got.cancelled {
		t.Error("countdown should still be running")
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	m := New("", 25)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	updated, _ = updated.(Model).Update(tickMsg(time.Now()))
	got := updated.(Model)

	if got.remaining != 25*time.Minute {
		t.Errorf("paused countdown moved: %v", got.remaining)
	}

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	updated, _ = updated.(Model).Update(tickMsg(time.Now()))
	got = updated.(Model)

	if got.remaining != 25*time.Minute-time.Second {
		t.Errorf("resumed countdown stuck: %v", got.remaining)
	}
}

func TestViewShowsTaskAndClock(t *testing.T) {
	m := New("Write report", 25)

	view := m.View()
	if !strings.Contains(view, "Focus: Write report") {
		t.Errorf("missing task title:\n%s", view)
	}
	if !strings.Contains(view, "25:00") {
		t.Errorf("missing clock:\n%s", view)
	}
}

func TestQuitKeyCancels(t *testing.T) {
	tm := teatest.NewTestModel(t, New("Write report", 25), teatest.WithInitialTermSize(80, 24))

	tm.Type("q")
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.Cancelled() {
		t.Error("q should cancel the session")
	}
	if final.Completed() {
		t.Error("cancelled session must not count as completed")
	}
}

func TestCountdownRunsToCompletion(t *testing.T) {
	// Zero minutes completes on the first tick.
	tm := teatest.NewTestModel(t, New("", 0), teatest.WithInitialTermSize(80, 24))

	tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.Completed() {
		t.Error("countdown should complete")
	}
	if !strings.Contains(final.View(), "Session complete") {
		t.Errorf("final view:\n%s", final.View())
	}
}
