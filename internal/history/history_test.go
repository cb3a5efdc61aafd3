package history

import (
	"path/filepath"
	"testing"
	"time"

	"focusquest/internal/clock"
	"focusquest/internal/task"
)

func openTestLog(t *testing.T) (*Log, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	l, err := Open(filepath.Join(t.TempDir(), "history.db"), clk)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l, clk
}

func TestRecordAndDailyCounts(t *testing.T) {
	l, clk := openTestLog(t)

	if err := l.Record(KindSession, "", 25); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := l.Record(KindTask, "High", 0); err != nil {
		t.Fatalf("Record: %v", err)
	}

	clk.AdvanceDays(1)
	if err := l.Record(KindSession, "", 50); err != nil {
		t.Fatalf("Record: %v", err)
	}

	counts, err := l.DailyCounts(7)
	if err != nil {
		t.Fatalf("DailyCounts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("got %d days, want 2", len(counts))
	}

	// Newest first.
	if counts[0].Day != "2024-01-02" || counts[0].Sessions != 1 || counts[0].Minutes != 50 {
		t.Errorf("day 2 = %+v", counts[0])
	}
	if counts[1].Day != "2024-01-01" || counts[1].Sessions != 1 || counts[1].Tasks != 1 || counts[1].Minutes != 25 {
		t.Errorf("day 1 = %+v", counts[1])
	}
}

func TestDailyCountsLimit(t *testing.T) {
	l, clk := openTestLog(t)

	for i := 0; i < 5; i++ {
		if err := l.Record(KindTask, "Low", 0); err != nil {
			t.Fatalf("Record: %v", err)
		}
		clk.AdvanceDays(1)
	}

	counts, err := l.DailyCounts(3)
	if err != nil {
		t.Fatalf("DailyCounts: %v", err)
	}
	if len(counts) != 3 {
		t.Errorf("got %d days, want 3", len(counts))
	}
}

func TestCleanup(t *testing.T) {
	l, clk := openTestLog(t)

	if err := l.Record(KindSession, "", 25); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clk.AdvanceDays(30)
	if err := l.Record(KindSession, "", 25); err != nil {
		t.Fatalf("Record: %v", err)
	}

	deleted, err := l.Cleanup(7)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d events, want 1", deleted)
	}

	counts, err := l.DailyCounts(60)
	if err != nil {
		t.Fatalf("DailyCounts: %v", err)
	}
	if len(counts) != 1 {
		t.Errorf("got %d days after cleanup, want 1", len(counts))
	}
}

func TestRecorderSubscribesToEvents(t *testing.T) {
	l, _ := openTestLog(t)
	rec := NewRecorder(l)

	var events task.Events = rec
	events.TaskCompleted(task.PriorityHigh)
	events.FocusSessionCompleted(25)

	counts, err := l.DailyCounts(1)
	if err != nil {
		t.Fatalf("DailyCounts: %v", err)
	}
	if len(counts) != 1 || counts[0].Tasks != 1 || counts[0].Sessions != 1 {
		t.Errorf("counts = %+v", counts)
	}
}
