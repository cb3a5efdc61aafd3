package agenda

import (
	"testing"
	"time"

	"focusquest/internal/clock"
	"focusquest/internal/task"
)

func TestBuildBuckets(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	tasks := []task.Task{
		{ID: "overdue", Text: "a", DueDate: "2024-03-08"},
		{ID: "today", Text: "b", DueDate: "2024-03-10"},
		{ID: "soon", Text: "c", DueDate: "2024-03-14"},
		{ID: "far", Text: "d", DueDate: "2024-06-01"},
		{ID: "undated", Text: "e"},
		{ID: "done", Text: "f", DueDate: "2024-03-08", Completed: true},
	}

	v := Build(tasks, clk, 7*24*time.Hour)

	if len(v.Overdue) != 1 || v.Overdue[0].ID != "overdue" {
		t.Errorf("overdue = %v", v.Overdue)
	}
	if len(v.DueToday) != 1 || v.DueToday[0].ID != "today" {
		t.Errorf("due today = %v", v.DueToday)
	}
	if len(v.Upcoming) != 1 || v.Upcoming[0].ID != "soon" {
		t.Errorf("upcoming = %v", v.Upcoming)
	}
}

func TestBuildEmptyView(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))

	v := Build(nil, clk, 0)
	if !v.Empty() {
		t.Error("expected empty view")
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"3d", 3 * 24 * time.Hour, false},
		{"12h", 12 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"1 week", 7 * 24 * time.Hour, false},
		{"2 Days", 2 * 24 * time.Hour, false},
		{"soon", 0, true},
		{"5m", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWindow(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWindow(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWindow(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWindow(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
