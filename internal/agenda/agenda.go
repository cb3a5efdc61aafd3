// Package agenda classifies tasks by due-date urgency: overdue, due
// today, and upcoming within a configurable window.
package agenda

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"focusquest/internal/clock"
	"focusquest/internal/task"
)

// DefaultWindow is the upcoming-task lookahead.
const DefaultWindow = 7 * 24 * time.Hour

// View buckets incomplete, dated tasks by urgency. Tasks without a due
// date never appear in any bucket.
type View struct {
	Overdue  []task.Task
	DueToday []task.Task
	Upcoming []task.Task
}

// Empty reports whether no bucket has entries.
func (v View) Empty() bool {
	return len(v.Overdue) == 0 && len(v.DueToday) == 0 && len(v.Upcoming) == 0
}

// Build classifies the tasks against the clock's current day. Upcoming
// covers due instants after today up to the window.
func Build(tasks []task.Task, clk clock.Clock, window time.Duration) View {
	if window <= 0 {
		window = DefaultWindow
	}

	today := clk.Today()
	now := clk.Now()

	var v View
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := t.DueAt()
		if !ok {
			continue
		}

		switch {
		case t.DueDate < today:
			v.Overdue = append(v.Overdue, t)
		case t.DueDate == today:
			v.DueToday = append(v.DueToday, t)
		case due.Sub(now) <= window:
			v.Upcoming = append(v.Upcoming, t)
		}
	}
	return v
}

var windowPattern = regexp.MustCompile(`^(\d+)\s*(d|day|days|h|hour|hours|w|week|weeks)$`)

// ParseWindow parses a lookahead spec like "3d", "12h", "2w", or
// "1 week" into a duration.
func ParseWindow(spec string) (time.Duration, error) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	matches := windowPattern.FindStringSubmatch(spec)
	if matches == nil {
		return 0, fmt.Errorf("invalid window: %s (use forms like 3d, 12h, 2w)", spec)
	}

	n, _ := strconv.Atoi(matches[1])
	switch matches[2][0] {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("invalid window: %s", spec)
}
