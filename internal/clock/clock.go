// Package clock supplies the current time and calendar arithmetic.
// All date-dependent logic in the task and progression stores goes
// through a Clock so tests can pin or advance "today".
package clock

import "time"

// DayKeyLayout is the calendar-date format used as the daily rollover key.
const DayKeyLayout = "2006-01-02"

// Clock provides wall-clock time and day-key helpers.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// Today returns the current calendar date as a day key (YYYY-MM-DD).
	Today() string
}

// Real is the production clock backed by time.Now.
type Real struct{}

// Now implements Clock.
func (Real) Now() time.Time { return time.Now() }

// Today implements Clock.
func (Real) Today() string { return time.Now().Format(DayKeyLayout) }

// Fake is a settable clock for tests.
type Fake struct {
	Current time.Time
}

// NewFake returns a fake clock pinned to the given instant.
func NewFake(t time.Time) *Fake {
	return &Fake{Current: t}
}

// Now implements Clock.
func (f *Fake) Now() time.Time { return f.Current }

// Today implements Clock.
func (f *Fake) Today() string { return f.Current.Format(DayKeyLayout) }

// Advance moves the fake clock forward.
func (f *Fake) Advance(d time.Duration) { f.Current = f.Current.Add(d) }

// AdvanceDays moves the fake clock forward by whole calendar days.
func (f *Fake) AdvanceDays(n int) { f.Current = f.Current.AddDate(0, 0, n) }

// Yesterday returns the day key for the calendar day before the given one.
// An empty or unparseable key yields an empty string.
func Yesterday(dayKey string) string {
	t, err := time.Parse(DayKeyLayout, dayKey)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DayKeyLayout)
}
