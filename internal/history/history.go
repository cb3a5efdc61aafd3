// Package history records completed sessions and tasks in a local
// SQLite log, independent of the snapshot. The log feeds the history
// command's per-day breakdown and survives snapshot merges.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"focusquest/internal/clock"
	"focusquest/internal/task"
)

// Kind labels a recorded event.
type Kind string

const (
	KindSession Kind = "session"
	KindTask    Kind = "task"
)

// Event is one recorded completion.
type Event struct {
	At      time.Time
	Day     string // day key, YYYY-MM-DD
	Kind    Kind
	Detail  string // task priority, empty for sessions
	Minutes int    // session length, zero for tasks
}

// DayCount aggregates one day's completions.
type DayCount struct {
	Day      string
	Sessions int
	Tasks    int
	Minutes  int
}

// Log is the append-only completion log.
type Log struct {
	db  *sql.DB
	clk clock.Clock
}

// Open opens (or creates) the history database at path.
func Open(path string, clk clock.Clock) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS events (
			at      TEXT NOT NULL,
			day     TEXT NOT NULL,
			kind    TEXT NOT NULL,
			detail  TEXT,
			minutes INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Log{db: db, clk: clk}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends one event stamped with the current instant.
func (l *Log) Record(kind Kind, detail string, minutes int) error {
	now := l.clk.Now()
	_, err := l.db.Exec(
		`INSERT INTO events (at, day, kind, detail, minutes) VALUES (?, ?, ?, ?, ?)`,
		now.UTC().Format(time.RFC3339), l.clk.Today(), string(kind), detail, minutes,
	)
	if err != nil {
		return fmt.Errorf("record history event: %w", err)
	}
	return nil
}

// DailyCounts aggregates the most recent days, newest first.
func (l *Log) DailyCounts(days int) ([]DayCount, error) {
	rows, err := l.db.Query(`
		SELECT day,
		       SUM(CASE WHEN kind = 'session' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN kind = 'task' THEN 1 ELSE 0 END),
		       SUM(minutes)
		FROM events
		GROUP BY day
		ORDER BY day DESC
		LIMIT ?`, days)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var counts []DayCount
	for rows.Next() {
		var c DayCount
		if err := rows.Scan(&c.Day, &c.Sessions, &c.Tasks, &c.Minutes); err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Cleanup deletes events older than the retention period and returns
// how many were removed.
func (l *Log) Cleanup(retentionDays int) (int64, error) {
	cutoff := l.clk.Now().AddDate(0, 0, -retentionDays)
	res, err := l.db.Exec(`DELETE FROM events WHERE at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("cleanup history: %w", err)
	}
	return res.RowsAffected()
}

// Recorder subscribes the log to the task store's domain events.
// Recording failures are silently dropped; the log is advisory.
type Recorder struct {
	log *Log
}

// NewRecorder wraps a log as an event subscriber.
func NewRecorder(l *Log) *Recorder { return &Recorder{log: l} }

// TaskCompleted records one task completion.
func (r *Recorder) TaskCompleted(p task.Priority) {
	_ = r.log.Record(KindTask, string(p), 0)
}

// FocusSessionCompleted records one finished session.
func (r *Recorder) FocusSessionCompleted(minutes int) {
	_ = r.log.Record(KindSession, "", minutes)
}

var _ task.Events = (*Recorder)(nil)
