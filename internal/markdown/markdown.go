// Package markdown renders the task list as a markdown checklist and
// parses checklists back into importable drafts.
//
// Line format: "- [ ] Text !high @2024-01-15 #Category", with subtasks
// indented two spaces under their parent.
package markdown

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"focusquest/internal/task"
)

// FormatTasks renders tasks as a markdown checklist. Subtasks nest under
// their parent; completed entries are checked.
func FormatTasks(tasks []task.Task) string {
	var sb strings.Builder
	for i := range tasks {
		writeTask(&sb, &tasks[i])
	}
	return sb.String()
}

func writeTask(sb *strings.Builder, t *task.Task) {
	sb.WriteString("- [")
	sb.WriteString(checkbox(t.Completed))
	sb.WriteString("] ")
	sb.WriteString(formatLine(t))
	sb.WriteString("\n")

	for _, sub := range t.Subtasks {
		sb.WriteString("  - [")
		sb.WriteString(checkbox(sub.Completed))
		sb.WriteString("] ")
		sb.WriteString(sub.Text)
		sb.WriteString("\n")
	}
}

func checkbox(done bool) string {
	if done {
		return "x"
	}
	return " "
}

// formatLine renders a task's text with its inline markers. Medium
// priority is the default and carries no marker.
func formatLine(t *task.Task) string {
	parts := []string{t.Text}

	switch t.Priority {
	case task.PriorityHigh:
		parts = append(parts, "!high")
	case task.PriorityLow:
		parts = append(parts, "!low")
	}
	if t.DueDate != "" {
		parts = append(parts, "@"+t.DueDate)
	}
	if t.Category != "" {
		parts = append(parts, "#"+t.Category)
	}
	return strings.Join(parts, " ")
}

// Entry is one parsed checklist item.
type Entry struct {
	Draft     task.Draft
	Completed bool
	Subtasks  []task.Subtask
}

var (
	linePattern     = regexp.MustCompile(`^(\s*)- \[( |x|X)\] (.+)$`)
	priorityPattern = regexp.MustCompile(`\s!(high|medium|low)\b`)
	duePattern      = regexp.MustCompile(`\s@(\d{4}-\d{2}-\d{2})\b`)
	categoryPattern = regexp.MustCompile(`\s#(\S+)`)
)

// ParseTasks reads a markdown checklist. Indented items attach to the
// preceding top-level item as subtasks; non-checklist lines are skipped.
func ParseTasks(input string) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(strings.NewReader(input))
	line := 0
	for scanner.Scan() {
		line++
		matches := linePattern.FindStringSubmatch(scanner.Text())
		if matches == nil {
			continue
		}
		indent, check, text := matches[1], matches[2], strings.TrimSpace(matches[3])
		completed := check == "x" || check == "X"

		if indent != "" {
			if len(entries) == 0 {
				return nil, fmt.Errorf("line %d: subtask without a parent task", line)
			}
			last := &entries[len(entries)-1]
			last.Subtasks = append(last.Subtasks, task.Subtask{Text: text, Completed: completed})
			continue
		}

		entries = append(entries, Entry{Draft: parseLine(text), Completed: completed})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse checklist: %w", err)
	}
	return entries, nil
}

// parseLine extracts the inline markers and returns the remaining text
// as the draft text.
func parseLine(text string) task.Draft {
	d := task.Draft{Priority: task.PriorityMedium}

	if m := priorityPattern.FindStringSubmatch(text); m != nil {
		switch m[1] {
		case "high":
			d.Priority = task.PriorityHigh
		case "low":
			d.Priority = task.PriorityLow
		}
		text = priorityPattern.ReplaceAllString(text, "")
	}
	if m := duePattern.FindStringSubmatch(text); m != nil {
		d.DueDate = m[1]
		text = duePattern.ReplaceAllString(text, "")
	}
	if m := categoryPattern.FindStringSubmatch(text); m != nil {
		d.Category = m[1]
		text = categoryPattern.ReplaceAllString(text, "")
	}

	d.Text = strings.Join(strings.Fields(text), " ")
	return d
}
