// Package prompt handles interactive prompts with no-prompt mode
// support: yes/no confirmation and filter-and-pick task selection.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"focusquest/internal/task"
)

// Sentinel errors for prompt operations.
var (
	ErrSelectionCancelled = errors.New("selection cancelled")
	ErrNoPromptMode       = errors.New("interactive prompts disabled (--yes)")
	ErrNoTasks            = errors.New("no tasks available")
	ErrNoMatches          = errors.New("no tasks match the filter")
)

// Confirm asks a yes/no question. In no-prompt mode it answers yes
// without asking. Empty input and EOF answer no.
func Confirm(r io.Reader, w io.Writer, question string, noPrompt bool) bool {
	if noPrompt {
		return true
	}
	if w == nil {
		w = io.Discard
	}

	fmt.Fprintf(w, "%s [y/N]: ", question)
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// TaskSelector provides filter-and-pick task selection.
type TaskSelector struct {
	Tasks    []task.Task
	Prompt   string
	Reader   io.Reader
	Writer   io.Writer
	NoPrompt bool
}

// Run executes the selection. With exactly one candidate it auto-selects;
// otherwise it asks for a filter, then a number. Zero cancels.
func (s *TaskSelector) Run() (task.Task, error) {
	if s.NoPrompt {
		return task.Task{}, ErrNoPromptMode
	}
	if len(s.Tasks) == 0 {
		return task.Task{}, ErrNoTasks
	}
	if len(s.Tasks) == 1 {
		return s.Tasks[0], nil
	}

	writer := s.Writer
	if writer == nil {
		writer = io.Discard
	}
	scanner := bufio.NewScanner(s.Reader)

	fmt.Fprintf(writer, "%s\nFilter (or press Enter to show all): ", s.Prompt)
	if !scanner.Scan() {
		return task.Task{}, ErrSelectionCancelled
	}
	filter := strings.ToLower(strings.TrimSpace(scanner.Text()))

	var filtered []task.Task
	for _, t := range s.Tasks {
		if filter == "" || strings.Contains(strings.ToLower(t.Text), filter) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return task.Task{}, ErrNoMatches
	}
	if len(filtered) == 1 {
		fmt.Fprintf(writer, "Auto-selected: %s\n", filtered[0].Text)
		return filtered[0], nil
	}

	for i, t := range filtered {
		fmt.Fprintf(writer, "  %d) %s\n", i+1, formatTaskLine(t))
	}
	fmt.Fprint(writer, "Select (0 to cancel): ")
	if !scanner.Scan() {
		return task.Task{}, ErrSelectionCancelled
	}

	input := strings.TrimSpace(scanner.Text())
	num, err := strconv.Atoi(input)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid selection: %s", input)
	}
	if num == 0 {
		return task.Task{}, ErrSelectionCancelled
	}
	if num < 1 || num > len(filtered) {
		return task.Task{}, fmt.Errorf("selection out of range: %d", num)
	}
	return filtered[num-1], nil
}

// formatTaskLine shows the task text with its metadata in brackets.
func formatTaskLine(t task.Task) string {
	meta := []string{string(t.Priority)}
	if t.Category != "" {
		meta = append(meta, t.Category)
	}
	if t.DueDate != "" {
		meta = append(meta, "due: "+t.DueDate)
	}
	return fmt.Sprintf("%s [%s]", t.Text, strings.Join(meta, ", "))
}
