// Package tui provides the interactive focus-session timer.
package tui

import (
	"fmt"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	clockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
	doneStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

type tickMsg time.Time

// Model is the bubbletea model for one focus session countdown.
type Model struct {
	taskText  string
	total     time.Duration
	remaining time.Duration
	paused    bool
	completed bool
	cancelled bool
	bar       bprogress.Model
	width     int
}

// New creates a countdown for the given session length.
func New(taskText string, minutes int) Model {
	total := time.Duration(minutes) * time.Minute
	return Model{
		taskText:  taskText,
		total:     total,
		remaining: total,
		bar:       bprogress.New(bprogress.WithDefaultGradient()),
		width:     60,
	}
}

// Completed reports whether the session ran to the end.
func (m Model) Completed() bool { return m.completed }

// Cancelled reports whether the user aborted the session.
func (m Model) Cancelled() bool { return m.cancelled }

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
			return m, nil
		}
		return m, nil

	case tickMsg:
		if m.completed || m.cancelled {
			return m, nil
		}
		if !m.paused {
			m.remaining -= time.Second
			if m.remaining <= 0 {
				m.remaining = 0
				m.completed = true
				return m, tea.Quit
			}
		}
		return m, tick()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.completed {
		return doneStyle.Render("Session complete! 🍅") + "\n"
	}

	title := "Focus session"
	if m.taskText != "" {
		title = "Focus: " + m.taskText
	}

	mins := int(m.remaining.Minutes())
	secs := int(m.remaining.Seconds()) % 60
	status := ""
	if m.paused {
		status = helpStyle.Render("  (paused)")
	}

	percent := 1.0
	if m.total > 0 {
		percent = float64(m.total-m.remaining) / float64(m.total)
	}

	return fmt.Sprintf("%s\n\n  %s%s\n  %s\n\n%s\n",
		titleStyle.Render(title),
		clockStyle.Render(fmt.Sprintf("%02d:%02d", mins, secs)),
		status,
		m.bar.ViewAs(percent),
		helpStyle.Render("p pause · q abort"),
	)
}

// Run drives the timer to completion and returns the final model.
func Run(m Model) (Model, error) {
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("run timer: %w", err)
	}
	out, ok := final.(Model)
	if !ok {
		return m, fmt.Errorf("unexpected model type %T", final)
	}
	return out, nil
}
