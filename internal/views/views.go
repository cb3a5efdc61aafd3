// Package views renders tasks, the progression profile, and the shop for
// terminal output.
package views

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"focusquest/internal/agenda"
	"focusquest/internal/progress"
	"focusquest/internal/task"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	focusStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	completedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	highStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mediumStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
	noticeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	overdueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// TerminalWidth returns the current terminal width, defaulting to 80 when
// stdout is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// RenderTasks writes the sorted task table. The focused task is marked.
func RenderTasks(w io.Writer, tasks []task.Task, focusID string) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks. Add one with: focusquest add")
		return
	}

	width := TerminalWidth()
	for _, t := range tasks {
		fmt.Fprintln(w, renderTaskLine(t, focusID, width))
		for _, sub := range t.Subtasks {
			box := "[ ]"
			if sub.Completed {
				box = "[x]"
			}
			fmt.Fprintf(w, "      %s %s\n", box, dimStyle.Render(sub.Text))
		}
	}
}

func renderTaskLine(t task.Task, focusID string, width int) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	marker := "  "
	if t.ID == focusID {
		marker = focusStyle.Render("▶ ")
	}

	text := t.Text
	if t.Completed {
		text = completedStyle.Render(text)
	}

	var meta []string
	meta = append(meta, priorityStyle(t.Priority).Render(string(t.Priority)))
	if t.Category != "" {
		meta = append(meta, t.Category)
	}
	if t.DueDate != "" {
		due := t.DueDate
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		meta = append(meta, "due "+due)
	}
	if t.Recurrence != task.RecurNone && t.Recurrence != "" {
		meta = append(meta, "↻ "+string(t.Recurrence))
	}
	meta = append(meta, fmt.Sprintf("🍅 %d/%d", t.Sessions, t.EstimatedSessions))

	line := fmt.Sprintf("%s%s %s  %s", marker, box, text, dimStyle.Render(strings.Join(meta, " · ")))
	if lipgloss.Width(line) > width {
		line = line[:width]
	}
	return line
}

func priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return highStyle
	case task.PriorityMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

// RenderAgenda writes the urgency buckets, skipping empty ones.
func RenderAgenda(w io.Writer, v agenda.View) {
	if v.Empty() {
		fmt.Fprintln(w, "Nothing due. Enjoy the quiet.")
		return
	}
	width := TerminalWidth()
	section := func(title string, tasks []task.Task, style lipgloss.Style) {
		if len(tasks) == 0 {
			return
		}
		fmt.Fprintln(w, style.Render(title))
		for _, t := range tasks {
			fmt.Fprintln(w, renderTaskLine(t, "", width))
		}
	}
	section("Overdue", v.Overdue, overdueStyle)
	section("Due today", v.DueToday, headerStyle)
	section("Upcoming", v.Upcoming, headerStyle)
}

// RenderProfile writes the progression summary: level, rank, experience
// progress, coins, streaks, and lifetime stats.
func RenderProfile(w io.Writer, p progress.Profile) {
	rank := progress.RankForLevel(p.Level)
	threshold := progress.Threshold(p.Level)

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s %s | Level %d", rank.Icon, rank.Name, p.Level)))
	fmt.Fprintf(w, "XP:    %d / %d (%d to next level)\n", p.XP, threshold, threshold-p.XP)
	fmt.Fprintf(w, "Coins: %d (lifetime %d)\n", p.Coins, p.TotalCoinsEarned)
	fmt.Fprintf(w, "Theme: %s", p.ActiveTheme)
	if len(p.ActiveCosmetics) > 0 {
		fmt.Fprintf(w, "  Cosmetics: %s", strings.Join(p.ActiveCosmetics, ", "))
	}
	fmt.Fprintln(w)

	s := p.Stats
	fmt.Fprintf(w, "Sessions: %d total, %d today · Tasks: %d total, %d today\n",
		s.TotalSessions, s.DailySessions, s.TotalTasksCompleted, s.DailyTasks)
	fmt.Fprintf(w, "Focus time: %dh %dm · Streak: %d (best %d)\n",
		s.TotalFocusMinutes/60, s.TotalFocusMinutes%60, s.CurrentStreak, s.LongestStreak)
}

// RenderNotices writes any live level-up or achievement notification.
func RenderNotices(w io.Writer, e *progress.Engine) {
	if n, ok := e.CurrentLevelUpNotice(); ok {
		fmt.Fprintln(w, noticeStyle.Render(
			fmt.Sprintf("⬆ Level %d! %s %s · +%d coins", n.Level, n.Rank.Icon, n.Rank.Name, n.CoinsEarned)))
	}
	if n, ok := e.CurrentAchievementNotice(); ok {
		fmt.Fprintln(w, noticeStyle.Render(
			fmt.Sprintf("%s Achievement unlocked: %s: %s", n.Achievement.Icon, n.Achievement.Name, n.Achievement.Description)))
	}
}

// RenderShop writes the item catalog with ownership and activation state.
func RenderShop(w io.Writer, e *progress.Engine) {
	p := e.Profile()
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Shop | %d coins", p.Coins)))
	for _, item := range progress.ShopItems {
		state := ""
		switch {
		case e.IsItemActive(item.ID):
			state = " (active)"
		case e.HasItem(item.ID):
			state = " (owned)"
		}
		fmt.Fprintf(w, "  %s %-16s %4d coins  %s%s\n",
			item.Icon, item.Name, item.Price, dimStyle.Render(item.Description), state)
	}
}

// RenderAchievements writes the catalog with unlocked markers.
func RenderAchievements(w io.Writer, e *progress.Engine) {
	unlocked := 0
	for _, a := range progress.Achievements {
		if e.HasUnlocked(a.ID) {
			unlocked++
		}
	}
	fmt.Fprintln(w, headerStyle.Render(
		fmt.Sprintf("Achievements %d/%d", unlocked, len(progress.Achievements))))
	for _, a := range progress.Achievements {
		mark := "  "
		name := dimStyle.Render(a.Name)
		if e.HasUnlocked(a.ID) {
			mark = "✓ "
			name = a.Name
		}
		fmt.Fprintf(w, "%s%s %s: %s\n", mark, a.Icon, name, dimStyle.Render(a.Description))
	}
}
