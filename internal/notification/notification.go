// Package notification sends desktop notifications for progression and
// timer events. It implements the trigger interface the core raises
// events through; delivery is best-effort and never blocks a mutation.
package notification

import (
	"fmt"
	"runtime"

	"focusquest/internal/progress"
	"focusquest/internal/sound"
	"focusquest/internal/utils"
)

// CommandExecutor runs a system command. It exists so tests can capture
// the notify invocation without a desktop session.
type CommandExecutor interface {
	Execute(cmd string, args ...string) error
}

// MockCommandExecutor records invocations for tests.
type MockCommandExecutor struct {
	ExecuteFunc func(cmd string, args ...string) error
}

func (m *MockCommandExecutor) Execute(cmd string, args ...string) error {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(cmd, args...)
	}
	return nil
}

// Notifier sends desktop notifications through the platform's notify
// command. Events it has no message for are ignored.
type Notifier struct {
	executor CommandExecutor
	platform string
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithCommandExecutor overrides the command executor, mainly for tests.
func WithCommandExecutor(executor CommandExecutor) Option {
	return func(n *Notifier) { n.executor = executor }
}

// WithPlatform overrides the detected platform.
func WithPlatform(platform string) Option {
	return func(n *Notifier) { n.platform = platform }
}

// New creates a desktop notifier for the current platform.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		executor: osExecutor{},
		platform: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send delivers one notification. Unsupported platforms and command
// failures are logged, never returned.
func (n *Notifier) Send(title, message string) {
	var err error
	switch n.platform {
	case "linux":
		err = n.executor.Execute("notify-send", "--app-name=focusquest", title, message)
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		err = n.executor.Execute("osascript", "-e", script)
	default:
		utils.Debugf("desktop notifications unsupported on %s", n.platform)
		return
	}
	if err != nil {
		utils.Warnf("desktop notification failed: %v", err)
	}
}

// =============================================================================
// Trigger adapter
// =============================================================================

// TaskCompleted is intentionally silent: the user just acted, a popup
// would be noise.
func (n *Notifier) TaskCompleted() {}

// SessionStarted is silent for the same reason.
func (n *Notifier) SessionStarted() {}

// SessionCompleted announces the finished focus session.
func (n *Notifier) SessionCompleted() {
	n.Send("Session complete", "Focus session finished. Time for a break!")
}

// LevelUp announces the new level and rank.
func (n *Notifier) LevelUp(level int) {
	rank := progress.RankForLevel(level)
	n.Send("Level up!", fmt.Sprintf("You reached level %d (%s %s)", level, rank.Icon, rank.Name))
}

// AchievementUnlocked announces the unlocked achievement by name.
func (n *Notifier) AchievementUnlocked(id string) {
	a, ok := progress.AchievementByID(id)
	if !ok {
		return
	}
	n.Send("Achievement unlocked", fmt.Sprintf("%s %s: %s", a.Icon, a.Name, a.Description))
}

// PurchaseMade is silent: the shop already prints the result.
func (n *Notifier) PurchaseMade(string) {}

var _ sound.Triggers = (*Notifier)(nil)
