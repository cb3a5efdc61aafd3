// Package shutdown coordinates clean teardown for long-running
// commands. Subsystems register named cleanups; a signal or an explicit
// trigger cancels the shared context and runs them in LIFO order.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"focusquest/internal/utils"
)

// DefaultGracePeriod bounds how long cleanups may run after a trigger.
const DefaultGracePeriod = 10 * time.Second

// CleanupFunc releases one subsystem's resources. The context is
// cancelled when the grace period expires.
type CleanupFunc func(ctx context.Context) error

type cleanup struct {
	name string
	fn   CleanupFunc
}

// Manager owns the shutdown lifecycle of one command invocation.
type Manager struct {
	mu       sync.Mutex
	cleanups []cleanup

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewManager creates a manager whose Context stays live until a
// trigger arrives.
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{ctx: ctx, cancel: cancel}
}

// Context is cancelled once shutdown is triggered. Long-running work
// should select on it.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Register adds a cleanup. Cleanups run in LIFO order so dependents
// registered later tear down before what they depend on.
func (m *Manager) Register(name string, fn CleanupFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanups = append(m.cleanups, cleanup{name: name, fn: fn})
}

// Trigger starts the shutdown. Safe to call more than once; only the
// first call takes effect.
func (m *Manager) Trigger() {
	m.once.Do(m.cancel)
}

// Triggered reports whether shutdown has started.
func (m *Manager) Triggered() bool {
	select {
	case <-m.ctx.Done():
		return true
	default:
		return false
	}
}

// HandleSignals triggers shutdown on SIGINT or SIGTERM. A second
// signal exits immediately without running cleanups.
func (m *Manager) HandleSignals() {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		m.Trigger()
		<-sigCh
		utils.Warnf("forced exit")
		os.Exit(1)
	}()
}

// Wait blocks until shutdown is triggered, then runs all cleanups in
// LIFO order within the grace period. Cleanup failures are logged and
// do not stop later cleanups.
func (m *Manager) Wait(gracePeriod time.Duration) error {
	<-m.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), gracePeriod)
	defer cancel()

	m.mu.Lock()
	cleanups := make([]cleanup, len(m.cleanups))
	copy(cleanups, m.cleanups)
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(cleanups) - 1; i >= 0; i-- {
			c := cleanups[i]
			if err := c.fn(ctx); err != nil {
				utils.Warnf("cleanup %s: %v", c.name, err)
			}
		}
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
