// Package app wires the stores, the progression engine, the cache, and
// the reconciliation engine behind an explicit lifecycle: construct with
// New, tear down with Close. Nothing in here is a package-level singleton,
// so tests can build as many isolated instances as they need.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"focusquest/backend"
	"focusquest/backend/native"
	"focusquest/backend/sandbox"
	"focusquest/internal/cache"
	"focusquest/internal/clock"
	"focusquest/internal/config"
	"focusquest/internal/history"
	"focusquest/internal/notification"
	"focusquest/internal/progress"
	"focusquest/internal/reconcile"
	"focusquest/internal/sound"
	"focusquest/internal/task"
	"focusquest/internal/utils"
)

// Options controls construction. Zero values pick production defaults.
type Options struct {
	Config    *config.Config
	Clock     clock.Clock
	Fs        afero.Fs
	Triggers  sound.Triggers
	PickerIn  io.Reader
	PickerOut io.Writer
	CachePath string // override, mainly for tests

	ReconcileOpts []reconcile.Option
}

// App is the assembled application core.
type App struct {
	Clock      clock.Clock
	Tasks      *task.Store
	Progress   *progress.Engine
	Reconciler *reconcile.Engine
	Backend    backend.Backend
	History    *history.Log // nil when disabled

	cache *cache.Cache
}

// New builds the full object graph. Close must be called to flush pending
// writes and release the cache.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	triggers := opts.Triggers
	if triggers == nil {
		triggers = sound.Logged{}
	}
	if cfg.Notifications.Enabled {
		triggers = sound.Multi{triggers, notification.New()}
	}

	be, err := buildBackend(cfg, fs, opts.PickerIn, opts.PickerOut)
	if err != nil {
		return nil, err
	}

	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath, err = cfg.CachePath()
		if err != nil {
			return nil, err
		}
	}
	c, err := cache.Open(cachePath)
	if err != nil {
		return nil, err
	}

	prog := progress.NewEngine(clk, triggers)

	var events task.Events = prog
	var hist *history.Log
	if cfg.History.Enabled {
		histPath := filepath.Join(filepath.Dir(cachePath), "history.db")
		hist, err = history.Open(histPath, clk)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		events = task.MultiEvents{prog, history.NewRecorder(hist)}
	}

	tasks := task.NewStore(clk, events)
	tasks.UpdateTimerSettings(cfg.TimerSettings())

	rec := reconcile.New(tasks, prog, c, be, opts.ReconcileOpts...)

	return &App{
		Clock:      clk,
		Tasks:      tasks,
		Progress:   prog,
		Reconciler: rec,
		Backend:    be,
		History:    hist,
		cache:      c,
	}, nil
}

// Startup restores the cached snapshot and attempts to reconnect the
// previously connected file. Reconnect failures are reported but leave
// the app usable in cache-only mode.
func (a *App) Startup(ctx context.Context) error {
	if err := a.Reconciler.LoadFromCache(); err != nil {
		return err
	}
	if err := a.Reconciler.AutoReconnect(ctx); err != nil {
		utils.Warnf("auto-reconnect: %v", err)
	}
	return nil
}

// Close flushes pending write-through and releases resources.
func (a *App) Close() error {
	a.Reconciler.Close()
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			utils.Warnf("close history: %v", err)
		}
	}
	if err := a.cache.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}

// buildBackend selects the configured file-access backend.
func buildBackend(cfg *config.Config, fs afero.Fs, in io.Reader, out io.Writer) (backend.Backend, error) {
	switch cfg.Backend {
	case "", "native":
		return native.New(fs, in, out), nil
	case "sandbox":
		dir := cfg.SandboxDir
		if dir == "" {
			return nil, fmt.Errorf("sandbox backend requires sandbox_dir")
		}
		return sandbox.New(fs, dir, in, out)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
