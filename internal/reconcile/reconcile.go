// Package reconcile keeps the live state, the local cache, and the
// optional external snapshot file consistent. It owns no domain state of
// its own; it reads and writes snapshots through the two stores' public
// mutators, touching internals only during bulk load.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"focusquest/backend"
	"focusquest/internal/cache"
	"focusquest/internal/progress"
	"focusquest/internal/snapshot"
	"focusquest/internal/task"
	"focusquest/internal/utils"
)

// Engine mirrors every state change to the cache and, when connected, to
// the external file. Exactly one external file can be connected at a time;
// only the engine assigns or clears that slot.
type Engine struct {
	store *task.Store
	prog  *progress.Engine
	cache *cache.Cache
	be    backend.Backend
	log   *utils.Logger

	// mu guards ref: it is written on the caller goroutine and read by
	// the background writer.
	mu      sync.Mutex
	ref     string // connected external file ref, empty when cache-only
	writer  *coalescer
	breaker *breaker
}

// Option configures the engine.
type Option func(*options)

type options struct {
	coalesceDelay time.Duration
}

// WithCoalesceDelay overrides the write-batching delay, mainly for tests.
func WithCoalesceDelay(d time.Duration) Option {
	return func(o *options) { o.coalesceDelay = d }
}

// New wires the engine into both stores' change listeners. Callers must
// Close the engine to stop the background writer.
func New(store *task.Store, prog *progress.Engine, c *cache.Cache, be backend.Backend, opts ...Option) *Engine {
	o := options{coalesceDelay: DefaultCoalesceDelay}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		store:   store,
		prog:    prog,
		cache:   c,
		be:      be,
		log:     utils.GetLogger(),
		breaker: newBreaker(DefaultBreakerThreshold, DefaultBreakerCooldown),
	}
	e.writer = newCoalescer(e.persist, o.coalesceDelay)

	store.SetChangeListener(e.scheduleWrite)
	prog.SetChangeListener(e.scheduleWrite)
	return e
}

// Close flushes pending writes and stops the background writer.
func (e *Engine) Close() {
	e.writer.Close()
}

// Flush forces any pending write-through to complete, for callers that
// need durability before exiting.
func (e *Engine) Flush() {
	e.writer.Flush()
}

// Connected reports whether an external file is connected.
func (e *Engine) Connected() bool { return e.connectedRef() != "" }

// ConnectedRef returns the connected file ref, or empty.
func (e *Engine) ConnectedRef() string { return e.connectedRef() }

func (e *Engine) connectedRef() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ref
}

func (e *Engine) setRef(ref string) {
	e.mu.Lock()
	e.ref = ref
	e.mu.Unlock()
}

// =============================================================================
// Write-through
// =============================================================================

// Snapshot composes the current snapshot from both stores.
func (e *Engine) Snapshot() snapshot.Snapshot {
	return snapshot.FromState(e.store.Export(), e.prog.Export())
}

// scheduleWrite is the change listener: it encodes the current snapshot
// and hands it to the coalescing writer. It never blocks a mutator.
func (e *Engine) scheduleWrite() {
	data, err := snapshot.Encode(e.Snapshot())
	if err != nil {
		e.log.Warn("write-through: %v", err)
		return
	}
	e.writer.Schedule(data)
}

// persist writes one snapshot to the cache and, when connected, to the
// external file. Both paths are best-effort: failures are logged, the
// in-memory state stays the source of truth for the running session.
func (e *Engine) persist(data []byte) {
	if err := e.cache.PutSnapshot(data); err != nil {
		e.log.Warn("cache write failed: %v", err)
	}
	ref := e.connectedRef()
	if ref == "" {
		return
	}
	if !e.breaker.Allow() {
		e.log.Debug("external write skipped, breaker %s", e.breaker.State())
		return
	}
	if err := e.be.WriteFile(context.Background(), ref, data); err != nil {
		e.breaker.RecordFailure()
		e.log.Warn("external file write failed: %v", err)
		return
	}
	e.breaker.RecordSuccess()
}

// =============================================================================
// Startup
// =============================================================================

// LoadFromCache restores the snapshot stored in the local cache, if any.
// A malformed cache snapshot is reported and nothing is applied.
func (e *Engine) LoadFromCache() error {
	data, ok, err := e.cache.GetSnapshot()
	if err != nil {
		return fmt.Errorf("load cache: %w", err)
	}
	if !ok {
		return nil
	}
	snap, err := snapshot.Decode(data)
	if err != nil {
		return fmt.Errorf("load cache: %w", err)
	}
	e.applyBulk(snap)
	return nil
}

// AutoReconnect re-opens the external file recorded in a previous session
// and smart-merges it. When the backend cannot resolve recorded refs the
// engine silently stays cache-only; when the recorded file is verified
// absent the recorded connection is cleared.
func (e *Engine) AutoReconnect(ctx context.Context) error {
	conn, ok, err := e.cache.GetConnection()
	if err != nil {
		e.log.Warn("read remembered connection: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	if conn.Backend != e.be.Name() || !e.be.SupportsReconnect() {
		return nil
	}

	exists, err := e.be.Exists(ctx, conn.Ref)
	if err != nil {
		return fmt.Errorf("reconnect %s: %w", conn.Ref, err)
	}
	if !exists {
		if err := e.cache.ClearConnection(); err != nil {
			e.log.Warn("clear remembered connection: %v", err)
		}
		e.log.Info("remembered file %s is gone, staying cache-only", conn.Ref)
		return nil
	}

	return e.loadAndMerge(ctx, conn.Ref)
}

// =============================================================================
// Connect / load / save
// =============================================================================

// ConnectOpen runs the open picker, loads the chosen file, and
// smart-merges it into the live state. A cancelled picker is a no-op, not
// an error. On success the merged result is persisted to both sides.
func (e *Engine) ConnectOpen(ctx context.Context) error {
	ref, err := e.be.PickOpenTarget(ctx)
	if errors.Is(err, backend.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	return e.loadAndMerge(ctx, ref)
}

// ConnectSave runs the save picker and writes the current snapshot to the
// chosen destination. A cancelled picker is a no-op. The connection slot
// is assigned only after the first write succeeds.
func (e *Engine) ConnectSave(ctx context.Context) error {
	ref, err := e.be.PickSaveTarget(ctx)
	if errors.Is(err, backend.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	data, err := snapshot.Encode(e.Snapshot())
	if err != nil {
		return err
	}
	if err := e.be.WriteFile(ctx, ref, data); err != nil {
		return err
	}

	e.connect(ref)
	return nil
}

// Refresh re-reads the connected external file and smart-merges it into
// the live state. It is a no-op when no file is connected. The file
// watcher calls this when the file changes underneath us.
func (e *Engine) Refresh(ctx context.Context) error {
	ref := e.connectedRef()
	if ref == "" {
		return nil
	}
	return e.loadAndMerge(ctx, ref)
}

// Disconnect clears the connection slot and the remembered connection.
// The external file itself is left untouched.
func (e *Engine) Disconnect() {
	e.setRef("")
	if err := e.cache.ClearConnection(); err != nil {
		e.log.Warn("clear remembered connection: %v", err)
	}
}

// loadAndMerge reads and parses the file, smart-merges it into the live
// state, connects, and persists the merged union to both sides. Read and
// parse failures abort before any field is applied.
func (e *Engine) loadAndMerge(ctx context.Context, ref string) error {
	data, err := e.be.ReadFile(ctx, ref)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	snap, err := snapshot.Decode(data)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	e.merge(snap)
	e.connect(ref)
	e.Flush()
	return nil
}

// connect assigns the single connection slot and records it for the next
// session.
func (e *Engine) connect(ref string) {
	e.setRef(ref)
	if err := e.cache.PutConnection(cache.Connection{Backend: e.be.Name(), Ref: ref}); err != nil {
		e.log.Warn("remember connection: %v", err)
	}
}

// =============================================================================
// Merge & bulk apply
// =============================================================================

// merge applies the smart-merge policy: the file's task list is the base
// and in-memory tasks win on conflict; categories are unioned; timer
// settings, daily stats, and the cycle counter are taken from the file
// when present; the profile is imported field-wise.
func (e *Engine) merge(snap snapshot.Snapshot) {
	memState := e.store.Export()

	merged := snap.TaskState(memState)
	merged.Tasks = MergeTasks(snap.Tasks, memState.Tasks)
	merged.Categories = MergeCategories(snap.Categories, memState.Categories)

	e.store.Load(merged)
	if snap.Profile != nil {
		e.prog.Import(*snap.Profile)
	}
}

// applyBulk replaces live state with a snapshot without merging. Used for
// the cache restore at startup.
func (e *Engine) applyBulk(snap snapshot.Snapshot) {
	e.store.Load(snap.TaskState(e.store.Export()))
	if snap.Profile != nil {
		e.prog.Import(*snap.Profile)
	}
}
