// Package backend defines the abstract storage-backend contract for the
// external snapshot file. Concrete backends are injected; the
// reconciliation engine never branches on which one is active.
package backend

import (
	"context"
	"errors"
)

// Sentinel errors shared by all backends.
var (
	// ErrCancelled is returned when the user dismisses a file picker.
	// It is a no-op for the caller, not a failure.
	ErrCancelled = errors.New("file selection cancelled")

	// ErrNotFound is returned when a referenced file is absent.
	ErrNotFound = errors.New("file not found")
)

// Backend is the contract every file-access backend implements. A ref is
// an opaque backend-specific reference: a filesystem path for the native
// backend, a handle token for the sandbox backend.
type Backend interface {
	// Name identifies the backend ("native", "sandbox").
	Name() string

	// PickOpenTarget prompts for an existing snapshot file and returns
	// its ref, or ErrCancelled.
	PickOpenTarget(ctx context.Context) (string, error)

	// PickSaveTarget prompts for a save destination and returns its ref,
	// or ErrCancelled.
	PickSaveTarget(ctx context.Context) (string, error)

	// ReadFile returns the file contents, or ErrNotFound when absent.
	ReadFile(ctx context.Context, ref string) ([]byte, error)

	// WriteFile replaces the file contents.
	WriteFile(ctx context.Context, ref string, data []byte) error

	// Exists reports whether the ref currently resolves to a file.
	Exists(ctx context.Context, ref string) (bool, error)

	// SupportsReconnect reports whether refs recorded in the cache stay
	// valid across sessions and may be reopened without a picker.
	SupportsReconnect() bool
}
