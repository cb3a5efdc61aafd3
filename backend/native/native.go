// Package native implements the filesystem-path backend. Refs are
// absolute paths; they stay valid across sessions, so the backend
// supports reconnection.
package native

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"focusquest/backend"
)

// Backend implements backend.Backend over an afero filesystem. Production
// code passes afero.NewOsFs(); tests pass a memory filesystem.
type Backend struct {
	fs     afero.Fs
	reader io.Reader
	writer io.Writer
}

// New creates a native backend. The reader/writer pair drives the
// terminal file picker.
func New(fs afero.Fs, reader io.Reader, writer io.Writer) *Backend {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if writer == nil {
		writer = io.Discard
	}
	return &Backend{fs: fs, reader: reader, writer: writer}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return "native" }

// SupportsReconnect implements backend.Backend. Paths survive restarts.
func (b *Backend) SupportsReconnect() bool { return true }

// PickOpenTarget prompts for the path of an existing snapshot file.
// An empty answer cancels the selection.
func (b *Backend) PickOpenTarget(ctx context.Context) (string, error) {
	path, err := b.prompt(ctx, "Snapshot file to open (empty to cancel): ")
	if err != nil {
		return "", err
	}
	abs, err := b.absolute(path)
	if err != nil {
		return "", err
	}
	ok, err := b.Exists(ctx, abs)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", backend.ErrNotFound, abs)
	}
	return abs, nil
}

// PickSaveTarget prompts for a save destination. An empty answer cancels
// the selection.
func (b *Backend) PickSaveTarget(ctx context.Context) (string, error) {
	path, err := b.prompt(ctx, "Save snapshot to (empty to cancel): ")
	if err != nil {
		return "", err
	}
	return b.absolute(path)
}

// ReadFile implements backend.Backend.
func (b *Backend) ReadFile(ctx context.Context, ref string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", backend.ErrNotFound, ref)
		}
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// WriteFile implements backend.Backend. The parent directory is created
// when missing.
func (b *Backend) WriteFile(ctx context.Context, ref string, data []byte) error {
	if err := b.fs.MkdirAll(filepath.Dir(ref), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", ref, err)
	}
	if err := afero.WriteFile(b.fs, ref, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", ref, err)
	}
	return nil
}

// Exists implements backend.Backend.
func (b *Backend) Exists(ctx context.Context, ref string) (bool, error) {
	ok, err := afero.Exists(b.fs, ref)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", ref, err)
	}
	return ok, nil
}

// prompt reads one line from the picker reader. Empty input or EOF means
// the user cancelled.
func (b *Backend) prompt(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.reader == nil {
		return "", backend.ErrCancelled
	}
	fmt.Fprint(b.writer, question)
	scanner := bufio.NewScanner(b.reader)
	if !scanner.Scan() {
		return "", backend.ErrCancelled
	}
	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return "", backend.ErrCancelled
	}
	return answer, nil
}

// absolute resolves a path against the working directory.
func (b *Backend) absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return filepath.Join(wd, path), nil
}

// Verify interface compliance at compile time
var _ backend.Backend = (*Backend)(nil)
