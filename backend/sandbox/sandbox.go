// Package sandbox implements the handle-based backend. All access is
// rooted in one pre-granted directory; refs are opaque handle tokens that
// resolve only within the session, so the backend does not support
// reconnection.
package sandbox

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"focusquest/backend"
)

// Backend implements backend.Backend inside a granted root directory.
type Backend struct {
	fs     afero.Fs // rooted at the granted directory
	reader io.Reader
	writer io.Writer

	handles map[string]string // handle token -> file name inside the root
}

// New creates a sandbox backend rooted at dir on the given filesystem.
func New(base afero.Fs, dir string, reader io.Reader, writer io.Writer) (*Backend, error) {
	if base == nil {
		base = afero.NewOsFs()
	}
	if err := base.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create sandbox root %s: %w", dir, err)
	}
	if writer == nil {
		writer = io.Discard
	}
	return &Backend{
		fs:      afero.NewBasePathFs(base, dir),
		reader:  reader,
		writer:  writer,
		handles: make(map[string]string),
	}, nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return "sandbox" }

// SupportsReconnect implements backend.Backend. Handle tokens die with
// the session.
func (b *Backend) SupportsReconnect() bool { return false }

// PickOpenTarget lists the snapshot files in the granted directory and
// prompts for a selection by number. An empty answer cancels.
func (b *Backend) PickOpenTarget(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	names, err := b.listFiles()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no files in sandbox", backend.ErrNotFound)
	}

	for i, name := range names {
		fmt.Fprintf(b.writer, "  %d. %s\n", i+1, name)
	}
	answer, err := b.prompt("File number to open (empty to cancel): ")
	if err != nil {
		return "", err
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(names) {
		return "", fmt.Errorf("invalid selection: %s", answer)
	}
	return b.grant(names[idx-1]), nil
}

// PickSaveTarget prompts for a file name inside the granted directory.
// An empty answer cancels.
func (b *Backend) PickSaveTarget(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := b.prompt("File name to save as (empty to cancel): ")
	if err != nil {
		return "", err
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name: %s", name)
	}
	return b.grant(name), nil
}

// ReadFile implements backend.Backend.
func (b *Backend) ReadFile(ctx context.Context, ref string) ([]byte, error) {
	name, err := b.resolve(ref)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(b.fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", backend.ErrNotFound, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// WriteFile implements backend.Backend.
func (b *Backend) WriteFile(ctx context.Context, ref string, data []byte) error {
	name, err := b.resolve(ref)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(b.fs, name, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Exists implements backend.Backend.
func (b *Backend) Exists(ctx context.Context, ref string) (bool, error) {
	name, err := b.resolve(ref)
	if err != nil {
		return false, nil
	}
	ok, err := afero.Exists(b.fs, name)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return ok, nil
}

// grant issues a session-scoped handle token for a file name.
func (b *Backend) grant(name string) string {
	token := "handle-" + uuid.New().String()
	b.handles[token] = name
	return token
}

// resolve maps a handle token back to its file name.
func (b *Backend) resolve(ref string) (string, error) {
	name, ok := b.handles[ref]
	if !ok {
		return "", fmt.Errorf("unknown handle: %s", ref)
	}
	return name, nil
}

func (b *Backend) listFiles() ([]string, error) {
	infos, err := afero.ReadDir(b.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("list sandbox: %w", err)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (b *Backend) prompt(question string) (string, error) {
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

// Verify interface compliance at compile time
var _ backend.Backend = (*Backend)(nil)
