package sandbox

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"focusquest/backend"
)

func newTestBackend(t *testing.T, input string, out *bytes.Buffer) (*Backend, afero.Fs) {
	t.Helper()
	base := afero.NewMemMapFs()
	b, err := New(base, "/granted", strings.NewReader(input), out)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b, base
}

func TestPickOpenListsAndGrantsHandle(t *testing.T) {
	var out bytes.Buffer
	b, base := newTestBackend(t, "2\n", &out)

	for _, name := range []string{"alpha.json", "beta.json"} {
		if err := afero.WriteFile(base, "/granted/"+name, []byte("{}"), 0644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	ref, err := b.PickOpenTarget(context.Background())
	if err != nil {
		t.Fatalf("PickOpenTarget: %v", err)
	}
	if !strings.HasPrefix(ref, "handle-") {
		t.Errorf("ref = %s, want opaque handle", ref)
	}
	if !strings.Contains(out.String(), "1. alpha.json") || !strings.Contains(out.String(), "2. beta.json") {
		t.Errorf("listing missing: %q", out.String())
	}

	// The handle resolves to the picked file.
	data, err := b.ReadFile(context.Background(), ref)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("got %s", data)
	}
}

func TestPickOpenEmptySandbox(t *testing.T) {
	b, _ := newTestBackend(t, "1\n", &bytes.Buffer{})

	if _, err := b.PickOpenTarget(context.Background()); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPickOpenInvalidSelection(t *testing.T) {
	var out bytes.Buffer
	b, base := newTestBackend(t, "9\n", &out)
	if err := afero.WriteFile(base, "/granted/a.json", []byte("{}"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := b.PickOpenTarget(context.Background()); err == nil {
		t.Error("expected error for out-of-range selection")
	}
}

func TestSaveStaysInsideRoot(t *testing.T) {
	var out bytes.Buffer
	b, base := newTestBackend(t, "new.json\n", &out)

	ref, err := b.PickSaveTarget(context.Background())
	if err != nil {
		t.Fatalf("PickSaveTarget: %v", err)
	}
	if err := b.WriteFile(context.Background(), ref, []byte("data")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := afero.ReadFile(base, "/granted/new.json")
	if err != nil {
		t.Fatalf("file not inside root: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("got %s", data)
	}
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	b, _ := newTestBackend(t, "../escape.json\n", &bytes.Buffer{})

	if _, err := b.PickSaveTarget(context.Background()); err == nil {
		t.Error("expected error for path with separators")
	}
}

func TestUnknownHandleRejected(t *testing.T) {
	b, _ := newTestBackend(t, "", &bytes.Buffer{})

	if _, err := b.ReadFile(context.Background(), "handle-bogus"); err == nil {
		t.Error("expected error for unknown handle")
	}
	if err := b.WriteFile(context.Background(), "/granted/a.json", nil); err == nil {
		t.Error("raw paths must not bypass the handle table")
	}
}

func TestNoReconnect(t *testing.T) {
	b, _ := newTestBackend(t, "", &bytes.Buffer{})
	if b.SupportsReconnect() {
		t.Error("handles die with the session, reconnect must be unsupported")
	}
	if b.Name() != "sandbox" {
		t.Errorf("Name() = %s", b.Name())
	}
}
