package cache

import (
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) (*Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, path
}

func TestSnapshotRoundTrip(t *testing.T) {
	c, _ := openTestCache(t)

	if _, ok, err := c.GetSnapshot(); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	want := []byte(`{"todos":[]}`)
	if err := c.PutSnapshot(want); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}

	got, ok, err := c.GetSnapshot()
	if err != nil || !ok {
		t.Fatalf("GetSnapshot: ok=%v err=%v", ok, err)
	}
	if string(got) != string(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSnapshotOverwrite(t *testing.T) {
	c, _ := openTestCache(t)

	if err := c.PutSnapshot([]byte("one")); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	if err := c.PutSnapshot([]byte("two")); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}

	got, _, err := c.GetSnapshot()
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if string(got) != "two" {
		t.Errorf("got %s, want two", got)
	}
}

func TestConnectionRoundTrip(t *testing.T) {
	c, _ := openTestCache(t)

	if _, ok, err := c.GetConnection(); err != nil || ok {
		t.Fatalf("empty connection slot: ok=%v err=%v", ok, err)
	}

	want := Connection{Backend: "native", Ref: "/tmp/quest.json"}
	if err := c.PutConnection(want); err != nil {
		t.Fatalf("PutConnection: %v", err)
	}

	got, ok, err := c.GetConnection()
	if err != nil || !ok {
		t.Fatalf("GetConnection: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := c.ClearConnection(); err != nil {
		t.Fatalf("ClearConnection: %v", err)
	}
	if _, ok, _ := c.GetConnection(); ok {
		t.Error("connection survived ClearConnection")
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	c, _ := openTestCache(t)

	if err := c.PutSnapshot([]byte("snap")); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	if err := c.PutConnection(Connection{Backend: "native", Ref: "x"}); err != nil {
		t.Fatalf("PutConnection: %v", err)
	}
	if err := c.ClearConnection(); err != nil {
		t.Fatalf("ClearConnection: %v", err)
	}

	if _, ok, _ := c.GetSnapshot(); !ok {
		t.Error("snapshot slot lost when the connection slot was cleared")
	}
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.PutSnapshot([]byte("persisted")); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	c2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()

	got, ok, err := c2.GetSnapshot()
	if err != nil || !ok {
		t.Fatalf("GetSnapshot after reopen: ok=%v err=%v", ok, err)
	}
	if string(got) != "persisted" {
		t.Errorf("got %s, want persisted", got)
	}
}
