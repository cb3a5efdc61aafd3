package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTriggerCancelsContext(t *testing.T) {
	m := NewManager()

	select {
	case <-m.Context().Done():
		t.Fatal("context done before trigger")
	default:
	}
	if m.Triggered() {
		t.Error("Triggered() = true before trigger")
	}

	m.Trigger()
	m.Trigger() // idempotent

	select {
	case <-m.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled after trigger")
	}
	if !m.Triggered() {
		t.Error("Triggered() = false after trigger")
	}
}

func TestWaitRunsCleanupsLIFO(t *testing.T) {
	m := NewManager()

	var order []string
	m.Register("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.Register("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	m.Trigger()
	if err := m.Wait(time.Second); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("cleanup order = %v, want [second first]", order)
	}
}

func TestWaitContinuesPastFailure(t *testing.T) {
	m := NewManager()

	ran := false
	m.Register("survivor", func(context.Context) error {
		ran = true
		return nil
	})
	m.Register("broken", func(context.Context) error {
		return errors.New("boom")
	})

	m.Trigger()
	if err := m.Wait(time.Second); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !ran {
		t.Error("cleanup after a failing one did not run")
	}
}

func TestWaitHonorsGracePeriod(t *testing.T) {
	m := NewManager()

	m.Register("stuck", func(context.Context) error {
		time.Sleep(500 * time.Millisecond)
		return nil
	})

	m.Trigger()
	err := m.Wait(10 * time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}
