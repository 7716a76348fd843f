package scheduler

import (
	"testing"
	"time"
)

func TestManualFireRunsLiveHandles(t *testing.T) {
	m := NewManual()
	var a, b int
	ha := m.Start(func() { a++ }, time.Second)
	m.Start(func() { b++ }, 0)

	if n := m.Fire(); n != 2 {
		t.Fatalf("expected 2 callbacks, got %d", n)
	}
	ha.Stop()
	ha.Stop()
	if n := m.Fire(); n != 1 {
		t.Fatalf("expected 1 callback after stop, got %d", n)
	}
	if a != 1 || b != 2 {
		t.Fatalf("unexpected counts a=%d b=%d", a, b)
	}
	if m.Active() != 1 {
		t.Fatalf("expected one active handle, got %d", m.Active())
	}
	if got := m.Handles()[1].Interval(); got != DefaultInterval {
		t.Fatalf("expected default interval, got %v", got)
	}
}

func TestManualStopInsideCallback(t *testing.T) {
	m := NewManual()
	var h Handle
	calls := 0
	h = m.Start(func() {
		calls++
		h.Stop()
	}, time.Second)

	m.Fire()
	m.Fire()
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if !m.Handles()[0].Stopped() {
		t.Fatal("expected handle stopped")
	}
}

func TestManualStartInsideCallback(t *testing.T) {
	m := NewManual()
	var h Handle
	h = m.Start(func() {
		h.Stop()
		m.Start(func() {}, time.Second)
	}, time.Second)

	if n := m.Fire(); n != 1 {
		t.Fatalf("expected only the original handle to fire, got %d", n)
	}
	if m.Active() != 1 || len(m.Handles()) != 2 {
		t.Fatalf("expected restart to register a fresh handle")
	}
}
