package scheduler

import (
	"sync"
	"time"
)

// Manual is a deterministic Scheduler for tests. Callbacks only run when
// Fire is called.
type Manual struct {
	mu      sync.Mutex
	handles []*ManualHandle
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Start(callback func(), interval time.Duration) Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	h := &ManualHandle{callback: callback, interval: interval}
	m.mu.Lock()
	m.handles = append(m.handles, h)
	m.mu.Unlock()
	return h
}

// Fire invokes the callback of every live handle once and reports how many ran.
func (m *Manual) Fire() int {
	m.mu.Lock()
	live := make([]*ManualHandle, 0, len(m.handles))
	for _, h := range m.handles {
		if !h.Stopped() {
			live = append(live, h)
		}
	}
	m.mu.Unlock()

	fired := 0
	for _, h := range live {
		if h.fire() {
			fired++
		}
	}
	return fired
}

// Handles returns every handle started so far, oldest first.
func (m *Manual) Handles() []*ManualHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ManualHandle, len(m.handles))
	copy(out, m.handles)
	return out
}

// Active counts handles that have not been stopped.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.handles {
		if !h.Stopped() {
			n++
		}
	}
	return n
}

type ManualHandle struct {
	mu       sync.Mutex
	callback func()
	interval time.Duration
	stopped  bool
	fired    int
}

func (h *ManualHandle) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
}

func (h *ManualHandle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

func (h *ManualHandle) Interval() time.Duration {
	return h.interval
}

// Fired counts callback invocations through this handle.
func (h *ManualHandle) Fired() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fired
}

func (h *ManualHandle) fire() bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return false
	}
	h.fired++
	cb := h.callback
	h.mu.Unlock()
	cb()
	return true
}

var (
	_ Scheduler = (*Manual)(nil)
	_ Handle    = (*ManualHandle)(nil)
)
