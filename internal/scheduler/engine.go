// Package scheduler drives periodic countdown ticks.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

const DefaultInterval = time.Second

// Scheduler starts a periodic callback. The first invocation happens one
// interval after Start.
type Scheduler interface {
	Start(callback func(), interval time.Duration) Handle
}

// Handle cancels future invocations. Stop is idempotent and never blocks, so
// it may be called from inside the callback.
type Handle interface {
	Stop()
}

// Engine runs each started callback on its own goroutine. Invocations for one
// handle never overlap.
type Engine struct {
	started atomic.Uint64
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Start(callback func(), interval time.Duration) Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	h := &EngineHandle{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	e.started.Add(1)
	go h.loop(callback, interval)
	return h
}

// Started counts handles created by this engine.
func (e *Engine) Started() uint64 {
	return e.started.Load()
}

type EngineHandle struct {
	once    sync.Once
	stopCh  chan struct{}
	doneCh  chan struct{}
	ticks   atomic.Uint64
	skipped atomic.Uint64
}

func (h *EngineHandle) Stop() {
	h.once.Do(func() { close(h.stopCh) })
}

// Done is closed once the loop goroutine has exited.
func (h *EngineHandle) Done() <-chan struct{} {
	return h.doneCh
}

func (h *EngineHandle) Ticks() uint64 {
	return h.ticks.Load()
}

// Skipped counts deadlines missed because a callback overran the interval.
func (h *EngineHandle) Skipped() uint64 {
	return h.skipped.Load()
}

func (h *EngineHandle) loop(callback func(), interval time.Duration) {
	defer close(h.doneCh)

	next := time.Now().Add(interval)
	var timer *time.Timer
	for {
		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			if h.stopped() {
				return
			}
			h.ticks.Add(1)
			callback()

			next = next.Add(interval)
			now := time.Now()
			for !next.After(now) {
				next = next.Add(interval)
				h.skipped.Add(1)
			}
		case <-h.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (h *EngineHandle) stopped() bool {
	select {
	case <-h.stopCh:
		return true
	default:
		return false
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}

var (
	_ Scheduler = (*Engine)(nil)
	_ Handle    = (*EngineHandle)(nil)
)
