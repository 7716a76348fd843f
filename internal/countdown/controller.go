package countdown

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sandeepkv93/tminus/internal/logging"
	"github.com/sandeepkv93/tminus/internal/scheduler"
	"github.com/sandeepkv93/tminus/internal/target"
	"github.com/sandeepkv93/tminus/internal/timeutil"
)

var ErrClosed = errors.New("countdown: controller closed")

type State int

const (
	StateRunning State = iota
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Store is the target slot the controller reads on every tick and writes on
// Reconfigure.
type Store interface {
	Get(ctx context.Context) target.Timestamp
	Set(ctx context.Context, ms float64) error
}

// Effect is the one-shot celebration played when the target is reached.
type Effect interface {
	Play()
	Clear()
}

// View receives every computed frame. Render is called with the controller
// lock held and must not block.
type View interface {
	Render(parts Parts, completed bool)
}

type Deps struct {
	Store     Store
	Scheduler scheduler.Scheduler
	Effect    Effect
	View      View
	Clock     timeutil.Clock
	Interval  time.Duration
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Target target.Timestamp `json:"target" yaml:"target"`
	Parts  Parts            `json:"parts" yaml:"parts"`
	State  State            `json:"state" yaml:"state"`
	Ticks  uint64           `json:"ticks" yaml:"ticks"`
}

// Controller owns one countdown session. Ticks and reconfiguration are
// serialized on mu; a tick from a handle that has since been stopped is
// discarded by the generation check.
type Controller struct {
	mu       sync.Mutex
	store    Store
	sched    scheduler.Scheduler
	effect   Effect
	view     View
	clock    timeutil.Clock
	interval time.Duration

	target     target.Timestamp
	parts      Parts
	hasFired   bool
	handle     scheduler.Handle
	generation uint64
	ticks      uint64
	closed     bool
}

// NewController starts the countdown: one immediate tick, then the scheduler.
// A target already in the past completes during construction and no
// scheduler is started.
func NewController(deps Deps) (*Controller, error) {
	if deps.Store == nil {
		return nil, errors.New("countdown: store is required")
	}
	if deps.Scheduler == nil {
		return nil, errors.New("countdown: scheduler is required")
	}
	c := &Controller{
		store:    deps.Store,
		sched:    deps.Scheduler,
		effect:   deps.Effect,
		view:     deps.View,
		clock:    deps.Clock,
		interval: deps.Interval,
	}
	if c.effect == nil {
		c.effect = nopEffect{}
	}
	if c.view == nil {
		c.view = nopView{}
	}
	if c.clock == nil {
		c.clock = timeutil.RealClock{}
	}
	if c.interval <= 0 {
		c.interval = scheduler.DefaultInterval
	}

	c.mu.Lock()
	c.startLocked()
	c.mu.Unlock()
	return c, nil
}

// Reconfigure persists a new target and restarts the session. An invalid
// value is returned as-is and leaves the session untouched.
func (c *Controller) Reconfigure(ctx context.Context, ms float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.store.Set(ctx, ms); err != nil {
		return err
	}
	c.effect.Clear()
	c.startLocked()
	logging.Debugf("countdown reconfigured, target=%d", int64(c.target))
	return nil
}

// Tick evaluates the countdown immediately, outside the schedule.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.tickLocked()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Target: c.target,
		Parts:  c.parts,
		State:  c.stateLocked(),
		Ticks:  c.ticks,
	}
}

// Close stops the scheduler. Later ticks and reconfigurations are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopLocked()
}

func (c *Controller) stateLocked() State {
	if c.hasFired {
		return StateCompleted
	}
	return StateRunning
}

func (c *Controller) startLocked() {
	c.stopLocked()
	c.hasFired = false
	c.tickLocked()
	if c.hasFired {
		return
	}
	gen := c.generation
	c.handle = c.sched.Start(func() { c.scheduledTick(gen) }, c.interval)
}

func (c *Controller) stopLocked() {
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
	c.generation++
}

func (c *Controller) scheduledTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return
	}
	c.tickLocked()
}

func (c *Controller) tickLocked() {
	c.target = c.store.Get(context.Background())
	c.parts = ComputeParts(c.target, target.FromTime(c.clock.Now()))
	c.ticks++

	if c.parts.Passed() && !c.hasFired {
		c.effect.Play()
		c.hasFired = true
		c.stopLocked()
		logging.Debugf("countdown reached target %d", int64(c.target))
	}
	c.view.Render(c.parts, c.hasFired)
}

type nopEffect struct{}

func (nopEffect) Play()  {}
func (nopEffect) Clear() {}

type nopView struct{}

func (nopView) Render(Parts, bool) {}
