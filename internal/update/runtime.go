package update

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tminus/internal/countdown"
	"github.com/sandeepkv93/tminus/internal/effect"
	"github.com/sandeepkv93/tminus/internal/projection"
	"github.com/sandeepkv93/tminus/internal/scheduler"
	"github.com/sandeepkv93/tminus/internal/storage"
	"github.com/sandeepkv93/tminus/internal/target"
	"github.com/sandeepkv93/tminus/internal/timeutil"
)

// Runtime owns the countdown session behind the TUI. Frames produced on the
// scheduler goroutine reach the program through single-slot channels that
// keep only the newest value.
type Runtime struct {
	Controller *countdown.Controller
	Store      *target.Store
	Effect     countdown.Effect
	Clock      timeutil.Clock
	Location   *time.Location

	frames      chan CountdownFrameMsg
	celebration chan CelebrationFrameMsg
}

type RuntimeDeps struct {
	KV        storage.KV
	Clock     timeutil.Clock
	Scheduler scheduler.Scheduler
	Config    RuntimeConfig
	// Effect overrides the terminal celebration, mainly for tests.
	Effect   countdown.Effect
	Location *time.Location
}

func NewRuntime(deps RuntimeDeps) (*Runtime, error) {
	if deps.KV == nil {
		return nil, errors.New("update: kv store is required")
	}
	if deps.Clock == nil {
		deps.Clock = timeutil.RealClock{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = scheduler.NewEngine()
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}

	rt := &Runtime{
		Store:       target.New(deps.KV, deps.Clock),
		Clock:       deps.Clock,
		Location:    deps.Location,
		frames:      make(chan CountdownFrameMsg, 1),
		celebration: make(chan CelebrationFrameMsg, 1),
	}

	rt.Effect = deps.Effect
	if rt.Effect == nil {
		rt.Effect = effect.New(effect.Config{
			Duration:  deps.Config.CelebrationDuration,
			Particles: deps.Config.Particles,
			OnFrame: func(f effect.Frame) {
				publishLatest(rt.celebration, CelebrationFrameMsg{Frame: f})
			},
		})
	}

	ctrl, err := countdown.NewController(countdown.Deps{
		Store:     rt.Store,
		Scheduler: deps.Scheduler,
		Effect:    rt.Effect,
		View:      newFrameSink(rt.frames),
		Clock:     deps.Clock,
		Interval:  deps.Config.TickInterval,
	})
	if err != nil {
		return nil, err
	}
	rt.Controller = ctrl
	return rt, nil
}

func (r *Runtime) Close() {
	r.Controller.Close()
	r.Effect.Clear()
}

// Resize forwards the drawable area to effects that support it.
func (r *Runtime) Resize(width, height int) {
	if s, ok := r.Effect.(interface{ SetSize(int, int) }); ok {
		s.SetSize(width, height)
	}
}

func (r *Runtime) ctx() context.Context {
	return context.Background()
}

func (r *Runtime) location() *time.Location {
	if r == nil || r.Location == nil {
		return time.Local
	}
	return r.Location
}

// frameSink binds the projection slots to a pending display and publishes it
// once per render.
type frameSink struct {
	mu      sync.Mutex
	out     chan CountdownFrameMsg
	display projection.Instructions
	slots   projection.Slots
}

func newFrameSink(out chan CountdownFrameMsg) *frameSink {
	s := &frameSink{out: out}
	s.slots = projection.Slots{
		Days:           func(v string) { s.display.Days = v },
		Hours:          func(v string) { s.display.Hours = v },
		Minutes:        func(v string) { s.display.Minutes = v },
		Seconds:        func(v string) { s.display.Seconds = v },
		TimeVisible:    func(v bool) { s.display.ShowTime = v },
		MessageVisible: func(v bool) { s.display.ShowEventMessage = v },
	}
	return s
}

func (s *frameSink) Render(parts countdown.Parts, completed bool) {
	s.mu.Lock()
	s.slots.Render(parts, completed)
	msg := CountdownFrameMsg{Display: s.display, Parts: parts, Completed: completed}
	s.mu.Unlock()
	publishLatest(s.out, msg)
}

// publishLatest replaces any unread value so senders never block.
func publishLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func waitForFrameCmd(ch <-chan CountdownFrameMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func waitForCelebrationCmd(ch <-chan CelebrationFrameMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
