package update

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tminus/internal/countdown"
	"github.com/sandeepkv93/tminus/internal/scheduler"
	"github.com/sandeepkv93/tminus/internal/storage"
	"github.com/sandeepkv93/tminus/internal/timeutil"
	"github.com/sandeepkv93/tminus/internal/views"
)

type recordingEffect struct {
	plays  int
	clears int
}

func (r *recordingEffect) Play()  { r.plays++ }
func (r *recordingEffect) Clear() { r.clears++ }

type harness struct {
	rt     *Runtime
	kv     *storage.MemoryKV
	clock  *timeutil.MockClock
	sched  *scheduler.Manual
	effect *recordingEffect
}

func newHarness(t *testing.T) harness {
	t.Helper()
	h := harness{
		kv:     storage.NewMemory(),
		clock:  timeutil.NewMockClockFromString("2025-05-21T12:00:00Z"),
		sched:  scheduler.NewManual(),
		effect: &recordingEffect{},
	}
	rt, err := NewRuntime(RuntimeDeps{
		KV:        h.kv,
		Clock:     h.clock,
		Scheduler: h.sched,
		Config:    DefaultRuntimeConfig(),
		Effect:    h.effect,
		Location:  time.UTC,
	})
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	t.Cleanup(rt.Close)
	h.rt = rt
	return h
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	h := newHarness(t)
	m := NewModel(h.rt)

	if m.Keys.Quit != "q" || m.Keys.SetDate != "s" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.State != countdown.StateRunning {
		t.Fatalf("expected running, got %s", m.State)
	}
	if m.TargetText != "Sat May 24 2025 23:59:59" {
		t.Fatalf("unexpected target text %q", m.TargetText)
	}
	d := m.Display
	if d.Days != "3" || d.Hours != "11" || d.Minutes != "59" || d.Seconds != "59" {
		t.Fatalf("unexpected display: %+v", d)
	}
	if !d.ShowTime || d.ShowEventMessage {
		t.Fatalf("unexpected visibility: %+v", d)
	}
	if h.kv.Writes() != 0 {
		t.Fatalf("startup must not write the store, got %d writes", h.kv.Writes())
	}
}

func TestRuntimePublishesInitialFrame(t *testing.T) {
	h := newHarness(t)
	select {
	case msg := <-h.rt.frames:
		if msg.Completed || msg.Display.Days != "3" {
			t.Fatalf("unexpected frame: %+v", msg)
		}
	default:
		t.Fatal("expected a frame from the constructor tick")
	}
}

func TestPopupInvalidInputIsIgnored(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("s"))
	if !m.Popup.Active {
		t.Fatal("expected popup to open")
	}

	m = press(t, m, runes("not a date"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Popup.Active {
		t.Fatal("popup must stay open on invalid input")
	}
	if m.Status.IsError {
		t.Fatalf("invalid input must not raise an error status: %+v", m.Status)
	}
	if h.kv.Writes() != 0 {
		t.Fatalf("invalid input must not write, got %d", h.kv.Writes())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Popup.Active {
		t.Fatal("esc should cancel the popup")
	}
}

func TestPopupEmptySubmitIsIgnored(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("s"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Popup.Active || h.kv.Writes() != 0 {
		t.Fatalf("empty submit should be ignored: popup=%v writes=%d", m.Popup.Active, h.kv.Writes())
	}
}

func TestPopupSavesFutureDate(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("s"), runes("2025-06-01 10:00"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Popup.Active {
		t.Fatal("popup should close after a valid save")
	}
	if m.TargetText != "Sun Jun 1 2025 10:00:00" {
		t.Fatalf("unexpected target text %q", m.TargetText)
	}
	if m.State != countdown.StateRunning {
		t.Fatalf("expected running, got %s", m.State)
	}
	if m.Display.Days != "10" || m.Display.Hours != "22" {
		t.Fatalf("unexpected display: %+v", m.Display)
	}
	raw, ok, err := h.rt.Store.Raw(h.rt.ctx())
	if err != nil || !ok {
		t.Fatalf("expected stored value, ok=%v err=%v", ok, err)
	}
	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC).UnixMilli()
	if raw != strconv.FormatInt(want, 10) {
		t.Fatalf("stored %q, want %d", raw, want)
	}
	if h.effect.clears != 1 {
		t.Fatalf("reconfigure should clear the effect once, got %d", h.effect.clears)
	}
	if !strings.HasPrefix(m.Status.Text, "target set:") {
		t.Fatalf("unexpected status %+v", m.Status)
	}
}

func TestPopupPastDateCompletes(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("s"), runes("2025-05-01"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.State != countdown.StateCompleted {
		t.Fatalf("expected completed, got %s", m.State)
	}
	if h.effect.plays != 1 {
		t.Fatalf("expected one play, got %d", h.effect.plays)
	}
	if m.Display.ShowTime || !m.Display.ShowEventMessage {
		t.Fatalf("unexpected visibility: %+v", m.Display)
	}
	if h.sched.Active() != 0 {
		t.Fatalf("completed countdown must not keep a schedule, got %d", h.sched.Active())
	}
	if !strings.Contains(m.View(), views.EventMessage) {
		t.Fatal("expected event message in view")
	}
}

func TestClearKeyStopsCelebration(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("c"))
	if h.effect.clears != 1 {
		t.Fatalf("expected one clear, got %d", h.effect.clears)
	}
	if m.Celebration.Active || m.Status.Text != "celebration cleared" {
		t.Fatalf("unexpected state: active=%v status=%+v", m.Celebration.Active, m.Status)
	}
}

func TestDebugToggle(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("d"))
	if !m.DebugVisible {
		t.Fatal("expected debug visible")
	}
	if !strings.Contains(m.DebugText, "LocalStorage:") || !strings.Contains(m.DebugText, "Not Set") {
		t.Fatalf("unexpected debug text %q", m.DebugText)
	}

	m = press(t, m, runes("d"))
	if m.DebugVisible || m.DebugText != "" {
		t.Fatalf("expected debug hidden, got %v %q", m.DebugVisible, m.DebugText)
	}
}

func TestPaletteInCommand(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("/"))
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = press(t, m, runes("in 2h"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Palette.Active {
		t.Fatal("palette should close after execution")
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error: %+v", m.Status)
	}
	if m.TargetText != "Wed May 21 2025 14:00:00" {
		t.Fatalf("unexpected target text %q", m.TargetText)
	}
	if m.Display.Days != "0" || m.Display.Hours != "02" || m.Display.Minutes != "00" {
		t.Fatalf("unexpected display %+v", m.Display)
	}
}

func TestPaletteSetRejectsUnknownDate(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("/"), runes("set someday"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "invalid_argument") {
		t.Fatalf("expected invalid_argument error, got %+v", m.Status)
	}
	if h.kv.Writes() != 0 {
		t.Fatalf("expected no writes, got %d", h.kv.Writes())
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("/"), runes("launch"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown_command error, got %+v", m.Status)
	}
	if m.Palette.Active {
		t.Fatal("palette should close on error")
	}
}

func TestPaletteDebugAndClear(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("/"), runes("debug"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.DebugVisible || m.Status.Text != "debug shown" {
		t.Fatalf("expected debug shown, got %v %+v", m.DebugVisible, m.Status)
	}
	m = press(t, m, runes("/"), runes("clear"), tea.KeyMsg{Type: tea.KeyEnter})
	if h.effect.clears != 1 || m.Status.Text != "celebration cleared" {
		t.Fatalf("expected clear, got %d %+v", h.effect.clears, m.Status)
	}
}

func TestCountdownFrameMsgRearms(t *testing.T) {
	h := newHarness(t)
	m := NewModel(h.rt)
	h.clock.Advance(time.Hour)
	h.sched.Fire()

	msg := <-h.rt.frames
	updated, cmd := m.Update(msg)
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected the frame listener to be re-armed")
	}
	if next.Display.Hours != "10" {
		t.Fatalf("expected hours 10, got %+v", next.Display)
	}
}

func TestCelebrationFrameMsg(t *testing.T) {
	h := newHarness(t)
	m := NewModel(h.rt)
	updated, cmd := m.Update(CelebrationFrameMsg{})
	if cmd == nil {
		t.Fatal("expected the celebration listener to be re-armed")
	}
	if updated.(Model).Celebration.Active {
		t.Fatal("empty frame should not be active")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := NewModel(nil)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	errMsg := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: errMsg})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestHelpToggleAndView(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("?"))
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	out := m.View()
	for _, want := range []string{"tminus", "state: RUNNING", "toggle debug overlay"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	updated, cmd := NewModel(h.rt).Update(runes("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestHelpShowsPopupKeys(t *testing.T) {
	h := newHarness(t)
	m := press(t, NewModel(h.rt), runes("?"), runes("s"))
	if !m.Popup.Active || !m.HelpVisible {
		t.Fatalf("expected popup with help, got popup=%v help=%v", m.Popup.Active, m.HelpVisible)
	}
	if !strings.Contains(m.renderHelpView(), "save date") {
		t.Fatal("expected popup bindings in help")
	}
}
