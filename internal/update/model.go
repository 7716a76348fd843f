package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/tminus/internal/countdown"
	"github.com/sandeepkv93/tminus/internal/effect"
	"github.com/sandeepkv93/tminus/internal/projection"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	SetDate string
	Debug   string
	Clear   string
	Help    string
	Quit    string
}

type PopupState struct {
	Active bool
	Input  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Display      projection.Instructions
	Parts        countdown.Parts
	State        countdown.State
	TargetText   string
	Celebration  effect.Frame
	Popup        PopupState
	Palette      CommandPaletteState
	DebugVisible bool
	DebugText    string
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	LastError    error

	rt           *Runtime
	dateInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	width        int
	height       int
}

// CountdownFrameMsg carries one controller render into the program.
type CountdownFrameMsg struct {
	Display   projection.Instructions
	Parts     countdown.Parts
	Completed bool
}

type CelebrationFrameMsg struct {
	Frame effect.Frame
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

const targetLayout = "Mon Jan 2 2006 15:04:05"

func NewModel(rt *Runtime) Model {
	m := Model{
		rt: rt,
		Keys: GlobalKeyMap{
			SetDate: "s",
			Debug:   "d",
			Clear:   "c",
			Help:    "?",
			Quit:    "q",
		},
		Display: projection.Project(countdown.Parts{}, false),
	}
	m.initBubbleComponents()
	m.syncFromController()
	return m
}

func (m *Model) initBubbleComponents() {
	m.dateInput = textinput.New()
	m.dateInput.Prompt = "date> "
	m.dateInput.Placeholder = "2025-12-31 23:59"
	m.dateInput.CharLimit = 64
	m.dateInput.Width = 36

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.helpModel = help.New()
}

// syncFromController pulls the latest snapshot so the model is correct even
// before the first frame message arrives.
func (m *Model) syncFromController() {
	if m.rt == nil || m.rt.Controller == nil {
		return
	}
	snap := m.rt.Controller.Snapshot()
	completed := snap.State == countdown.StateCompleted
	m.Parts = snap.Parts
	m.State = snap.State
	m.Display = projection.Project(snap.Parts, completed)
	m.TargetText = snap.Target.Time().In(m.rt.location()).Format(targetLayout)
	if m.DebugVisible {
		m.refreshDebug()
	}
}

func (m *Model) refreshDebug() {
	if m.rt == nil || m.rt.Store == nil {
		m.DebugText = ""
		return
	}
	m.DebugText = m.rt.Store.Debug(m.rt.ctx(), m.rt.location()).String()
}

func (m Model) now() time.Time {
	if m.rt == nil || m.rt.Clock == nil {
		return time.Now()
	}
	return m.rt.Clock.Now()
}
