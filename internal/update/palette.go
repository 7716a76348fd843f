package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tminus/internal/commands"
	"github.com/sandeepkv93/tminus/internal/dateinput"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	reconfigure := func(input string) (commands.Result, error) {
		ms, ok := dateinput.Parse(input, m.now())
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unrecognized date: %s", input)}
		}
		if m.rt == nil {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "countdown not running"}
		}
		if err := m.rt.Controller.Reconfigure(m.rt.ctx(), ms); err != nil {
			return commands.Result{}, err
		}
		m.syncFromController()
		return commands.Result{Message: "target set: " + m.TargetText}, nil
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Set: func(a commands.SetArgs) (commands.Result, error) {
			return reconfigure(a.Date)
		},
		In: func(a commands.InArgs) (commands.Result, error) {
			return reconfigure("+" + a.Window)
		},
		Clear: func() (commands.Result, error) {
			m = m.clearCelebration()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Debug: func() (commands.Result, error) {
			m = m.toggleDebug()
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) toggleDebug() Model {
	m.DebugVisible = !m.DebugVisible
	if m.DebugVisible {
		m.refreshDebug()
		m.Status = StatusBar{Text: "debug shown", IsError: false}
	} else {
		m.DebugText = ""
		m.Status = StatusBar{Text: "debug hidden", IsError: false}
	}
	return m
}

func (m Model) clearCelebration() Model {
	if m.rt != nil {
		m.rt.Effect.Clear()
	}
	m.Celebration.Active = false
	m.Celebration.Particles = nil
	m.Celebration.Emojis = nil
	m.Status = StatusBar{Text: "celebration cleared", IsError: false}
	return m
}
