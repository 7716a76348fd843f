package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tminus/internal/countdown"
	"github.com/sandeepkv93/tminus/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.rt == nil {
		return nil
	}
	return tea.Batch(waitForFrameCmd(m.rt.frames), waitForCelebrationCmd(m.rt.celebration))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		if m.rt != nil {
			m.rt.Resize(typed.Width, celebrationHeight(typed.Height))
		}
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Popup.Active {
			return m.handlePopupKey(typed), nil
		}
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.SetDate:
			m = m.openPopup()
			return m, nil
		case m.Keys.Debug:
			m = m.toggleDebug()
			return m, nil
		case m.Keys.Clear:
			m = m.clearCelebration()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
	case CountdownFrameMsg:
		m.Display = typed.Display
		m.Parts = typed.Parts
		if typed.Completed {
			m.State = countdown.StateCompleted
		} else {
			m.State = countdown.StateRunning
		}
		m.syncFromController()
		if m.rt != nil {
			return m, waitForFrameCmd(m.rt.frames)
		}
		return m, nil
	case CelebrationFrameMsg:
		m.Celebration = typed.Frame
		if m.rt != nil {
			return m, waitForCelebrationCmd(m.rt.celebration)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	main := strings.TrimSpace(strings.Join([]string{
		m.renderCountdownPanel(),
		m.renderDatePopup(),
	}, "\n"))
	side := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderDebugIfVisible(),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:      fmt.Sprintf("tminus | state: %s | target: %s", m.State, m.TargetText),
		Overlay:     m.renderCelebration(),
		Main:        main,
		Side:        side,
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s set date | / cmd | %s debug | %s clear | %s help | %s quit",
			m.Keys.SetDate, m.Keys.Debug, m.Keys.Clear, m.Keys.Help, m.Keys.Quit),
	})
}

// the celebration leaves room for the countdown panel below it
func celebrationHeight(total int) int {
	h := total - 16
	if h < 5 {
		h = 5
	}
	return h
}
