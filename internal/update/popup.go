package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tminus/internal/dateinput"
	"github.com/sandeepkv93/tminus/internal/logging"
	"github.com/sandeepkv93/tminus/internal/target"
)

func (m Model) openPopup() Model {
	m.Popup.Active = true
	m.Popup.Input = ""
	m.dateInput.SetValue("")
	m.dateInput.Focus()
	return m
}

func (m Model) closePopup() Model {
	m.Popup.Active = false
	m.Popup.Input = ""
	m.dateInput.SetValue("")
	m.dateInput.Blur()
	return m
}

func (m Model) handlePopupKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		return m.closePopup()
	case "enter":
		m.Popup.Input = m.dateInput.Value()
		return m.submitDate()
	default:
		if msg.Type == tea.KeyRunes {
			m.dateInput.SetValue(m.dateInput.Value() + string(msg.Runes))
			m.Popup.Input = m.dateInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		_ = cmd
		m.Popup.Input = m.dateInput.Value()
	}
	return m
}

// submitDate ignores empty or unparseable input and leaves the popup open.
func (m Model) submitDate() Model {
	ms, ok := dateinput.Parse(m.Popup.Input, m.now())
	if !ok || m.rt == nil {
		return m
	}
	if err := m.rt.Controller.Reconfigure(m.rt.ctx(), ms); err != nil {
		if errors.Is(err, target.ErrInvalidInput) {
			return m
		}
		logging.Warnf("save target date: %v", err)
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		return m
	}
	m = m.closePopup()
	m.syncFromController()
	m.Status = StatusBar{Text: "target set: " + m.TargetText, IsError: false}
	return m
}
