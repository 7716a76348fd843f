package update

import (
	"github.com/sandeepkv93/tminus/internal/views"
)

func (m Model) renderCountdownPanel() string {
	return views.RenderCountdownPanel(views.CountdownPanelData{
		Target:           m.TargetText,
		Days:             m.Display.Days,
		Hours:            m.Display.Hours,
		Minutes:          m.Display.Minutes,
		Seconds:          m.Display.Seconds,
		ShowTime:         m.Display.ShowTime,
		ShowEventMessage: m.Display.ShowEventMessage,
	})
}

func (m Model) renderDatePopup() string {
	return views.RenderDatePopup(views.DatePopupData{
		Active:    m.Popup.Active,
		InputView: m.dateInput.View(),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderDebugIfVisible() string {
	if !m.DebugVisible {
		return ""
	}
	return views.RenderDebugPanel(m.DebugText)
}

func (m Model) renderCelebration() string {
	if !m.Celebration.Active {
		return ""
	}
	return views.RenderCelebration(celebrationData(m.Celebration))
}
