package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const EventMessage = "The moment has arrived!"

type CountdownPanelData struct {
	Target           string
	Days             string
	Hours            string
	Minutes          string
	Seconds          string
	ShowTime         bool
	ShowEventMessage bool
}

type DatePopupData struct {
	Active    bool
	InputView string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

type ParticleData struct {
	X, Y  float64
	Tilt  float64
	Color string
}

type EmojiData struct {
	Glyph   string
	Scale   float64
	Opacity float64
	Flipped bool
}

type CelebrationData struct {
	Width     int
	Height    int
	Particles []ParticleData
	Emojis    []EmojiData
}

var (
	unitStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Width(9).
			Align(lipgloss.Center)
	valueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	messageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Padding(1, 2)
	popupStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 1)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func RenderCountdownPanel(data CountdownPanelData) string {
	var b strings.Builder
	b.WriteString("countdown:\n")
	if data.Target != "" {
		b.WriteString("target: " + data.Target + "\n")
	}
	if data.ShowTime {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			renderUnit(data.Days, "days"),
			renderUnit(data.Hours, "hours"),
			renderUnit(data.Minutes, "minutes"),
			renderUnit(data.Seconds, "seconds"),
		))
		b.WriteString("\n")
	}
	if data.ShowEventMessage {
		b.WriteString(messageStyle.Render(EventMessage))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func renderUnit(value, label string) string {
	return unitStyle.Render(valueStyle.Render(value) + "\n" + labelStyle.Render(label))
}

func RenderDatePopup(data DatePopupData) string {
	if !data.Active {
		return ""
	}
	return popupStyle.Render("set target date:\n" + data.InputView + "\n" +
		labelStyle.Render("e.g. 2025-12-31 23:59, 12/31, +2d4h  [enter]save [esc]cancel"))
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

// RenderDebugPanel shows the raw persisted state as a markdown code block.
func RenderDebugPanel(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return "debug:\n" + RenderMarkdown("```json\n"+text+"\n```")
}

// RenderCelebration draws confetti on a Width x Height grid with the two
// emoji on the bottom row. Particles outside the grid are skipped.
func RenderCelebration(data CelebrationData) string {
	if data.Width <= 0 || data.Height <= 0 {
		return ""
	}
	grid := make([][]string, data.Height)
	for y := range grid {
		grid[y] = make([]string, data.Width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for _, p := range data.Particles {
		x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
		if x < 0 || x >= data.Width || y < 0 || y >= data.Height {
			continue
		}
		grid[y][x] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(particleGlyph(p.Tilt))
	}

	rows := make([]string, 0, data.Height+1)
	for _, row := range grid {
		rows = append(rows, strings.Join(row, ""))
	}
	if emoji := renderEmojiRow(data.Emojis, data.Width); emoji != "" {
		rows = append(rows, emoji)
	}
	return strings.Join(rows, "\n")
}

func particleGlyph(tilt float64) string {
	switch {
	case tilt < -5:
		return "\\"
	case tilt > 5:
		return "/"
	default:
		return "|"
	}
}

func renderEmojiRow(emojis []EmojiData, width int) string {
	if len(emojis) == 0 {
		return ""
	}
	var left, right string
	for _, e := range emojis {
		n := int(math.Round(e.Scale * 2))
		if n < 1 {
			n = 1
		}
		s := strings.Repeat(e.Glyph, n)
		if e.Opacity < 0.5 {
			s = faintStyle.Render(s)
		}
		if e.Flipped {
			right = s
		} else {
			left = s
		}
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
