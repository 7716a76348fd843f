package views

import (
	"strings"
	"testing"
)

func TestRenderCountdownPanelToggles(t *testing.T) {
	running := RenderCountdownPanel(CountdownPanelData{
		Target: "Sat May 24 2025 23:59:59", Days: "3", Hours: "11", Minutes: "59", Seconds: "59",
		ShowTime: true,
	})
	for _, want := range []string{"target: Sat May 24 2025 23:59:59", "days", "seconds", "11"} {
		if !strings.Contains(running, want) {
			t.Fatalf("expected %q in running panel:\n%s", want, running)
		}
	}
	if strings.Contains(running, EventMessage) {
		t.Fatal("running panel must not show the event message")
	}

	done := RenderCountdownPanel(CountdownPanelData{Days: "0", ShowEventMessage: true})
	if !strings.Contains(done, EventMessage) {
		t.Fatalf("expected event message, got:\n%s", done)
	}
	if strings.Contains(done, "minutes") {
		t.Fatal("completed panel must hide the time display")
	}
}

func TestRenderCelebrationGrid(t *testing.T) {
	out := RenderCelebration(CelebrationData{
		Width:  10,
		Height: 3,
		Particles: []ParticleData{
			{X: 1.5, Y: 0.2, Tilt: 0, Color: "#ff0000"},
			{X: 99, Y: 1, Tilt: 10, Color: "#00ff00"},
			{X: 4, Y: -2, Tilt: -10, Color: "#0000ff"},
		},
		Emojis: []EmojiData{
			{Glyph: "🎉", Scale: 1, Opacity: 1},
			{Glyph: "🎉", Scale: 0.5, Opacity: 1, Flipped: true},
		},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 3 grid rows plus emoji row, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "|") {
		t.Fatalf("expected particle in first row, got %q", lines[0])
	}
	if strings.Contains(out, "/") || strings.Contains(out, "\\") {
		t.Fatal("particles outside the grid must be skipped")
	}
	if strings.Count(lines[3], "🎉") != 3 {
		t.Fatalf("expected scaled emoji on both sides, got %q", lines[3])
	}
}

func TestRenderCelebrationEmptyArea(t *testing.T) {
	if got := RenderCelebration(CelebrationData{}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderDatePopupHiddenWhenInactive(t *testing.T) {
	if got := RenderDatePopup(DatePopupData{InputView: "date> "}); got != "" {
		t.Fatalf("expected empty popup, got %q", got)
	}
	if got := RenderDatePopup(DatePopupData{Active: true, InputView: "date> 12/31"}); !strings.Contains(got, "12/31") {
		t.Fatalf("expected input in popup, got %q", got)
	}
}

func TestRenderAppLayout(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "tminus",
		Main:       "countdown:",
		StatusLine: "status: ok",
		Footer:     "keys",
	})
	for _, want := range []string{"tminus", "countdown:", "status: ok", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
