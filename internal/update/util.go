package update

import (
	"github.com/sandeepkv93/tminus/internal/effect"
	"github.com/sandeepkv93/tminus/internal/views"
)

func celebrationData(f effect.Frame) views.CelebrationData {
	out := views.CelebrationData{
		Width:     f.Width,
		Height:    f.Height,
		Particles: make([]views.ParticleData, 0, len(f.Particles)),
		Emojis:    make([]views.EmojiData, 0, len(f.Emojis)),
	}
	for _, p := range f.Particles {
		out.Particles = append(out.Particles, views.ParticleData{X: p.X, Y: p.Y, Tilt: p.Tilt, Color: p.Color})
	}
	for _, e := range f.Emojis {
		out.Emojis = append(out.Emojis, views.EmojiData{Glyph: e.Glyph, Scale: e.Scale, Opacity: e.Opacity, Flipped: e.Flipped})
	}
	return out
}
