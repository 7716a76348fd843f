package update

import (
	"time"

	"github.com/sandeepkv93/tminus/internal/config"
)

type RuntimeConfig struct {
	TickInterval        time.Duration
	CelebrationDuration time.Duration
	Particles           int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfigFrom(config.Default())
}

// RuntimeConfigFrom picks the TUI settings out of the resolved config.
func RuntimeConfigFrom(cfg config.Config) RuntimeConfig {
	out := RuntimeConfig{
		TickInterval:        cfg.TickInterval(),
		CelebrationDuration: cfg.CelebrationDuration(),
		Particles:           cfg.Particles,
	}
	if out.Particles <= 0 {
		out.Particles = 120
	}
	return out
}
