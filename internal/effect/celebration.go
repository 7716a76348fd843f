// Package effect plays the confetti celebration shown when a countdown ends.
package effect

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultDuration      = 15 * time.Second
	DefaultFrameInterval = 50 * time.Millisecond
	DefaultParticles     = 120
	DefaultWidth         = 80
	DefaultHeight        = 24

	emojiGlyph      = "🎉"
	emojiStartScale = 0.5
	emojiEndScale   = 1.2
	emojiFadeIn     = 700 * time.Millisecond

	// fall speed is tuned for terminal cells rather than pixels
	cellScale = 0.15
)

type Config struct {
	Duration      time.Duration
	FrameInterval time.Duration
	Particles     int
	Width         int
	Height        int
	// OnFrame receives every frame, and an inactive zero Frame when the
	// celebration ends or is cleared. It runs under the celebration lock, so
	// it must not block or call back into the Celebration.
	OnFrame func(Frame)
	Seed    int64
}

func (c Config) withDefaults() Config {
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	if c.Particles <= 0 {
		c.Particles = DefaultParticles
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

type Particle struct {
	X, Y      float64
	R         float64
	D         float64
	Tilt      float64
	TiltAngle float64
	TiltInc   float64
	Color     string
}

type Emoji struct {
	Glyph   string
	Scale   float64
	Opacity float64
	Flipped bool
}

type Frame struct {
	Active    bool
	Elapsed   time.Duration
	Width     int
	Height    int
	Particles []Particle
	Emojis    []Emoji
}

// Celebration is a self-terminating confetti and emoji animation.
type Celebration struct {
	mu     sync.Mutex
	cfg    Config
	rng    *rand.Rand
	spring harmonica.Spring

	active  bool
	runID   uint64
	cancel  context.CancelFunc
	angle   float64
	scale   float64
	scaleV  float64
	started time.Time
	frame   Frame
}

func New(cfg Config) *Celebration {
	cfg = cfg.withDefaults()
	fps := int(time.Second / cfg.FrameInterval)
	if fps < 1 {
		fps = 1
	}
	return &Celebration{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.5),
	}
}

// Play starts the celebration unless one is already running.
func (c *Celebration) Play() {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return
	}
	c.active = true
	c.runID++
	id := c.runID
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.started = time.Now()
	c.angle = 0
	c.scale, c.scaleV = emojiStartScale, 0
	c.frame = Frame{
		Active:    true,
		Width:     c.cfg.Width,
		Height:    c.cfg.Height,
		Particles: c.spawnLocked(),
		Emojis:    c.emojisLocked(0),
	}
	c.emitLocked(c.copyFrameLocked())
	c.mu.Unlock()

	go c.run(ctx, id)
}

// Clear stops any running celebration. Safe to call when idle.
func (c *Celebration) Clear() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.mu.Unlock()
}

func (c *Celebration) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Frame returns a copy of the current frame.
func (c *Celebration) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyFrameLocked()
}

// SetSize changes the drawing area used by the next Play.
func (c *Celebration) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	c.cfg.Width, c.cfg.Height = width, height
	c.mu.Unlock()
}

func (c *Celebration) run(ctx context.Context, id uint64) {
	ticker := time.NewTicker(c.cfg.FrameInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(c.cfg.Duration)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			c.finish(id)
			return
		case <-ticker.C:
			if !c.step(id) {
				return
			}
		}
	}
}

func (c *Celebration) step(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || c.runID != id {
		return false
	}

	c.angle += 0.01
	height := float64(c.frame.Height)
	kept := c.frame.Particles[:0]
	for _, p := range c.frame.Particles {
		p.TiltAngle += p.TiltInc
		p.Y += (math.Cos(c.angle+p.D) + 3 + p.R/2) / 2 * cellScale
		p.X += math.Sin(c.angle) * cellScale
		p.Tilt = math.Sin(p.TiltAngle) * 15
		if p.Y <= height {
			kept = append(kept, p)
		}
	}
	c.frame.Particles = kept

	c.scale, c.scaleV = c.spring.Update(c.scale, c.scaleV, emojiEndScale)
	c.frame.Elapsed = time.Since(c.started)
	c.frame.Emojis = c.emojisLocked(c.frame.Elapsed)
	c.emitLocked(c.copyFrameLocked())
	return true
}

func (c *Celebration) finish(id uint64) {
	c.mu.Lock()
	if !c.active || c.runID != id {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.mu.Unlock()
}

func (c *Celebration) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.active = false
	c.runID++
	c.frame = Frame{}
	c.emitLocked(Frame{})
}

func (c *Celebration) spawnLocked() []Particle {
	w, h := float64(c.cfg.Width), float64(c.cfg.Height)
	n := c.cfg.Particles
	out := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Particle{
			X:       c.rng.Float64() * w,
			Y:       c.rng.Float64() * -h,
			R:       c.rng.Float64()*6 + 4,
			D:       c.rng.Float64() * float64(n),
			Tilt:    c.rng.Float64()*10 - 10,
			TiltInc: c.rng.Float64()*0.07 + 0.05,
			Color:   colorful.Hsl(c.rng.Float64()*360, 0.7, 0.6).Hex(),
		})
	}
	return out
}

func (c *Celebration) emojisLocked(elapsed time.Duration) []Emoji {
	opacity := float64(elapsed) / float64(emojiFadeIn)
	if opacity > 1 {
		opacity = 1
	}
	return []Emoji{
		{Glyph: emojiGlyph, Scale: c.scale, Opacity: opacity},
		{Glyph: emojiGlyph, Scale: c.scale, Opacity: opacity, Flipped: true},
	}
}

func (c *Celebration) copyFrameLocked() Frame {
	f := c.frame
	f.Particles = append([]Particle(nil), c.frame.Particles...)
	f.Emojis = append([]Emoji(nil), c.frame.Emojis...)
	return f
}

func (c *Celebration) emitLocked(f Frame) {
	if c.cfg.OnFrame != nil {
		c.cfg.OnFrame(f)
	}
}

// Nop satisfies the effect contract without drawing anything.
type Nop struct{}

func (Nop) Play()  {}
func (Nop) Clear() {}
