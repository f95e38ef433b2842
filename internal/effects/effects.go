// Package effects implements the cosmetic Special > Launch overlays: falling
// snow and the sparkle trail that follows the mouse.
package effects

import (
	"math/rand/v2"
	"time"
)

// Cell is a position on the desktop grid.
type Cell struct {
	X, Y int
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Flake is one snowflake. Y is fractional so flakes fall at varied speeds.
type Flake struct {
	X     int
	Y     float64
	Speed float64
	Glyph string
}

var flakeGlyphs = []string{"❄", "*", "·", "❅"}

// Snow is a fixed population of flakes that wrap to the top when they leave
// the bottom edge.
type Snow struct {
	count  int
	width  int
	height int
	active bool
	flakes []Flake
	rng    *rand.Rand
}

// NewSnow returns an inactive snowfall of count flakes.
func NewSnow(count int, seed uint64) *Snow {
	return &Snow{count: count, rng: newRand(seed)}
}

// Active reports whether snow is falling.
func (s *Snow) Active() bool { return s.active }

// Start scatters the flakes over a width x height area.
func (s *Snow) Start(width, height int) {
	s.active = true
	s.width, s.height = width, height
	s.flakes = s.flakes[:0]
	for i := 0; i < s.count; i++ {
		s.flakes = append(s.flakes, s.spawn(true))
	}
}

// Stop removes every flake.
func (s *Snow) Stop() {
	s.active = false
	s.flakes = nil
}

// Resize keeps flakes inside a new area.
func (s *Snow) Resize(width, height int) {
	s.width, s.height = width, height
	for i := range s.flakes {
		if s.flakes[i].X >= width || int(s.flakes[i].Y) >= height {
			s.flakes[i] = s.spawn(true)
		}
	}
}

// Step advances every flake by one tick.
func (s *Snow) Step() {
	if !s.active {
		return
	}
	for i := range s.flakes {
		f := &s.flakes[i]
		f.Y += f.Speed
		if int(f.Y) >= s.height {
			*f = s.spawn(false)
		}
	}
}

// Flakes returns the current flakes.
func (s *Snow) Flakes() []Flake {
	return s.flakes
}

func (s *Snow) spawn(anywhere bool) Flake {
	f := Flake{
		Speed: 0.3 + s.rng.Float64()*0.7,
		Glyph: flakeGlyphs[s.rng.IntN(len(flakeGlyphs))],
	}
	if s.width > 0 {
		f.X = s.rng.IntN(s.width)
	}
	if anywhere && s.height > 0 {
		f.Y = float64(s.rng.IntN(s.height))
	}
	return f
}

// Sparkle is one trail cell that disappears at Expires.
type Sparkle struct {
	Cell
	Expires time.Time
}

// Trail spawns short-lived sparkles near the pointer while enabled.
type Trail struct {
	enabled  bool
	ttl      time.Duration
	jitter   int
	sparkles []Sparkle
	rng      *rand.Rand
}

// NewTrail returns a disabled trail whose sparkles live for ttl.
func NewTrail(ttl time.Duration, seed uint64) *Trail {
	return &Trail{ttl: ttl, jitter: 1, rng: newRand(seed)}
}

// Enabled reports whether Spawn is accepted.
func (t *Trail) Enabled() bool { return t.enabled }

// Enable starts accepting spawns.
func (t *Trail) Enable() {
	t.enabled = true
}

// Disable stops accepting spawns and removes every sparkle.
func (t *Trail) Disable() {
	t.enabled = false
	t.sparkles = nil
}

// Spawn adds a sparkle near (x, y). It is a no-op while disabled.
func (t *Trail) Spawn(x, y int, now time.Time) bool {
	if !t.enabled {
		return false
	}
	if t.jitter > 0 {
		x += t.rng.IntN(2*t.jitter+1) - t.jitter
		y += t.rng.IntN(2*t.jitter+1) - t.jitter
	}
	t.sparkles = append(t.sparkles, Sparkle{Cell: Cell{X: x, Y: y}, Expires: now.Add(t.ttl)})
	return true
}

// Prune drops expired sparkles and returns how many remain.
func (t *Trail) Prune(now time.Time) int {
	kept := t.sparkles[:0]
	for _, s := range t.sparkles {
		if now.Before(s.Expires) {
			kept = append(kept, s)
		}
	}
	t.sparkles = kept
	return len(kept)
}

// Sparkles returns the live sparkles.
func (t *Trail) Sparkles() []Sparkle {
	return t.sparkles
}

// TTL is the lifetime of a sparkle.
func (t *Trail) TTL() time.Duration {
	return t.ttl
}
