package world

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
	"github.com/vovakirdan/tui-orbit/internal/sim/look"
	"github.com/vovakirdan/tui-orbit/internal/sim/mover"
)

// EffectState is the lifecycle state of an effect.
type EffectState int

const (
	EffectActive EffectState = iota
	EffectTimeout
)

func (s EffectState) String() string {
	if s == EffectTimeout {
		return "timeout"
	}
	return "active"
}

// Effect errors.
var (
	ErrNilLook         = errors.New("nil look")
	ErrNilMover        = errors.New("nil mover")
	ErrInvalidDuration = errors.New("duration must be positive")
)

// Effect is a short-lived decoration such as a score popup. It has a
// position, a look, a mover and a remaining lifetime, and never collides.
type Effect struct {
	pos       *hitbox.Point
	look      look.Look
	mover     mover.Mover
	remaining time.Duration
	expired   atomic.Bool
}

// NewEffect creates an effect at (x, y) living for d.
func NewEffect(l look.Look, mv mover.Mover, x, y float64, d time.Duration) (*Effect, error) {
	switch {
	case l == nil:
		return nil, fmt.Errorf("world: effect: %w", ErrNilLook)
	case mv == nil:
		return nil, fmt.Errorf("world: effect: %w", ErrNilMover)
	case d <= 0:
		return nil, fmt.Errorf("world: effect duration %v: %w", d, ErrInvalidDuration)
	}
	return &Effect{
		pos:       hitbox.NewGhost(x, y),
		look:      l,
		mover:     mv,
		remaining: d,
	}, nil
}

// Position returns the effect's anchor point.
func (e *Effect) Position() (float64, float64) { return e.pos.Center() }

// Remaining returns the time left before the effect times out.
func (e *Effect) Remaining() time.Duration { return e.remaining }

// State returns EffectTimeout once the lifetime is over or Expire was called.
func (e *Effect) State() EffectState {
	if e.expired.Load() {
		return EffectTimeout
	}
	return EffectActive
}

// Expire ends the effect early. It is pruned on the next tick.
func (e *Effect) Expire() { e.expired.Store(true) }

// Update advances the effect by dt.
func (e *Effect) Update(dt time.Duration) {
	if e.expired.Load() {
		return
	}
	e.mover.Update(e.pos, dt)
	e.look.Update(dt)
	e.remaining -= dt
	if e.remaining <= 0 {
		e.remaining = 0
		e.expired.Store(true)
	}
}

// Draw renders the look at the effect's position.
func (e *Effect) Draw(c look.Canvas, style *core.Style) {
	if e.expired.Load() {
		return
	}
	x, y := e.pos.Center()
	e.look.Draw(c, x, y, style)
}
