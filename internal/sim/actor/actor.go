// Package actor composes a hitbox, a mover and a set of looks keyed by the
// mover's state into one simulated entity.
package actor

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
	"github.com/vovakirdan/tui-orbit/internal/sim/look"
	"github.com/vovakirdan/tui-orbit/internal/sim/mover"
)

// Construction errors.
var (
	ErrNilHitbox = errors.New("actor: nil hitbox")
	ErrNilMover  = errors.New("actor: nil mover")
	ErrNilLook   = errors.New("actor: nil look")
)

var nextID atomic.Uint64

// Actor is one simulated entity. Only the world's tick mutates it; the active
// flag may be toggled from any goroutine.
type Actor struct {
	id     uint64
	hitbox hitbox.Hitbox
	mover  mover.Mover
	looks  map[mover.State]look.Look
	look   look.Look
	active atomic.Bool

	// Tag is free for the host to classify actors.
	Tag string
}

// New creates an active actor. initial is registered for the mover's
// current state and shown until the state changes.
func New(hb hitbox.Hitbox, mv mover.Mover, initial look.Look) (*Actor, error) {
	switch {
	case hb == nil:
		return nil, ErrNilHitbox
	case mv == nil:
		return nil, ErrNilMover
	case initial == nil:
		return nil, ErrNilLook
	}
	a := &Actor{
		id:     nextID.Add(1),
		hitbox: hb,
		mover:  mv,
		looks:  map[mover.State]look.Look{mv.State(): initial},
		look:   initial,
	}
	a.active.Store(true)
	return a, nil
}

// ID returns a process-unique identifier.
func (a *Actor) ID() uint64 { return a.id }

func (a *Actor) Hitbox() hitbox.Hitbox { return a.hitbox }

func (a *Actor) Mover() mover.Mover { return a.mover }

// SetMover swaps the mover. The look follows the new mover's state.
func (a *Actor) SetMover(mv mover.Mover) error {
	if mv == nil {
		return ErrNilMover
	}
	a.mover = mv
	a.switchLook(mv.State())
	return nil
}

// Look returns the look currently shown.
func (a *Actor) Look() look.Look { return a.look }

// SetLook registers l for mover state s.
func (a *Actor) SetLook(s mover.State, l look.Look) error {
	if l == nil {
		return ErrNilLook
	}
	a.looks[s] = l
	if s == a.mover.State() {
		a.look = l
	}
	return nil
}

func (a *Actor) Active() bool { return a.active.Load() }

// SetActive includes or excludes the actor from ticks and collisions.
func (a *Actor) SetActive(v bool) { a.active.Store(v) }

// Update moves the actor and advances its look. It reports whether the
// mover changed state.
func (a *Actor) Update(dt time.Duration) bool {
	changed := a.mover.Update(a.hitbox, dt)
	if changed {
		a.switchLook(a.mover.State())
	}
	a.look.Update(dt)
	return changed
}

func (a *Actor) switchLook(s mover.State) {
	l, ok := a.looks[s]
	if !ok || l == a.look {
		return
	}
	l.Reset()
	a.look = l
}

// Draw renders the current look at the hitbox's top-left corner.
func (a *Actor) Draw(c look.Canvas, style *core.Style) {
	if !a.Active() {
		return
	}
	b := a.hitbox.Bounds()
	a.look.Draw(c, b.Left, b.Top, style)
}
