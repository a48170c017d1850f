package world

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-orbit/internal/sim/actor"
	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
)

// ErrInvalidBounds is returned for a world rect without area.
var ErrInvalidBounds = errors.New("world bounds must have positive size")

// RectWorld is a World confined to a rectangle. Each tick it reports
// actors crossing or leaving its edges.
type RectWorld struct {
	*World
	bounds hitbox.Bounds
}

// NewRect creates a rectangular world.
func NewRect(bounds hitbox.Bounds, cb Callback, opts ...Option) (*RectWorld, error) {
	if !(bounds.Width() > 0) || !(bounds.Height() > 0) {
		return nil, fmt.Errorf("world: %v: %w", bounds, ErrInvalidBounds)
	}
	w, err := New(cb, opts...)
	if err != nil {
		return nil, err
	}
	rw := &RectWorld{World: w, bounds: bounds}
	w.border = rw
	return rw, nil
}

// Bounds returns the world rectangle.
func (w *RectWorld) Bounds() hitbox.Bounds { return w.bounds }

// Contains reports whether a's bounds lie fully inside the world.
func (w *RectWorld) Contains(a *actor.Actor) bool {
	return w.reached(a.Hitbox().Bounds()) == 0
}

// left returns the edges an actor is entirely beyond. Touching an edge from
// outside counts as beyond, matching Bounds.Overlaps.
func (w *RectWorld) left(b hitbox.Bounds) BorderFlags {
	var f BorderFlags
	if b.Right <= w.bounds.Left {
		f |= Left
	}
	if b.Left >= w.bounds.Right {
		f |= Right
	}
	if b.Bottom <= w.bounds.Top {
		f |= Top
	}
	if b.Top >= w.bounds.Bottom {
		f |= Bottom
	}
	return f
}

// reached returns the edges an actor's bounds cross.
func (w *RectWorld) reached(b hitbox.Bounds) BorderFlags {
	var f BorderFlags
	if b.Left < w.bounds.Left {
		f |= Left
	}
	if b.Right > w.bounds.Right {
		f |= Right
	}
	if b.Top < w.bounds.Top {
		f |= Top
	}
	if b.Bottom > w.bounds.Bottom {
		f |= Bottom
	}
	return f
}

func (w *RectWorld) checkBoundaries(a *actor.Actor) {
	hb := a.Hitbox()
	b := hb.Bounds()
	if f := w.left(b); f != 0 {
		w.cb.OnLeftWorld(a, f)
		return
	}

	f := w.reached(b)
	if f == 0 {
		return
	}
	x, y := hb.Center()
	switch {
	case f&Left != 0:
		x = w.bounds.Left
	case f&Right != 0:
		x = w.bounds.Right
	}
	switch {
	case f&Top != 0:
		y = w.bounds.Top
	case f&Bottom != 0:
		y = w.bounds.Bottom
	}
	w.cb.OnReachedEndOfWorld(a, x, y, f)
}

// KeepInside moves a's hitbox back across any crossed edge and returns the
// edges it was pushed from. A hitbox larger than the world is aligned to
// the left and top edges.
func (w *RectWorld) KeepInside(a *actor.Actor) BorderFlags {
	hb := a.Hitbox()
	f := w.reached(hb.Bounds())
	switch {
	case f&Left != 0:
		hb.SetLeft(w.bounds.Left)
	case f&Right != 0:
		hb.SetRight(w.bounds.Right)
		if hb.Bounds().Left < w.bounds.Left {
			hb.SetLeft(w.bounds.Left)
		}
	}
	switch {
	case f&Top != 0:
		hb.SetTop(w.bounds.Top)
	case f&Bottom != 0:
		hb.SetBottom(w.bounds.Bottom)
		if hb.Bounds().Top < w.bounds.Top {
			hb.SetTop(w.bounds.Top)
		}
	}
	return f
}

// SetRandomPositionInside places a's centre uniformly inside the world,
// inset by the hitbox's half extents so it starts fully inside. An axis too
// narrow for the hitbox uses the world centre. Boundary checks run right
// after placement. A nil rng uses the world's own source.
func (w *RectWorld) SetRandomPositionInside(a *actor.Actor, rng *rand.Rand) {
	if rng == nil {
		rng = w.rng
	}
	hb := a.Hitbox()
	b := hb.Bounds()
	cx := place(rng, w.bounds.Left, w.bounds.Right, b.Width()/2)
	cy := place(rng, w.bounds.Top, w.bounds.Bottom, b.Height()/2)
	hb.SetCenter(cx, cy)
	w.checkBoundaries(a)
}

func place(rng *rand.Rand, lo, hi, half float64) float64 {
	lo, hi = lo+half, hi-half
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float64()*(hi-lo)
}
