// Package world runs the simulation: it owns the actors and effects, ticks
// them, checks boundaries and collisions, and reports events to a host
// callback.
//
// Structural changes are copy-on-write. Writers rebuild the actor or effect
// slice under a mutex and publish it atomically; a tick loads each slice
// once and iterates it without locking, so actors may be added or removed
// from other goroutines while a tick runs.
package world

import (
	"errors"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/sim/actor"
	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
	"github.com/vovakirdan/tui-orbit/internal/sim/look"
	"github.com/vovakirdan/tui-orbit/internal/sim/mover"
)

// ErrNilCallback is returned when a world is built without a callback.
var ErrNilCallback = errors.New("world: nil callback")

// Option configures a World.
type Option func(*World)

// WithLogger sets the world's logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithCollisionSamples sets how many points the sampled collision test draws
// for shape pairs without an exact test.
func WithCollisionSamples(n int) Option {
	return func(w *World) { w.samples = n }
}

// WithRand sets the source for sampled collision tests.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		if rng != nil {
			w.rng = rng
		}
	}
}

// boundaryChecker is implemented by world shapes that have edges.
type boundaryChecker interface {
	checkBoundaries(a *actor.Actor)
}

// World is an unbounded simulation container.
type World struct {
	cb      Callback
	logger  *log.Logger
	rng     *rand.Rand
	samples int
	tester  *hitbox.Tester
	border  boundaryChecker

	mu         sync.Mutex
	actors     []*actor.Actor
	effects    []*Effect
	actorSnap  atomic.Pointer[[]*actor.Actor]
	effectSnap atomic.Pointer[[]*Effect]

	// working holds the actors ticked in the current Update.
	working []*actor.Actor
}

// New creates an unbounded world reporting to cb.
func New(cb Callback, opts ...Option) (*World, error) {
	if cb == nil {
		return nil, ErrNilCallback
	}
	w := &World{
		cb:      cb,
		logger:  log.Default().WithPrefix("world"),
		samples: hitbox.DefaultSamples,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(1))
	}
	w.tester = hitbox.NewTester(w.rng, w.samples)
	w.actorSnap.Store(&[]*actor.Actor{})
	w.effectSnap.Store(&[]*Effect{})
	return w, nil
}

// Actors returns the current actor snapshot. It must not be modified.
func (w *World) Actors() []*actor.Actor { return *w.actorSnap.Load() }

// Effects returns the current effect snapshot. It must not be modified.
func (w *World) Effects() []*Effect { return *w.effectSnap.Load() }

// AddActor appends a to the world.
func (w *World) AddActor(a *actor.Actor) {
	if a == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.actors = append(w.actors, a)
	w.publishActors()
	w.logger.Debug("actor added", "id", a.ID(), "tag", a.Tag, "count", len(w.actors))
}

// RemoveActor removes a and reports whether it was present.
func (w *World) RemoveActor(a *actor.Actor) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := slices.Index(w.actors, a)
	if i < 0 {
		return false
	}
	w.actors = slices.Delete(w.actors, i, i+1)
	w.publishActors()
	w.logger.Debug("actor removed", "id", a.ID(), "tag", a.Tag, "count", len(w.actors))
	return true
}

// PushEffect appends e to the world.
func (w *World) PushEffect(e *Effect) {
	if e == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.effects = append(w.effects, e)
	w.publishEffects()
}

// AddTimedMessage shows text at a fixed point for d.
func (w *World) AddTimedMessage(tmpl *look.Text, text string, x, y float64, d time.Duration) (*Effect, error) {
	if tmpl == nil {
		return nil, ErrNilLook
	}
	e, err := NewEffect(tmpl.WithText(text, 0), mover.Still, x, y, d)
	if err != nil {
		return nil, err
	}
	w.PushEffect(e)
	return e, nil
}

// AttachTimedMessage shows text wrapped to maxWidth, following host's
// centre for d.
func (w *World) AttachTimedMessage(tmpl *look.Text, text string, maxWidth int, host *actor.Actor, d time.Duration) (*Effect, error) {
	if tmpl == nil {
		return nil, ErrNilLook
	}
	if host == nil {
		return nil, mover.ErrNilHost
	}
	mv, err := mover.NewAttached(host.Hitbox())
	if err != nil {
		return nil, err
	}
	x, y := host.Hitbox().Center()
	e, err := NewEffect(tmpl.WithText(text, maxWidth), mv, x, y, d)
	if err != nil {
		return nil, err
	}
	w.PushEffect(e)
	return e, nil
}

// publishActors must be called with mu held.
func (w *World) publishActors() {
	snap := slices.Clone(w.actors)
	w.actorSnap.Store(&snap)
}

// publishEffects must be called with mu held.
func (w *World) publishEffects() {
	snap := slices.Clone(w.effects)
	w.effectSnap.Store(&snap)
}

// Update advances the world by one tick of length dt.
func (w *World) Update(dt time.Duration) {
	actors := *w.actorSnap.Load()

	w.working = w.working[:0]
	for _, a := range actors {
		if !a.Active() {
			continue
		}
		if a.Update(dt) {
			w.cb.OnMoverStateChange(a)
		}
		w.working = append(w.working, a)
		if w.border != nil {
			w.border.checkBoundaries(a)
		}
	}

	w.updateEffects(dt)
	w.collide(w.working)
}

func (w *World) updateEffects(dt time.Duration) {
	effects := *w.effectSnap.Load()
	expired := 0
	for _, e := range effects {
		e.Update(dt)
		if e.State() == EffectTimeout {
			expired++
		}
	}
	if expired > 0 {
		w.pruneEffects()
	}
}

func (w *World) pruneEffects() {
	w.mu.Lock()
	defer w.mu.Unlock()
	before := len(w.effects)
	w.effects = slices.DeleteFunc(w.effects, func(e *Effect) bool {
		return e.State() == EffectTimeout
	})
	if len(w.effects) != before {
		w.publishEffects()
		w.logger.Debug("effects pruned", "removed", before-len(w.effects), "left", len(w.effects))
	}
}

// collide tests all unordered pairs. Actors deactivated by an earlier
// callback in the same pass are skipped.
func (w *World) collide(list []*actor.Actor) {
	for i, a := range list {
		for _, b := range list[i+1:] {
			if !a.Active() {
				break
			}
			if !b.Active() {
				continue
			}
			if w.tester.Collides(a.Hitbox(), b.Hitbox()) {
				w.cb.OnCollision(a, b)
			}
		}
	}
}

// Draw renders active actors, then effects on top.
func (w *World) Draw(c look.Canvas, style *core.Style) {
	for _, a := range *w.actorSnap.Load() {
		a.Draw(c, style)
	}
	for _, e := range *w.effectSnap.Load() {
		e.Draw(c, style)
	}
}
