package world

import (
	"strings"

	"github.com/vovakirdan/tui-orbit/internal/sim/actor"
)

// BorderFlags marks the world edges involved in a boundary event.
type BorderFlags uint8

const (
	Left BorderFlags = 1 << iota
	Right
	Top
	Bottom
)

// Has reports whether all bits of o are set.
func (f BorderFlags) Has(o BorderFlags) bool { return f&o == o && o != 0 }

// String returns the set edges joined by "|", or "none".
func (f BorderFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		flag BorderFlags
		name string
	}{{Left, "left"}, {Right, "right"}, {Top, "top"}, {Bottom, "bottom"}} {
		if f&e.flag != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// Callback receives world events. It is called synchronously from Update on
// the ticking goroutine and may add or remove actors.
type Callback interface {
	// OnReachedEndOfWorld fires when an actor's bounds cross a world edge.
	// x and y carry the clamped edge coordinate on the crossed axis and the
	// hitbox centre on the other.
	OnReachedEndOfWorld(a *actor.Actor, x, y float64, flags BorderFlags)
	// OnLeftWorld fires when an actor's bounds lie entirely outside the world.
	OnLeftWorld(a *actor.Actor, flags BorderFlags)
	// OnMoverStateChange fires after an actor's mover changed state.
	OnMoverStateChange(a *actor.Actor)
	// OnCollision fires once per colliding pair per tick.
	OnCollision(a, b *actor.Actor)
}

// NopCallback ignores every event. Embed it to implement a subset.
type NopCallback struct{}

func (NopCallback) OnReachedEndOfWorld(*actor.Actor, float64, float64, BorderFlags) {}
func (NopCallback) OnLeftWorld(*actor.Actor, BorderFlags)                          {}
func (NopCallback) OnMoverStateChange(*actor.Actor)                                {}
func (NopCallback) OnCollision(_, _ *actor.Actor)                                  {}
