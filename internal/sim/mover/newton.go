package mover

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
)

// Newton integrates constant velocity plus constant acceleration.
// Its state is derived from exact zeroness of velocity and acceleration.
type Newton struct {
	tracker
	vx, vy float64 // units per second
	ax, ay float64 // units per second squared
}

// NewNewton creates a Newton mover with the given velocity and acceleration.
func NewNewton(vx, vy, ax, ay float64) *Newton {
	n := &Newton{vx: vx, vy: vy, ax: ax, ay: ay}
	n.reported = n.State()
	return n
}

// Velocity returns the current velocity.
func (n *Newton) Velocity() (float64, float64) { return n.vx, n.vy }

// Acceleration returns the current acceleration.
func (n *Newton) Acceleration() (float64, float64) { return n.ax, n.ay }

// Speed returns the velocity magnitude.
func (n *Newton) Speed() float64 { return math.Hypot(n.vx, n.vy) }

// SetVelocity replaces the velocity. A resulting state change is reported
// by the next Update.
func (n *Newton) SetVelocity(vx, vy float64) { n.vx, n.vy = vx, vy }

// SetAcceleration replaces the acceleration.
func (n *Newton) SetAcceleration(ax, ay float64) { n.ax, n.ay = ax, ay }

// State returns NotMoving, Moving or MovingAccelerating.
func (n *Newton) State() State {
	switch {
	case n.ax != 0 || n.ay != 0:
		return MovingAccelerating
	case n.vx != 0 || n.vy != 0:
		return Moving
	default:
		return NotMoving
	}
}

// Update applies p += v*t + a*t²/2 and v += a*t.
func (n *Newton) Update(hb hitbox.Hitbox, dt time.Duration) bool {
	n.integrate(hb, dt.Seconds())
	return n.settle(n.State())
}

func (n *Newton) integrate(hb hitbox.Hitbox, t float64) {
	if t <= 0 {
		return
	}
	dx := n.vx*t + 0.5*n.ax*t*t
	dy := n.vy*t + 0.5*n.ay*t*t
	if dx != 0 || dy != 0 {
		hb.Move(dx, dy)
	}
	n.vx += n.ax * t
	n.vy += n.ay * t
}

// NewtonFriction is a Newton mover whose velocity and acceleration decay by
// (1-friction) per second before each integration step. The decay composes
// exactly, so the result does not depend on how a second is sub-stepped.
type NewtonFriction struct {
	Newton
	friction  float64
	restSpeed float64
}

// NewNewtonFriction creates a friction mover. friction is the fraction of
// speed lost per second.
func NewNewtonFriction(vx, vy, ax, ay, friction float64) (*NewtonFriction, error) {
	if friction < 0 || friction > 1 || math.IsNaN(friction) {
		return nil, fmt.Errorf("mover: friction %g: %w", friction, ErrInvalidFriction)
	}
	n := &NewtonFriction{Newton: *NewNewton(vx, vy, ax, ay), friction: friction}
	return n, nil
}

// SetRestSpeed makes the mover stop once its speed decays below s while no
// acceleration is applied. Zero disables snapping.
func (n *NewtonFriction) SetRestSpeed(s float64) { n.restSpeed = s }

// Friction returns the per-second friction fraction.
func (n *NewtonFriction) Friction() float64 { return n.friction }

// Update decays, then integrates.
func (n *NewtonFriction) Update(hb hitbox.Hitbox, dt time.Duration) bool {
	t := dt.Seconds()
	if t > 0 {
		decay := math.Pow(1-n.friction, t)
		n.vx *= decay
		n.vy *= decay
		n.ax *= decay
		n.ay *= decay
		if n.restSpeed > 0 && n.ax == 0 && n.ay == 0 && n.Speed() < n.restSpeed {
			n.vx, n.vy = 0, 0
		}
	}
	n.integrate(hb, t)
	return n.settle(n.State())
}
