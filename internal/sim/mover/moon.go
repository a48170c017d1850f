package mover

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
)

// Moon keeps a hitbox on a circular orbit around a host hitbox's center.
// The orbit radius is recomputed every tick from both bodies' bound radii
// plus a fixed offset, so resizing either body moves the orbit with it.
type Moon struct {
	tracker
	host    hitbox.Hitbox
	year    time.Duration
	offset  float64
	angle   float64 // radians, y grows down so positive is clockwise on screen
	dir     float64
	running bool
}

// NewMoon creates a moon orbiting host once per year, starting at angle.
// The moon starts stopped.
func NewMoon(host hitbox.Hitbox, year time.Duration, offset, angle float64) (*Moon, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if year <= 0 {
		return nil, fmt.Errorf("mover: moon year %v: %w", year, ErrInvalidDuration)
	}
	return &Moon{host: host, year: year, offset: offset, angle: angle, dir: 1}, nil
}

// Start sets the moon in motion.
func (m *Moon) Start() { m.running = true }

// Stop halts the orbit; the moon still follows its host.
func (m *Moon) Stop() { m.running = false }

// Reverse flips the orbit direction.
func (m *Moon) Reverse() { m.dir = -m.dir }

// Clockwise reports the on-screen orbit direction.
func (m *Moon) Clockwise() bool { return m.dir > 0 }

// Angle returns the current orbit angle in radians within [0, 2π).
func (m *Moon) Angle() float64 { return m.angle }

// AngularSpeed returns the orbit speed in radians per second.
func (m *Moon) AngularSpeed() float64 {
	return 2 * math.Pi / m.year.Seconds()
}

// State returns Moving while the orbit runs.
func (m *Moon) State() State {
	if m.running {
		return Moving
	}
	return NotMoving
}

// Update advances the angle and places hb on the orbit.
func (m *Moon) Update(hb hitbox.Hitbox, dt time.Duration) bool {
	if m.running && dt > 0 {
		m.angle = math.Mod(m.angle+m.dir*m.AngularSpeed()*dt.Seconds(), 2*math.Pi)
		if m.angle < 0 {
			m.angle += 2 * math.Pi
		}
	}

	r := m.host.BoundRadius() + hb.BoundRadius() + m.offset
	cx, cy := m.host.Center()
	hb.SetCenter(cx+r*math.Cos(m.angle), cy+r*math.Sin(m.angle))
	return m.settle(m.State())
}
