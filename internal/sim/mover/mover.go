// Package mover implements the per-tick motion integrators that drive
// hitboxes. Each mover is a small state machine; Update moves the hitbox by
// one tick and reports whether the discrete state changed since the last
// report. All rates are per second and scaled by the tick duration.
package mover

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
)

// State is the discrete movement state a mover reports.
type State int

const (
	NotMoving State = iota
	Moving
	MovingAccelerating
	Ascending
	Falling
	Landed
)

var stateNames = [...]string{
	NotMoving:          "not moving",
	Moving:             "moving",
	MovingAccelerating: "moving accelerating",
	Ascending:          "ascending",
	Falling:            "falling",
	Landed:             "landed",
}

// String returns the state name.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Mover advances a hitbox once per tick.
// Only the owner of the hitbox calls Update.
type Mover interface {
	// Update moves hb by dt and reports a state transition.
	Update(hb hitbox.Hitbox, dt time.Duration) bool
	// State returns the current discrete state.
	State() State
}

// Construction errors.
var (
	ErrNilHost         = errors.New("nil host hitbox")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidFriction = errors.New("friction must be within [0, 1]")
	ErrInvalidDistance = errors.New("invalid jump distances")
)

// tracker remembers the last reported state so movers can report a change
// exactly once, including changes caused by Start or velocity setters.
type tracker struct {
	reported State
}

func (t *tracker) settle(s State) bool {
	changed := s != t.reported
	t.reported = s
	return changed
}

type still struct{}

func (still) Update(hitbox.Hitbox, time.Duration) bool { return false }
func (still) State() State                             { return NotMoving }

// Still is the stateless mover that never moves its hitbox.
var Still Mover = still{}

// Attached pins a hitbox's center to a host hitbox every tick.
type Attached struct {
	host hitbox.Hitbox
}

// NewAttached creates a mover following host.
func NewAttached(host hitbox.Hitbox) (*Attached, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	return &Attached{host: host}, nil
}

// Update recenters hb on the host. It never reports a state change.
func (a *Attached) Update(hb hitbox.Hitbox, _ time.Duration) bool {
	hb.SetCenter(a.host.Center())
	return false
}

// State always returns NotMoving.
func (a *Attached) State() State { return NotMoving }
