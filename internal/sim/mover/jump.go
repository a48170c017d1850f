package mover

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
)

// timeEps absorbs float drift when summing tick durations against a phase length.
const timeEps = 1e-9

// Jump moves a hitbox along a two-phase parabola: it rises by the ascend
// distance, decelerating to rest at the apex, then falls by the descend
// distance, accelerating from rest, over a fixed total duration. The time
// is split between the phases in proportion to their distances.
//
// States: NotMoving → Ascending → Falling → Landed. Landed persists until
// the next Start. An optional horizontal drift moves the hitbox sideways
// while airborne.
type Jump struct {
	tracker
	ascend, descend float64
	duration        time.Duration
	drift           float64 // horizontal units per second while airborne

	state     State
	elapsed   float64 // seconds since Start
	phaseT    float64 // seconds into the current phase
	phaseLen  float64 // length of the current phase in seconds
	travelled float64 // displacement already applied in the current phase
	v0        float64 // launch speed of the ascend phase
	accel     float64 // acceleration magnitude of the current phase
}

// NewJump creates a jump rising ascend units and falling descend units
// over d. Positive distances move up then down in screen coordinates.
func NewJump(ascend, descend float64, d time.Duration) (*Jump, error) {
	if d <= 0 {
		return nil, fmt.Errorf("mover: jump duration %v: %w", d, ErrInvalidDuration)
	}
	if ascend < 0 || descend < 0 || ascend+descend <= 0 || math.IsNaN(ascend+descend) {
		return nil, fmt.Errorf("mover: jump %g/%g: %w", ascend, descend, ErrInvalidDistance)
	}
	return &Jump{ascend: ascend, descend: descend, duration: d}, nil
}

// State returns the current jump phase.
func (j *Jump) State() State { return j.state }

// Duration returns the total air time.
func (j *Jump) Duration() time.Duration { return j.duration }

// SetDrift sets the horizontal speed applied while airborne.
func (j *Jump) SetDrift(vx float64) { j.drift = vx }

// Drift returns the horizontal speed applied while airborne.
func (j *Jump) Drift() float64 { return j.drift }

// Start begins a new jump from the hitbox's current position.
func (j *Jump) Start() {
	j.elapsed = 0
	if j.ascend > 0 {
		j.enterAscend()
		return
	}
	j.enterFall()
}

// Airborne reports whether a jump is in progress.
func (j *Jump) Airborne() bool {
	return j.state == Ascending || j.state == Falling
}

func (j *Jump) total() float64 {
	return j.duration.Seconds()
}

func (j *Jump) enterAscend() {
	j.state = Ascending
	j.phaseT, j.travelled = 0, 0
	j.phaseLen = j.total() * j.ascend / (j.ascend + j.descend)
	// s(t) = v0·t - a·t²/2 reaches ascend with zero speed at phaseLen.
	j.v0 = 2 * j.ascend / j.phaseLen
	j.accel = j.v0 / j.phaseLen
}

// enterFall recomputes the acceleration from the time actually left so the
// descent ends exactly at the landing point.
func (j *Jump) enterFall() {
	j.phaseT, j.travelled = 0, 0
	j.phaseLen = j.total() - j.elapsed
	if j.descend <= 0 || j.phaseLen <= timeEps {
		j.state = Landed
		return
	}
	j.state = Falling
	j.v0 = 0
	j.accel = 2 * j.descend / (j.phaseLen * j.phaseLen)
}

// Update advances the jump. A single tick may cross several phases.
func (j *Jump) Update(hb hitbox.Hitbox, dt time.Duration) bool {
	t := dt.Seconds()
	var air float64
	for t > 0 && j.Airborne() {
		left := j.advance(hb, t)
		air += t - left
		t = left
	}
	if j.drift != 0 && air > 0 {
		hb.Move(j.drift*air, 0)
	}
	return j.settle(j.state)
}

// advance consumes up to t seconds of the current phase and returns the
// time left over once the phase ends.
func (j *Jump) advance(hb hitbox.Hitbox, t float64) float64 {
	distance := j.ascend
	if j.state == Falling {
		distance = j.descend
	}

	remain := j.phaseLen - j.phaseT
	done := t >= remain-timeEps
	step := t
	if done {
		step = math.Max(remain, 0)
	}
	j.phaseT += step
	j.elapsed += step

	target := distance
	if !done {
		target = math.Min(j.v0*j.phaseT-0.5*j.accel*j.phaseT*j.phaseT, distance)
		if j.state == Falling {
			target = math.Min(0.5*j.accel*j.phaseT*j.phaseT, distance)
		}
	}
	delta := target - j.travelled
	j.travelled = target

	if j.state == Ascending {
		hb.Move(0, -delta)
	} else {
		hb.Move(0, delta)
	}

	if !done {
		return 0
	}
	if j.state == Ascending {
		j.enterFall()
	} else {
		j.state = Landed
	}
	return t - step
}
