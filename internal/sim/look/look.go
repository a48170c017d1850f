// Package look holds the visual side of actors: sprite animations and text
// messages with their own frame clocks, decoupled from geometry.
package look

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

// DefaultFrameDuration replaces a non-positive frame duration on
// multi-frame animations.
const DefaultFrameDuration = 100 * time.Millisecond

// ErrNoFrames is returned when an animation is built without frames.
var ErrNoFrames = errors.New("no frames")

var logger = log.Default().WithPrefix("look")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Canvas is the drawing sink looks render to. *core.Screen implements it.
type Canvas interface {
	DrawSprite(sp core.Sprite, x, y float64, style *core.Style)
}

// Look is the visual state of an actor or effect.
type Look interface {
	// Update advances the animation clock.
	Update(dt time.Duration)
	// Draw renders the look anchored at (x, y). Sprites anchor at their
	// top-left corner, text at its centre.
	Draw(c Canvas, x, y float64, style *core.Style)
	// Reset rewinds the animation to its first frame.
	Reset()
}

// Animated cycles through sprite frames at a fixed rate.
type Animated struct {
	frames        []core.Sprite
	frameDuration time.Duration
	loop          bool
	visible       bool
	offX, offY    float64

	frame   int
	elapsed time.Duration
}

// NewAnimated creates a looping animation. A single frame makes a static look.
func NewAnimated(frames []core.Sprite, frameDuration time.Duration) (*Animated, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("look: animation: %w", ErrNoFrames)
	}
	if len(frames) > 1 && frameDuration <= 0 {
		logger.Warn("frame duration clamped", "given", frameDuration, "used", DefaultFrameDuration)
		frameDuration = DefaultFrameDuration
	}
	return &Animated{
		frames:        append([]core.Sprite(nil), frames...),
		frameDuration: frameDuration,
		loop:          true,
		visible:       true,
	}, nil
}

// NewStatic creates a single-frame look.
func NewStatic(sp core.Sprite) *Animated {
	a, _ := NewAnimated([]core.Sprite{sp}, 0)
	return a
}

// SetLoop controls whether the animation wraps around or holds its last frame.
func (a *Animated) SetLoop(loop bool) { a.loop = loop }

// SetVisible shows or hides the look without touching its clock.
func (a *Animated) SetVisible(v bool) { a.visible = v }

// Visible reports whether Draw renders anything.
func (a *Animated) Visible() bool { return a.visible }

// SetOffset shifts drawing relative to the owner's position.
func (a *Animated) SetOffset(dx, dy float64) { a.offX, a.offY = dx, dy }

// Frame returns the current frame index.
func (a *Animated) Frame() int { return a.frame }

// FrameDuration returns the time each frame is shown.
func (a *Animated) FrameDuration() time.Duration { return a.frameDuration }

// Done reports whether a non-looping animation has reached its last frame.
func (a *Animated) Done() bool {
	return !a.loop && a.frame == len(a.frames)-1
}

// Update advances the clock, skipping as many frames as dt covers.
func (a *Animated) Update(dt time.Duration) {
	if len(a.frames) < 2 || dt <= 0 || a.Done() {
		return
	}
	a.elapsed += dt
	steps := int(a.elapsed / a.frameDuration)
	a.elapsed -= time.Duration(steps) * a.frameDuration

	if a.loop {
		a.frame = (a.frame + steps) % len(a.frames)
		return
	}
	a.frame += steps
	if a.frame >= len(a.frames)-1 {
		a.frame = len(a.frames) - 1
		a.elapsed = 0
	}
}

// Draw renders the current frame.
func (a *Animated) Draw(c Canvas, x, y float64, style *core.Style) {
	if !a.visible {
		return
	}
	c.DrawSprite(a.frames[a.frame], x+a.offX, y+a.offY, style)
}

// Reset rewinds to the first frame.
func (a *Animated) Reset() {
	a.frame = 0
	a.elapsed = 0
}
