package look

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

type drawCall struct {
	sprite core.Sprite
	x, y   float64
	style  *core.Style
}

type recordingCanvas struct {
	calls []drawCall
}

func (r *recordingCanvas) DrawSprite(sp core.Sprite, x, y float64, style *core.Style) {
	r.calls = append(r.calls, drawCall{sp, x, y, style})
}

func frames(n int) []core.Sprite {
	out := make([]core.Sprite, n)
	for i := range out {
		out[i] = core.NewSprite(core.ColorWhite, string(rune('a'+i)))
	}
	return out
}

func TestNewAnimatedNoFrames(t *testing.T) {
	if _, err := NewAnimated(nil, time.Second); !errors.Is(err, ErrNoFrames) {
		t.Errorf("NewAnimated(nil) error = %v, expected %v", err, ErrNoFrames)
	}
}

func TestNewAnimatedClampsDuration(t *testing.T) {
	a, err := NewAnimated(frames(3), 0)
	if err != nil {
		t.Fatalf("NewAnimated() error = %v", err)
	}
	if a.FrameDuration() != DefaultFrameDuration {
		t.Errorf("FrameDuration() = %v, expected %v", a.FrameDuration(), DefaultFrameDuration)
	}

	static, err := NewAnimated(frames(1), 0)
	if err != nil {
		t.Fatalf("NewAnimated() single frame error = %v", err)
	}
	if static.FrameDuration() != 0 {
		t.Errorf("Single frame FrameDuration() = %v, expected 0", static.FrameDuration())
	}
}

func TestAnimatedUpdate(t *testing.T) {
	tests := []struct {
		name     string
		loop     bool
		ticks    []time.Duration
		expected int
	}{
		{"partial frame", true, []time.Duration{50 * time.Millisecond}, 0},
		{"accumulates", true, []time.Duration{60 * time.Millisecond, 60 * time.Millisecond}, 1},
		{"skips frames", true, []time.Duration{250 * time.Millisecond}, 2},
		{"wraps", true, []time.Duration{400 * time.Millisecond}, 1},
		{"holds last frame", false, []time.Duration{time.Second}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := NewAnimated(frames(3), 100*time.Millisecond)
			a.SetLoop(tc.loop)
			for _, dt := range tc.ticks {
				a.Update(dt)
			}
			if a.Frame() != tc.expected {
				t.Errorf("Frame() = %d, expected %d", a.Frame(), tc.expected)
			}
		})
	}
}

func TestAnimatedDoneAndReset(t *testing.T) {
	a, _ := NewAnimated(frames(2), 100*time.Millisecond)
	a.SetLoop(false)
	a.Update(time.Second)
	if !a.Done() {
		t.Error("Done() = false after running past the last frame")
	}
	a.Reset()
	if a.Done() || a.Frame() != 0 {
		t.Errorf("After Reset() Frame() = %d, Done() = %v", a.Frame(), a.Done())
	}
}

func TestAnimatedDraw(t *testing.T) {
	a, _ := NewAnimated(frames(2), 100*time.Millisecond)
	a.SetOffset(1, -1)
	c := &recordingCanvas{}
	style := &core.Style{Color: core.ColorRed}

	a.Draw(c, 10, 5, style)
	a.SetVisible(false)
	a.Draw(c, 10, 5, nil)

	if len(c.calls) != 1 {
		t.Fatalf("DrawSprite called %d times, expected 1", len(c.calls))
	}
	call := c.calls[0]
	if call.x != 11 || call.y != 4 || call.style != style {
		t.Errorf("DrawSprite(%g, %g, %v), expected (11, 4, %v)", call.x, call.y, call.style, style)
	}
}

func TestTextWithTextWraps(t *testing.T) {
	tmpl := NewText(core.ColorYellow)
	msg := tmpl.WithText("well done pilot", 6)

	lines := msg.Lines()
	if len(lines) < 2 {
		t.Fatalf("Lines() = %q, expected wrapping into several rows", lines)
	}
	for _, l := range lines {
		if len([]rune(l)) > 6 {
			t.Errorf("Line %q wider than 6 cells", l)
		}
	}
	if tmpl.Lines() != nil {
		t.Error("WithText() should not modify the template")
	}
}

func TestTextDrawCentred(t *testing.T) {
	msg := NewText(core.ColorGreen).WithText("+10", 0)
	c := &recordingCanvas{}
	msg.Draw(c, 20, 10, nil)

	if len(c.calls) != 1 {
		t.Fatalf("DrawSprite called %d times, expected 1", len(c.calls))
	}
	if c.calls[0].x != 18.5 || c.calls[0].y != 9.5 {
		t.Errorf("DrawSprite at (%g, %g), expected (18.5, 9.5)", c.calls[0].x, c.calls[0].y)
	}
	if c.calls[0].sprite.Color != core.ColorGreen {
		t.Errorf("Sprite color = %v, expected %v", c.calls[0].sprite.Color, core.ColorGreen)
	}
}

func TestTextBlink(t *testing.T) {
	msg := NewText(core.ColorWhite).WithText("hi", 0)
	msg.SetBlink(200 * time.Millisecond)
	c := &recordingCanvas{}

	msg.Update(250 * time.Millisecond)
	msg.Draw(c, 0, 0, nil)
	if len(c.calls) != 0 {
		t.Error("Text should be hidden after one blink period")
	}

	msg.Update(200 * time.Millisecond)
	msg.Draw(c, 0, 0, nil)
	if len(c.calls) != 1 {
		t.Error("Text should be visible after two blink periods")
	}
}
