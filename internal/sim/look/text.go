package look

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

// Text is a message look. A zero-text Text acts as a template: WithText
// stamps out a filled copy that keeps the template's color and blink rate.
type Text struct {
	color core.Color
	blink time.Duration
	lines []string

	elapsed time.Duration
	hidden  bool
}

// NewText creates a text template drawn in c.
func NewText(c core.Color) *Text {
	return &Text{color: c}
}

// SetBlink toggles visibility every period. Zero disables blinking.
func (t *Text) SetBlink(period time.Duration) { t.blink = period }

// WithText returns a copy of the template holding text, word-wrapped to
// maxWidth cells. A non-positive maxWidth disables wrapping.
func (t *Text) WithText(text string, maxWidth int) *Text {
	if maxWidth > 0 {
		text = ansi.Wrap(text, maxWidth, "")
	}
	return &Text{
		color: t.color,
		blink: t.blink,
		lines: strings.Split(text, "\n"),
	}
}

// Lines returns the wrapped rows.
func (t *Text) Lines() []string { return t.lines }

// Sprite returns the text as a drawable frame.
func (t *Text) Sprite() core.Sprite {
	return core.NewSprite(t.color, t.lines...)
}

func (t *Text) Update(dt time.Duration) {
	if t.blink <= 0 || dt <= 0 {
		return
	}
	t.elapsed += dt
	for t.elapsed >= t.blink {
		t.elapsed -= t.blink
		t.hidden = !t.hidden
	}
}

// Draw renders the text centred on (x, y).
func (t *Text) Draw(c Canvas, x, y float64, style *core.Style) {
	if t.hidden || len(t.lines) == 0 {
		return
	}
	sp := t.Sprite()
	c.DrawSprite(sp, x-float64(sp.Width())/2, y-float64(sp.Height())/2, style)
}

func (t *Text) Reset() {
	t.elapsed = 0
	t.hidden = false
}
