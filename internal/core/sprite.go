package core

// Sprite is one visual frame: rows of runes drawn with a single color.
// Width is the widest row measured in runes.
type Sprite struct {
	Lines []string
	Color Color
}

// NewSprite builds a sprite from rows of text.
func NewSprite(c Color, lines ...string) Sprite {
	return Sprite{Lines: lines, Color: c}
}

// Width returns the sprite width in cells.
func (sp Sprite) Width() int {
	w := 0
	for _, line := range sp.Lines {
		if n := len([]rune(line)); n > w {
			w = n
		}
	}
	return w
}

// Height returns the sprite height in cells.
func (sp Sprite) Height() int {
	return len(sp.Lines)
}

// Style is an optional per-draw override applied on top of a sprite.
type Style struct {
	Color Color
}
