package hitbox

import (
	"errors"
	"fmt"
	"math"
)

// Kind identifies the concrete shape of a hitbox. It is the key of the
// collision dispatch table.
type Kind int

const (
	KindRect Kind = iota
	KindCircle
	KindPoint

	kindCount
)

// String returns the shape name.
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// ErrInvalidSize is returned when a shape is created with a negative or
// non-finite dimension.
var ErrInvalidSize = errors.New("invalid size")

// Hitbox is a collision shape with a cached bounding rectangle.
// All setters reposition the whole shape and refresh the bounds.
type Hitbox interface {
	Kind() Kind
	Bounds() Bounds
	Contains(x, y float64) bool
	Center() (float64, float64)
	// BoundRadius is the radius of the smallest circle centred on the shape
	// that encloses it. A circle reports its own radius.
	BoundRadius() float64

	Move(dx, dy float64)
	SetCenter(x, y float64)
	SetLeft(x float64)
	SetTop(y float64)
	SetRight(x float64)
	SetBottom(y float64)
}

// shape holds the cached bounds shared by every concrete hitbox.
type shape struct {
	bounds Bounds
}

func (s *shape) Bounds() Bounds {
	return s.bounds
}

func (s *shape) BoundRadius() float64 {
	return s.bounds.Radius()
}

func (s *shape) Center() (float64, float64) {
	return s.bounds.Center()
}

// Rect is an axis-aligned rectangle hitbox.
type Rect struct {
	shape
}

// NewRect creates a rectangle with its top-left corner at (x, y).
func NewRect(x, y, w, h float64) (*Rect, error) {
	if !validSize(w) || !validSize(h) {
		return nil, fmt.Errorf("hitbox: rect %gx%g: %w", w, h, ErrInvalidSize)
	}
	return &Rect{shape{NewBounds(x, y, w, h)}}, nil
}

func (r *Rect) Kind() Kind { return KindRect }

func (r *Rect) Contains(x, y float64) bool {
	return r.bounds.Contains(x, y)
}

func (r *Rect) Move(dx, dy float64) {
	r.bounds.Left += dx
	r.bounds.Right += dx
	r.bounds.Top += dy
	r.bounds.Bottom += dy
}

func (r *Rect) SetCenter(x, y float64) {
	cx, cy := r.bounds.Center()
	r.Move(x-cx, y-cy)
}

func (r *Rect) SetLeft(x float64)   { r.Move(x-r.bounds.Left, 0) }
func (r *Rect) SetTop(y float64)    { r.Move(0, y-r.bounds.Top) }
func (r *Rect) SetRight(x float64)  { r.Move(x-r.bounds.Right, 0) }
func (r *Rect) SetBottom(y float64) { r.Move(0, y-r.bounds.Bottom) }

// Resize changes the rectangle size keeping its center in place.
func (r *Rect) Resize(w, h float64) error {
	if !validSize(w) || !validSize(h) {
		return fmt.Errorf("hitbox: resize %gx%g: %w", w, h, ErrInvalidSize)
	}
	cx, cy := r.bounds.Center()
	r.bounds = NewBounds(cx-w/2, cy-h/2, w, h)
	return nil
}

// Circle is a circular hitbox.
type Circle struct {
	shape
	cx, cy, r float64
}

// NewCircle creates a circle centered at (cx, cy).
func NewCircle(cx, cy, r float64) (*Circle, error) {
	if !validSize(r) {
		return nil, fmt.Errorf("hitbox: circle radius %g: %w", r, ErrInvalidSize)
	}
	c := &Circle{cx: cx, cy: cy, r: r}
	c.refresh()
	return c, nil
}

func (c *Circle) refresh() {
	c.bounds = Bounds{Left: c.cx - c.r, Top: c.cy - c.r, Right: c.cx + c.r, Bottom: c.cy + c.r}
}

func (c *Circle) Kind() Kind { return KindCircle }

// Radius returns the circle radius.
func (c *Circle) Radius() float64 { return c.r }

func (c *Circle) Center() (float64, float64) { return c.cx, c.cy }

// BoundRadius of a circle is its own radius, not the half-diagonal
// of its bounding square.
func (c *Circle) BoundRadius() float64 { return c.r }

func (c *Circle) Contains(x, y float64) bool {
	dx, dy := x-c.cx, y-c.cy
	return dx*dx+dy*dy <= c.r*c.r
}

func (c *Circle) Move(dx, dy float64) {
	c.cx += dx
	c.cy += dy
	c.refresh()
}

func (c *Circle) SetCenter(x, y float64) {
	c.cx, c.cy = x, y
	c.refresh()
}

func (c *Circle) SetLeft(x float64)   { c.SetCenter(x+c.r, c.cy) }
func (c *Circle) SetTop(y float64)    { c.SetCenter(c.cx, y+c.r) }
func (c *Circle) SetRight(x float64)  { c.SetCenter(x-c.r, c.cy) }
func (c *Circle) SetBottom(y float64) { c.SetCenter(c.cx, y-c.r) }

// SetRadius changes the radius keeping the center in place.
func (c *Circle) SetRadius(r float64) error {
	if !validSize(r) {
		return fmt.Errorf("hitbox: circle radius %g: %w", r, ErrInvalidSize)
	}
	c.r = r
	c.refresh()
	return nil
}

// Point is a degenerate hitbox. A ghost point carries a position but never
// collides with anything.
type Point struct {
	shape
	ghost bool
}

// NewPoint creates a colliding point at (x, y).
func NewPoint(x, y float64) *Point {
	return &Point{shape: shape{Bounds{x, y, x, y}}}
}

// NewGhost creates a point that takes part in movement but not in collisions.
func NewGhost(x, y float64) *Point {
	p := NewPoint(x, y)
	p.ghost = true
	return p
}

func (p *Point) Kind() Kind { return KindPoint }

// Ghost reports whether the point is excluded from collision tests.
func (p *Point) Ghost() bool { return p.ghost }

func (p *Point) Contains(x, y float64) bool {
	return x == p.bounds.Left && y == p.bounds.Top
}

func (p *Point) Move(dx, dy float64) {
	p.SetCenter(p.bounds.Left+dx, p.bounds.Top+dy)
}

func (p *Point) SetCenter(x, y float64) {
	p.bounds = Bounds{x, y, x, y}
}

func (p *Point) SetLeft(x float64)   { p.SetCenter(x, p.bounds.Top) }
func (p *Point) SetTop(y float64)    { p.SetCenter(p.bounds.Left, y) }
func (p *Point) SetRight(x float64)  { p.SetLeft(x) }
func (p *Point) SetBottom(y float64) { p.SetTop(y) }

// validSize rejects negative, NaN and infinite dimensions.
func validSize(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
