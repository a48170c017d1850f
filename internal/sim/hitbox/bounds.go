// Package hitbox provides the collision shapes used by the simulation and
// the two-phase collision test between them.
//
// Every shape caches an axis-aligned bounding rectangle that is kept in sync
// on each mutation. Collision testing first looks up an exact closed-form
// predicate for the pair of shape kinds; pairs without one fall back to
// sampling random points inside the intersection of the two bounds.
package hitbox

import "math"

// Bounds is an axis-aligned rectangle in world coordinates (y grows down).
type Bounds struct {
	Left, Top, Right, Bottom float64
}

// NewBounds creates bounds from a top-left corner and a size.
func NewBounds(x, y, w, h float64) Bounds {
	return Bounds{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns Right - Left.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns Bottom - Top.
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Center returns the center point.
func (b Bounds) Center() (float64, float64) {
	return (b.Left + b.Right) / 2, (b.Top + b.Bottom) / 2
}

// Empty reports whether the bounds enclose no area.
func (b Bounds) Empty() bool {
	return b.Left >= b.Right || b.Top >= b.Bottom
}

// Contains reports whether (x, y) lies inside or on the edge of b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}

// Overlaps reports strict AABB overlap. Touching edges do not overlap.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Top < o.Bottom && o.Top < b.Bottom
}

// Intersect returns the overlapping region of b and o. The second result is
// false when the two do not overlap.
func (b Bounds) Intersect(o Bounds) (Bounds, bool) {
	r := Bounds{
		Left:   math.Max(b.Left, o.Left),
		Top:    math.Max(b.Top, o.Top),
		Right:  math.Min(b.Right, o.Right),
		Bottom: math.Min(b.Bottom, o.Bottom),
	}
	if r.Empty() {
		return Bounds{}, false
	}
	return r, true
}

// Radius returns the radius of the smallest circle enclosing b.
func (b Bounds) Radius() float64 {
	return math.Hypot(b.Width(), b.Height()) / 2
}
