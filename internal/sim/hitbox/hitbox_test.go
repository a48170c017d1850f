package hitbox

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func mustRect(t *testing.T, x, y, w, h float64) *Rect {
	t.Helper()
	r, err := NewRect(x, y, w, h)
	if err != nil {
		t.Fatalf("NewRect() failed: %v", err)
	}
	return r
}

func mustCircle(t *testing.T, cx, cy, r float64) *Circle {
	t.Helper()
	c, err := NewCircle(cx, cy, r)
	if err != nil {
		t.Fatalf("NewCircle() failed: %v", err)
	}
	return c
}

func boundsEqual(a, b Bounds) bool {
	return math.Abs(a.Left-b.Left) < eps && math.Abs(a.Top-b.Top) < eps &&
		math.Abs(a.Right-b.Right) < eps && math.Abs(a.Bottom-b.Bottom) < eps
}

func TestInvalidSizes(t *testing.T) {
	if _, err := NewRect(0, 0, -1, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewRect(w=-1) error = %v, expected ErrInvalidSize", err)
	}
	if _, err := NewCircle(0, 0, math.NaN()); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewCircle(NaN) error = %v, expected ErrInvalidSize", err)
	}
	c := mustCircle(t, 0, 0, 1)
	if err := c.SetRadius(-2); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("SetRadius(-2) error = %v, expected ErrInvalidSize", err)
	}
}

func TestBoundsFollowMutations(t *testing.T) {
	tests := []struct {
		name     string
		hb       Hitbox
		mutate   func(h Hitbox)
		expected Bounds
	}{
		{"rect move", mustRect(t, 0, 0, 10, 4), func(h Hitbox) { h.Move(3, -2) }, Bounds{3, -2, 13, 2}},
		{"rect center", mustRect(t, 0, 0, 10, 4), func(h Hitbox) { h.SetCenter(50, 50) }, Bounds{45, 48, 55, 52}},
		{"rect right", mustRect(t, 0, 0, 10, 4), func(h Hitbox) { h.SetRight(100) }, Bounds{90, 0, 100, 4}},
		{"rect bottom", mustRect(t, 0, 0, 10, 4), func(h Hitbox) { h.SetBottom(20) }, Bounds{0, 16, 10, 20}},
		{"rect resize", mustRect(t, 0, 0, 10, 4), func(h Hitbox) { _ = h.(*Rect).Resize(2, 2) }, Bounds{4, 1, 6, 3}},
		{"circle move", mustCircle(t, 5, 5, 2), func(h Hitbox) { h.Move(1, 1) }, Bounds{4, 4, 8, 8}},
		{"circle left", mustCircle(t, 5, 5, 2), func(h Hitbox) { h.SetLeft(0) }, Bounds{0, 3, 4, 7}},
		{"circle top", mustCircle(t, 5, 5, 2), func(h Hitbox) { h.SetTop(10) }, Bounds{3, 10, 7, 14}},
		{"circle radius", mustCircle(t, 5, 5, 2), func(h Hitbox) { _ = h.(*Circle).SetRadius(5) }, Bounds{0, 0, 10, 10}},
		{"point move", NewPoint(1, 1), func(h Hitbox) { h.Move(2, 3) }, Bounds{3, 4, 3, 4}},
		{"point right", NewGhost(1, 1), func(h Hitbox) { h.SetRight(7) }, Bounds{7, 1, 7, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mutate(tc.hb)
			if got := tc.hb.Bounds(); !boundsEqual(got, tc.expected) {
				t.Errorf("Bounds() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := mustRect(t, 0, 0, 10, 10)
	c := mustCircle(t, 0, 0, 5)
	p := NewPoint(2, 2)

	tests := []struct {
		name     string
		hb       Hitbox
		x, y     float64
		expected bool
	}{
		{"rect inside", r, 5, 5, true},
		{"rect edge", r, 10, 10, true},
		{"rect outside", r, 10.1, 5, false},
		{"circle inside", c, 3, 3, true},
		{"circle on radius", c, 5, 0, true},
		{"circle corner of bounds", c, 4.9, 4.9, false},
		{"point same", p, 2, 2, true},
		{"point other", p, 2, 2.01, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.hb.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%g, %g) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestBoundRadius(t *testing.T) {
	if got := mustRect(t, 0, 0, 6, 8).BoundRadius(); math.Abs(got-5) > eps {
		t.Errorf("Rect BoundRadius() = %g, expected 5", got)
	}
	c := mustCircle(t, 0, 0, 3)
	if got := c.BoundRadius(); got != 3 {
		t.Errorf("Circle BoundRadius() = %g, expected 3", got)
	}
	// The bounding square's corner lies outside the circle.
	if c.Contains(2.5, 2.5) {
		t.Error("Circle Contains(2.5, 2.5) = true, expected the corner to be outside")
	}
	if got := NewPoint(4, 4).BoundRadius(); got != 0 {
		t.Errorf("Point BoundRadius() = %g, expected 0", got)
	}
}

func TestBoundsIntersect(t *testing.T) {
	a := NewBounds(0, 0, 10, 10)

	got, ok := a.Intersect(NewBounds(5, 5, 10, 10))
	if !ok || !boundsEqual(got, Bounds{5, 5, 10, 10}) {
		t.Errorf("Intersect() = %+v, %v, expected {5 5 10 10}, true", got, ok)
	}

	if _, ok := a.Intersect(NewBounds(10, 0, 5, 5)); ok {
		t.Error("Intersect() of touching bounds should be empty")
	}
	if _, ok := a.Intersect(NewBounds(20, 20, 5, 5)); ok {
		t.Error("Intersect() of disjoint bounds should be empty")
	}
}
