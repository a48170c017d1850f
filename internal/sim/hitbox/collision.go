package hitbox

import "math/rand"

// Result is the outcome of a single collision test phase.
type Result int

const (
	// Unknown means no closed-form test exists for the pair of shapes.
	Unknown Result = iota
	Collision
	NoCollision
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Collision:
		return "collision"
	case NoCollision:
		return "no collision"
	default:
		return "unknown"
	}
}

// DefaultSamples is the number of random points the fallback test draws
// inside a bounds intersection. Kept minimal; thin overlaps between shapes
// without an exact test may be missed.
const DefaultSamples = 1

type exactTest func(a, b Hitbox) Result

// exactTests is the collision dispatch table keyed by (Kind(a), Kind(b)).
// A nil entry means the pair goes through the sampled fallback.
var exactTests = [kindCount][kindCount]exactTest{
	KindRect: {
		KindRect:  rectRect,
		KindPoint: shapePoint,
	},
	KindCircle: {
		KindCircle: circleCircle,
		KindPoint:  shapePoint,
	},
	KindPoint: {
		KindRect:   pointShape,
		KindCircle: pointShape,
		KindPoint:  pointShape,
	},
}

func rectRect(a, b Hitbox) Result {
	return result(a.Bounds().Overlaps(b.Bounds()))
}

func circleCircle(a, b Hitbox) Result {
	ca, cb := a.(*Circle), b.(*Circle)
	dx, dy := ca.cx-cb.cx, ca.cy-cb.cy
	sum := ca.r + cb.r
	return result(dx*dx+dy*dy <= sum*sum)
}

func pointShape(a, b Hitbox) Result {
	p := a.(*Point)
	if p.ghost || isGhost(b) {
		return NoCollision
	}
	x, y := p.Center()
	return result(b.Contains(x, y))
}

func shapePoint(a, b Hitbox) Result {
	return pointShape(b, a)
}

func isGhost(h Hitbox) bool {
	p, ok := h.(*Point)
	return ok && p.ghost
}

func result(hit bool) Result {
	if hit {
		return Collision
	}
	return NoCollision
}

// Exact runs the closed-form test for the pair, or returns Unknown when the
// dispatch table has no entry for it.
func Exact(a, b Hitbox) Result {
	ka, kb := a.Kind(), b.Kind()
	if ka < 0 || ka >= kindCount || kb < 0 || kb >= kindCount {
		return Unknown
	}
	if test := exactTests[ka][kb]; test != nil {
		return test(a, b)
	}
	return Unknown
}

// Tester runs the two-phase collision test. The fallback phase draws its
// samples from rng, so a seeded source gives reproducible results.
// A Tester is not safe for concurrent use.
type Tester struct {
	rng     *rand.Rand
	samples int
}

// NewTester creates a tester drawing samples points per fallback test.
// samples below 1 is raised to DefaultSamples.
func NewTester(rng *rand.Rand, samples int) *Tester {
	if samples < 1 {
		samples = DefaultSamples
	}
	return &Tester{rng: rng, samples: samples}
}

// Samples returns the number of points drawn per fallback test.
func (t *Tester) Samples() int {
	return t.samples
}

// Test returns Collision or NoCollision for the pair.
func (t *Tester) Test(a, b Hitbox) Result {
	if r := Exact(a, b); r != Unknown {
		return r
	}
	return t.sample(a, b)
}

// Collides reports whether a and b collide.
func (t *Tester) Collides(a, b Hitbox) bool {
	return t.Test(a, b) == Collision
}

// sample probes random points inside the intersection of the two bounds.
// An empty intersection is a definite miss.
func (t *Tester) sample(a, b Hitbox) Result {
	area, ok := a.Bounds().Intersect(b.Bounds())
	if !ok {
		return NoCollision
	}
	for i := 0; i < t.samples; i++ {
		x := area.Left + t.rng.Float64()*area.Width()
		y := area.Top + t.rng.Float64()*area.Height()
		if a.Contains(x, y) && b.Contains(x, y) {
			return Collision
		}
	}
	return NoCollision
}
