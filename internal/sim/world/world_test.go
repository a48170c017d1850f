package world

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/sim/actor"
	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
	"github.com/vovakirdan/tui-orbit/internal/sim/look"
	"github.com/vovakirdan/tui-orbit/internal/sim/mover"
)

type reachEvent struct {
	a     *actor.Actor
	x, y  float64
	flags BorderFlags
}

type leftEvent struct {
	a     *actor.Actor
	flags BorderFlags
}

type recorder struct {
	mu        sync.Mutex
	reached   []reachEvent
	left      []leftEvent
	changes   []*actor.Actor
	collision [][2]*actor.Actor
}

func (r *recorder) OnReachedEndOfWorld(a *actor.Actor, x, y float64, f BorderFlags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reached = append(r.reached, reachEvent{a, x, y, f})
}

func (r *recorder) OnLeftWorld(a *actor.Actor, f BorderFlags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.left = append(r.left, leftEvent{a, f})
}

func (r *recorder) OnMoverStateChange(a *actor.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, a)
}

func (r *recorder) OnCollision(a, b *actor.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collision = append(r.collision, [2]*actor.Actor{a, b})
}

func dot() look.Look {
	return look.NewStatic(core.NewSprite(core.ColorWhite, "*"))
}

func newActor(t *testing.T, hb hitbox.Hitbox, mv mover.Mover) *actor.Actor {
	t.Helper()
	a, err := actor.New(hb, mv, dot())
	if err != nil {
		t.Fatalf("actor.New() error = %v", err)
	}
	return a
}

func rectActor(t *testing.T, x, y, w, h float64, mv mover.Mover) *actor.Actor {
	t.Helper()
	r, err := hitbox.NewRect(x, y, w, h)
	if err != nil {
		t.Fatalf("NewRect() error = %v", err)
	}
	return newActor(t, r, mv)
}

func newRectWorld(t *testing.T, cb Callback) *RectWorld {
	t.Helper()
	w, err := NewRect(hitbox.NewBounds(0, 0, 100, 100), cb, WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("NewRect() error = %v", err)
	}
	return w
}

func TestConstructionErrors(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilCallback) {
		t.Errorf("New(nil) error = %v, expected %v", err, ErrNilCallback)
	}
	for _, b := range []hitbox.Bounds{hitbox.NewBounds(0, 0, 0, 10), hitbox.NewBounds(0, 0, 10, -1)} {
		if _, err := NewRect(b, NopCallback{}); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("NewRect(%v) error = %v, expected %v", b, err, ErrInvalidBounds)
		}
	}
}

func TestBorderFlagsString(t *testing.T) {
	tests := []struct {
		flags    BorderFlags
		expected string
	}{
		{0, "none"},
		{Right, "right"},
		{Left | Bottom, "left|bottom"},
	}
	for _, tc := range tests {
		if got := tc.flags.String(); got != tc.expected {
			t.Errorf("BorderFlags(%d).String() = %q, expected %q", tc.flags, got, tc.expected)
		}
	}
	if Left != 1 || Right != 2 || Top != 4 || Bottom != 8 {
		t.Error("BorderFlags values must be LEFT=1 RIGHT=2 TOP=4 BOTTOM=8")
	}
}

func TestReachRightEdge(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	a := rectActor(t, 0, 45, 10, 10, mover.NewNewton(20, 0, 0, 0))
	w.AddActor(a)

	for tick := 1; tick <= 5; tick++ {
		w.Update(time.Second)
		expected := 0
		if tick == 5 {
			expected = 1
		}
		if len(rec.reached) != expected {
			t.Fatalf("After tick %d reached events = %d, expected %d", tick, len(rec.reached), expected)
		}
	}

	ev := rec.reached[0]
	if ev.flags != Right {
		t.Errorf("flags = %v, expected %v", ev.flags, Right)
	}
	if ev.x != 100 {
		t.Errorf("x = %g, expected 100", ev.x)
	}
	if ev.y != 50 {
		t.Errorf("y = %g, expected hitbox centre 50", ev.y)
	}
	if len(rec.left) != 0 {
		t.Errorf("left events = %d, expected 0", len(rec.left))
	}
	if b := a.Hitbox().Bounds(); b.Right != 110 {
		t.Errorf("Right = %g, expected the hitbox not to be moved", b.Right)
	}
}

func TestReachFiresEveryExceedingTick(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	w.AddActor(rectActor(t, 85, 0, 10, 10, mover.NewNewton(1, -1, 0, 0)))

	for i := 0; i < 3; i++ {
		w.Update(time.Second)
	}
	if len(rec.reached) != 3 {
		t.Fatalf("reached events = %d, expected 3", len(rec.reached))
	}
	for _, ev := range rec.reached {
		if ev.flags != Top {
			t.Errorf("flags = %v, expected %v", ev.flags, Top)
		}
		if ev.y != 0 {
			t.Errorf("y = %g, expected 0", ev.y)
		}
	}
}

func TestLeaveWorld(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	a := rectActor(t, 45, 95, 10, 10, mover.NewNewton(0, 20, 0, 0))
	w.AddActor(a)

	w.Update(time.Second)
	if len(rec.left) != 1 {
		t.Fatalf("left events = %d, expected 1", len(rec.left))
	}
	if rec.left[0].flags != Bottom || rec.left[0].a != a {
		t.Errorf("OnLeftWorld(%v), expected %v", rec.left[0].flags, Bottom)
	}
	if len(rec.reached) != 0 {
		t.Errorf("reached events = %d, expected none on the tick the actor left", len(rec.reached))
	}
}

func TestTouchingEdgeFromOutsideLeaves(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		expected BorderFlags
	}{
		{"left", -10, 40, Left},
		{"right", 100, 40, Right},
		{"top", 40, -10, Top},
		{"bottom", 40, 100, Bottom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			w := newRectWorld(t, rec)
			w.AddActor(rectActor(t, tc.x, tc.y, 10, 10, mover.Still))

			w.Update(time.Second)
			if len(rec.left) != 1 || rec.left[0].flags != tc.expected {
				t.Errorf("left events = %v, expected one %v report", rec.left, tc.expected)
			}
			if len(rec.reached) != 0 {
				t.Errorf("reached events = %d, expected 0", len(rec.reached))
			}
		})
	}
}

func TestInsideActorNeverReports(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	host, _ := hitbox.NewCircle(50, 50, 5)
	moon, _ := hitbox.NewCircle(0, 0, 2)
	mv, _ := mover.NewMoon(host, 3*time.Second, 10, 0)
	mv.Start()
	w.AddActor(newActor(t, moon, mv))
	w.AddActor(newActor(t, host, mover.Still))

	for i := 0; i < 120; i++ {
		w.Update(50 * time.Millisecond)
	}
	if len(rec.reached) != 0 || len(rec.left) != 0 {
		t.Errorf("boundary events: reached=%d left=%d, expected none", len(rec.reached), len(rec.left))
	}
}

func TestKeepInside(t *testing.T) {
	w := newRectWorld(t, NopCallback{})
	tests := []struct {
		name     string
		x, y     float64
		flags    BorderFlags
		expected hitbox.Bounds
	}{
		{"inside", 10, 10, 0, hitbox.NewBounds(10, 10, 10, 10)},
		{"right", 95, 10, Right, hitbox.NewBounds(90, 10, 10, 10)},
		{"top left", -3, -4, Left | Top, hitbox.NewBounds(0, 0, 10, 10)},
		{"bottom", 20, 99, Bottom, hitbox.NewBounds(20, 90, 10, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := rectActor(t, tc.x, tc.y, 10, 10, mover.Still)
			if got := w.KeepInside(a); got != tc.flags {
				t.Errorf("KeepInside() = %v, expected %v", got, tc.flags)
			}
			if b := a.Hitbox().Bounds(); b != tc.expected {
				t.Errorf("Bounds() = %v, expected %v", b, tc.expected)
			}
			if !w.Contains(a) {
				t.Error("Contains() = false after KeepInside()")
			}
		})
	}
}

func TestSetRandomPositionInside(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 200; i++ {
		a := rectActor(t, 0, 0, 30, 8, mover.Still)
		w.SetRandomPositionInside(a, rng)
		if !w.Contains(a) {
			t.Fatalf("Bounds() = %v, expected inside the world", a.Hitbox().Bounds())
		}
	}
	if len(rec.reached) != 0 {
		t.Errorf("reached events = %d, expected 0", len(rec.reached))
	}

	wide := rectActor(t, 0, 0, 120, 10, mover.Still)
	w.SetRandomPositionInside(wide, rng)
	if cx, _ := wide.Hitbox().Center(); cx != 50 {
		t.Errorf("Center() x = %g, expected world centre 50", cx)
	}
	if len(rec.reached) != 1 || rec.reached[0].flags != Left|Right {
		t.Errorf("reached events = %v, expected one left|right report", rec.reached)
	}
}

func TestSetRandomPositionInsideNilRand(t *testing.T) {
	w := newRectWorld(t, NopCallback{})
	a := rectActor(t, 0, 0, 4, 4, mover.Still)

	w.SetRandomPositionInside(a, nil)
	if !w.Contains(a) {
		t.Errorf("Bounds() = %v, expected inside the world", a.Hitbox().Bounds())
	}
}

func TestMoverStateChangeReported(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	j, _ := mover.NewJump(10, 10, time.Second)
	a := rectActor(t, 40, 50, 5, 5, j)
	w.AddActor(a)

	j.Start()
	for i := 0; i < 12; i++ {
		w.Update(100 * time.Millisecond)
	}
	// ascending, falling, landed
	if len(rec.changes) != 3 {
		t.Errorf("state changes = %d, expected 3", len(rec.changes))
	}
}

func TestInactiveActorsAreSkipped(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	a := rectActor(t, 95, 10, 10, 10, mover.NewNewton(5, 0, 0, 0))
	b := rectActor(t, 96, 12, 4, 4, mover.Still)
	a.SetActive(false)
	w.AddActor(a)
	w.AddActor(b)

	w.Update(time.Second)
	if len(rec.reached) != 0 || len(rec.collision) != 0 {
		t.Errorf("events for inactive actor: reached=%d collisions=%d", len(rec.reached), len(rec.collision))
	}
	if x := a.Hitbox().Bounds().Left; x != 95 {
		t.Errorf("inactive actor moved to %g", x)
	}
}

func TestCollisions(t *testing.T) {
	rec := &recorder{}
	w := newRectWorld(t, rec)
	a := rectActor(t, 10, 10, 10, 10, mover.Still)
	b := rectActor(t, 15, 15, 10, 10, mover.Still)
	c := rectActor(t, 60, 60, 10, 10, mover.Still)
	for _, x := range []*actor.Actor{a, b, c} {
		w.AddActor(x)
	}

	w.Update(10 * time.Millisecond)
	if len(rec.collision) != 1 {
		t.Fatalf("collisions = %d, expected 1", len(rec.collision))
	}
	if pair := rec.collision[0]; pair[0] != a || pair[1] != b {
		t.Errorf("OnCollision(%d, %d), expected (%d, %d)", pair[0].ID(), pair[1].ID(), a.ID(), b.ID())
	}
}

type deactivating struct {
	NopCallback
	hits int
}

func (d *deactivating) OnCollision(a, b *actor.Actor) {
	d.hits++
	b.SetActive(false)
}

func TestCollisionSkipsActorsDeactivatedInPass(t *testing.T) {
	cb := &deactivating{}
	w := newRectWorld(t, cb)
	player := rectActor(t, 10, 10, 10, 10, mover.Still)
	star := rectActor(t, 12, 12, 2, 2, mover.Still)
	other := rectActor(t, 11, 11, 4, 4, mover.Still)
	w.AddActor(star)
	w.AddActor(player)
	w.AddActor(other)

	w.Update(10 * time.Millisecond)
	// star hits player and other; player is deactivated before meeting other.
	if cb.hits != 2 {
		t.Errorf("collisions = %d, expected 2", cb.hits)
	}
}

func TestRemoveActor(t *testing.T) {
	w := newRectWorld(t, NopCallback{})
	a := rectActor(t, 0, 0, 1, 1, mover.Still)
	b := rectActor(t, 5, 5, 1, 1, mover.Still)
	w.AddActor(a)
	w.AddActor(b)

	before := w.Actors()
	if !w.RemoveActor(a) {
		t.Fatal("RemoveActor() = false, expected true")
	}
	if w.RemoveActor(a) {
		t.Error("RemoveActor() twice = true, expected false")
	}
	if len(w.Actors()) != 1 || w.Actors()[0] != b {
		t.Errorf("Actors() = %d actors, expected only b", len(w.Actors()))
	}
	if len(before) != 2 || before[0] != a {
		t.Error("earlier snapshot changed after RemoveActor()")
	}
}

type removingCallback struct {
	NopCallback
	w       *World
	victim  *actor.Actor
	removed bool
}

func (r *removingCallback) OnMoverStateChange(*actor.Actor) {
	if !r.removed {
		r.removed = r.w.RemoveActor(r.victim)
	}
}

func TestRemovalDuringTickKeepsSnapshot(t *testing.T) {
	cb := &removingCallback{}
	w, _ := New(cb)
	cb.w = w

	first := newActor(t, hitbox.NewPoint(0, 0), mover.NewNewton(0, 0, 0, 0))
	first.Mover().(*mover.Newton).SetVelocity(1, 0)
	victim := newActor(t, hitbox.NewPoint(0, 0), mover.NewNewton(3, 0, 0, 0))
	cb.victim = victim
	w.AddActor(first)
	w.AddActor(victim)

	w.Update(time.Second)
	if !cb.removed {
		t.Fatal("victim was not removed")
	}
	if x, _ := victim.Hitbox().Center(); x != 3 {
		t.Errorf("victim x = %g, expected the in-flight tick to still update it", x)
	}
	if len(w.Actors()) != 1 {
		t.Errorf("Actors() = %d, expected 1 after the removal", len(w.Actors()))
	}

	w.Update(time.Second)
	if x, _ := victim.Hitbox().Center(); x != 3 {
		t.Errorf("victim x = %g, expected no update after removal", x)
	}
}

func TestConcurrentMutation(t *testing.T) {
	w := newRectWorld(t, NopCallback{})
	spawned := make([]*actor.Actor, 200)
	for i := range spawned {
		spawned[i] = rectActor(t, 10, 10, 2, 2, mover.NewNewton(1, 0, 0, 0))
	}
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, a := range spawned {
			w.AddActor(a)
			w.RemoveActor(a)
		}
	}()

	for i := 0; i < 200; i++ {
		w.Update(time.Millisecond)
	}
	wg.Wait()

	if len(w.Actors()) != 0 {
		t.Errorf("Actors() = %d, expected 0", len(w.Actors()))
	}
}

func TestEffectExpiry(t *testing.T) {
	w := newRectWorld(t, NopCallback{})
	tmpl := look.NewText(core.ColorYellow)
	short, err := w.AddTimedMessage(tmpl, "+1", 10, 10, 250*time.Millisecond)
	if err != nil {
		t.Fatalf("AddTimedMessage() error = %v", err)
	}
	long, _ := w.AddTimedMessage(tmpl, "+2", 10, 20, time.Second)

	w.Update(200 * time.Millisecond)
	if len(w.Effects()) != 2 {
		t.Fatalf("Effects() = %d, expected 2", len(w.Effects()))
	}
	w.Update(100 * time.Millisecond)
	if short.State() != EffectTimeout {
		t.Errorf("State() = %v, expected %v", short.State(), EffectTimeout)
	}
	if effects := w.Effects(); len(effects) != 1 || effects[0] != long {
		t.Errorf("Effects() = %d, expected only the long message", len(effects))
	}

	long.Expire()
	w.Update(time.Millisecond)
	if len(w.Effects()) != 0 {
		t.Errorf("Effects() = %d after Expire(), expected 0", len(w.Effects()))
	}
}

func TestAttachTimedMessageFollowsHost(t *testing.T) {
	w := newRectWorld(t, NopCallback{})
	host := rectActor(t, 10, 10, 4, 4, mover.NewNewton(10, 0, 0, 0))
	w.AddActor(host)

	e, err := w.AttachTimedMessage(look.NewText(core.ColorGreen), "nice catch", 5, host, time.Second)
	if err != nil {
		t.Fatalf("AttachTimedMessage() error = %v", err)
	}
	w.Update(500 * time.Millisecond)

	if x, y := e.Position(); x != 17 || y != 12 {
		t.Errorf("Position() = (%g, %g), expected (17, 12)", x, y)
	}
	if _, err := w.AttachTimedMessage(look.NewText(core.ColorGreen), "x", 0, nil, time.Second); !errors.Is(err, mover.ErrNilHost) {
		t.Errorf("AttachTimedMessage(nil host) error = %v, expected %v", err, mover.ErrNilHost)
	}
}

func TestNewEffectErrors(t *testing.T) {
	tests := []struct {
		name     string
		l        look.Look
		mv       mover.Mover
		d        time.Duration
		expected error
	}{
		{"nil look", nil, mover.Still, time.Second, ErrNilLook},
		{"nil mover", dot(), nil, time.Second, ErrNilMover},
		{"zero duration", dot(), mover.Still, 0, ErrInvalidDuration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewEffect(tc.l, tc.mv, 0, 0, tc.d); !errors.Is(err, tc.expected) {
				t.Errorf("NewEffect() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	w := newRectWorld(t, NopCallback{})
	a := rectActor(t, 2, 3, 1, 1, mover.Still)
	hidden := rectActor(t, 5, 5, 1, 1, mover.Still)
	hidden.SetActive(false)
	w.AddActor(a)
	w.AddActor(hidden)
	w.AddTimedMessage(look.NewText(core.ColorYellow), "hi", 10, 1, time.Second)

	screen := core.NewScreen(20, 10)
	w.Draw(screen, nil)

	if screen.Get(2, 3) != '*' {
		t.Errorf("Get(2, 3) = %q, expected '*'", screen.Get(2, 3))
	}
	if screen.Get(5, 5) != ' ' {
		t.Errorf("Get(5, 5) = %q, expected inactive actor not drawn", screen.Get(5, 5))
	}
	if screen.Get(9, 1) != 'h' || screen.Get(10, 1) != 'i' {
		t.Errorf("Row(1) = %q, expected centred message", screen.Row(1))
	}
}
