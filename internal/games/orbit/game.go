// Package orbit implements a planet-defense game on the actor simulation.
// Moons circle the planet and smash the asteroids bouncing around the
// field; an asteroid that reaches the planet costs a life.
package orbit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-orbit/internal/config"
	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/registry"
	"github.com/vovakirdan/tui-orbit/internal/sim/actor"
	"github.com/vovakirdan/tui-orbit/internal/sim/hitbox"
	"github.com/vovakirdan/tui-orbit/internal/sim/look"
	"github.com/vovakirdan/tui-orbit/internal/sim/mover"
	"github.com/vovakirdan/tui-orbit/internal/sim/world"
)

const (
	tagPlanet   = "planet"
	tagMoon     = "moon"
	tagAsteroid = "asteroid"

	// spawnAttempts bounds the search for a spawn point away from the planet.
	spawnAttempts = 8
)

var pausedStyle = &core.Style{Color: core.ColorGray}

// Game implements the Orbit game logic.
type Game struct {
	cfg    config.OrbitConfig
	rt     core.RuntimeConfig
	rng    *rand.Rand
	diff   *config.DifficultyManager
	world  *world.RectWorld
	planet *actor.Actor
	moons  []*mover.Moon
	bonus  *look.Text
	damage *look.Text

	spawnIn   time.Duration
	asteroids int
	score     int
	lives     int
	played    time.Duration
	gameOver  bool
	paused    bool
}

// New creates a new Orbit game with the default configuration.
func New() *Game {
	return &Game{cfg: config.DefaultOrbitConfig()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "orbit"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Orbit"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return "Steer your moons to shield the planet"
}

// Configure loads the YAML config and applies a difficulty preset.
func (g *Game) Configure(configPath, difficulty string) error {
	cfg, err := config.LoadOrbit(configPath)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return err
	}
	if difficulty != "" {
		config.ApplyOrbitPreset(&cfg, preset)
	}
	g.cfg = cfg
	return nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	g.bonus = look.NewText(core.ColorBrightGreen)
	g.damage = look.NewText(core.ColorBrightRed)
	g.damage.SetBlink(g.cfg.Sim.MessageDuration / 6)

	g.asteroids = 0
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.played = 0
	g.gameOver = false
	g.paused = false
	g.spawnIn = g.cfg.Asteroids.SpawnInterval / 2

	// Row 0 is the HUD, the last row is the frame.
	bounds := hitbox.NewBounds(0, 1, float64(max(rt.ScreenW, 1)), float64(max(rt.ScreenH-2, 1)))
	w, err := world.NewRect(bounds, g,
		world.WithCollisionSamples(g.cfg.Sim.CollisionSamples),
		world.WithRand(rand.New(rand.NewSource(rt.Seed+1))),
	)
	if err != nil {
		panic(err)
	}
	g.world = w

	g.planet = g.newPlanet(bounds)
	g.world.AddActor(g.planet)

	g.moons = g.moons[:0]
	for i := 0; i < g.cfg.Moons.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(g.cfg.Moons.Count)
		if moon := g.newMoon(angle); moon != nil {
			g.world.AddActor(moon)
		}
	}
}

func (g *Game) newPlanet(bounds hitbox.Bounds) *actor.Actor {
	cx, cy := bounds.Center()
	hb, _ := hitbox.NewCircle(cx, cy, g.cfg.Planet.Radius)

	sp := planetSprite(g.cfg.Planet.Radius)
	pulse, _ := look.NewAnimated([]core.Sprite{
		sp,
		{Lines: sp.Lines, Color: core.ColorCyan},
	}, 4*g.cfg.Sim.FrameDuration)

	a, _ := actor.New(hb, mover.Still, pulse)
	a.Tag = tagPlanet
	return a
}

// planetSprite fills the circle's bounding square row by row.
func planetSprite(r float64) core.Sprite {
	n := int(math.Round(2 * r))
	lines := make([]string, n)
	for y := range n {
		row := make([]rune, n)
		for x := range n {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				row[x] = '█'
			} else {
				row[x] = ' '
			}
		}
		lines[y] = string(row)
	}
	return core.NewSprite(core.ColorBlue, lines...)
}

func (g *Game) newMoon(angle float64) *actor.Actor {
	m := g.cfg.Moons
	hb, _ := hitbox.NewCircle(0, 0, m.Radius)
	mv, err := mover.NewMoon(g.planet.Hitbox(), m.Year, m.Offset, angle)
	if err != nil {
		return nil
	}
	mv.Start()
	mv.Update(hb, 0)

	phases, _ := look.NewAnimated([]core.Sprite{
		core.NewSprite(core.ColorBrightWhite, "◐"),
		core.NewSprite(core.ColorBrightWhite, "◓"),
		core.NewSprite(core.ColorBrightWhite, "◑"),
		core.NewSprite(core.ColorBrightWhite, "◒"),
	}, g.cfg.Sim.FrameDuration)
	phases.SetOffset(m.Radius-0.5, m.Radius-0.5)

	a, _ := actor.New(hb, mv, phases)
	a.SetLook(mover.NotMoving, look.NewStatic(core.NewSprite(core.ColorGray, "●")))
	a.Tag = tagMoon
	g.moons = append(g.moons, mv)
	return a
}

// Step advances the game by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.played += dt
	g.steer(in)

	g.spawnIn -= dt
	if g.spawnIn <= 0 {
		if g.asteroids < g.cfg.Asteroids.MaxAlive {
			g.spawnAsteroid()
		}
		g.spawnIn = g.diff.Interval(g.cfg.Asteroids.SpawnInterval, g.score, g.played)
	}

	g.world.Update(dt)

	return core.StepResult{State: g.State()}
}

// steer sets the orbit direction: Right is clockwise, Left counter-clockwise,
// Jump reverses. Down parks the moons for the tick.
func (g *Game) steer(in core.InputFrame) {
	dir := in.Horizontal()
	flip := in.Has(core.ActionJump) || in.Has(core.ActionUp)
	for _, m := range g.moons {
		if (dir > 0 && !m.Clockwise()) || (dir < 0 && m.Clockwise()) {
			m.Reverse()
		}
		if flip {
			m.Reverse()
		}
		if in.Has(core.ActionDown) {
			m.Stop()
		} else {
			m.Start()
		}
	}
}

func (g *Game) spawnAsteroid() {
	a := g.cfg.Asteroids
	hb, _ := hitbox.NewRect(0, 0, a.Width, a.Height)
	speed := g.diff.Speed(a.Speed, g.score, g.played)
	heading := g.rng.Float64() * 2 * math.Pi

	tumble, _ := look.NewAnimated([]core.Sprite{
		core.NewSprite(core.ColorOrange, "[]"),
		core.NewSprite(core.ColorOrange, "]["),
	}, 2*g.cfg.Sim.FrameDuration)

	rock, err := actor.New(hb, mover.NewNewton(speed*math.Cos(heading), speed*math.Sin(heading)/2, 0, 0), tumble)
	if err != nil {
		return
	}
	rock.Tag = tagAsteroid

	// Keep clear of the moons' orbit so a spawn is never an instant hit.
	px, py := g.planet.Hitbox().Center()
	safe := 2 * (g.cfg.Planet.Radius + 2*g.cfg.Moons.Radius + g.cfg.Moons.Offset)
	for i := 0; i < spawnAttempts; i++ {
		g.world.SetRandomPositionInside(rock, g.rng)
		x, y := hb.Center()
		if math.Hypot(x-px, y-py) > safe {
			break
		}
	}
	g.world.AddActor(rock)
	g.asteroids++
}

func (g *Game) destroy(a *actor.Actor) {
	a.SetActive(false)
	if g.world.RemoveActor(a) && a.Tag == tagAsteroid {
		g.asteroids--
	}
}

// OnReachedEndOfWorld bounces asteroids off the walls.
func (g *Game) OnReachedEndOfWorld(a *actor.Actor, _, _ float64, flags world.BorderFlags) {
	g.world.KeepInside(a)
	n, ok := a.Mover().(*mover.Newton)
	if !ok {
		return
	}
	vx, vy := n.Velocity()
	switch {
	case flags&world.Left != 0:
		vx = math.Abs(vx)
	case flags&world.Right != 0:
		vx = -math.Abs(vx)
	}
	switch {
	case flags&world.Top != 0:
		vy = math.Abs(vy)
	case flags&world.Bottom != 0:
		vy = -math.Abs(vy)
	}
	n.SetVelocity(vx, vy)
}

// OnLeftWorld discards anything that escaped the field.
func (g *Game) OnLeftWorld(a *actor.Actor, _ world.BorderFlags) {
	if a.Tag == tagAsteroid {
		g.destroy(a)
	}
}

func (g *Game) OnMoverStateChange(*actor.Actor) {}

// OnCollision resolves moon hits and planet impacts.
func (g *Game) OnCollision(a, b *actor.Actor) {
	if b.Tag == tagAsteroid {
		a, b = b, a
	}
	if a.Tag != tagAsteroid {
		return
	}
	x, y := a.Hitbox().Center()

	switch b.Tag {
	case tagMoon:
		g.destroy(a)
		g.score += g.cfg.Asteroids.Points
		//nolint:errcheck // Popup is cosmetic
		g.world.AddTimedMessage(g.bonus, fmt.Sprintf("+%d", g.cfg.Asteroids.Points), x, y, g.cfg.Sim.MessageDuration)
	case tagPlanet:
		g.destroy(a)
		g.lives--
		//nolint:errcheck // Popup is cosmetic
		g.world.AddTimedMessage(g.damage, "IMPACT", x, y, g.cfg.Sim.MessageDuration)
		if g.lives <= 0 {
			g.lives = 0
			g.gameOver = true
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), '─', core.ColorGray)

	var style *core.Style
	if g.paused || g.gameOver {
		style = pausedStyle
	}
	g.world.Draw(dst, style)

	dir := "↻"
	if len(g.moons) > 0 && !g.moons[0].Clockwise() {
		dir = "↺"
	}
	hud := fmt.Sprintf(" Score: %d  Lives: %d  Asteroids: %d  Orbit: %s  Time: %s ",
		g.score, g.lives, g.asteroids, dir, g.played.Truncate(time.Second))
	dst.DrawText(2, 0, hud)

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Played:   g.played,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("orbit", func() registry.Game {
		return New()
	})
}
