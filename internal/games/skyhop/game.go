// Package skyhop implements a star-catching platform game on the actor
// simulation. The player runs along the ground and jumps to catch falling
// stars; every star that falls out of the world costs a life.
package skyhop

import (
	"fmt"
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
	tagPlayer = "player"
	tagStar   = "star"

	// landPause is how long the landing pose holds before the player can run.
	landPause  = 150 * time.Millisecond
	groundChar = '═'
	popupWidth = 12
)

var pausedStyle = &core.Style{Color: core.ColorGray}

// Game implements the Skyhop game logic.
type Game struct {
	cfg    config.SkyhopConfig
	rt     core.RuntimeConfig
	rng    *rand.Rand
	diff   *config.DifficultyManager
	world  *world.RectWorld
	player *actor.Actor
	walk   *mover.NewtonFriction
	jump   *mover.Jump
	popup  *look.Text
	dust   []core.Sprite

	spawnIn   time.Duration
	landedFor time.Duration
	score     int
	lives     int
	caught    int
	played    time.Duration
	gameOver  bool
	paused    bool
}

// New creates a new Skyhop game with the default configuration.
func New() *Game {
	return &Game{cfg: config.DefaultSkyhopConfig()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "skyhop"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Skyhop"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return "Jump and catch the falling stars"
}

// Configure loads the YAML config and applies a difficulty preset.
func (g *Game) Configure(configPath, difficulty string) error {
	cfg, err := config.LoadSkyhop(configPath)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return err
	}
	if difficulty != "" {
		config.ApplySkyhopPreset(&cfg, preset)
	}
	g.cfg = cfg
	return nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	g.popup = look.NewText(core.ColorBrightYellow)
	g.dust = []core.Sprite{
		core.NewSprite(core.ColorGray, "..."),
		core.NewSprite(core.ColorGray, ". ."),
	}

	g.score = 0
	g.caught = 0
	g.lives = g.cfg.Gameplay.Lives
	g.played = 0
	g.gameOver = false
	g.paused = false
	g.landedFor = 0
	g.spawnIn = g.cfg.Stars.SpawnInterval

	// Row 0 is the HUD, the last row is the ground.
	bounds := hitbox.NewBounds(0, 1, float64(max(rt.ScreenW, 1)), float64(max(rt.ScreenH-2, 1)))
	w, err := world.NewRect(bounds, g,
		world.WithCollisionSamples(g.cfg.Sim.CollisionSamples),
		world.WithRand(rand.New(rand.NewSource(rt.Seed+1))),
	)
	if err != nil {
		// Bounds are clamped above and g is non-nil.
		panic(err)
	}
	g.world = w
	g.player = g.newPlayer(bounds)
	g.world.AddActor(g.player)
}

func (g *Game) newPlayer(bounds hitbox.Bounds) *actor.Actor {
	p := g.cfg.Player
	cx, _ := bounds.Center()
	hb, _ := hitbox.NewRect(cx-p.Width/2, bounds.Bottom-p.Height, p.Width, p.Height)

	g.walk, _ = mover.NewNewtonFriction(0, 0, 0, 0, p.Friction)
	g.walk.SetRestSpeed(p.RestSpeed)
	g.jump, _ = mover.NewJump(p.JumpHeight, p.JumpHeight, p.JumpDuration)

	fd := g.cfg.Sim.FrameDuration
	a, _ := actor.New(hb, g.walk, look.NewStatic(core.NewSprite(core.ColorBrightCyan, " o ", "/|\\")))
	running, _ := look.NewAnimated([]core.Sprite{
		core.NewSprite(core.ColorBrightCyan, " o ", "/|\\"),
		core.NewSprite(core.ColorBrightCyan, " o ", "|/|"),
	}, fd)
	a.SetLook(mover.Moving, running)
	a.SetLook(mover.Ascending, look.NewStatic(core.NewSprite(core.ColorBrightWhite, "\\o/", " | ")))
	a.SetLook(mover.Falling, look.NewStatic(core.NewSprite(core.ColorBrightWhite, " o ", "/ \\")))
	a.SetLook(mover.Landed, look.NewStatic(core.NewSprite(core.ColorCyan, "_o_", "/ \\")))
	a.Tag = tagPlayer
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
	g.steer(in, dt)

	g.spawnIn -= dt
	if g.spawnIn <= 0 {
		g.spawnStar()
		g.spawnIn = g.diff.Interval(g.cfg.Stars.SpawnInterval, g.score, g.played)
	}

	g.world.Update(dt)

	return core.StepResult{State: g.State()}
}

// steer applies input to the player's movers before the world moves it.
// The player's own Update is the only thing that moves its hitbox.
func (g *Game) steer(in core.InputFrame, dt time.Duration) {
	dir := in.Horizontal()
	speed := float64(dir) * g.cfg.Player.Speed

	switch g.player.Mover() {
	case g.walk:
		if dir != 0 {
			_, vy := g.walk.Velocity()
			g.walk.SetVelocity(speed, vy)
		}
		if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
			vx, _ := g.walk.Velocity()
			g.jump.SetDrift(vx)
			g.jump.Start()
			g.player.SetMover(g.jump)
		}
	case g.jump:
		if g.jump.Airborne() {
			if dir != 0 {
				g.jump.SetDrift(speed)
			}
			return
		}
		g.landedFor += dt
		if dir != 0 || in.Has(core.ActionJump) || g.landedFor >= landPause {
			g.walk.SetVelocity(speed, 0)
			g.player.SetMover(g.walk)
		}
	}
}

func (g *Game) spawnStar() {
	hb, _ := hitbox.NewRect(0, 0, 1, 1)
	speed := g.diff.Speed(g.cfg.Stars.FallSpeed, g.score, g.played)
	twinkle, _ := look.NewAnimated([]core.Sprite{
		core.NewSprite(core.ColorBrightYellow, "*"),
		core.NewSprite(core.ColorYellow, "+"),
	}, g.cfg.Sim.FrameDuration*2)

	star, err := actor.New(hb, mover.NewNewton(0, speed, 0, g.cfg.Stars.Gravity), twinkle)
	if err != nil {
		return
	}
	star.Tag = tagStar
	g.world.SetRandomPositionInside(star, g.rng)
	hb.SetTop(g.world.Bounds().Top)
	g.world.AddActor(star)
}

// despawn takes an actor out of the current tick and the world.
func (g *Game) despawn(a *actor.Actor) {
	a.SetActive(false)
	g.world.RemoveActor(a)
}

// OnReachedEndOfWorld keeps the player on screen.
func (g *Game) OnReachedEndOfWorld(a *actor.Actor, _, _ float64, flags world.BorderFlags) {
	if a != g.player {
		return
	}
	g.world.KeepInside(a)
	if flags&(world.Left|world.Right) != 0 {
		g.walk.SetVelocity(0, 0)
		g.jump.SetDrift(0)
	}
}

// OnLeftWorld drops missed stars and charges a life.
func (g *Game) OnLeftWorld(a *actor.Actor, flags world.BorderFlags) {
	if a.Tag != tagStar {
		g.world.KeepInside(a)
		return
	}
	g.despawn(a)
	if flags&world.Bottom == 0 {
		return
	}
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
	}
}

// OnMoverStateChange settles the player on the ground after a jump.
func (g *Game) OnMoverStateChange(a *actor.Actor) {
	if a != g.player || a.Mover() != g.jump || g.jump.State() != mover.Landed {
		return
	}
	a.Hitbox().SetBottom(g.world.Bounds().Bottom)
	g.landedFor = 0

	if dust, err := look.NewAnimated(g.dust, g.cfg.Sim.FrameDuration); err == nil {
		dust.SetLoop(false)
		x, _ := a.Hitbox().Center()
		if e, err := world.NewEffect(dust, mover.Still, x-1, g.world.Bounds().Bottom-1, 2*g.cfg.Sim.FrameDuration); err == nil {
			g.world.PushEffect(e)
		}
	}
}

// OnCollision scores stars caught by the player.
func (g *Game) OnCollision(a, b *actor.Actor) {
	star := a
	if a == g.player {
		star = b
	} else if b != g.player {
		return
	}
	if star.Tag != tagStar {
		return
	}

	g.despawn(star)
	g.caught++
	points := g.cfg.Stars.Points
	if g.jump.Airborne() {
		points *= 2
	}
	g.score += points
	//nolint:errcheck // Popup is cosmetic
	g.world.AttachTimedMessage(g.popup, fmt.Sprintf("+%d", points), popupWidth, g.player, g.cfg.Sim.MessageDuration)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), groundChar, core.ColorGreen)

	var style *core.Style
	if g.paused || g.gameOver {
		style = pausedStyle
	}
	g.world.Draw(dst, style)

	hud := fmt.Sprintf(" Score: %d  Lives: %d  Caught: %d  Time: %s ",
		g.score, g.lives, g.caught, g.played.Truncate(time.Second))
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
	registry.Register("skyhop", func() registry.Game {
		return New()
	})
}
