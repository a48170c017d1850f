// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// SimConfig tunes the simulation core shared by all games.
type SimConfig struct {
	CollisionSamples int           `yaml:"collision_samples"` // Points drawn per sampled collision test
	FrameDuration    time.Duration `yaml:"frame_duration"`    // Default animation frame time
	MessageDuration  time.Duration `yaml:"message_duration"`  // Lifetime of score popups
}

// Validate checks the simulation settings.
func (c SimConfig) Validate() error {
	if c.CollisionSamples < 1 {
		return fmt.Errorf("config: collision_samples %d: %w", c.CollisionSamples, ErrInvalidConfig)
	}
	if c.MessageDuration <= 0 {
		return fmt.Errorf("config: message_duration %v: %w", c.MessageDuration, ErrInvalidConfig)
	}
	return nil
}

// SkyhopConfig contains all configuration for the Skyhop game.
type SkyhopConfig struct {
	Sim        SimConfig        `yaml:"sim"`
	Player     SkyhopPlayer     `yaml:"player"`
	Stars      SkyhopStars      `yaml:"stars"`
	Gameplay   Gameplay         `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SkyhopPlayer defines the player's body and movement.
type SkyhopPlayer struct {
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
	Speed        float64       `yaml:"speed"`         // Cells per second when steering
	Friction     float64       `yaml:"friction"`      // Fraction of speed lost per second
	RestSpeed    float64       `yaml:"rest_speed"`    // Speeds below this snap to zero
	JumpHeight   float64       `yaml:"jump_height"`   // Cells
	JumpDuration time.Duration `yaml:"jump_duration"` // Total air time
}

// SkyhopStars defines falling star parameters.
type SkyhopStars struct {
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	FallSpeed     float64       `yaml:"fall_speed"` // Initial cells per second
	Gravity       float64       `yaml:"gravity"`    // Cells per second squared
	Points        int           `yaml:"points"`
}

// Validate checks the Skyhop configuration.
func (c SkyhopConfig) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	switch {
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: skyhop: player %gx%g: %w", c.Player.Width, c.Player.Height, ErrInvalidConfig)
	case c.Player.Friction < 0 || c.Player.Friction > 1:
		return fmt.Errorf("config: skyhop: friction %g: %w", c.Player.Friction, ErrInvalidConfig)
	case c.Player.JumpHeight <= 0 || c.Player.JumpDuration <= 0:
		return fmt.Errorf("config: skyhop: jump %g over %v: %w", c.Player.JumpHeight, c.Player.JumpDuration, ErrInvalidConfig)
	case c.Stars.SpawnInterval <= 0:
		return fmt.Errorf("config: skyhop: spawn_interval %v: %w", c.Stars.SpawnInterval, ErrInvalidConfig)
	}
	return c.Gameplay.Validate()
}

// OrbitConfig contains all configuration for the Orbit game.
type OrbitConfig struct {
	Sim        SimConfig        `yaml:"sim"`
	Planet     OrbitPlanet      `yaml:"planet"`
	Moons      OrbitMoons       `yaml:"moons"`
	Asteroids  OrbitAsteroids   `yaml:"asteroids"`
	Gameplay   Gameplay         `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// OrbitPlanet defines the central planet.
type OrbitPlanet struct {
	Radius float64 `yaml:"radius"`
}

// OrbitMoons defines the player's moons.
type OrbitMoons struct {
	Count  int           `yaml:"count"`
	Radius float64       `yaml:"radius"`
	Offset float64       `yaml:"offset"` // Gap between planet and moon surfaces
	Year   time.Duration `yaml:"year"`   // Time for one full orbit
}

// OrbitAsteroids defines the bouncing asteroids.
type OrbitAsteroids struct {
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	Speed         float64       `yaml:"speed"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	MaxAlive      int           `yaml:"max_alive"`
	Points        int           `yaml:"points"`
}

// Validate checks the Orbit configuration.
func (c OrbitConfig) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	switch {
	case c.Planet.Radius <= 0:
		return fmt.Errorf("config: orbit: planet radius %g: %w", c.Planet.Radius, ErrInvalidConfig)
	case c.Moons.Count < 1 || c.Moons.Radius <= 0 || c.Moons.Year <= 0:
		return fmt.Errorf("config: orbit: moons %d r=%g year=%v: %w", c.Moons.Count, c.Moons.Radius, c.Moons.Year, ErrInvalidConfig)
	case c.Asteroids.Width <= 0 || c.Asteroids.Height <= 0:
		return fmt.Errorf("config: orbit: asteroid %gx%g: %w", c.Asteroids.Width, c.Asteroids.Height, ErrInvalidConfig)
	case c.Asteroids.SpawnInterval <= 0 || c.Asteroids.MaxAlive < 1:
		return fmt.Errorf("config: orbit: asteroid spawning: %w", ErrInvalidConfig)
	}
	return c.Gameplay.Validate()
}

// Gameplay holds rules common to the games.
type Gameplay struct {
	Lives int `yaml:"lives"`
}

// Validate checks the gameplay rules.
func (g Gameplay) Validate() error {
	if g.Lives < 1 {
		return fmt.Errorf("config: lives %d: %w", g.Lives, ErrInvalidConfig)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard, fixed): %w", s, ErrInvalidConfig)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
