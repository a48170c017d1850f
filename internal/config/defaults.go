package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skyhop.yaml
var defaultSkyhopYAML []byte

//go:embed defaults/orbit.yaml
var defaultOrbitYAML []byte

// DefaultSimConfig returns the default simulation settings.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		CollisionSamples: 1,
		FrameDuration:    150 * time.Millisecond,
		MessageDuration:  900 * time.Millisecond,
	}
}

// DefaultSkyhopConfig returns the default Skyhop configuration.
func DefaultSkyhopConfig() SkyhopConfig {
	return SkyhopConfig{
		Sim: DefaultSimConfig(),
		Player: SkyhopPlayer{
			Width:        3,
			Height:       2,
			Speed:        40,
			Friction:     0.95,
			RestSpeed:    0.5,
			JumpHeight:   7,
			JumpDuration: 900 * time.Millisecond,
		},
		Stars: SkyhopStars{
			SpawnInterval: 1200 * time.Millisecond,
			FallSpeed:     4,
			Gravity:       3,
			Points:        10,
		},
		Gameplay: Gameplay{Lives: 3},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.5,
				IntervalReduction: 0.6,
			},
		},
	}
}

// DefaultOrbitConfig returns the default Orbit configuration.
func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		Sim:    DefaultSimConfig(),
		Planet: OrbitPlanet{Radius: 3},
		Moons: OrbitMoons{
			Count:  2,
			Radius: 1,
			Offset: 2,
			Year:   3 * time.Second,
		},
		Asteroids: OrbitAsteroids{
			Width:         2,
			Height:        1,
			Speed:         10,
			SpawnInterval: 2 * time.Second,
			MaxAlive:      6,
			Points:        5,
		},
		Gameplay: Gameplay{Lives: 3},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 180,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.5,
			},
		},
	}
}
