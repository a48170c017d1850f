package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// load resolves a config by name.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded default.
// Files are decoded over the hard-coded defaults, so they may set only the
// keys they change.
func load[T validator](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(name + ".yaml"), filepath.Join("configs", name+".yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := fallback()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// LoadSkyhop loads Skyhop configuration.
func LoadSkyhop(customPath string) (SkyhopConfig, error) {
	return load("skyhop", customPath, defaultSkyhopYAML, DefaultSkyhopConfig)
}

// LoadOrbit loads Orbit configuration.
func LoadOrbit(customPath string) (OrbitConfig, error) {
	return load("orbit", customPath, defaultOrbitYAML, DefaultOrbitConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPreset sets difficulty progression from a preset.
func ApplyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
	} else {
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplySkyhopPreset modifies the config based on a difficulty preset.
func ApplySkyhopPreset(cfg *SkyhopConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Difficulty, preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Player.Width = 4
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Stars.Gravity *= 1.5
	}
}

// ApplyOrbitPreset modifies the config based on a difficulty preset.
func ApplyOrbitPreset(cfg *OrbitConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Moons.Count = 3
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Asteroids.MaxAlive += 2
	}
}
