package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	sky, err := LoadSkyhop("")
	if err != nil {
		t.Fatalf("LoadSkyhop() error = %v", err)
	}
	if sky != DefaultSkyhopConfig() {
		t.Errorf("LoadSkyhop() = %+v, expected %+v", sky, DefaultSkyhopConfig())
	}

	orb, err := LoadOrbit("")
	if err != nil {
		t.Fatalf("LoadOrbit() error = %v", err)
	}
	if orb != DefaultOrbitConfig() {
		t.Errorf("LoadOrbit() = %+v, expected %+v", orb, DefaultOrbitConfig())
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyhop.yaml")
	data := "player:\n  jump_height: 12\n  jump_duration: 1.5s\ngameplay:\n  lives: 9\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkyhop(path)
	if err != nil {
		t.Fatalf("LoadSkyhop() error = %v", err)
	}
	if cfg.Player.JumpHeight != 12 || cfg.Player.JumpDuration != 1500*time.Millisecond {
		t.Errorf("Player = %+v, expected jump 12 over 1.5s", cfg.Player)
	}
	if cfg.Gameplay.Lives != 9 {
		t.Errorf("Lives = %d, expected 9", cfg.Gameplay.Lives)
	}
	if cfg.Player.Width != DefaultSkyhopConfig().Player.Width {
		t.Errorf("Width = %g, expected the default to survive", cfg.Player.Width)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadOrbit(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadOrbit(missing) expected an error")
	}

	invalid := filepath.Join(dir, "orbit.yaml")
	os.WriteFile(invalid, []byte("moons:\n  count: 0\n"), 0o644)
	if _, err := LoadOrbit(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadOrbit(count 0) error = %v, expected %v", err, ErrInvalidConfig)
	}
}

func TestLoadLocalConfigsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	os.MkdirAll("configs", 0o755)
	os.WriteFile(filepath.Join("configs", "orbit.yaml"), []byte("moons:\n  count: 4\n"), 0o644)

	cfg, err := LoadOrbit("")
	if err != nil {
		t.Fatalf("LoadOrbit() error = %v", err)
	}
	if cfg.Moons.Count != 4 {
		t.Errorf("Moons.Count = %d, expected 4", cfg.Moons.Count)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SkyhopConfig)
	}{
		{"zero samples", func(c *SkyhopConfig) { c.Sim.CollisionSamples = 0 }},
		{"no width", func(c *SkyhopConfig) { c.Player.Width = 0 }},
		{"friction above one", func(c *SkyhopConfig) { c.Player.Friction = 1.2 }},
		{"no jump time", func(c *SkyhopConfig) { c.Player.JumpDuration = 0 }},
		{"no lives", func(c *SkyhopConfig) { c.Gameplay.Lives = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSkyhopConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected %v", err, ErrInvalidConfig)
			}
		})
	}
	if err := DefaultOrbitConfig().Validate(); err != nil {
		t.Errorf("DefaultOrbitConfig().Validate() = %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, %v, expected %q", tc.in, got, err, tc.expected)
		}
	}
}

func TestApplyPresets(t *testing.T) {
	sky := DefaultSkyhopConfig()
	ApplySkyhopPreset(&sky, DifficultyFixed)
	if sky.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	orb := DefaultOrbitConfig()
	ApplyOrbitPreset(&orb, DifficultyHard)
	if !orb.Difficulty.Enabled || orb.Difficulty.InitialLevel != 0.7 {
		t.Errorf("Difficulty = %+v, expected enabled at 0.7", orb.Difficulty)
	}
	if orb.Gameplay.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", orb.Gameplay.Lives)
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1, IntervalReduction: 0.5},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		played   time.Duration
		expected float64
	}{
		{0, 0},
		{50 * time.Second, 0.5},
		{500 * time.Second, 1},
	}
	for _, tc := range tests {
		if got := d.Level(0, tc.played); got != tc.expected {
			t.Errorf("Level(0, %v) = %g, expected %g", tc.played, got, tc.expected)
		}
	}

	if got := d.Speed(10, 0, 50*time.Second); got != 15 {
		t.Errorf("Speed() = %g, expected 15", got)
	}
	if got := d.Interval(time.Second, 0, 100*time.Second); got != 500*time.Millisecond {
		t.Errorf("Interval() = %v, expected 500ms", got)
	}

	d.SetEnabled(false)
	d.SetInitialLevel(0.3)
	if got := d.Level(1000, time.Hour); got != 0.3 {
		t.Errorf("Level() with progression disabled = %g, expected 0.3", got)
	}
}

func TestIntervalFloor(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1,
		Progression:  ProgressionConfig{Type: "none"},
		Scaling:      ScalingConfig{IntervalReduction: 5},
	})
	if got := d.Interval(time.Second, 0, 0); got != 200*time.Millisecond {
		t.Errorf("Interval() = %v, expected 200ms", got)
	}
}
