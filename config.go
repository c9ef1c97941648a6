package ember

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BudgetConfig holds the global sprite ceiling.
type BudgetConfig struct {
	// Max is the ceiling on simultaneously visible particle-like objects,
	// main subject included. Zero disables the budget.
	Max int `yaml:"max"`
}

// FlightConfig holds the flight pool and physics tunables.
type FlightConfig struct {
	// PoolSize is the flight pool capacity.
	PoolSize int `yaml:"pool_size"`
	// Gravity is the constant vertical acceleration in pixels per second
	// squared (positive is down).
	Gravity float64 `yaml:"gravity"`
	// RotationOffsetDeg turns each token relative to its direction of
	// travel, in degrees.
	RotationOffsetDeg float64 `yaml:"rotation_offset_deg"`
	// InitialScale and PeakScale bound the growth curve.
	InitialScale float64 `yaml:"initial_scale"`
	PeakScale    float64 `yaml:"peak_scale"`
}

// FloorConfig holds the floor line tunable.
type FloorConfig struct {
	// Offset shifts the floor relative to the main subject's bottom edge.
	Offset float64 `yaml:"offset"`
}

// EffectConfig aggregates every runtime tunable of a fire effect. All
// fields are hot-swappable; the engine reads them fresh each tick.
type EffectConfig struct {
	Budget BudgetConfig `yaml:"budget"`
	Flight FlightConfig `yaml:"flight"`
	Spawn  SpawnConfig  `yaml:"spawn"`
	Floor  FloorConfig  `yaml:"floor"`
	Landed LandedConfig `yaml:"landed"`
	Evolve EvolveConfig `yaml:"evolve"`

	// LandedPoolSize is the landed/evolving pool capacity (shared field;
	// the two variants are mutually exclusive per effect).
	LandedPoolSize int `yaml:"landed_pool_size"`
}

// DefaultEffectConfig returns the tuning used by the demo suite.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		Budget: BudgetConfig{Max: 14},
		Flight: FlightConfig{
			PoolSize:          8,
			Gravity:           420,
			RotationOffsetDeg: 90,
			InitialScale:      0.12,
			PeakScale:         0.3,
		},
		Spawn: SpawnConfig{
			Interval:     0.9,
			AngleDeg:     Range{Min: -175, Max: -5},
			Speed:        Range{Min: 180, Max: 330},
			AngleMinDiff: 30,
			SpeedMinDiff: 40,
			Region:       Rect{X: -40, Y: -60, Width: 80, Height: 20},
			MaxAge:       6,
		},
		Floor:  FloorConfig{Offset: 10},
		Landed: LandedConfig{Pause: 0.5, Shrink: 3.0, PivotOffset: 12},
		Evolve: EvolveConfig{
			Pause:          0.5,
			Shrink:         3.0,
			PivotOffset:    12,
			ClicksPerLevel: 3,
			Recover:        0.35,
			TerminalOffset: Vec2{Y: -6},
		},
		LandedPoolSize: 8,
	}
}

// LoadEffectConfig reads a YAML tuning file over the defaults. An empty path
// returns the defaults unchanged.
func LoadEffectConfig(path string) (EffectConfig, error) {
	cfg := DefaultEffectConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read effect config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse effect config %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps configuration values the engine cannot run with.
func (c *EffectConfig) sanitize() {
	if c.Flight.PoolSize <= 0 {
		c.Flight.PoolSize = 1
	}
	if c.LandedPoolSize <= 0 {
		c.LandedPoolSize = 1
	}
	if c.Flight.PeakScale < c.Flight.InitialScale {
		c.Flight.PeakScale = c.Flight.InitialScale
	}
	if c.Spawn.Interval < 0 {
		c.Spawn.Interval = 0
	}
	if c.Landed.Pause < 0 {
		c.Landed.Pause = 0
	}
	if c.Landed.Shrink <= 0 {
		c.Landed.Shrink = 0.01
	}
	if c.Evolve.Pause < 0 {
		c.Evolve.Pause = 0
	}
	if c.Evolve.Shrink <= 0 {
		c.Evolve.Shrink = 0.01
	}
	if c.Evolve.ClicksPerLevel <= 0 {
		c.Evolve.ClicksPerLevel = 1
	}
	if c.Evolve.Recover <= 0 {
		c.Evolve.Recover = 0.01
	}
}
