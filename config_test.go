package ember

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultEffectConfig(t *testing.T) {
	cfg := DefaultEffectConfig()
	if cfg.Budget.Max <= 0 {
		t.Error("default budget should be enabled")
	}
	if cfg.Flight.PoolSize <= 0 || cfg.LandedPoolSize <= 0 {
		t.Error("default pools must have capacity")
	}
	if cfg.Flight.PeakScale < cfg.Flight.InitialScale {
		t.Error("peak scale must not be below initial scale")
	}
	if cfg.Spawn.AngleDeg.Min >= cfg.Spawn.AngleDeg.Max {
		t.Error("default angle range is empty")
	}
}

func TestLoadEffectConfigEmptyPath(t *testing.T) {
	cfg, err := LoadEffectConfig("")
	if err != nil {
		t.Fatalf("empty path should return defaults: %v", err)
	}
	if cfg != DefaultEffectConfig() {
		t.Error("empty path should return the defaults unchanged")
	}
}

func TestLoadEffectConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	doc := `
budget:
  max: 20
flight:
  gravity: 600
spawn:
  interval: 0.25
  angle_deg:
    min: -160
    max: -20
landed:
  pivot_offset: 8
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEffectConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Budget.Max != 20 {
		t.Errorf("budget max = %d, want 20", cfg.Budget.Max)
	}
	assertNear(t, "gravity", cfg.Flight.Gravity, 600)
	assertNear(t, "interval", cfg.Spawn.Interval, 0.25)
	assertNear(t, "angle min", cfg.Spawn.AngleDeg.Min, -160)
	assertNear(t, "pivot offset", cfg.Landed.PivotOffset, 8)

	// Untouched fields keep their defaults.
	def := DefaultEffectConfig()
	if cfg.Flight.PoolSize != def.Flight.PoolSize {
		t.Error("unset fields should keep defaults")
	}
	assertNear(t, "speed max", cfg.Spawn.Speed.Max, def.Spawn.Speed.Max)
}

func TestLoadEffectConfigMissingFile(t *testing.T) {
	cfg, err := LoadEffectConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("missing file should error")
	}
	if !strings.Contains(err.Error(), "read effect config") {
		t.Errorf("error should name the failing step: %v", err)
	}
	// The defaults still come back so a caller can choose to proceed.
	if cfg.Flight.PoolSize != DefaultEffectConfig().Flight.PoolSize {
		t.Error("defaults should accompany the error")
	}
}

func TestLoadEffectConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("budget: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEffectConfig(path); err == nil {
		t.Fatal("malformed YAML should error")
	}
}

func TestSanitizeClampsDegenerateValues(t *testing.T) {
	cfg := EffectConfig{
		Flight: FlightConfig{PoolSize: -3, InitialScale: 0.5, PeakScale: 0.1},
		Spawn:  SpawnConfig{Interval: -1},
		Landed: LandedConfig{Pause: -2, Shrink: 0},
		Evolve: EvolveConfig{Shrink: -1, ClicksPerLevel: 0, Recover: 0},
	}
	cfg.sanitize()

	if cfg.Flight.PoolSize != 1 || cfg.LandedPoolSize != 1 {
		t.Error("pool sizes should clamp to 1")
	}
	assertNear(t, "peak scale", cfg.Flight.PeakScale, cfg.Flight.InitialScale)
	assertNear(t, "interval", cfg.Spawn.Interval, 0)
	assertNear(t, "landed pause", cfg.Landed.Pause, 0)
	if cfg.Landed.Shrink <= 0 || cfg.Evolve.Shrink <= 0 {
		t.Error("shrink durations must clamp positive")
	}
	if cfg.Evolve.ClicksPerLevel != 1 {
		t.Error("clicks per level should clamp to 1")
	}
	if cfg.Evolve.Recover <= 0 {
		t.Error("recover duration must clamp positive")
	}
}
