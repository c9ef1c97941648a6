package ember

import (
	"math"
)

// SpawnConfig controls the spawn scheduler and the randomized launch
// parameters. All fields are hot-swappable through Spawner.Config.
type SpawnConfig struct {
	// Interval is the seconds between spawn attempts.
	Interval float64 `yaml:"interval"`
	// AngleDeg is the launch angle range in degrees (screen coordinates:
	// negative angles point upward).
	AngleDeg Range `yaml:"angle_deg"`
	// Speed is the launch speed range in pixels per second.
	Speed Range `yaml:"speed"`
	// AngleMinDiff and SpeedMinDiff are the anti-repetition thresholds: the
	// minimum allowed difference between a newly drawn value and the previous
	// spawn's. Zero or negative disables the rule for that parameter.
	AngleMinDiff float64 `yaml:"angle_min_diff"`
	SpeedMinDiff float64 `yaml:"speed_min_diff"`
	// Region is the spawn region, relative to the main subject's position.
	Region Rect `yaml:"region"`
	// MaxAge is each particle's configured maximum age in seconds (drives
	// the growth curve, not removal).
	MaxAge float64 `yaml:"max_age"`
}

// Spawner triggers spawn attempts at the configured interval and generates
// launch parameters with anti-repetition variety.
type Spawner struct {
	cfg   SpawnConfig
	accum float64

	prevAngle float64
	prevSpeed float64
	hasPrev   bool
}

// NewSpawner creates a spawner with the given configuration.
func NewSpawner(cfg SpawnConfig) *Spawner {
	return &Spawner{cfg: cfg}
}

// Config returns a pointer to the spawner's config for live tuning.
func (s *Spawner) Config() *SpawnConfig {
	return &s.cfg
}

// Tick accumulates elapsed time and invokes try once per elapsed interval.
// try returning false (budget refused, pool exhausted) is expected
// backpressure; the attempt is simply consumed.
func (s *Spawner) Tick(dt float64, try func() bool) {
	if s.cfg.Interval <= 0 {
		return
	}
	s.accum += dt
	for s.accum >= s.cfg.Interval {
		s.accum -= s.cfg.Interval
		try()
	}
}

// NextAngle draws the next launch angle in degrees, applying the
// anti-repetition rule against the previous spawn's angle.
func (s *Spawner) NextAngle() float64 {
	v := pickVaried(s.cfg.AngleDeg, s.prevAngle, s.hasPrev, s.cfg.AngleMinDiff)
	s.prevAngle = v
	return v
}

// NextSpeed draws the next launch speed, applying the anti-repetition rule
// against the previous spawn's speed. Angle and speed repeat-avoidance are
// independent.
func (s *Spawner) NextSpeed() float64 {
	v := pickVaried(s.cfg.Speed, s.prevSpeed, s.hasPrev, s.cfg.SpeedMinDiff)
	s.prevSpeed = v
	s.hasPrev = true
	return v
}

// Reset clears the interval accumulator and the previous-spawn memory.
func (s *Spawner) Reset() {
	s.accum = 0
	s.hasPrev = false
}

// pickVaried draws from r, rejecting values closer than minDiff to prev for
// up to 10 attempts. If every attempt lands too close, it forces the
// deterministic fallback: the midpoint of the half of the range on the
// opposite side of r's midpoint from prev. With minDiff <= 0 (or no previous
// value) the draw is uniform.
func pickVaried(r Range, prev float64, hasPrev bool, minDiff float64) float64 {
	if minDiff <= 0 || !hasPrev {
		return r.Random()
	}
	for i := 0; i < 10; i++ {
		v := r.Random()
		if math.Abs(v-prev) >= minDiff {
			return v
		}
	}
	return oppositeSide(r, prev)
}

// oppositeSide returns the midpoint of the half of r opposite prev. This is
// the guaranteed-variety fallback when rejection sampling fails.
func oppositeSide(r Range, prev float64) float64 {
	mid := r.Mid()
	if prev >= mid {
		return (r.Min + mid) / 2
	}
	return (mid + r.Max) / 2
}
