package ember

import (
	"math"
)

// LandedHandler receives particles that crossed the floor. The two variants
// — plain decay (LandedManager) and click-driven evolution (EvolveManager) —
// are mutually exclusive per effect.
type LandedHandler interface {
	Spawn(x, y, scale float64) bool
	Update(dt float64)
	Reset()
	ActiveCount() int
	Capacity() int
}

// EffectDeps are the collaborators a FireEffect is wired with. The full set
// is assembled before construction; the effect never reaches for a global
// registry.
type EffectDeps struct {
	// Subject is the scene's main subject. The floor line and the spawn
	// region are derived from its live position and scale.
	Subject *Node
	// NewFlightVisual creates the renderable node for flight pool slot i.
	// May be nil in simulation-only tests.
	NewFlightVisual func(i int) *Node
	// Landed handles floor crossings.
	Landed LandedHandler
}

// FireEffect composes the spawn scheduler, flight pool, floor detector and a
// landed handler into one tick-driven effect with the per-tick ordering
// guarantee: physics, then growth, then collision, then decay timelines,
// then new spawns. The sprite budget is recomputed fresh at every spawn and
// landing, so a particle can never land and respawn inside one tick in a way
// that bypasses it.
type FireEffect struct {
	cfg EffectConfig

	pool     *FlightPool
	detector FloorDetector
	spawner  *Spawner
	landed   LandedHandler
	subject  *Node

	onLand func(Landing)
}

// NewFireEffect builds an effect from a complete configuration and its
// collaborators.
func NewFireEffect(cfg EffectConfig, deps EffectDeps) *FireEffect {
	cfg.sanitize()
	e := &FireEffect{
		cfg:     cfg,
		pool:    NewFlightPool(cfg.Flight.PoolSize, deps.NewFlightVisual),
		spawner: NewSpawner(cfg.Spawn),
		landed:  deps.Landed,
		subject: deps.Subject,
	}
	e.detector.Floor = FloorLine{Subject: deps.Subject, Offset: cfg.Floor.Offset}
	return e
}

// Config returns a pointer to the effect's config for live tuning of
// gravity, growth, floor offset and budget. Spawn parameters are tuned
// through Spawner().Config().
func (e *FireEffect) Config() *EffectConfig {
	return &e.cfg
}

// Spawner returns the effect's spawn scheduler.
func (e *FireEffect) Spawner() *Spawner {
	return e.spawner
}

// Pool returns the effect's flight pool, for diagnostics reads.
func (e *FireEffect) Pool() *FlightPool {
	return e.pool
}

// SetOnParticleLand registers a callback fired for every floor crossing,
// after the flying slot has been released and the landed spawn attempted.
func (e *FireEffect) SetOnParticleLand(fn func(Landing)) {
	e.onLand = fn
}

// Update advances the effect by dt seconds.
func (e *FireEffect) Update(dt float64) {
	e.pool.Update(dt, e.cfg.Flight.Gravity, e.cfg.Flight.RotationOffsetDeg)

	// Growth curve runs alongside physics: a linear puff to peak scale over
	// the first 10% of each particle's max age.
	initial := e.cfg.Flight.InitialScale
	peak := e.cfg.Flight.PeakScale
	e.pool.Each(func(fp *FlightParticle) {
		if fp.Visual != nil {
			fp.Visual.SetScale(growthScale(fp.Age, fp.MaxAge, initial, peak))
		}
	})

	e.detector.Floor.Offset = e.cfg.Floor.Offset
	e.detector.Scan(e.pool, func(fp *FlightParticle, l Landing) {
		e.pool.Release(fp)
		budget := SpriteBudget{Max: e.cfg.Budget.Max}
		if budget.Allows(e.pool.ActiveCount(), e.landed.ActiveCount()) {
			e.landed.Spawn(l.X, l.Y, l.Scale)
		}
		if e.onLand != nil {
			e.onLand(l)
		}
	})

	e.landed.Update(dt)
	e.spawner.Tick(dt, e.TrySpawnParticle)
}

// TrySpawnParticle attempts one spawn, validate-before-create: the budget is
// checked before any pool state is touched, launch parameters are drawn with
// anti-repetition variety, and only then is a flight slot acquired. Returns
// false on budget refusal or pool exhaustion — both expected backpressure.
func (e *FireEffect) TrySpawnParticle() bool {
	budget := SpriteBudget{Max: e.cfg.Budget.Max}
	if !budget.Allows(e.pool.ActiveCount(), e.landed.ActiveCount()) {
		return false
	}

	angleDeg := e.spawner.NextAngle()
	speed := e.spawner.NextSpeed()

	fp := e.pool.Acquire()
	if fp == nil {
		// The flight pool can be smaller than the global budget.
		return false
	}

	sc := e.spawner.Config()
	var subX, subY float64
	if e.subject != nil {
		subX, subY = e.subject.X, e.subject.Y
	}
	x := subX + Range{Min: sc.Region.X, Max: sc.Region.X + sc.Region.Width}.Random()
	y := subY + Range{Min: sc.Region.Y, Max: sc.Region.Y + sc.Region.Height}.Random()

	angle := angleDeg * math.Pi / 180
	fp.VX = math.Cos(angle) * speed
	fp.VY = math.Sin(angle) * speed
	fp.Age = 0
	fp.MaxAge = sc.MaxAge
	if fp.Visual != nil {
		fp.Visual.SetPosition(x, y)
		fp.Visual.SetScale(e.cfg.Flight.InitialScale)
		fp.Visual.Rotation = angle + e.cfg.Flight.RotationOffsetDeg*math.Pi/180
	}
	return true
}

// ActiveFlying returns the number of active flight particles.
func (e *FireEffect) ActiveFlying() int {
	return e.pool.ActiveCount()
}

// ActiveLanded returns the number of active landed (or evolving) particles.
func (e *FireEffect) ActiveLanded() int {
	return e.landed.ActiveCount()
}

// SpriteCount returns the derived live sprite count, main subject included.
func (e *FireEffect) SpriteCount() int {
	return 1 + e.pool.ActiveCount() + e.landed.ActiveCount()
}

// Reset releases every flight slot, resets the landed handler, and clears
// the spawn scheduler.
func (e *FireEffect) Reset() {
	e.pool.Reset()
	e.landed.Reset()
	e.spawner.Reset()
}
