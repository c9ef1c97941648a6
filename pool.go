package ember

import (
	"math"
)

// FlightParticle is one slot in a FlightPool: the kinematic state of an
// airborne particle plus the renderable node it drives. The node is owned by
// the pool for its entire lifetime; release hides it, never destroys it.
type FlightParticle struct {
	Visual *Node

	// Velocity in pixels per second.
	VX, VY float64

	// Age accumulates every tick. It drives the scale growth curve only;
	// particles leave the pool through floor collision, not by age.
	Age    float64
	MaxAge float64

	// TrackSlot is caller bookkeeping for trajectory-lane assignment.
	// Cleared to -1 on release.
	TrackSlot int

	active bool
}

// Active reports pool membership. Exactly the active particles are visible
// and mutated by the physics step.
func (p *FlightParticle) Active() bool {
	return p.active
}

// FlightPool is a fixed-capacity pool of airborne particles. Slots are
// preallocated once; steady-state play performs no allocation.
type FlightPool struct {
	slots  []FlightParticle
	active int
}

// NewFlightPool creates a pool of the given capacity. newVisual is called
// once per slot to create its renderable node; nodes start hidden. A nil
// newVisual leaves Visual unset (test pools simulate without rendering).
func NewFlightPool(capacity int, newVisual func(i int) *Node) *FlightPool {
	if capacity <= 0 {
		capacity = 1
	}
	p := &FlightPool{slots: make([]FlightParticle, capacity)}
	for i := range p.slots {
		s := &p.slots[i]
		s.TrackSlot = -1
		if newVisual != nil {
			s.Visual = newVisual(i)
			s.Visual.Visible = false
		}
	}
	return p
}

// Acquire returns the first inactive slot, marked active with its visual
// shown, or nil when the pool is exhausted. Exhaustion is expected,
// recoverable backpressure, not an error.
func (p *FlightPool) Acquire() *FlightParticle {
	for i := range p.slots {
		s := &p.slots[i]
		if s.active {
			continue
		}
		s.active = true
		p.active++
		if s.Visual != nil {
			s.Visual.Visible = true
		}
		return s
	}
	return nil
}

// Release returns a slot to the pool: the visual is hidden, velocity zeroed,
// age and lane bookkeeping cleared. No-op on an already inactive slot.
func (p *FlightPool) Release(s *FlightParticle) {
	if !s.active {
		return
	}
	s.active = false
	p.active--
	s.VX = 0
	s.VY = 0
	s.Age = 0
	s.MaxAge = 0
	s.TrackSlot = -1
	if s.Visual != nil {
		s.Visual.Visible = false
	}
}

// Update advances physics for every active particle by dt seconds: gravity
// integration on the vertical axis, position integration, heading rotation,
// and age accumulation. rotationOffsetDeg turns the token so its forward edge
// tracks the direction of travel.
func (p *FlightPool) Update(dt, gravity, rotationOffsetDeg float64) {
	offset := rotationOffsetDeg * math.Pi / 180
	for i := range p.slots {
		s := &p.slots[i]
		if !s.active {
			continue
		}
		s.VY += gravity * dt
		s.Age += dt
		if s.Visual != nil {
			s.Visual.X += s.VX * dt
			s.Visual.Y += s.VY * dt
			s.Visual.Rotation = math.Atan2(s.VY, s.VX) + offset
		}
	}
}

// Each calls fn for every active particle.
func (p *FlightPool) Each(fn func(*FlightParticle)) {
	for i := range p.slots {
		if p.slots[i].active {
			fn(&p.slots[i])
		}
	}
}

// ActiveCount returns the number of active particles.
func (p *FlightPool) ActiveCount() int {
	return p.active
}

// Capacity returns the pool's fixed slot count.
func (p *FlightPool) Capacity() int {
	return len(p.slots)
}

// Reset releases every active slot.
func (p *FlightPool) Reset() {
	for i := range p.slots {
		if p.slots[i].active {
			p.Release(&p.slots[i])
		}
	}
}

// growthScale returns the particle's scale for the given age: a linear ramp
// from initial to peak over the first 10% of maxAge, holding at peak after.
// This is the "puff" growth curve, independent of landing decay.
func growthScale(age, maxAge, initial, peak float64) float64 {
	if maxAge <= 0 {
		return peak
	}
	ramp := maxAge * 0.1
	if age >= ramp {
		return peak
	}
	return lerp(initial, peak, age/ramp)
}
