package ember

// FloorLine derives the floor Y coordinate from the live position and scale
// of the scene's main subject plus a tunable offset. The line is never
// cached: the subject's scale can change at runtime (settings slider), so
// every check re-reads it.
type FloorLine struct {
	// Subject is the scene's main subject node. When nil, the floor is the
	// fixed line y = Offset.
	Subject *Node
	// Offset shifts the floor below (positive) or above (negative) the
	// subject's bottom edge, in pixels.
	Offset float64
}

// Y returns the current floor line.
func (f FloorLine) Y() float64 {
	if f.Subject == nil {
		return f.Offset
	}
	return f.Subject.BottomEdge() + f.Offset
}

// Landing describes where an airborne particle crossed the floor: the
// particle's X, the floor line itself as Y, and the visual scale and
// rotation at the moment of crossing.
type Landing struct {
	X, Y     float64
	Scale    float64
	Rotation float64
}

// FloorDetector scans active flight particles against the floor line once
// per tick, after the physics update. The crossing test uses the visual
// bottom edge, not the raw position: the token is anchored at its vertical
// center and its scale is animated, so the effective footprint changes every
// tick.
type FloorDetector struct {
	Floor FloorLine
}

// Scan reports every particle whose bottom edge has reached the floor.
// The callback receives the particle and its landing; the caller is
// responsible for releasing the flying slot and attempting a landed spawn
// (subject to the sprite budget).
func (d *FloorDetector) Scan(pool *FlightPool, onLand func(*FlightParticle, Landing)) {
	floorY := d.Floor.Y()
	for i := range pool.slots {
		s := &pool.slots[i]
		if !s.active || s.Visual == nil {
			continue
		}
		if s.Visual.BottomEdge() < floorY {
			continue
		}
		onLand(s, Landing{
			X:        s.Visual.X,
			Y:        floorY,
			Scale:    s.Visual.ScaleY,
			Rotation: s.Visual.Rotation,
		})
	}
}
