package ember

import (
	"github.com/tanema/gween/ease"
)

// LandedConfig controls the decay behavior of landed particles. Fields are
// hot-swappable through LandedManager.Config; they are read at spawn time.
type LandedConfig struct {
	// Pause is the seconds a landed particle holds its size before shrinking.
	Pause float64 `yaml:"pause"`
	// Shrink is the seconds the shrink-to-zero animation takes.
	Shrink float64 `yaml:"shrink"`
	// PivotOffset moves the shrink origin to a point this many pixels above
	// the visual's bottom edge, without moving the visible baseline.
	PivotOffset float64 `yaml:"pivot_offset"`
}

// landedSlot is one reusable decay slot.
type landedSlot struct {
	node    *Node
	decay   *Timeline
	active  bool
	spawnScale float64
}

// LandedManager owns a fixed pool of decaying particles. A landed spawn
// holds its size for a pause, then shrinks to zero and recycles the slot in
// the same step. Spawns fail gracefully when the pool is full: landing
// events are dropped, never queued.
type LandedManager struct {
	cfg       LandedConfig
	slots     []landedSlot
	container *Node
	active    int
	disposed  bool

	// OnSlotFreed, when set, fires after a slot finishes its decay and
	// returns to the pool. Used to release any external spacing reservation
	// for the landing position. Reset does not fire it.
	OnSlotFreed func()
}

// NewLandedManager creates a manager with the given capacity. newVisual is
// called once per slot; the returned nodes start hidden and are parented
// under container when it is non-nil.
func NewLandedManager(capacity int, cfg LandedConfig, newVisual func(i int) *Node, container *Node) *LandedManager {
	if capacity <= 0 {
		capacity = 1
	}
	m := &LandedManager{
		cfg:       cfg,
		slots:     make([]landedSlot, capacity),
		container: container,
	}
	for i := range m.slots {
		var n *Node
		if newVisual != nil {
			n = newVisual(i)
		} else {
			n = NewSprite("landed")
		}
		n.Visible = false
		if container != nil {
			container.AddChild(n)
		}
		m.slots[i].node = n
	}
	return m
}

// Config returns a pointer to the manager's config for live tuning.
func (m *LandedManager) Config() *LandedConfig {
	return &m.cfg
}

// Spawn places a decaying particle at (x, y) — y being the baseline the
// visual's bottom edge sits on — at the given scale, and starts its
// pause-then-shrink timeline. Returns false when no inactive slot exists.
func (m *LandedManager) Spawn(x, y, scale float64) bool {
	slot := m.freeSlot()
	if slot == nil {
		return false
	}
	m.activate(slot, x, y, scale)
	m.startDecay(slot, scale)
	return true
}

// freeSlot returns the first inactive slot, or nil.
func (m *LandedManager) freeSlot() *landedSlot {
	for i := range m.slots {
		if !m.slots[i].active {
			return &m.slots[i]
		}
	}
	return nil
}

// activate positions a slot's visual so the shrink origin sits PivotOffset
// pixels above the bottom edge while the baseline stays at y. The node's
// default center anchor cannot express an asymmetric shrink origin, so the
// anchor is moved and the stored position compensated.
func (m *LandedManager) activate(slot *landedSlot, x, y, scale float64) {
	n := slot.node
	pivot := m.cfg.PivotOffset
	if n.Height > 0 {
		n.AnchorY = clamp((n.Height-pivot)/n.Height, 0, 1)
	}
	n.X = x
	n.Y = y - pivot*scale
	n.SetScale(scale)
	n.Rotation = 0
	n.Visible = true
	slot.active = true
	slot.spawnScale = scale
	m.active++
}

// startDecay installs the pause-then-shrink timeline on the slot. Every
// deferred callback checks the manager's disposed flag and the node's
// liveness before mutating: the timeline spans seconds and the owning scene
// may be torn down mid-animation.
func (m *LandedManager) startDecay(slot *landedSlot, fromScale float64) {
	n := slot.node
	tl := NewTimeline(n, float32(fromScale), 0, float32(m.cfg.Pause), float32(m.cfg.Shrink), ease.InQuad)
	tl.OnStep = func(v float32) {
		if m.disposed || n.IsDisposed() {
			return
		}
		n.SetScale(float64(v))
	}
	tl.OnComplete = func() {
		if m.disposed || n.IsDisposed() {
			return
		}
		m.releaseSlot(slot, true)
	}
	slot.decay = tl
}

// releaseSlot synchronously resets a slot to the inactive, default state.
// No particle remains visible at scale zero.
func (m *LandedManager) releaseSlot(slot *landedSlot, notify bool) {
	if !slot.active {
		return
	}
	n := slot.node
	n.Visible = false
	n.SetScale(1)
	n.SetAnchor(0.5, 0.5)
	slot.decay = nil
	slot.active = false
	slot.spawnScale = 0
	m.active--
	if notify && m.OnSlotFreed != nil {
		m.OnSlotFreed()
	}
}

// Update advances every running decay timeline by dt seconds.
func (m *LandedManager) Update(dt float64) {
	if m.disposed {
		return
	}
	for i := range m.slots {
		slot := &m.slots[i]
		if slot.active && slot.decay != nil {
			slot.decay.Update(float32(dt))
		}
	}
}

// Reset cancels all running timelines and forces every slot back to the
// inactive, default-scale state. Completion callbacks do not fire.
func (m *LandedManager) Reset() {
	for i := range m.slots {
		slot := &m.slots[i]
		if slot.decay != nil {
			slot.decay.Cancel()
		}
		if slot.active {
			m.releaseSlot(slot, false)
		}
	}
}

// Dispose tears the manager down. Any timeline callback still referenced
// elsewhere becomes a no-op through the disposed flag.
func (m *LandedManager) Dispose() {
	m.Reset()
	m.disposed = true
}

// ActiveCount returns the number of active decay slots.
func (m *LandedManager) ActiveCount() int {
	return m.active
}

// Capacity returns the manager's fixed slot count.
func (m *LandedManager) Capacity() int {
	return len(m.slots)
}
