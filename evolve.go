package ember

import (
	"github.com/tanema/gween/ease"
)

// EvolveState is the lifecycle state of one evolving slot.
type EvolveState uint8

const (
	EvolveInactive    EvolveState = iota // slot available for spawn
	EvolveLevel0                         // freshly landed, decaying
	EvolveLevel1                         // evolved once
	EvolveLevel2                         // evolved twice
	EvolveCollectible                    // terminal form, decay off
)

// Level returns the ordinal evolution level for an active state, 0 to 3.
func (s EvolveState) Level() int {
	if s == EvolveInactive {
		return -1
	}
	return int(s - EvolveLevel0)
}

// terminalLevel is the level at which a particle becomes a collectible.
const terminalLevel = 3

// EvolveConfig controls the click-driven evolution variant. Decay fields
// match LandedConfig; the rest drive evolution. Hot-swappable through
// EvolveManager.Config.
type EvolveConfig struct {
	Pause       float64 `yaml:"pause"`
	Shrink      float64 `yaml:"shrink"`
	PivotOffset float64 `yaml:"pivot_offset"`

	// ClicksPerLevel is the number of clicks that promote a particle to the
	// next level.
	ClicksPerLevel int `yaml:"clicks_per_level"`
	// Recover is the duration of the bounce back to full size on click.
	Recover float64 `yaml:"recover"`
	// TerminalOffset nudges the visual when it reaches the terminal form,
	// so the collectible art sits correctly on the baseline.
	TerminalOffset Vec2 `yaml:"terminal_offset"`
}

// evolveSlot is one reusable evolution slot.
type evolveSlot struct {
	node *Node

	state    EvolveState
	clicks   int
	// originalScale is the scale recorded at spawn time; every click bounces
	// back to it regardless of decay progress.
	originalScale float64

	decay   *Timeline
	recover *Timeline
}

// EvolveManager is the click-driven variant of the landed manager. A spawned
// particle decays like the plain variant, but a click cancels the decay,
// bounces the particle back to full size, and counts toward evolution.
// After ClicksPerLevel clicks the particle advances a level and swaps its
// appearance frame; at the terminal level it becomes a permanent collectible:
// decay is off for good and the OnEggCreated notification hands ownership of
// the visual's position and animation to the caller. The slot stays active
// until ReleaseByHandle.
type EvolveManager struct {
	cfg       EvolveConfig
	slots     []evolveSlot
	container *Node
	active    int
	disposed  bool

	// OnEggCreated fires once per slot when it reaches the terminal form,
	// carrying the slot's position and visual handle.
	OnEggCreated func(x, y float64, visual *Node)
	// OnSlotFreed fires when a slot returns to the pool (decay completion or
	// ReleaseByHandle). Reset does not fire it.
	OnSlotFreed func()
}

// NewEvolveManager creates a manager with the given capacity. newVisual is
// called once per slot and should return a sprite whose frame set holds one
// frame per level (index 0..3); nodes start hidden and are parented under
// container when it is non-nil.
func NewEvolveManager(capacity int, cfg EvolveConfig, newVisual func(i int) *Node, container *Node) *EvolveManager {
	if capacity <= 0 {
		capacity = 1
	}
	if cfg.ClicksPerLevel <= 0 {
		cfg.ClicksPerLevel = 1
	}
	m := &EvolveManager{
		cfg:       cfg,
		slots:     make([]evolveSlot, capacity),
		container: container,
	}
	for i := range m.slots {
		var n *Node
		if newVisual != nil {
			n = newVisual(i)
		} else {
			n = NewSprite("evolve")
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
func (m *EvolveManager) Config() *EvolveConfig {
	return &m.cfg
}

// Spawn places an evolving particle at (x, y) at the given scale, entering
// level 0 with its decay timeline running. Returns false when no inactive
// slot exists.
func (m *EvolveManager) Spawn(x, y, scale float64) bool {
	var slot *evolveSlot
	for i := range m.slots {
		if m.slots[i].state == EvolveInactive {
			slot = &m.slots[i]
			break
		}
	}
	if slot == nil {
		return false
	}

	n := slot.node
	pivot := m.cfg.PivotOffset
	if n.Height > 0 {
		n.AnchorY = clamp((n.Height-pivot)/n.Height, 0, 1)
	}
	n.X = x
	n.Y = y - pivot*scale
	n.SetScale(scale)
	n.Rotation = 0
	n.FrameIndex = 0
	n.Visible = true

	slot.state = EvolveLevel0
	slot.clicks = 0
	slot.originalScale = scale
	slot.recover = nil
	m.active++
	m.startDecay(slot)
	return true
}

// startDecay installs the pause-then-shrink timeline. The tween runs from
// the spawn-time scale: any recovery bounce finishes inside the pause, so
// the shrink always starts from full size.
func (m *EvolveManager) startDecay(slot *evolveSlot) {
	n := slot.node
	tl := NewTimeline(n, float32(slot.originalScale), 0, float32(m.cfg.Pause), float32(m.cfg.Shrink), ease.InQuad)
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

// HandleClick dispatches a click at stage coordinates (x, y) to the topmost
// active slot whose bounds contain the point. Returns true if a slot
// consumed the click.
func (m *EvolveManager) HandleClick(x, y float64) bool {
	// Later slots draw on top; scan in reverse so the visually topmost wins.
	for i := len(m.slots) - 1; i >= 0; i-- {
		slot := &m.slots[i]
		if slot.state == EvolveInactive || !slot.node.Visible {
			continue
		}
		if slot.node.Bounds().Contains(x, y) {
			m.clickSlot(slot)
			return true
		}
	}
	return false
}

// clickSlot advances one slot's evolution state machine by one click.
func (m *EvolveManager) clickSlot(slot *evolveSlot) {
	if slot.state == EvolveCollectible {
		// Collection is driven by ReleaseByHandle, not further clicks.
		return
	}

	// Cancel any running decay and bounce back to the spawn-time scale.
	// A click mid-recovery simply restarts the bounce: interaction always
	// snaps the particle toward full size.
	if slot.decay != nil {
		slot.decay.Cancel()
		slot.decay = nil
	}
	m.startRecovery(slot)

	slot.clicks++
	if slot.clicks < m.cfg.ClicksPerLevel {
		m.startDecay(slot)
		return
	}

	slot.clicks = 0
	slot.state++
	slot.node.FrameIndex = slot.state.Level()

	if slot.state == EvolveCollectible {
		m.promote(slot)
		return
	}
	m.startDecay(slot)
}

// startRecovery installs the bounce-to-full-size timeline.
func (m *EvolveManager) startRecovery(slot *evolveSlot) {
	n := slot.node
	tl := NewTimeline(n, float32(n.ScaleY), float32(slot.originalScale), 0, float32(m.cfg.Recover), ease.OutBack)
	tl.OnStep = func(v float32) {
		if m.disposed || n.IsDisposed() {
			return
		}
		n.SetScale(float64(v))
	}
	slot.recover = tl
}

// promote finalizes the terminal form: decay is permanently off, the
// terminal offset is applied, and OnEggCreated hands the visual to the
// caller. The slot stays active — and keeps counting against the sprite
// budget — until ReleaseByHandle.
func (m *EvolveManager) promote(slot *evolveSlot) {
	n := slot.node
	n.X += m.cfg.TerminalOffset.X
	n.Y += m.cfg.TerminalOffset.Y
	if m.OnEggCreated != nil {
		m.OnEggCreated(n.X, n.Y, n)
	}
}

// ReleaseByHandle locates the slot owning the given visual, re-parents the
// visual back under the manager's container if the caller had detached it,
// and fully resets the slot to inactive. This is the only way a collectible
// slot returns to the pool. Returns false if no slot owns the visual.
func (m *EvolveManager) ReleaseByHandle(visual *Node) bool {
	for i := range m.slots {
		slot := &m.slots[i]
		if slot.node != visual {
			continue
		}
		if slot.state == EvolveInactive {
			return false
		}
		if m.container != nil && visual.Parent != m.container && !visual.IsDisposed() {
			m.container.AddChild(visual)
		}
		m.releaseSlot(slot, true)
		return true
	}
	return false
}

// releaseSlot synchronously resets a slot to the inactive, default state.
func (m *EvolveManager) releaseSlot(slot *evolveSlot, notify bool) {
	if slot.state == EvolveInactive {
		return
	}
	n := slot.node
	n.Visible = false
	n.SetScale(1)
	n.SetAnchor(0.5, 0.5)
	n.FrameIndex = 0
	if slot.decay != nil {
		slot.decay.Cancel()
		slot.decay = nil
	}
	if slot.recover != nil {
		slot.recover.Cancel()
		slot.recover = nil
	}
	slot.state = EvolveInactive
	slot.clicks = 0
	slot.originalScale = 0
	m.active--
	if notify && m.OnSlotFreed != nil {
		m.OnSlotFreed()
	}
}

// Update advances every running timeline by dt seconds.
func (m *EvolveManager) Update(dt float64) {
	if m.disposed {
		return
	}
	for i := range m.slots {
		slot := &m.slots[i]
		if slot.state == EvolveInactive {
			continue
		}
		if slot.recover != nil {
			slot.recover.Update(float32(dt))
			if slot.recover.Done() {
				slot.recover = nil
			}
		}
		if slot.decay != nil {
			slot.decay.Update(float32(dt))
		}
	}
}

// Reset cancels all running timelines and forces every slot back to the
// inactive state. Completion callbacks do not fire.
func (m *EvolveManager) Reset() {
	for i := range m.slots {
		slot := &m.slots[i]
		if slot.state != EvolveInactive {
			m.releaseSlot(slot, false)
		}
	}
}

// Dispose tears the manager down. Any timeline callback still referenced
// elsewhere becomes a no-op through the disposed flag.
func (m *EvolveManager) Dispose() {
	m.Reset()
	m.disposed = true
}

// ActiveCount returns the number of active slots, collectibles included.
func (m *EvolveManager) ActiveCount() int {
	return m.active
}

// Capacity returns the manager's fixed slot count.
func (m *EvolveManager) Capacity() int {
	return len(m.slots)
}
