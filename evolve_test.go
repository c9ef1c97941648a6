package ember

import (
	"testing"
)

func defaultEvolveConfig() EvolveConfig {
	return EvolveConfig{
		Pause:          0.5,
		Shrink:         3.0,
		PivotOffset:    12,
		ClicksPerLevel: 3,
		Recover:        0.2,
		TerminalOffset: Vec2{Y: -6},
	}
}

// testEvolveManager builds a manager whose visuals are 20x40 quads with four
// level frames (nil images; the frame index is what the tests observe).
func testEvolveManager(capacity int, cfg EvolveConfig) *EvolveManager {
	return NewEvolveManager(capacity, cfg, func(i int) *Node {
		return quad("egg", 20, 40)
	}, NewContainer("ground"))
}

func TestEvolveSpawnEntersLevelZero(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	if !m.Spawn(100, 200, 0.8) {
		t.Fatal("spawn should succeed")
	}
	slot := &m.slots[0]
	if slot.state != EvolveLevel0 {
		t.Errorf("state = %v, want EvolveLevel0", slot.state)
	}
	if slot.clicks != 0 {
		t.Error("clicks should start at 0")
	}
	assertNear(t, "originalScale", slot.originalScale, 0.8)
	if slot.decay == nil {
		t.Error("decay timeline should be running")
	}
	if m.ActiveCount() != 1 {
		t.Errorf("active = %d, want 1", m.ActiveCount())
	}
}

func TestEvolveSpawnFailsWhenFull(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 1)
	if m.Spawn(0, 0, 1) {
		t.Error("spawn into a full pool must fail")
	}
}

func TestEvolveClickCountsTowardLevel(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 1)
	slot := &m.slots[0]

	m.clickSlot(slot)
	m.clickSlot(slot)
	if slot.state != EvolveLevel0 {
		t.Error("level must not change before clicksPerLevel")
	}
	if slot.clicks != 2 {
		t.Errorf("clicks = %d, want 2", slot.clicks)
	}

	m.clickSlot(slot)
	if slot.state != EvolveLevel1 {
		t.Error("third click should promote to level 1")
	}
	if slot.clicks != 0 {
		t.Error("clicks should reset on promotion")
	}
	if slot.node.FrameIndex != 1 {
		t.Errorf("frame = %d, want 1 after promotion", slot.node.FrameIndex)
	}
}

func TestEvolveClickCancelsDecayAndRecovers(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 0.8)
	slot := &m.slots[0]

	// Run deep into the shrink so the scale has visibly decayed.
	for i := 0; i < 20; i++ {
		m.Update(0.1)
	}
	if slot.node.ScaleY >= 0.8 {
		t.Fatal("scale should have decayed before the click")
	}
	old := slot.decay

	m.clickSlot(slot)
	if !old.Done() {
		t.Error("click should cancel the running decay")
	}
	if slot.recover == nil {
		t.Fatal("click should start a recovery bounce")
	}

	// Recovery restores the spawn-time scale regardless of decay progress.
	// The restarted decay is still in its pause here, so nothing shrinks yet.
	for i := 0; i < 4; i++ {
		m.Update(0.1)
	}
	assertNear(t, "recovered scale", slot.node.ScaleY, 0.8)
}

func TestEvolveClickMidRecoveryRestartsBounce(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 1)
	slot := &m.slots[0]

	m.clickSlot(slot)
	m.Update(0.05) // part-way through the bounce
	first := slot.recover

	m.clickSlot(slot)
	if slot.recover == first {
		t.Error("second click should restart the recovery bounce")
	}
	if slot.clicks != 2 {
		t.Errorf("clicks = %d, want 2", slot.clicks)
	}
}

func TestEvolveNonTerminalPromotionRestartsDecay(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 1)
	slot := &m.slots[0]

	for i := 0; i < 3; i++ {
		m.clickSlot(slot)
	}
	if slot.state != EvolveLevel1 {
		t.Fatal("expected level 1")
	}
	if slot.decay == nil || slot.decay.Done() {
		t.Error("an un-evolved particle must still decay if left unclicked")
	}
}

func TestEvolveTerminalPromotion(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	var eggs int
	var eggX, eggY float64
	var eggVisual *Node
	m.OnEggCreated = func(x, y float64, visual *Node) {
		eggs++
		eggX, eggY = x, y
		eggVisual = visual
	}

	m.Spawn(100, 200, 0.8)
	slot := &m.slots[0]

	// Walk the full ladder: level 0 -> 1 -> 2, then one level's worth of
	// clicks into the terminal form.
	for i := 0; i < 9; i++ {
		m.clickSlot(slot)
	}
	if slot.state != EvolveCollectible {
		t.Fatalf("state = %v, want EvolveCollectible", slot.state)
	}
	if eggs != 1 {
		t.Fatalf("eggs = %d, want 1", eggs)
	}
	if eggVisual != slot.node {
		t.Error("notification should carry the slot's visual handle")
	}
	assertNear(t, "egg x", eggX, slot.node.X)
	assertNear(t, "egg y", eggY, slot.node.Y)
	if slot.node.FrameIndex != 3 {
		t.Errorf("frame = %d, want terminal frame 3", slot.node.FrameIndex)
	}
	if slot.decay != nil {
		t.Error("terminal form must have no decay timeline")
	}
	// The slot keeps counting against the budget until released.
	if m.ActiveCount() != 1 {
		t.Errorf("active = %d, want 1", m.ActiveCount())
	}
}

func TestEvolveTerminalImmutable(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 0.8)
	slot := &m.slots[0]
	for i := 0; i < 9; i++ {
		m.clickSlot(slot)
	}

	// Let the recovery finish, then sample: the scale must hold steady.
	for i := 0; i < 10; i++ {
		m.Update(0.1)
	}
	scale := slot.node.ScaleY
	for i := 0; i < 100; i++ {
		m.Update(0.1)
		if slot.node.ScaleY != scale {
			t.Fatal("terminal scale must stay constant until release")
		}
	}

	// Further clicks are no-ops.
	m.clickSlot(slot)
	if slot.state != EvolveCollectible || slot.clicks != 0 {
		t.Error("click on a collectible must not change state")
	}
}

func TestEvolveReleaseByHandle(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 0.8)
	slot := &m.slots[0]
	for i := 0; i < 9; i++ {
		m.clickSlot(slot)
	}
	n := slot.node

	// The caller detached the visual for an external fly-to-counter
	// animation; release must bring it home and reset the slot.
	ui := NewContainer("ui")
	ui.AddChild(n)

	if !m.ReleaseByHandle(n) {
		t.Fatal("release should find the owning slot")
	}
	if slot.state != EvolveInactive {
		t.Error("released slot should be inactive")
	}
	if n.Parent != m.container {
		t.Error("release should re-parent the visual under the manager")
	}
	if n.Visible {
		t.Error("released visual should be hidden")
	}
	if n.FrameIndex != 0 {
		t.Error("released visual should be back on frame 0")
	}
	if m.ActiveCount() != 0 {
		t.Errorf("active = %d, want 0", m.ActiveCount())
	}

	// Releasing an inactive handle reports false.
	if m.ReleaseByHandle(n) {
		t.Error("double release should report false")
	}
	if m.ReleaseByHandle(quad("stranger", 1, 1)) {
		t.Error("unknown visual should report false")
	}

	// The slot is reusable afterwards.
	if !m.Spawn(5, 5, 1) {
		t.Error("released slot should accept a new spawn")
	}
}

func TestEvolveHandleClickHitTest(t *testing.T) {
	m := testEvolveManager(2, defaultEvolveConfig())
	m.Spawn(100, 200, 1)

	if m.HandleClick(500, 500) {
		t.Error("click far away should not be consumed")
	}
	if !m.HandleClick(100, 195) {
		t.Error("click inside the particle's bounds should be consumed")
	}
	if m.slots[0].clicks != 1 {
		t.Errorf("clicks = %d, want 1", m.slots[0].clicks)
	}
}

func TestEvolveDecayReleasesSlot(t *testing.T) {
	m := testEvolveManager(1, EvolveConfig{
		Pause: 0, Shrink: 0.2, ClicksPerLevel: 3, Recover: 0.1,
	})
	freed := 0
	m.OnSlotFreed = func() { freed++ }
	m.Spawn(0, 0, 1)

	for i := 0; i < 10; i++ {
		m.Update(0.05)
	}
	if m.ActiveCount() != 0 {
		t.Error("unclicked particle should decay away")
	}
	if freed != 1 {
		t.Errorf("freed = %d, want 1", freed)
	}
	if m.slots[0].state != EvolveInactive {
		t.Error("slot should be inactive after decay")
	}
}

func TestEvolveResetSkipsCallbacks(t *testing.T) {
	m := testEvolveManager(2, defaultEvolveConfig())
	freed := 0
	m.OnSlotFreed = func() { freed++ }
	m.Spawn(0, 0, 1)
	m.Spawn(10, 0, 1)

	m.Reset()
	if m.ActiveCount() != 0 {
		t.Errorf("active = %d, want 0 after Reset", m.ActiveCount())
	}
	if freed != 0 {
		t.Error("Reset must not fire slot-freed callbacks")
	}
}

func TestEvolveDisposedGuard(t *testing.T) {
	m := testEvolveManager(1, defaultEvolveConfig())
	m.Spawn(0, 0, 1)
	tl := m.slots[0].decay
	n := m.slots[0].node

	m.disposed = true
	before := n.ScaleY
	for i := 0; i < 50; i++ {
		tl.Update(0.1)
	}
	if n.ScaleY != before {
		t.Error("late callbacks after disposal must not mutate the visual")
	}
}

func TestEvolveStateLevel(t *testing.T) {
	if EvolveInactive.Level() != -1 {
		t.Error("inactive has no level")
	}
	if EvolveLevel0.Level() != 0 || EvolveLevel2.Level() != 2 {
		t.Error("level mapping broken")
	}
	if EvolveCollectible.Level() != terminalLevel {
		t.Error("collectible should be the terminal level")
	}
}
