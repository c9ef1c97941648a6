package ember

import (
	"testing"
)

// quad returns a solid test sprite of the given size.
func quad(name string, w, h float64) *Node {
	n := NewSprite(name)
	n.Width = w
	n.Height = h
	return n
}

func TestNodeDefaults(t *testing.T) {
	n := NewSprite("s")
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Error("default scale should be 1")
	}
	if n.AnchorX != 0.5 || n.AnchorY != 0.5 {
		t.Error("default anchor should be center")
	}
	if !n.Visible {
		t.Error("nodes should start visible")
	}
	if n.Alpha != 1 {
		t.Error("default alpha should be 1")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")

	a.AddChild(child)
	if child.Parent != a || a.NumChildren() != 1 {
		t.Fatal("child should be under a")
	}

	b.AddChild(child)
	if child.Parent != b {
		t.Error("child should have moved to b")
	}
	if a.NumChildren() != 0 {
		t.Error("a should no longer hold child")
	}
	if b.NumChildren() != 1 {
		t.Error("b should hold child")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	b.AddChild(a)
}

func TestRemoveFromParent(t *testing.T) {
	a := NewContainer("a")
	child := NewContainer("child")
	a.AddChild(child)
	child.RemoveFromParent()
	if child.Parent != nil || a.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	// No-op without a parent.
	child.RemoveFromParent()
}

func TestWorldPositionNested(t *testing.T) {
	root := NewContainer("root")
	group := NewContainer("group")
	group.X = 100
	group.Y = 50
	group.ScaleX = 2
	group.ScaleY = 2
	root.AddChild(group)

	n := quad("n", 10, 10)
	n.X = 5
	n.Y = 5
	group.AddChild(n)

	wx, wy := n.WorldPosition()
	assertNear(t, "wx", wx, 110)
	assertNear(t, "wy", wy, 60)

	sx, sy := n.WorldScale()
	assertNear(t, "sx", sx, 2)
	assertNear(t, "sy", sy, 2)
}

func TestBoundsCenterAnchor(t *testing.T) {
	n := quad("n", 20, 40)
	n.X = 100
	n.Y = 200
	b := n.Bounds()
	assertNear(t, "X", b.X, 90)
	assertNear(t, "Y", b.Y, 180)
	assertNear(t, "Width", b.Width, 20)
	assertNear(t, "Height", b.Height, 40)
}

func TestBottomEdgeTracksScale(t *testing.T) {
	n := quad("n", 700, 700)
	n.Y = 500
	n.SetScale(0.3)
	// Center anchor: bottom = y + halfHeight*scale.
	assertNear(t, "bottom", n.BottomEdge(), 500+350*0.3)

	n.SetScale(0.6)
	assertNear(t, "bottom after scale", n.BottomEdge(), 500+350*0.6)
}

func TestBottomEdgeWithBaselineAnchor(t *testing.T) {
	n := quad("n", 20, 40)
	n.Y = 100
	n.SetAnchor(0.5, 1)
	assertNear(t, "bottom", n.BottomEdge(), 100)
}

func TestDisposeMarksSubtree(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	leaf := NewContainer("leaf")
	root.AddChild(child)
	child.AddChild(leaf)

	child.Dispose()
	if !child.IsDisposed() || !leaf.IsDisposed() {
		t.Error("dispose should mark the whole subtree")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed child should be detached from parent")
	}
	if root.IsDisposed() {
		t.Error("parent should not be disposed")
	}

	// Double dispose is a no-op.
	child.Dispose()
}

func TestSetters(t *testing.T) {
	n := quad("n", 10, 10)
	n.SetPosition(3, 4)
	n.SetScale(2)
	n.SetAnchor(0, 1)
	if n.X != 3 || n.Y != 4 {
		t.Error("SetPosition failed")
	}
	if n.ScaleX != 2 || n.ScaleY != 2 {
		t.Error("SetScale should set both axes")
	}
	if n.AnchorX != 0 || n.AnchorY != 1 {
		t.Error("SetAnchor failed")
	}
}
