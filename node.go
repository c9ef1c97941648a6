package ember

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Node is the retained visual element. A single flat struct covers both
// containers and sprites to avoid interface dispatch on the hot path.
//
// The particle engine owns its nodes for the lifetime of a pool: nodes are
// created once at pool initialization, then hidden and reused. Dispose is
// reserved for scene teardown.
type Node struct {
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). AnchorX/AnchorY are normalized [0, 1] and locate the
	// point of the untransformed quad that (X, Y) refers to; scale and
	// rotation are applied around it. Default is (0.5, 0.5), the center.
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	AnchorX        float64
	AnchorY        float64

	// Untransformed size in pixels. Set from the first frame's bounds when a
	// sprite is created from frames, or explicitly for solid color quads.
	Width, Height float64

	// Appearance. Frames is the sprite's frame set; FrameIndex selects the
	// frame drawn this tick. An empty frame set with nonzero Width/Height
	// renders a solid quad tinted with Color.
	Frames     []*ebiten.Image
	FrameIndex int
	Color      Color
	Alpha      float64

	Visible bool

	// OnUpdate, when set, is called once per tick during the stage update
	// walk with the frame's delta seconds.
	OnUpdate func(dt float64)

	UserData any

	disposed bool
}

// nodeDefaults sets the common default field values shared by constructors.
func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.AnchorX = 0.5
	n.AnchorY = 0.5
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node from a frame set. The node's Width and
// Height are taken from the first frame. Pass no frames and set Width/Height
// plus Color for a solid quad.
func NewSprite(name string, frames ...*ebiten.Image) *Node {
	n := &Node{Name: name, Frames: frames}
	nodeDefaults(n)
	if len(frames) > 0 && frames[0] != nil {
		b := frames[0].Bounds()
		n.Width = float64(b.Dx())
		n.Height = float64(b.Dy())
	}
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("ember: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("ember: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("ember: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Transform helpers ---

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets a uniform scale on both axes.
func (n *Node) SetScale(s float64) {
	n.ScaleX = s
	n.ScaleY = s
}

// SetAnchor sets the normalized anchor point.
func (n *Node) SetAnchor(ax, ay float64) {
	n.AnchorX = ax
	n.AnchorY = ay
}

// WorldPosition returns the node's anchor point in stage coordinates,
// accumulating ancestor translation and scale. Container rotation does not
// propagate; containers in this engine are axis-aligned groupings.
func (n *Node) WorldPosition() (x, y float64) {
	x, y = n.X, n.Y
	for p := n.Parent; p != nil; p = p.Parent {
		x = p.X + x*p.ScaleX
		y = p.Y + y*p.ScaleY
	}
	return x, y
}

// WorldScale returns the node's scale multiplied by all ancestor scales.
func (n *Node) WorldScale() (sx, sy float64) {
	sx, sy = n.ScaleX, n.ScaleY
	for p := n.Parent; p != nil; p = p.Parent {
		sx *= p.ScaleX
		sy *= p.ScaleY
	}
	return sx, sy
}

// Bounds returns the node's world-space axis-aligned bounds, ignoring
// rotation. Used for hit testing and floor derivation.
func (n *Node) Bounds() Rect {
	wx, wy := n.WorldPosition()
	sx, sy := n.WorldScale()
	w := n.Width * sx
	h := n.Height * sy
	return Rect{
		X:      wx - n.AnchorX*w,
		Y:      wy - n.AnchorY*h,
		Width:  w,
		Height: h,
	}
}

// BottomEdge returns the world-space Y of the node's visual bottom edge.
// The effective footprint tracks the live scale, so this changes whenever a
// scale animation is running.
func (n *Node) BottomEdge() float64 {
	_, wy := n.WorldPosition()
	_, sy := n.WorldScale()
	return wy + (1-n.AnchorY)*n.Height*sy
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Deferred animation callbacks check
// IsDisposed before mutating a node.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Frames = nil
	n.OnUpdate = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
