package ember

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is the top-level object that owns the node tree and drives the
// per-tick update and draw walks. There is one Stage per demo scene.
type Stage struct {
	root *Node

	// ClearColor fills the screen before the draw walk.
	ClearColor Color

	// ScreenshotDir receives PNGs queued via Screenshot.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewStage creates a stage with a pre-created root container.
func NewStage() *Stage {
	return &Stage{
		root:          NewContainer("root"),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the stage's root container node.
func (s *Stage) Root() *Node {
	return s.root
}

// Update walks the tree invoking OnUpdate hooks with the frame's delta
// seconds. Simulation systems (effects, pools, managers) are advanced by
// their owners, not by the stage; the stage only services per-node hooks.
func (s *Stage) Update(dt float64) {
	updateNode(s.root, dt)
}

func updateNode(n *Node, dt float64) {
	if n.disposed {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		updateNode(child, dt)
	}
}

// Draw fills the screen with ClearColor and renders the tree in child order.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	drawNode(s.root, screen, 1.0)
	s.flushScreenshots(screen)
}

// drawNode renders one node and recurses into its children. Alpha multiplies
// down the tree; position and scale compose through WorldPosition/WorldScale
// at draw time (the tree is shallow, there is no cached transform).
func drawNode(n *Node, screen *ebiten.Image, parentAlpha float64) {
	if n.disposed || !n.Visible {
		return
	}
	alpha := parentAlpha * n.Alpha

	if n.Width > 0 && n.Height > 0 {
		img := WhitePixel
		pxW, pxH := 1.0, 1.0
		if len(n.Frames) > 0 {
			idx := n.FrameIndex
			if idx < 0 || idx >= len(n.Frames) {
				idx = 0
			}
			if n.Frames[idx] != nil {
				img = n.Frames[idx]
				b := img.Bounds()
				pxW = float64(b.Dx())
				pxH = float64(b.Dy())
			}
		}

		wx, wy := n.WorldPosition()
		sx, sy := n.WorldScale()

		op := &ebiten.DrawImageOptions{}
		// Map the source image onto the node's quad, anchor at origin.
		op.GeoM.Scale(n.Width/pxW, n.Height/pxH)
		op.GeoM.Translate(-n.AnchorX*n.Width, -n.AnchorY*n.Height)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(n.Rotation)
		op.GeoM.Translate(wx, wy)
		op.ColorScale.Scale(
			float32(n.Color.R), float32(n.Color.G), float32(n.Color.B),
			float32(alpha*n.Color.A),
		)
		screen.DrawImage(img, op)
	}

	for _, child := range n.children {
		drawNode(child, screen, alpha)
	}
}
