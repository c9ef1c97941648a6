package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/glowkit/ember"
)

const (
	subjectW = 48
	subjectH = 48
)

// flamePalette cycles across flight pool slots so overlapping sparks read as
// individual tongues of flame.
var flamePalette = []ember.Color{
	{R: 1.0, G: 0.78, B: 0.18, A: 1},
	{R: 1.0, G: 0.55, B: 0.10, A: 1},
	{R: 0.95, G: 0.35, B: 0.05, A: 1},
	{R: 1.0, G: 0.88, B: 0.45, A: 1},
}

// newSubject builds the bobbing main subject at the scene's focal point.
func newSubject(x, y float64) *ember.Node {
	n := ember.NewSprite("subject")
	n.Width = subjectW
	n.Height = subjectH
	n.Color = ember.Color{R: 0.55, G: 0.20, B: 0.08, A: 1}
	n.SetPosition(x, y)

	var phase float64
	n.OnUpdate = func(dt float64) {
		phase += dt
		n.Y = y + 4*math.Sin(phase*2)
	}
	return n
}

// newFlameVisual creates the renderable for flight pool slot i.
func newFlameVisual(i int) *ember.Node {
	n := ember.NewSprite("flame")
	n.Width = 10
	n.Height = 14
	n.Color = flamePalette[i%len(flamePalette)]
	return n
}

// newEmberVisual creates the renderable for a landed spark. Tall and narrow:
// the shrink decay reads as the ember burning down into the floor.
func newEmberVisual(i int) *ember.Node {
	n := ember.NewSprite("ember")
	n.Width = 12
	n.Height = 24
	n.Color = ember.Color{R: 0.95, G: 0.45, B: 0.12, A: 1}
	return n
}

// eggPalette maps evolution levels to frame colors, dimmest to brightest.
var eggPalette = []color.RGBA{
	{R: 214, G: 120, B: 40, A: 255},  // level 0: fresh spark
	{R: 230, G: 180, B: 70, A: 255},  // level 1
	{R: 240, G: 220, B: 140, A: 255}, // level 2
	{R: 250, G: 250, B: 230, A: 255}, // collectible egg
}

// newEggFrames builds one 1px frame per evolution level; every egg visual
// shares the set.
func newEggFrames() []*ebiten.Image {
	frames := make([]*ebiten.Image, len(eggPalette))
	for i, c := range eggPalette {
		img := ebiten.NewImage(1, 1)
		img.Fill(c)
		frames[i] = img
	}
	return frames
}

// newEggVisual creates the renderable for an evolving slot, one frame per
// level.
func newEggVisual(frames []*ebiten.Image) *ember.Node {
	n := ember.NewSprite("egg", frames...)
	n.Width = 14
	n.Height = 22
	return n
}
