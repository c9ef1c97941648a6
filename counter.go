package ember

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewStatsWidget creates a Node that displays FPS/TPS and the effect's live
// sprite counts (flying, landed, total versus budget). The text refreshes
// every ~0.5 seconds. It uses a custom internal image and
// ebitenutil.DebugPrint for rendering.
func NewStatsWidget(effect *FireEffect) *Node {
	img := ebiten.NewImage(168, 64)

	node := NewSprite("stats_widget", img)
	node.SetAnchor(0, 0)

	var lastUpdate float64

	node.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		img.Clear()
		// Semi-transparent background for readability.
		img.Fill(color.RGBA{0, 0, 0, 128})

		ebitenutil.DebugPrint(img, fmt.Sprintf(
			"FPS: %.1f  TPS: %.1f\nflying: %d/%d\nlanded: %d/%d\nsprites: %d/%d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			effect.ActiveFlying(), effect.Pool().Capacity(),
			effect.ActiveLanded(), effect.landed.Capacity(),
			effect.SpriteCount(), effect.Config().Budget.Max,
		))
	}

	return node
}
