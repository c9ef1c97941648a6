package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/tanema/gween/ease"

	"github.com/glowkit/ember"
)

var eggCmd = &cobra.Command{
	Use:   "egg",
	Short: "Evolution scene: click landed sparks to grow collectible eggs",
	Long: `The same fire effect, but landed sparks evolve instead of fading.
Clicking a spark interrupts its burn-down and counts toward evolution; a
fully evolved spark becomes an egg that flies to the counter.

Controls:
  Click      - Nurture a landed spark
  R          - Reset the effect
  S          - Save a screenshot
  Q/Esc      - Quit`,
	Run: runEgg,
}

func runEgg(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	d := newEggDemo(cfg)

	ebiten.SetWindowSize(flagWidth, flagHeight)
	ebiten.SetWindowTitle("Ember — Egg")
	if err := ebiten.RunGame(d); err != nil {
		logger.Fatal(err)
	}
}

// eggFlight tracks one collected egg mid-flight to the counter.
type eggFlight struct {
	move   *ember.TweenGroup
	shrink *ember.TweenGroup
	visual *ember.Node
}

type eggDemo struct {
	stage  *ember.Stage
	effect *ember.FireEffect
	evolve *ember.EvolveManager
	sounds *soundBank

	flights []eggFlight
	eggs    int
}

func newEggDemo(cfg ember.EffectConfig) *eggDemo {
	stage := ember.NewStage()
	stage.ClearColor = ember.Color{R: 0.05, G: 0.04, B: 0.07, A: 1}

	world := ember.NewContainer("world")
	stage.Root().AddChild(world)
	// Collected eggs fly above the world layer on their way to the counter.
	sky := ember.NewContainer("sky")
	stage.Root().AddChild(sky)

	subject := newSubject(float64(flagWidth)/2, float64(flagHeight)*0.62)
	world.AddChild(subject)

	frames := newEggFrames()
	evolve := ember.NewEvolveManager(cfg.LandedPoolSize, cfg.Evolve, func(i int) *ember.Node {
		return newEggVisual(frames)
	}, world)

	effect := ember.NewFireEffect(cfg, ember.EffectDeps{
		Subject: subject,
		NewFlightVisual: func(i int) *ember.Node {
			n := newFlameVisual(i)
			world.AddChild(n)
			return n
		},
		Landed: evolve,
	})

	d := &eggDemo{
		stage:  stage,
		effect: effect,
		evolve: evolve,
		sounds: newSoundBank(flagMute),
	}
	effect.SetOnParticleLand(func(ember.Landing) { d.sounds.playLand() })

	evolve.OnEggCreated = func(x, y float64, visual *ember.Node) {
		sky.AddChild(visual)
		d.flights = append(d.flights, eggFlight{
			move:   ember.TweenPosition(visual, float64(flagWidth)-40, 28, 0.8, ease.InOutQuad),
			shrink: ember.TweenScale(visual, 0.4, 0.4, 0.8, ease.InQuad),
			visual: visual,
		})
		d.sounds.playEvolve()
	}

	stage.Root().AddChild(ember.NewStatsWidget(effect))
	stage.Root().AddChild(d.newEggCounter())
	return d
}

// newEggCounter builds the top-right tally of collected eggs.
func (d *eggDemo) newEggCounter() *ember.Node {
	img := ebiten.NewImage(96, 20)
	node := ember.NewSprite("egg_counter", img)
	node.SetAnchor(0, 0)
	node.SetPosition(float64(flagWidth)-100, 8)

	last := -1
	node.OnUpdate = func(dt float64) {
		if d.eggs == last {
			return
		}
		last = d.eggs
		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("eggs: %d", d.eggs))
	}
	return node
}

func (d *eggDemo) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		d.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		d.stage.Screenshot("egg")
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if d.evolve.HandleClick(float64(mx), float64(my)) {
			d.sounds.playClick()
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	d.effect.Update(dt)
	d.advanceFlights(float32(dt))
	d.stage.Update(dt)
	return nil
}

// advanceFlights moves collected eggs toward the counter and banks the ones
// that arrive. Banking releases the evolution slot back to the pool.
func (d *eggDemo) advanceFlights(dt float32) {
	kept := d.flights[:0]
	for _, f := range d.flights {
		f.move.Update(dt)
		f.shrink.Update(dt)
		if !f.move.Done {
			kept = append(kept, f)
			continue
		}
		d.evolve.ReleaseByHandle(f.visual)
		d.eggs++
		d.sounds.playBank()
	}
	d.flights = kept
}

func (d *eggDemo) reset() {
	// Reset frees slots but never re-parents; eggs still in flight sit on
	// the sky layer, so release them by handle first to bring them home.
	for _, f := range d.flights {
		d.evolve.ReleaseByHandle(f.visual)
	}
	d.flights = d.flights[:0]
	d.effect.Reset()
}

func (d *eggDemo) Draw(screen *ebiten.Image) {
	d.stage.Draw(screen)
}

func (d *eggDemo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return flagWidth, flagHeight
}
