package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/glowkit/ember"
)

var fireCmd = &cobra.Command{
	Use:   "fire",
	Short: "Fire-particle scene with the plain decay variant",
	Long: `Fire sparks launch around a bobbing subject, arc under gravity, land
on the floor line beneath it and burn down.

Controls:
  R          - Reset the effect
  S          - Save a screenshot
  Q/Esc      - Quit`,
	Run: runFire,
}

func runFire(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	d := newFireDemo(cfg)

	ebiten.SetWindowSize(flagWidth, flagHeight)
	ebiten.SetWindowTitle("Ember — Fire")
	if err := ebiten.RunGame(d); err != nil {
		logger.Fatal(err)
	}
}

type fireDemo struct {
	stage  *ember.Stage
	effect *ember.FireEffect
	sounds *soundBank
}

func newFireDemo(cfg ember.EffectConfig) *fireDemo {
	stage := ember.NewStage()
	stage.ClearColor = ember.Color{R: 0.05, G: 0.04, B: 0.07, A: 1}

	world := ember.NewContainer("world")
	stage.Root().AddChild(world)

	subject := newSubject(float64(flagWidth)/2, float64(flagHeight)*0.62)
	world.AddChild(subject)

	landed := ember.NewLandedManager(cfg.LandedPoolSize, cfg.Landed, newEmberVisual, world)
	effect := ember.NewFireEffect(cfg, ember.EffectDeps{
		Subject: subject,
		NewFlightVisual: func(i int) *ember.Node {
			n := newFlameVisual(i)
			world.AddChild(n)
			return n
		},
		Landed: landed,
	})

	d := &fireDemo{
		stage:  stage,
		effect: effect,
		sounds: newSoundBank(flagMute),
	}
	effect.SetOnParticleLand(func(ember.Landing) { d.sounds.playLand() })

	stage.Root().AddChild(ember.NewStatsWidget(effect))
	return d
}

func (d *fireDemo) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		d.effect.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		d.stage.Screenshot("fire")
	}

	dt := 1.0 / float64(ebiten.TPS())
	d.effect.Update(dt)
	d.stage.Update(dt)
	return nil
}

func (d *fireDemo) Draw(screen *ebiten.Image) {
	d.stage.Draw(screen)
}

func (d *fireDemo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return flagWidth, flagHeight
}
