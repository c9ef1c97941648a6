// Package ember is a bounded particle lifecycle engine for [Ebitengine],
// built for the demo suite under cmd/emberdemo.
//
// The engine drives a two-stage particle lifecycle over fixed-capacity pools:
// particles are launched from a spawn region near the scene's main subject,
// fly under gravity, and on crossing the floor line hand off to one of two
// landed variants — a timed decay ([LandedManager]) or a click-driven
// evolution toward a permanent collectible ([EvolveManager]). A global
// [SpriteBudget] is validated before any object is created, and pool
// exhaustion degrades to silently dropped events, never an error.
//
// # Quick start
//
//	stage := ember.NewStage()
//	subject := ember.NewSprite("bonfire")
//	stage.Root().AddChild(subject)
//
//	cfg := ember.DefaultEffectConfig()
//	landed := ember.NewLandedManager(cfg.LandedPoolSize, cfg.Landed, nil, stage.Root())
//	effect := ember.NewFireEffect(cfg, ember.EffectDeps{
//		Subject: subject,
//		Landed:  landed,
//	})
//
// Advance everything from the game's Update with the frame's delta seconds:
//
//	effect.Update(dt)
//	stage.Update(dt)
//
// # Concurrency
//
// Everything is single-threaded and tick-driven. Decay and recovery are
// deferred continuations expressed as [Timeline] values the owning manager
// advances each tick; ordinary control flow never blocks on an animation.
// Within one tick, physics runs before collision detection and collision
// detection before new spawns, so a landing can never bypass the budget
// check by respawning in the same tick.
//
// Deferred callbacks guard against teardown: every step and completion
// callback checks the owning manager's disposed flag and the target node's
// [Node.IsDisposed] before mutating anything.
//
// [Ebitengine]: https://ebitengine.org
package ember
