package ember

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timeline runs an optional pause followed by a single numeric animation from
// a start value to an end value over a duration with an easing function.
// The owner calls Update(dt) each tick; there is no global animation manager.
//
// Timelines are the deferred-continuation primitive of the particle engine:
// decay (pause then shrink) and recovery (bounce back to full scale) are both
// Timelines. A timeline holds its target node only to honor the liveness
// guard: if the target has been disposed, the timeline finishes silently and
// no callback fires. Owners carrying their own teardown flag must check it
// inside OnStep/OnComplete as well; cancellation of the owner does not
// retroactively unschedule a timeline another reference still updates.
type Timeline struct {
	pause  float32
	tween  *gween.Tween
	target *Node

	// OnStep is called once per Update while the animation phase is running,
	// with the current value.
	OnStep func(value float32)
	// OnComplete is called exactly once when the animation finishes.
	// Cancelled timelines never fire it.
	OnComplete func()

	done bool
}

// NewTimeline creates a timeline that waits pause seconds and then animates
// from `from` to `to` over duration seconds using the easing function.
// A nil target disables the disposed-target guard.
func NewTimeline(target *Node, from, to, pause, duration float32, fn ease.TweenFunc) *Timeline {
	return &Timeline{
		pause:  pause,
		tween:  gween.New(from, to, duration, fn),
		target: target,
	}
}

// Update advances the timeline by dt seconds.
func (tl *Timeline) Update(dt float32) {
	if tl.done {
		return
	}
	if tl.target != nil && tl.target.IsDisposed() {
		tl.done = true
		return
	}
	if tl.pause > 0 {
		tl.pause -= dt
		if tl.pause > 0 {
			return
		}
		// Carry the overshoot into the animation phase.
		dt = -tl.pause
		tl.pause = 0
		if dt <= 0 {
			return
		}
	}
	val, finished := tl.tween.Update(dt)
	if tl.OnStep != nil {
		tl.OnStep(val)
	}
	if finished {
		tl.done = true
		if tl.OnComplete != nil {
			tl.OnComplete()
		}
	}
}

// Cancel marks the timeline done without firing OnComplete. Cancellation is a
// pure local operation; it is always safe, including mid-pause.
func (tl *Timeline) Cancel() {
	tl.done = true
}

// Done reports whether the timeline has finished or been cancelled.
func (tl *Timeline) Done() bool {
	return tl.done
}

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha) and call Update(dt) each frame. If the target node is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY
// to the given target values over the specified duration.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target
// value over the specified duration.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}
