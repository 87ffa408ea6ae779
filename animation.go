package quickswipe

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EndTarget is where a released gesture settles.
type EndTarget uint8

const (
	EndTargetLastApp EndTarget = iota // back to the app the swipe started on
	EndTargetHome                     // the home screen
	EndTargetNewTask                  // quick switch to the adjacent task
)

func (t EndTarget) String() string {
	switch t {
	case EndTargetHome:
		return "home"
	case EndTargetNewTask:
		return "new_task"
	}
	return "last_app"
}

// IsHome reports whether the target finishes the animation to home.
func (t EndTarget) IsHome() bool { return t == EndTargetHome }

// DefaultFlingVelocity is the axis speed (px/ms) that counts as a fling.
const DefaultFlingVelocity = 1.0

// ChooseEndTarget picks the settle target from the tracked displacement
// (negative = toward home) and the projected release velocity. homeDistance
// is the displacement magnitude that commits to home without a fling.
func ChooseEndTarget(displacement, velocity, homeDistance float64, isLikelyToStartNewTask bool) EndTarget {
	switch {
	case velocity <= -DefaultFlingVelocity:
		return EndTargetHome
	case velocity >= DefaultFlingVelocity:
		return EndTargetLastApp
	case isLikelyToStartNewTask:
		return EndTargetNewTask
	case -displacement >= homeDistance:
		return EndTargetHome
	}
	return EndTargetLastApp
}

// SettleAnimation eases the displacement from its release value to the end
// target. Call Update(dt) each frame. The host applies Value to its window
// transform.
type SettleAnimation struct {
	tween  *gween.Tween
	Target EndTarget
	Value  float64
	Done   bool
}

// NewSettleAnimation animates from -> to over duration seconds using fn. A
// nil fn selects ease.OutCubic.
func NewSettleAnimation(from, to float64, duration float32, target EndTarget, fn ease.TweenFunc) *SettleAnimation {
	if fn == nil {
		fn = ease.OutCubic
	}
	return &SettleAnimation{
		tween:  gween.New(float32(from), float32(to), duration, fn),
		Target: target,
		Value:  from,
	}
}

// SettleDuration scales the base duration down for fast releases so the
// window keeps up with the finger. Result is in seconds, never below 40% of
// base.
func SettleDuration(base float32, velocity float64) float32 {
	f := 1 / (1 + math.Abs(velocity))
	return base * float32(math.Max(f, 0.4))
}

// Update advances the tween by dt seconds and returns the current value and
// whether the animation has finished.
func (a *SettleAnimation) Update(dt float32) (float64, bool) {
	if a.Done {
		return a.Value, true
	}
	v, finished := a.tween.Update(dt)
	a.Value = float64(v)
	a.Done = finished
	return a.Value, a.Done
}
