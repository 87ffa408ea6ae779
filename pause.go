package quickswipe

import (
	"math"
	"time"
)

// DefaultPauseSpeed is the axis speed (px/ms) under which motion counts as
// paused.
const DefaultPauseSpeed = 0.1

const minPauseSamples = 3

// MotionPauseDetector watches the gesture for the finger coming to rest.
type MotionPauseDetector interface {
	AddPosition(ev *MotionEvent)
	SetDisallowPause(disallow bool)
	SetOnMotionPauseListener(fn func(isPaused bool))
	Clear()
}

// PauseDetector is a speed-based MotionPauseDetector. It samples the primary
// pointer along one axis and reports a pause once the fitted speed drops
// below a threshold. While pause is disallowed it always reports "not
// paused".
type PauseDetector struct {
	horizontal bool
	speed      float64
	tracker    *VelocityTracker

	samples  int
	disallow bool
	paused   bool
	listener func(isPaused bool)
}

// NewPauseDetector creates a detector sampling X when horizontal is true,
// otherwise Y. A non-positive speed selects DefaultPauseSpeed.
func NewPauseDetector(horizontal bool, speed float64) *PauseDetector {
	if speed <= 0 {
		speed = DefaultPauseSpeed
	}
	return &PauseDetector{
		horizontal: horizontal,
		speed:      speed,
		tracker:    NewVelocityTracker(50 * time.Millisecond),
	}
}

// SetOnMotionPauseListener sets the callback fired when the paused state
// changes. nil removes it.
func (d *PauseDetector) SetOnMotionPauseListener(fn func(isPaused bool)) {
	d.listener = fn
}

// SetDisallowPause forces "not paused" while disallow is true.
func (d *PauseDetector) SetDisallowPause(disallow bool) {
	d.disallow = disallow
	if disallow {
		d.update(false)
	}
}

// DisallowPause reports the current disallow condition.
func (d *PauseDetector) DisallowPause() bool {
	return d.disallow
}

// IsPaused reports the last computed paused state.
func (d *PauseDetector) IsPaused() bool {
	return d.paused
}

// AddPosition feeds the primary pointer of ev.
func (d *PauseDetector) AddPosition(ev *MotionEvent) {
	if ev.PointerCount() == 0 {
		return
	}
	primary := MotionEvent{Action: ActionMove, Pointers: ev.Pointers[:1], Time: ev.Time}
	d.tracker.AddMovement(&primary)
	d.samples++
	if d.samples < minPauseSamples {
		return
	}
	d.tracker.ComputeCurrentVelocity(PxPerMs)
	v := d.tracker.Velocity(ev.Pointers[0].ID)
	axis := v.Y
	if d.horizontal {
		axis = v.X
	}
	d.update(!d.disallow && math.Abs(axis) < d.speed)
}

// Clear resets samples and the paused state without notifying.
func (d *PauseDetector) Clear() {
	d.tracker.Clear()
	d.samples = 0
	d.paused = false
	d.disallow = false
}

func (d *PauseDetector) update(paused bool) {
	if paused == d.paused {
		return
	}
	d.paused = paused
	if d.listener != nil {
		d.listener(paused)
	}
}
