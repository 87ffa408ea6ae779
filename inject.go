package quickswipe

import "time"

// DefaultFrameInterval is the time between synthetic events.
const DefaultFrameInterval = 16 * time.Millisecond

// Injector builds synthetic motion events for a multi-pointer stroke. Each
// call advances the clock by one frame and returns the event it produced.
type Injector struct {
	Interval time.Duration
	now      time.Duration
	started  bool
	pointers []Pointer
}

// NewInjector creates an injector starting at time zero.
func NewInjector() *Injector {
	return &Injector{Interval: DefaultFrameInterval}
}

// Now returns the timestamp of the most recent event.
func (j *Injector) Now() time.Duration {
	return j.now
}

// Wait advances the clock without producing an event.
func (j *Injector) Wait(d time.Duration) {
	j.now += d
}

// Press puts the first pointer down at (x, y).
func (j *Injector) Press(id int, x, y float64) *MotionEvent {
	j.pointers = append(j.pointers[:0], Pointer{ID: id, X: x, Y: y})
	return j.emit(ActionDown, 0)
}

// PointerDown adds a secondary pointer.
func (j *Injector) PointerDown(id int, x, y float64) *MotionEvent {
	j.pointers = append(j.pointers, Pointer{ID: id, X: x, Y: y})
	return j.emit(ActionPointerDown, len(j.pointers)-1)
}

// Move moves pointer id to (x, y). Other pointers stay put.
func (j *Injector) Move(id int, x, y float64) *MotionEvent {
	if i := j.index(id); i >= 0 {
		j.pointers[i].X, j.pointers[i].Y = x, y
	}
	return j.emit(ActionMove, 0)
}

// PointerUp lifts a non-last pointer. The event still carries it.
func (j *Injector) PointerUp(id int) *MotionEvent {
	i := j.index(id)
	if i < 0 {
		i = 0
	}
	ev := j.emit(ActionPointerUp, i)
	if i < len(j.pointers) {
		j.pointers = append(j.pointers[:i], j.pointers[i+1:]...)
	}
	return ev
}

// Release lifts the last pointer at (x, y).
func (j *Injector) Release(x, y float64) *MotionEvent {
	if len(j.pointers) > 0 {
		j.pointers[0].X, j.pointers[0].Y = x, y
	}
	ev := j.emit(ActionUp, 0)
	j.pointers = j.pointers[:0]
	return ev
}

// Cancel aborts the stroke.
func (j *Injector) Cancel() *MotionEvent {
	ev := j.emit(ActionCancel, 0)
	j.pointers = j.pointers[:0]
	return ev
}

// Drag returns a full single-pointer stroke: press at from, frames-2
// linearly interpolated moves and a release at to. Minimum frames is 2.
func (j *Injector) Drag(id int, from, to Vec2, frames int) []*MotionEvent {
	if frames < 2 {
		frames = 2
	}
	events := []*MotionEvent{j.Press(id, from.X, from.Y)}
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		events = append(events, j.Move(id, from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t))
	}
	return append(events, j.Release(to.X, to.Y))
}

func (j *Injector) index(id int) int {
	for i := range j.pointers {
		if j.pointers[i].ID == id {
			return i
		}
	}
	return -1
}

func (j *Injector) emit(action Action, index int) *MotionEvent {
	if j.Interval <= 0 {
		j.Interval = DefaultFrameInterval
	}
	if j.started {
		j.now += j.Interval
	}
	j.started = true
	return &MotionEvent{
		Action:      action,
		ActionIndex: index,
		Pointers:    append([]Pointer(nil), j.pointers...),
		Time:        j.now,
	}
}
