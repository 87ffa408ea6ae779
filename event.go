package quickswipe

import "time"

// InvalidPointerID marks "no active pointer".
const InvalidPointerID = -1

// Pointer is one contact in a MotionEvent.
type Pointer struct {
	ID   int
	X, Y float64
}

// Pos returns the pointer position as a Vec2.
func (p Pointer) Pos() Vec2 {
	return Vec2{p.X, p.Y}
}

// MotionEvent is a snapshot of all pointers at one instant.
//
// ActionIndex is the index into Pointers of the pointer that changed for
// ActionPointerDown and ActionPointerUp. For ActionPointerUp the lifted
// pointer is still present in Pointers at its final position.
type MotionEvent struct {
	Action      Action
	ActionIndex int
	Pointers    []Pointer
	Time        time.Duration // uptime at which the event occurred
	EdgeFlags   EdgeFlags
}

// PointerCount returns the number of pointers in the event.
func (e *MotionEvent) PointerCount() int {
	return len(e.Pointers)
}

// FindPointerIndex returns the index of the pointer with the given id, or -1.
func (e *MotionEvent) FindPointerIndex(id int) int {
	for i := range e.Pointers {
		if e.Pointers[i].ID == id {
			return i
		}
	}
	return -1
}

// PointerID returns the id of the pointer at index i.
func (e *MotionEvent) PointerID(i int) int {
	return e.Pointers[i].ID
}

// Pos returns the position of the pointer at index i.
func (e *MotionEvent) Pos(i int) Vec2 {
	return e.Pointers[i].Pos()
}

// X returns the x position of the primary pointer, or 0 if there is none.
func (e *MotionEvent) X() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].X
}

// Y returns the y position of the primary pointer, or 0 if there is none.
func (e *MotionEvent) Y() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].Y
}

// WithAction returns a copy of e with a different action. The pointer slice
// is shared.
func (e *MotionEvent) WithAction(a Action) *MotionEvent {
	c := *e
	c.Action = a
	return &c
}
