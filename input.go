package quickswipe

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// mousePointerID is the pointer id given to the left mouse button. Touch ids
// are shifted by one so they never collide with it.
const mousePointerID = 0

// --- Receiver ---

// InputReceiver delivers events to a consumer. With batching off every event
// is delivered as it arrives. With batching on, move events wait for the
// next Flush, which the host calls once per frame. Events are never dropped
// or reordered.
type InputReceiver struct {
	deliver  func(*MotionEvent)
	batching bool
	pending  []*MotionEvent
}

// NewInputReceiver creates a receiver delivering to fn.
func NewInputReceiver(fn func(*MotionEvent)) *InputReceiver {
	return &InputReceiver{deliver: fn}
}

// SetBatchingEnabled switches delivery mode. Turning batching off flushes
// anything pending.
func (r *InputReceiver) SetBatchingEnabled(enabled bool) {
	r.batching = enabled
	if !enabled {
		r.Flush()
	}
}

// Batching reports whether move events are batched.
func (r *InputReceiver) Batching() bool {
	return r.batching
}

// Pending returns the number of events waiting for Flush.
func (r *InputReceiver) Pending() int {
	return len(r.pending)
}

// Receive accepts one event from the source.
func (r *InputReceiver) Receive(ev *MotionEvent) {
	if r.batching && ev.Action == ActionMove {
		r.pending = append(r.pending, ev)
		return
	}
	r.Flush()
	r.deliver(ev)
}

// Flush delivers pending events in order.
func (r *InputReceiver) Flush() {
	for len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending[0] = nil
		r.pending = r.pending[1:]
		r.deliver(ev)
	}
}

// --- Touch source ---

// TouchSource turns per-frame pointer snapshots into ordered motion events.
type TouchSource struct {
	active       []Pointer
	prevTouchIDs []ebiten.TouchID
	start        time.Time
}

// NewTouchSource creates an empty source.
func NewTouchSource() *TouchSource {
	return &TouchSource{start: time.Now()}
}

// Active returns the pointers currently down, in down order.
func (s *TouchSource) Active() []Pointer {
	return s.active
}

// Poll reads ebiten touches and the left mouse button and returns the events
// since the previous poll. Must be called from ebiten's Update.
func (s *TouchSource) Poll() []*MotionEvent {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	snapshot := make([]Pointer, 0, len(touchIDs)+1)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		snapshot = append(snapshot, Pointer{ID: mousePointerID, X: float64(mx), Y: float64(my)})
	}
	for _, tid := range touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		snapshot = append(snapshot, Pointer{ID: int(tid) + 1, X: float64(tx), Y: float64(ty)})
	}
	return s.Update(time.Since(s.start), snapshot)
}

// Update diffs snapshot against the pointers currently down. Moves are
// reported first, then lifts, then new contacts.
func (s *TouchSource) Update(now time.Duration, snapshot []Pointer) []*MotionEvent {
	var events []*MotionEvent

	seen := make(map[int]Pointer, len(snapshot))
	for _, p := range snapshot {
		seen[p.ID] = p
	}

	moved := false
	for i, p := range s.active {
		if q, ok := seen[p.ID]; ok && (q.X != p.X || q.Y != p.Y) {
			s.active[i] = q
			moved = true
		}
	}
	if moved {
		events = append(events, s.event(ActionMove, 0, now))
	}

	for i := 0; i < len(s.active); {
		p := s.active[i]
		if _, ok := seen[p.ID]; ok {
			i++
			continue
		}
		if len(s.active) == 1 {
			events = append(events, s.event(ActionUp, 0, now))
		} else {
			events = append(events, s.event(ActionPointerUp, i, now))
		}
		s.active = append(s.active[:i], s.active[i+1:]...)
	}

	for _, p := range snapshot {
		if s.indexOf(p.ID) >= 0 {
			continue
		}
		s.active = append(s.active, p)
		if len(s.active) == 1 {
			events = append(events, s.event(ActionDown, 0, now))
		} else {
			events = append(events, s.event(ActionPointerDown, len(s.active)-1, now))
		}
	}
	return events
}

// Cancel drops all pointers and returns a cancel event if any were down.
func (s *TouchSource) Cancel(now time.Duration) *MotionEvent {
	if len(s.active) == 0 {
		return nil
	}
	ev := s.event(ActionCancel, 0, now)
	s.active = s.active[:0]
	return ev
}

func (s *TouchSource) indexOf(id int) int {
	for i := range s.active {
		if s.active[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TouchSource) event(action Action, index int, now time.Duration) *MotionEvent {
	return &MotionEvent{
		Action:      action,
		ActionIndex: index,
		Pointers:    append([]Pointer(nil), s.active...),
		Time:        now,
	}
}
