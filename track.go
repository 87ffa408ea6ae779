package quickswipe

// Default slop multipliers applied to the squared base touch slop.
const (
	DefaultGesturalSlopMultiplier  = 2.0
	DefaultTwoButtonSlopMultiplier = 9.0
)

// --- Pointer track ---

// PointerTrack follows the pointer that drives the gesture.
type PointerTrack struct {
	ActivePointerID int
	Down            Vec2
	Last            Vec2
}

// NewPointerTrack returns a track with no active pointer.
func NewPointerTrack() PointerTrack {
	return PointerTrack{ActivePointerID: InvalidPointerID}
}

// Start begins tracking pointer id at pos.
func (t *PointerTrack) Start(id int, pos Vec2) {
	t.ActivePointerID = id
	t.Down = pos
	t.Last = pos
}

// Retarget hands tracking off to pointer id at pos. The down position is
// shifted by the accumulated delta so Delta() is unchanged.
func (t *PointerTrack) Retarget(id int, pos Vec2) {
	d := t.Delta()
	t.Down = pos.Sub(d)
	t.Last = pos
	t.ActivePointerID = id
}

// Delta returns Last - Down.
func (t PointerTrack) Delta() Vec2 {
	return t.Last.Sub(t.Down)
}

// --- Slop ---

// SlopThresholds holds the per-gesture slop distances.
type SlopThresholds struct {
	TouchSlop        float64 // move-slop, compared against |displacement|
	SquaredTouchSlop float64 // pilfer-slop, compared against dx²+dy²
}

// NewSlopThresholds computes thresholds for the given nav mode:
// SquaredTouchSlop = multiplier × touchSlop².
func NewSlopThresholds(mode NavMode, touchSlop, gesturalMultiplier, twoButtonMultiplier float64) SlopThresholds {
	m := twoButtonMultiplier
	if mode == NavModeGestural {
		m = gesturalMultiplier
	}
	return SlopThresholds{
		TouchSlop:        touchSlop,
		SquaredTouchSlop: m * touchSlop * touchSlop,
	}
}

// PassedPilferSlop reports whether delta has reached the squared threshold.
func (s SlopThresholds) PassedPilferSlop(delta Vec2) bool {
	return delta.SquaredLen() >= s.SquaredTouchSlop
}

// SlopState records which slop gates a gesture has crossed.
type SlopState struct {
	// PassedWindowMoveSlop: displacement is forwarded to the handler.
	PassedWindowMoveSlop bool
	// PassedPilferSlop: input ownership taken. Never reset mid-gesture.
	PassedPilferSlop bool
	// PassedSlopOnThisGesture: direction latch. Starts false even when
	// continuing a previous gesture.
	PassedSlopOnThisGesture bool
}

// continuingSlopState is the initial state when an animation from a prior
// gesture is still running.
func continuingSlopState() SlopState {
	return SlopState{PassedWindowMoveSlop: true, PassedPilferSlop: true}
}
