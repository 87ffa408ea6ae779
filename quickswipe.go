package quickswipe

import "math"

// Vec2 is a 2D vector used for pointer positions, deltas and velocities.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// SquaredLen returns the squared Euclidean length of v.
func (v Vec2) SquaredLen() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.SquaredLen())
}

// NavBarPosition identifies the screen edge the navigation bar is attached
// to. It determines the axis and sign of the gesture displacement.
type NavBarPosition uint8

const (
	NavBarBottom NavBarPosition = iota // swipe up from the bottom edge
	NavBarLeft                         // seascape: bar on the left edge
	NavBarRight                        // landscape: bar on the right edge
)

// IsLeftEdge reports whether the bar is on the left edge.
func (p NavBarPosition) IsLeftEdge() bool { return p == NavBarLeft }

// IsRightEdge reports whether the bar is on the right edge.
func (p NavBarPosition) IsRightEdge() bool { return p == NavBarRight }

// IsHorizontalAxis reports whether gestures from this edge travel along X.
func (p NavBarPosition) IsHorizontalAxis() bool {
	return p == NavBarLeft || p == NavBarRight
}

// Project maps a 2D delta onto the gesture axis. Right edge: +X. Left edge:
// -X. Bottom: +Y.
func (p NavBarPosition) Project(d Vec2) float64 {
	switch p {
	case NavBarRight:
		return d.X
	case NavBarLeft:
		return -d.X
	default:
		return d.Y
	}
}

func (p NavBarPosition) String() string {
	switch p {
	case NavBarLeft:
		return "left"
	case NavBarRight:
		return "right"
	default:
		return "bottom"
	}
}

// NavMode is the system navigation mode.
type NavMode uint8

const (
	NavModeGestural  NavMode = iota // fully gestural navigation
	NavModeTwoButton                // two-button (pill + back) navigation
)

func (m NavMode) String() string {
	if m == NavModeTwoButton {
		return "two_button"
	}
	return "gestural"
}

// Action identifies the kind of a MotionEvent.
type Action uint8

const (
	ActionDown        Action = iota // first pointer went down
	ActionUp                        // last pointer went up
	ActionMove                      // one or more pointers moved
	ActionCancel                    // the gesture was aborted upstream
	ActionPointerDown               // a secondary pointer went down
	ActionPointerUp                 // a non-last pointer went up
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	case ActionPointerDown:
		return "pointer_down"
	case ActionPointerUp:
		return "pointer_up"
	}
	return "unknown"
}

// EdgeFlags is a bitmask of screen edges an event touched.
type EdgeFlags uint8

const (
	EdgeTop EdgeFlags = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
	EdgeNavBar // event originated on the navigation bar
)

// ConsumerState is the lifecycle stage of a SwipeConsumer.
type ConsumerState uint8

const (
	StateIdle                 ConsumerState = iota // no down received yet
	StateArmedOnDown                               // down received, not tracking
	StateTrackingDisplacement                      // handler created, animation requested
	StatePilferedInput                             // exclusive input ownership taken
	StateEnded                                     // terminal
)

func (s ConsumerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmedOnDown:
		return "armed_on_down"
	case StateTrackingDisplacement:
		return "tracking_displacement"
	case StatePilferedInput:
		return "pilfered_input"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// FinishState is the lifecycle stage of an AnimationController.
// Transitions only move forward.
type FinishState uint8

const (
	FinishIdle      FinishState = iota // finish not requested
	FinishRequested                    // native finish queued on the worker
	Finished                           // native finish done, callbacks drained
)

func (s FinishState) String() string {
	switch s {
	case FinishIdle:
		return "idle"
	case FinishRequested:
		return "finish_requested"
	case Finished:
		return "finished"
	}
	return "unknown"
}
