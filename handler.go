package quickswipe

import "time"

// InteractionHandler turns gesture displacement into the window animation.
// It is owned by the host; the consumer only drives it.
type InteractionHandler interface {
	AnimationListener

	OnGestureStarted(isLikelyToStartNewTask bool)
	UpdateDisplacement(displacement float64)
	SetIsLikelyToStartNewTask(isLikely bool)
	OnGestureEnded(velocity float64, velocityVec Vec2, downPos Vec2)
	OnGestureCancelled()
	OnConsumerAboutToBeSwitched()

	// SetGestureEndCallback registers the callback the handler invokes once
	// the whole interaction (animation included) has finished.
	SetGestureEndCallback(fn func())
	LaunchIntent() LaunchIntent
}

// MotionPauseListener is implemented by handlers that react to the finger
// resting mid-gesture.
type MotionPauseListener interface {
	OnMotionPauseChanged(isPaused bool)
}

// HandlerFactory creates the interaction handler for a gesture that starts
// tracking at touchTime.
type HandlerFactory func(gs *GestureState, touchTime time.Duration) InteractionHandler

// AnimationManager starts or continues the recents animation.
type AnimationManager interface {
	IsRecentsAnimationRunning() bool
	StartRecentsAnimation(gs *GestureState, intent LaunchIntent, l AnimationListener) *AnimationCallbacks
	ContinueRecentsAnimation(gs *GestureState) *AnimationCallbacks
	// NotifyRecentsAnimationState replays the current animation state to l.
	NotifyRecentsAnimationState(l AnimationListener)
}

// InputMonitor grants exclusive delivery of the current gesture.
type InputMonitor interface {
	PilferPointers()
}

// BatchingReceiver controls whether move events are delivered per frame or
// as they arrive.
type BatchingReceiver interface {
	SetBatchingEnabled(enabled bool)
}

// DeviceState is the consumer's view of the navigation configuration.
type DeviceState interface {
	NavBarPosition() NavBarPosition
	IsFullyGesturalNavMode() bool
	// IsInSwipeUpTouchRegion reports whether the pointer at index i of ev
	// may start a swipe.
	IsInSwipeUpTouchRegion(ev *MotionEvent, i int) bool
}

// Environment is the resource and display capability the consumer needs.
type Environment interface {
	TouchSlop() float64
	MotionPauseMinDisplacement() float64
	DisplayRotation() int
}
