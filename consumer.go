package quickswipe

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

// ConsumerTypeOtherActivity names the consumer that handles swipes starting
// over another app.
const ConsumerTypeOtherActivity = "other_activity"

// ConsumerConfig carries the collaborators of a SwipeConsumer.
type ConsumerConfig struct {
	Device     DeviceState
	Env        Environment
	Animations AnimationManager
	Gesture    *GestureState
	NewHandler HandlerFactory
	Monitor    InputMonitor     // nil: pilfering is skipped
	Receiver   BatchingReceiver // nil: batching hints are skipped

	// PauseDetector defaults to a PauseDetector on the gesture axis.
	PauseDetector MotionPauseDetector
	// CancelDebounce cancels the animation after a gesture that never
	// passed move slop. Shared between consumers; nil disables the cancel.
	CancelDebounce *Debouncer

	Settings Config

	// DeferredDownTarget delays tracking until the pilfer slop is passed.
	DeferredDownTarget     bool
	DisableHorizontalSwipe bool

	// OnComplete runs once the interaction has fully finished.
	OnComplete func(*SwipeConsumer)

	Logger zerolog.Logger
}

// SwipeConsumer interprets the pointer stream of a swipe that starts over
// another app and drives an InteractionHandler with the resulting
// displacement and release velocity. One instance serves one gesture. All
// methods must be called on the main queue.
type SwipeConsumer struct {
	device     DeviceState
	env        Environment
	animations AnimationManager
	gesture    *GestureState
	newHandler HandlerFactory
	monitor    InputMonitor
	receiver   BatchingReceiver
	pause      MotionPauseDetector
	debounce   *Debouncer
	onComplete func(*SwipeConsumer)
	logger     zerolog.Logger

	navBar                     NavBarPosition
	gestural                   bool
	slop                       SlopThresholds
	motionPauseMinDisplacement float64
	deferred                   bool
	disableHorizontalSwipe     bool

	phase             ConsumerState
	state             SlopState
	track             PointerTrack
	startDisplacement float64
	lastRotation      int
	velocity          *VelocityTracker
	handler           InteractionHandler
	callbacks         *AnimationCallbacks
	completed         bool
}

// NewSwipeConsumer creates a consumer. If an animation is already running
// the consumer continues it: both slop gates start passed and the down is
// never deferred.
func NewSwipeConsumer(cfg ConsumerConfig) *SwipeConsumer {
	settings := cfg.Settings.withDefaults()
	navBar := cfg.Device.NavBarPosition()
	gestural := cfg.Device.IsFullyGesturalNavMode()
	mode := NavModeTwoButton
	if gestural {
		mode = NavModeGestural
	}

	c := &SwipeConsumer{
		device:     cfg.Device,
		env:        cfg.Env,
		animations: cfg.Animations,
		gesture:    cfg.Gesture,
		newHandler: cfg.NewHandler,
		monitor:    cfg.Monitor,
		receiver:   cfg.Receiver,
		pause:      cfg.PauseDetector,
		debounce:   cfg.CancelDebounce,
		onComplete: cfg.OnComplete,

		navBar:                     navBar,
		gestural:                   gestural,
		slop:                       NewSlopThresholds(mode, cfg.Env.TouchSlop(), settings.GesturalSlopMultiplier, settings.TwoButtonSlopMultiplier),
		motionPauseMinDisplacement: cfg.Env.MotionPauseMinDisplacement(),

		phase:        StateIdle,
		track:        NewPointerTrack(),
		lastRotation: -1,
		velocity:     NewVelocityTracker(settings.VelocityHorizon()),
	}
	if c.pause == nil {
		c.pause = NewPauseDetector(navBar.IsHorizontalAxis(), settings.PauseSpeed)
	}
	if c.monitor == nil {
		c.monitor = nopInput{}
	}
	if c.receiver == nil {
		c.receiver = nopInput{}
	}

	continuing := cfg.Animations.IsRecentsAnimationRunning()
	c.deferred = !continuing && cfg.DeferredDownTarget
	if continuing {
		c.state = continuingSlopState()
	}
	c.disableHorizontalSwipe = !c.state.PassedPilferSlop && cfg.DisableHorizontalSwipe

	c.logger = cfg.Logger.With().
		Str("component", "consumer").
		Stringer("gesture", cfg.Gesture.ID()).
		Logger()
	return c
}

// Type returns the consumer type name.
func (c *SwipeConsumer) Type() string { return ConsumerTypeOtherActivity }

// IsConsumerDetachedFromGesture reports that the animation outlives this
// consumer.
func (c *SwipeConsumer) IsConsumerDetachedFromGesture() bool { return true }

// State returns the lifecycle stage.
func (c *SwipeConsumer) State() ConsumerState { return c.phase }

// Slop returns the slop gates crossed so far.
func (c *SwipeConsumer) Slop() SlopState { return c.state }

// Thresholds returns the slop distances fixed for this gesture.
func (c *SwipeConsumer) Thresholds() SlopThresholds { return c.slop }

// Track returns the active pointer track.
func (c *SwipeConsumer) Track() PointerTrack { return c.track }

// StartDisplacement returns the offset subtracted from raw displacement.
func (c *SwipeConsumer) StartDisplacement() float64 { return c.startDisplacement }

// Handler returns the interaction handler, or nil before tracking starts and
// after the interaction finished.
func (c *SwipeConsumer) Handler() InteractionHandler { return c.handler }

// AllowInterceptByParent reports whether ancestors may still take the
// gesture.
func (c *SwipeConsumer) AllowInterceptByParent() bool {
	return !c.state.PassedPilferSlop || c.gesture.HasState(StateOverscrollWindowCreated)
}

// OnMotionEvent processes one event. Events after the gesture ended are
// ignored.
func (c *SwipeConsumer) OnMotionEvent(ev *MotionEvent) {
	if c.velocity == nil {
		return
	}

	if rot := c.env.DisplayRotation(); rot != c.lastRotation {
		// Velocities across a coordinate-frame change are meaningless.
		c.track.Last = Vec2{ev.X(), ev.Y()}
		c.velocity.Clear()
		c.lastRotation = rot
	}

	if ev.Action == ActionPointerDown {
		c.velocity.Clear()
	}
	c.velocity.AddMovement(ev)
	if ev.Action == ActionPointerUp {
		c.velocity.Clear()
		c.pause.Clear()
	}

	switch ev.Action {
	case ActionDown:
		c.onDown(ev)
	case ActionPointerDown:
		if !c.state.PassedPilferSlop && !c.device.IsInSwipeUpTouchRegion(ev, ev.ActionIndex) {
			// Multi-touch outside the swipe region before the gesture is
			// recognized.
			c.forceCancelGesture(ev)
		}
	case ActionPointerUp:
		c.onPointerUp(ev)
	case ActionMove:
		c.onMove(ev)
	case ActionUp, ActionCancel:
		if !c.state.PassedWindowMoveSlop {
			c.logger.Debug().
				Float64("disp", c.track.Delta().SquaredLen()).
				Float64("slop", c.slop.SquaredTouchSlop).
				Msg("quickswitch failed: move slop not passed")
		}
		c.finishTouchTracking(ev)
	}
}

func (c *SwipeConsumer) onDown(ev *MotionEvent) {
	if ev.PointerCount() == 0 {
		return
	}
	// Full-rate delivery until the gesture is recognized.
	c.receiver.SetBatchingEnabled(false)
	c.track.Start(ev.PointerID(0), ev.Pos(0))
	c.phase = StateArmedOnDown

	// Starting on down gives the launcher more time to draw, unless the
	// down may belong to a system affordance.
	if !c.deferred {
		c.startTouchTracking(ev.Time)
	}
}

func (c *SwipeConsumer) onPointerUp(ev *MotionEvent) {
	i := ev.ActionIndex
	if i < 0 || i >= ev.PointerCount() || ev.PointerID(i) != c.track.ActivePointerID {
		return
	}
	next := 0
	if i == 0 {
		next = 1
	}
	if next >= ev.PointerCount() {
		return
	}
	c.track.Retarget(ev.PointerID(next), ev.Pos(next))
}

func (c *SwipeConsumer) onMove(ev *MotionEvent) {
	i := ev.FindPointerIndex(c.track.ActivePointerID)
	if i < 0 {
		return
	}
	c.track.Last = ev.Pos(i)
	delta := c.track.Delta()
	displacement := c.navBar.Project(delta)

	if !c.state.PassedWindowMoveSlop && !c.deferred && math.Abs(displacement) > c.slop.TouchSlop {
		c.passWindowMoveSlop(displacement)
	}

	horizontalDist := math.Abs(delta.X)
	upDist := -displacement
	passedSlop := c.slop.PassedPilferSlop(delta)
	if passedSlop {
		c.state.PassedSlopOnThisGesture = true
	}
	// Until slop is passed on this gesture the direction is unknown, so a
	// continued gesture assumes quick switch.
	continuedWithoutSlop := !c.state.PassedSlopOnThisGesture && c.state.PassedPilferSlop
	isLikelyToStartNewTask := continuedWithoutSlop || horizontalDist > upDist

	if !c.state.PassedPilferSlop && passedSlop {
		if c.disableHorizontalSwipe && math.Abs(delta.X) > math.Abs(delta.Y) {
			c.forceCancelGesture(ev)
			return
		}
		c.state.PassedPilferSlop = true
		if c.deferred {
			c.startTouchTracking(ev.Time)
		}
		if !c.state.PassedWindowMoveSlop {
			c.passWindowMoveSlop(displacement)
		}
		c.notifyGestureStarted(isLikelyToStartNewTask)
	}

	if c.handler == nil {
		return
	}
	if c.state.PassedWindowMoveSlop {
		c.handler.UpdateDisplacement(displacement - c.startDisplacement)
	}
	if c.gestural {
		c.pause.SetDisallowPause(upDist < c.motionPauseMinDisplacement || isLikelyToStartNewTask)
		c.pause.AddPosition(ev)
		c.handler.SetIsLikelyToStartNewTask(isLikelyToStartNewTask)
	}
}

// passWindowMoveSlop latches move slop. The start offset makes the first
// tracked frame begin at zero net movement instead of a full slop jump.
func (c *SwipeConsumer) passWindowMoveSlop(displacement float64) {
	c.state.PassedWindowMoveSlop = true
	c.startDisplacement = math.Min(displacement, -c.slop.TouchSlop)
}

func (c *SwipeConsumer) notifyGestureStarted(isLikelyToStartNewTask bool) {
	c.logger.Debug().Bool("likelyNewTask", isLikelyToStartNewTask).Msg("startQuickstep")
	if c.handler == nil {
		return
	}
	c.logger.Debug().Msg("pilferPointers")
	c.monitor.PilferPointers()
	// Recognized: batched delivery is enough from here on.
	c.receiver.SetBatchingEnabled(true)
	c.phase = StatePilferedInput
	c.handler.OnGestureStarted(isLikelyToStartNewTask)
}

func (c *SwipeConsumer) startTouchTracking(touchTime time.Duration) {
	c.logger.Debug().Dur("touchTime", touchTime).Msg("startRecentsAnimation")

	h := c.newHandler(c.gesture, touchTime)
	c.handler = h
	h.SetGestureEndCallback(c.onInteractionGestureFinished)
	if pl, ok := h.(MotionPauseListener); ok {
		c.pause.SetOnMotionPauseListener(pl.OnMotionPauseChanged)
	}
	c.phase = StateTrackingDisplacement

	if c.animations.IsRecentsAnimationRunning() {
		c.callbacks = c.animations.ContinueRecentsAnimation(c.gesture)
		if c.callbacks != nil {
			c.callbacks.AddListener(h)
		}
		c.animations.NotifyRecentsAnimationState(h)
		c.notifyGestureStarted(true)
		return
	}
	intent := h.LaunchIntent()
	intent.GestureID = c.gesture.ID()
	c.callbacks = c.animations.StartRecentsAnimation(c.gesture, intent, h)
}

func (c *SwipeConsumer) forceCancelGesture(ev *MotionEvent) {
	c.logger.Debug().Stringer("action", ev.Action).Msg("forceCancel")
	c.finishTouchTracking(ev.WithAction(ActionCancel))
}

// finishTouchTracking ends touch processing. The animation may keep running.
func (c *SwipeConsumer) finishTouchTracking(ev *MotionEvent) {
	if c.state.PassedWindowMoveSlop && c.handler != nil {
		if ev.Action == ActionCancel {
			c.handler.OnGestureCancelled()
		} else {
			if i := ev.FindPointerIndex(c.track.ActivePointerID); i >= 0 {
				c.track.Last = ev.Pos(i)
			}
			c.velocity.ComputeCurrentVelocity(PxPerMs)
			v := c.velocity.Velocity(c.track.ActivePointerID)
			c.handler.UpdateDisplacement(c.navBar.Project(c.track.Delta()) - c.startDisplacement)
			c.handler.OnGestureEnded(c.navBar.Project(v), v, c.track.Down)
		}
	} else {
		// Tracking may have started on down without the gesture ever
		// starting; clean up now.
		c.OnConsumerAboutToBeSwitched()
		c.onInteractionGestureFinished()

		// The system may handle the up before the animation starts. Cancel
		// later so a slow start is still undone.
		if c.debounce != nil {
			c.debounce.Trigger()
		}
	}
	c.velocity = nil
	c.pause.Clear()
	c.phase = StateEnded
}

// OnConsumerAboutToBeSwitched is called when another consumer takes over.
// The pending delayed cancel is dropped and the handler is told to hand its
// state to the next animation.
func (c *SwipeConsumer) OnConsumerAboutToBeSwitched() {
	if c.debounce != nil {
		c.debounce.Cancel()
	}
	if c.handler != nil {
		c.removeListener()
		c.handler.OnConsumerAboutToBeSwitched()
	}
}

func (c *SwipeConsumer) onInteractionGestureFinished() {
	if c.completed {
		return
	}
	c.completed = true
	c.removeListener()
	c.handler = nil
	if c.onComplete != nil {
		c.onComplete(c)
	}
}

func (c *SwipeConsumer) removeListener() {
	if c.callbacks != nil && c.handler != nil {
		c.callbacks.RemoveListener(c.handler)
	}
}

type nopInput struct{}

func (nopInput) PilferPointers()         {}
func (nopInput) SetBatchingEnabled(bool) {}
