package quickswipe

import (
	"time"

	"github.com/rs/zerolog"
)

// ThumbnailData is a task screenshot returned by the native controller.
type ThumbnailData struct {
	TaskID        int
	Width, Height int
	Pixels        []byte
}

// RemoteTarget is an app window taking part in the animation.
type RemoteTarget struct {
	TaskID int
	Bounds Vec2
}

// SurfaceTransaction is the final transform applied to a task surface when
// it leaves the animation, e.g. after entering picture-in-picture.
type SurfaceTransaction struct {
	Position Vec2
	Scale    float64
	Alpha    float64
}

// NativeController is the system-side animation handle. Every method except
// ScreenshotTask is called from the worker queue.
type NativeController interface {
	ScreenshotTask(taskID int) *ThumbnailData
	SetAnimationTargetsBehindSystemBars(behind bool)
	RemoveTask(taskID int) bool
	Finish(toHome, sendUserLeaveHint bool)
	CleanupScreenshot()
	DetachNavigationBarFromApp(moveHomeToTop bool)
	AnimateNavigationBarToApp(duration time.Duration)
	SetWillFinishToHome(willFinishToHome bool)
	SetFinishTaskTransaction(taskID int, tx SurfaceTransaction, overlay any)
	HideCurrentInputMethod()
	SetInputConsumerEnabled(enabled bool)
}

// SplitScreenProxy minimizes the docked split-screen stack.
type SplitScreenProxy interface {
	SetSplitScreenMinimized(minimized bool)
}

// SplitScreenLookup returns the proxy if it has been created, nil otherwise.
type SplitScreenLookup func() SplitScreenProxy

// --- Callback list ---

// CallbackList runs callbacks once, in insertion order. After
// ExecuteAllAndDestroy, added callbacks run immediately.
type CallbackList struct {
	fns       []func()
	destroyed bool
}

// Add queues fn, or runs it now if the list was destroyed. nil is ignored.
func (l *CallbackList) Add(fn func()) {
	if fn == nil {
		return
	}
	if l.destroyed {
		fn()
		return
	}
	l.fns = append(l.fns, fn)
}

// Len returns the number of queued callbacks.
func (l *CallbackList) Len() int {
	return len(l.fns)
}

// ExecuteAllAndDestroy runs every queued callback and marks the list
// destroyed.
func (l *CallbackList) ExecuteAllAndDestroy() {
	l.destroyed = true
	for len(l.fns) > 0 {
		fn := l.fns[0]
		l.fns[0] = nil
		l.fns = l.fns[1:]
		fn()
	}
	l.fns = nil
}

// --- Animation controller ---

// ControllerConfig carries the collaborators of an AnimationController.
type ControllerConfig struct {
	Main   Executor // foreground scheduler
	Worker Executor // background FIFO for native calls

	AllowMinimizeSplitScreen bool
	SplitScreen              SplitScreenLookup // may be nil

	Logger zerolog.Logger
}

// AnimationController wraps a NativeController. Finish runs the native
// finish at most once; completion callbacks run on the main queue in the
// order they were given. All methods must be called on the main queue.
type AnimationController struct {
	native          NativeController
	main            Executor
	worker          Executor
	onAboutToFinish func(*AnimationController)
	allowMinimize   bool
	splitScreen     SplitScreenLookup
	logger          zerolog.Logger

	useLauncherSysBarFlags bool
	splitScreenMinimized   bool
	state                  FinishState
	pending                CallbackList
}

// NewAnimationController wraps native. onAboutToFinish is called
// synchronously on the first Finish, before any asynchronous work.
func NewAnimationController(native NativeController, cfg ControllerConfig, onAboutToFinish func(*AnimationController)) *AnimationController {
	return &AnimationController{
		native:          native,
		main:            cfg.Main,
		worker:          cfg.Worker,
		onAboutToFinish: onAboutToFinish,
		allowMinimize:   cfg.AllowMinimizeSplitScreen,
		splitScreen:     cfg.SplitScreen,
		logger:          cfg.Logger.With().Str("component", "controller").Logger(),
	}
}

// State returns the finish state.
func (c *AnimationController) State() FinishState {
	return c.state
}

// Native returns the wrapped controller.
func (c *AnimationController) Native() NativeController {
	return c.native
}

// ScreenshotTask synchronously captures taskID. The caller needs the result
// immediately, so this is the one call not routed through the worker.
func (c *AnimationController) ScreenshotTask(taskID int) *ThumbnailData {
	return c.native.ScreenshotTask(taskID)
}

// SetUseLauncherSystemBarFlags tells the system whether the launcher now owns
// the system bar appearance. No-op when unchanged.
func (c *AnimationController) SetUseLauncherSystemBarFlags(use bool) {
	if c.useLauncherSysBarFlags == use {
		return
	}
	c.useLauncherSysBarFlags = use
	c.worker.Execute(func() {
		c.native.SetAnimationTargetsBehindSystemBars(!use)
	})
}

// SetSplitScreenMinimized minimizes or restores split screen. No-op when
// minimizing is not allowed or the value is unchanged; skipped silently when
// the split-screen proxy does not exist yet.
func (c *AnimationController) SetSplitScreenMinimized(minimized bool) {
	if !c.allowMinimize {
		return
	}
	if c.splitScreenMinimized == minimized {
		return
	}
	c.splitScreenMinimized = minimized
	c.worker.Execute(func() {
		if c.splitScreen == nil {
			return
		}
		if p := c.splitScreen(); p != nil {
			p.SetSplitScreenMinimized(minimized)
		}
	})
}

// RemoveTaskTarget removes target from the animation.
func (c *AnimationController) RemoveTaskTarget(target RemoteTarget) {
	c.worker.Execute(func() { c.native.RemoveTask(target.TaskID) })
}

// FinishAnimationToHome finishes with the launcher on top.
func (c *AnimationController) FinishAnimationToHome() {
	c.Finish(true, nil, false)
}

// FinishAnimationToApp finishes returning to the app.
func (c *AnimationController) FinishAnimationToApp() {
	c.Finish(false, nil, false)
}

// Finish ends the animation. The first call notifies the about-to-finish
// listener, then runs the native finish on the worker and afterwards
// onComplete on the main queue. Later calls only queue onComplete; once the
// controller is Finished, onComplete runs immediately.
//
// sendUserLeaveHint lets the pausing activity enter picture-in-picture.
func (c *AnimationController) Finish(toHome bool, onComplete func(), sendUserLeaveHint bool) {
	if c.state != FinishIdle {
		c.pending.Add(onComplete)
		return
	}

	c.state = FinishRequested
	c.logger.Debug().
		Bool("toHome", toHome).
		Bool("sendUserLeaveHint", sendUserLeaveHint).
		Msg("finishController")
	if c.onAboutToFinish != nil {
		c.onAboutToFinish(c)
	}
	c.pending.Add(onComplete)
	c.worker.Execute(func() {
		c.native.Finish(toHome, sendUserLeaveHint)
		c.main.Execute(c.completeFinish)
	})
}

func (c *AnimationController) completeFinish() {
	c.pending.ExecuteAllAndDestroy()
	c.state = Finished
}

// CleanupScreenshot releases the screenshot taken for the finishing task.
func (c *AnimationController) CleanupScreenshot() {
	c.worker.Execute(c.native.CleanupScreenshot)
}

// DetachNavigationBarFromApp moves the navigation bar off the app window.
func (c *AnimationController) DetachNavigationBarFromApp(moveHomeToTop bool) {
	c.worker.Execute(func() { c.native.DetachNavigationBarFromApp(moveHomeToTop) })
}

// AnimateNavigationBarToApp animates the navigation bar back onto the app.
func (c *AnimationController) AnimateNavigationBarToApp(duration time.Duration) {
	c.worker.Execute(func() { c.native.AnimateNavigationBarToApp(duration) })
}

// SetWillFinishToHome tells the system where the animation will end.
func (c *AnimationController) SetWillFinishToHome(willFinishToHome bool) {
	c.worker.Execute(func() { c.native.SetWillFinishToHome(willFinishToHome) })
}

// SetFinishTaskTransaction sets the surface transaction applied to taskID
// when its leash is removed. Call before Finish.
func (c *AnimationController) SetFinishTaskTransaction(taskID int, tx SurfaceTransaction, overlay any) {
	c.worker.Execute(func() { c.native.SetFinishTaskTransaction(taskID, tx, overlay) })
}

// EnableInputConsumer hides the IME and lets the launcher intercept touches
// on the app window.
func (c *AnimationController) EnableInputConsumer() {
	c.worker.Execute(func() {
		c.native.HideCurrentInputMethod()
		c.native.SetInputConsumerEnabled(true)
	})
}
