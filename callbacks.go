package quickswipe

import "github.com/rs/zerolog"

// AnimationListener observes the recents animation. Methods run on the main
// queue.
type AnimationListener interface {
	OnRecentsAnimationStart(c *AnimationController, targets []RemoteTarget)
	OnRecentsAnimationCanceled(snapshots map[int]*ThumbnailData)
	OnRecentsAnimationFinished(c *AnimationController)
}

// AnimationCallbacks is the observer registry for one recents animation. The
// system side reports through OnAnimationStart and OnAnimationCanceled from
// any goroutine; listeners are notified on the main queue.
type AnimationCallbacks struct {
	cfg    ControllerConfig
	logger zerolog.Logger

	// main queue only
	listeners  []AnimationListener
	controller *AnimationController
	targets    []RemoteTarget
	canceled   bool
}

// NewAnimationCallbacks creates an empty registry. cfg is used for the
// controller created when the animation starts.
func NewAnimationCallbacks(cfg ControllerConfig) *AnimationCallbacks {
	return &AnimationCallbacks{
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "callbacks").Logger(),
	}
}

// AddListener registers l. Adding a registered listener does nothing.
func (c *AnimationCallbacks) AddListener(l AnimationListener) {
	if l == nil || c.indexOf(l) >= 0 {
		return
	}
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters l. Removing an unknown listener does nothing.
func (c *AnimationCallbacks) RemoveListener(l AnimationListener) {
	i := c.indexOf(l)
	if i < 0 {
		return
	}
	copy(c.listeners[i:], c.listeners[i+1:])
	c.listeners[len(c.listeners)-1] = nil
	c.listeners = c.listeners[:len(c.listeners)-1]
}

// RemoveAllListeners clears the registry.
func (c *AnimationCallbacks) RemoveAllListeners() {
	clear(c.listeners)
	c.listeners = c.listeners[:0]
}

// Listeners returns the number of registered listeners.
func (c *AnimationCallbacks) Listeners() int {
	return len(c.listeners)
}

// Controller returns the controller once the animation has started.
func (c *AnimationCallbacks) Controller() *AnimationController {
	return c.controller
}

// Targets returns the animation targets once the animation has started.
func (c *AnimationCallbacks) Targets() []RemoteTarget {
	return c.targets
}

// Canceled reports whether the animation was canceled.
func (c *AnimationCallbacks) Canceled() bool {
	return c.canceled
}

func (c *AnimationCallbacks) indexOf(l AnimationListener) int {
	for i, x := range c.listeners {
		if x == l {
			return i
		}
	}
	return -1
}

// snapshot copies the listener list so listeners may unregister while being
// notified.
func (c *AnimationCallbacks) snapshot() []AnimationListener {
	return append([]AnimationListener(nil), c.listeners...)
}

// --- System side ---

// OnAnimationStart is called by the system once the animation is running.
func (c *AnimationCallbacks) OnAnimationStart(native NativeController, targets []RemoteTarget) {
	ctrl := NewAnimationController(native, c.cfg, c.onAnimationFinished)
	c.cfg.Main.Execute(func() {
		c.controller = ctrl
		c.targets = targets
		c.logger.Debug().Int("targets", len(targets)).Msg("onRecentsAnimationStart")
		for _, l := range c.snapshot() {
			l.OnRecentsAnimationStart(ctrl, targets)
		}
	})
}

// OnAnimationCanceled is called by the system when it aborts the animation.
func (c *AnimationCallbacks) OnAnimationCanceled(snapshots map[int]*ThumbnailData) {
	c.cfg.Main.Execute(func() {
		c.canceled = true
		c.logger.Debug().Int("snapshots", len(snapshots)).Msg("onRecentsAnimationCanceled")
		for _, l := range c.snapshot() {
			l.OnRecentsAnimationCanceled(snapshots)
		}
	})
}

// NotifyAnimationCanceled reports a local cancellation to listeners.
func (c *AnimationCallbacks) NotifyAnimationCanceled() {
	c.OnAnimationCanceled(nil)
}

func (c *AnimationCallbacks) onAnimationFinished(ctrl *AnimationController) {
	c.cfg.Main.Execute(func() {
		c.logger.Debug().Msg("onRecentsAnimationFinished")
		for _, l := range c.snapshot() {
			l.OnRecentsAnimationFinished(ctrl)
		}
	})
}
