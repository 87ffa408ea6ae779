package main

import (
	"github.com/phanxgames/quickswipe"
	"github.com/rs/zerolog"
)

// baseSettleDuration is the settle time, in seconds, for a release at rest.
const baseSettleDuration = 0.3

// settleHandler eases the app window to its end position once the finger is
// lifted, then finishes the recents animation toward that target.
type settleHandler struct {
	logger zerolog.Logger

	homeDistance float64 // displacement that commits to home
	travel       float64 // distance the window moves when going home

	controller   *quickswipe.AnimationController
	displacement float64
	likely       bool
	paused       bool

	settle      *quickswipe.SettleAnimation
	target      quickswipe.EndTarget
	settled     bool
	finishing   bool
	done        bool
	endCallback func()
	onDone      func(*settleHandler)
}

// Displacement returns the current window offset along the gesture axis.
func (h *settleHandler) Displacement() float64 { return h.displacement }

// Target returns the chosen end target.
func (h *settleHandler) Target() quickswipe.EndTarget { return h.target }

// Done reports whether the interaction has finished.
func (h *settleHandler) Done() bool { return h.done }

// --- Animation listener ---

func (h *settleHandler) OnRecentsAnimationStart(c *quickswipe.AnimationController, targets []quickswipe.RemoteTarget) {
	h.logger.Debug().Int("targets", len(targets)).Msg("animation started")
	h.controller = c
	c.SetUseLauncherSystemBarFlags(true)
	c.EnableInputConsumer()
	h.tryFinish()
}

func (h *settleHandler) OnRecentsAnimationCanceled(snapshots map[int]*quickswipe.ThumbnailData) {
	h.logger.Info().Int("snapshots", len(snapshots)).Msg("animation canceled")
	h.controller = nil
	h.target = quickswipe.EndTargetLastApp
	h.complete()
}

func (h *settleHandler) OnRecentsAnimationFinished(*quickswipe.AnimationController) {
	h.logger.Debug().Msg("animation finished")
}

// --- Gesture ---

func (h *settleHandler) OnGestureStarted(isLikelyToStartNewTask bool) {
	h.likely = isLikelyToStartNewTask
	h.logger.Debug().Bool("likelyNewTask", isLikelyToStartNewTask).Msg("gesture started")
}

func (h *settleHandler) UpdateDisplacement(displacement float64) {
	if h.settle == nil {
		h.displacement = displacement
	}
}

func (h *settleHandler) SetIsLikelyToStartNewTask(isLikely bool) {
	h.likely = isLikely
}

func (h *settleHandler) OnMotionPauseChanged(isPaused bool) {
	h.paused = isPaused
	h.logger.Debug().Bool("paused", isPaused).Msg("motion pause")
}

func (h *settleHandler) OnGestureEnded(velocity float64, _, _ quickswipe.Vec2) {
	target := quickswipe.ChooseEndTarget(h.displacement, velocity, h.homeDistance, h.likely)
	h.logger.Info().
		Float64("displacement", h.displacement).
		Float64("velocity", velocity).
		Stringer("target", target).
		Msg("gesture ended")
	h.startSettle(target, quickswipe.SettleDuration(baseSettleDuration, velocity))
}

func (h *settleHandler) OnGestureCancelled() {
	h.logger.Info().Msg("gesture cancelled")
	h.startSettle(quickswipe.EndTargetLastApp, baseSettleDuration)
}

// OnConsumerAboutToBeSwitched stops settling and leaves the animation running
// for the next gesture.
func (h *settleHandler) OnConsumerAboutToBeSwitched() {
	h.logger.Debug().Msg("handing off to next gesture")
	h.settle = nil
	h.controller = nil
	h.complete()
}

func (h *settleHandler) SetGestureEndCallback(fn func()) { h.endCallback = fn }

func (h *settleHandler) LaunchIntent() quickswipe.LaunchIntent {
	return quickswipe.LaunchIntent{Target: "recents"}
}

// --- Frame loop ---

// Tick advances the settle animation by dt seconds.
func (h *settleHandler) Tick(dt float32) {
	if h.settle == nil || h.settled {
		return
	}
	v, done := h.settle.Update(dt)
	h.displacement = v
	if done {
		h.settled = true
		h.tryFinish()
	}
}

func (h *settleHandler) settleEnd(target quickswipe.EndTarget) float64 {
	if target.IsHome() {
		return -h.travel
	}
	return 0
}

func (h *settleHandler) startSettle(target quickswipe.EndTarget, duration float32) {
	h.target = target
	h.settle = quickswipe.NewSettleAnimation(h.displacement, h.settleEnd(target), duration, target, nil)
}

func (h *settleHandler) tryFinish() {
	if !h.settled || h.finishing || h.controller == nil {
		return
	}
	h.finishing = true
	h.controller.Finish(h.target.IsHome(), h.complete, false)
}

func (h *settleHandler) complete() {
	if h.done {
		return
	}
	h.done = true
	h.logger.Info().Stringer("target", h.target).Msg("interaction finished")
	if h.endCallback != nil {
		h.endCallback()
	}
	if h.onDone != nil {
		h.onDone(h)
	}
}
