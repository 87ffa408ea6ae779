package main

import (
	"time"

	"github.com/phanxgames/quickswipe"
	"github.com/rs/zerolog"
)

// navBarSize is the thickness of the edge strip where swipes may start.
const navBarSize = 120

// --- Device ---

// screenDevice answers device queries for a fixed screen size.
type screenDevice struct {
	width, height float64
	navBar        quickswipe.NavBarPosition
	mode          quickswipe.NavMode
}

func (d *screenDevice) NavBarPosition() quickswipe.NavBarPosition { return d.navBar }

func (d *screenDevice) IsFullyGesturalNavMode() bool { return d.mode == quickswipe.NavModeGestural }

func (d *screenDevice) IsInSwipeUpTouchRegion(ev *quickswipe.MotionEvent, i int) bool {
	p := ev.Pos(i)
	switch d.navBar {
	case quickswipe.NavBarLeft:
		return p.X <= navBarSize
	case quickswipe.NavBarRight:
		return p.X >= d.width-navBarSize
	default:
		return p.Y >= d.height-navBarSize
	}
}

// --- System side ---

// simBridge stands in for the window manager. It answers every start request
// from the worker queue as if the system had launched the animation.
type simBridge struct {
	worker  quickswipe.Executor
	native  *simNative
	targets []quickswipe.RemoteTarget
	logger  zerolog.Logger

	current *quickswipe.AnimationCallbacks
}

func (b *simBridge) StartRecentsActivity(intent quickswipe.LaunchIntent, cb *quickswipe.AnimationCallbacks) {
	b.current = cb
	b.logger.Info().Str("target", intent.Target).Stringer("gesture", intent.GestureID).Msg("recents activity requested")
	b.worker.Execute(func() {
		cb.OnAnimationStart(b.native, b.targets)
	})
}

func (b *simBridge) CancelRecentsAnimation(restoreHomeStackPosition bool) {
	b.logger.Info().Bool("restoreHome", restoreHomeStackPosition).Msg("recents animation cancel requested")
	if cb := b.current; cb != nil {
		b.current = nil
		b.worker.Execute(func() {
			cb.OnAnimationCanceled(nil)
		})
	}
}

// simNative logs every native call. Called from the worker queue.
type simNative struct {
	logger zerolog.Logger
}

func (n *simNative) ScreenshotTask(taskID int) *quickswipe.ThumbnailData {
	n.logger.Debug().Int("task", taskID).Msg("screenshotTask")
	return &quickswipe.ThumbnailData{TaskID: taskID}
}

func (n *simNative) SetAnimationTargetsBehindSystemBars(behind bool) {
	n.logger.Debug().Bool("behind", behind).Msg("setAnimationTargetsBehindSystemBars")
}

func (n *simNative) RemoveTask(taskID int) bool {
	n.logger.Debug().Int("task", taskID).Msg("removeTask")
	return true
}

func (n *simNative) Finish(toHome, sendUserLeaveHint bool) {
	n.logger.Info().Bool("toHome", toHome).Bool("userLeaveHint", sendUserLeaveHint).Msg("finish")
}

func (n *simNative) CleanupScreenshot() {
	n.logger.Debug().Msg("cleanupScreenshot")
}

func (n *simNative) DetachNavigationBarFromApp(moveHomeToTop bool) {
	n.logger.Debug().Bool("moveHomeToTop", moveHomeToTop).Msg("detachNavigationBarFromApp")
}

func (n *simNative) AnimateNavigationBarToApp(duration time.Duration) {
	n.logger.Debug().Dur("duration", duration).Msg("animateNavigationBarToApp")
}

func (n *simNative) SetWillFinishToHome(willFinishToHome bool) {
	n.logger.Debug().Bool("toHome", willFinishToHome).Msg("setWillFinishToHome")
}

func (n *simNative) SetFinishTaskTransaction(taskID int, tx quickswipe.SurfaceTransaction, _ any) {
	n.logger.Debug().Int("task", taskID).Float64("scale", tx.Scale).Msg("setFinishTaskTransaction")
}

func (n *simNative) HideCurrentInputMethod() {
	n.logger.Debug().Msg("hideCurrentInputMethod")
}

func (n *simNative) SetInputConsumerEnabled(enabled bool) {
	n.logger.Debug().Bool("enabled", enabled).Msg("setInputConsumerEnabled")
}
