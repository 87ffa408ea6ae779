package quickswipe

import "github.com/rs/zerolog"

// SystemBridge is the window-manager side of the recents animation.
type SystemBridge interface {
	// StartRecentsActivity asks the system to start the animation. The
	// system reports back through cb, from any goroutine.
	StartRecentsActivity(intent LaunchIntent, cb *AnimationCallbacks)
	CancelRecentsAnimation(restoreHomeStackPosition bool)
}

// TaskAnimationManager owns the running recents animation and its observer
// registry. Main queue only.
type TaskAnimationManager struct {
	bridge SystemBridge
	cfg    ControllerConfig
	logger zerolog.Logger

	callbacks   *AnimationCallbacks
	controller  *AnimationController
	targets     []RemoteTarget
	lastGesture *GestureState
	canceled    bool
}

// NewTaskAnimationManager creates a manager. cfg is handed to every
// controller the manager creates.
func NewTaskAnimationManager(bridge SystemBridge, cfg ControllerConfig) *TaskAnimationManager {
	return &TaskAnimationManager{
		bridge: bridge,
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "animations").Logger(),
	}
}

// IsRecentsAnimationRunning reports whether the system has started an
// animation that has not finished or been canceled.
func (m *TaskAnimationManager) IsRecentsAnimationRunning() bool {
	return m.controller != nil
}

// Controller returns the running controller, or nil.
func (m *TaskAnimationManager) Controller() *AnimationController {
	return m.controller
}

// StartRecentsAnimation starts a new animation, finishing any previous one
// to the app first.
func (m *TaskAnimationManager) StartRecentsAnimation(gs *GestureState, intent LaunchIntent, l AnimationListener) *AnimationCallbacks {
	if m.controller != nil {
		m.logger.Warn().Msg("new recents animation started before old animation completed")
		m.FinishRunningRecentsAnimation(false)
	}
	if m.callbacks != nil {
		m.cleanUp()
	}

	m.lastGesture = gs
	m.canceled = false
	cb := NewAnimationCallbacks(m.cfg)
	m.callbacks = cb
	cb.AddListener(&managerListener{m: m, cb: cb})
	cb.AddListener(l)

	m.logger.Debug().
		Stringer("gesture", gs.ID()).
		Str("target", intent.Target).
		Msg("startRecentsActivity")
	m.bridge.StartRecentsActivity(intent, cb)
	return cb
}

// ContinueRecentsAnimation hands the running animation to a new gesture.
func (m *TaskAnimationManager) ContinueRecentsAnimation(gs *GestureState) *AnimationCallbacks {
	m.lastGesture = gs
	return m.callbacks
}

// NotifyRecentsAnimationState replays the current state to l.
func (m *TaskAnimationManager) NotifyRecentsAnimationState(l AnimationListener) {
	switch {
	case m.controller != nil:
		l.OnRecentsAnimationStart(m.controller, m.targets)
	case m.canceled:
		l.OnRecentsAnimationCanceled(nil)
	}
}

// FinishRunningRecentsAnimation finishes the running animation, if any.
func (m *TaskAnimationManager) FinishRunningRecentsAnimation(toHome bool) {
	if m.controller == nil {
		return
	}
	m.controller.Finish(toHome, nil, false)
	m.cleanUp()
}

// CancelRecentsAnimation asks the system to cancel the animation.
func (m *TaskAnimationManager) CancelRecentsAnimation(restoreHomeStackPosition bool) {
	m.logger.Debug().Bool("restoreHome", restoreHomeStackPosition).Msg("cancelRecentsAnimation")
	m.bridge.CancelRecentsAnimation(restoreHomeStackPosition)
}

func (m *TaskAnimationManager) cleanUp() {
	if m.callbacks != nil {
		m.callbacks.RemoveAllListeners()
	}
	m.callbacks = nil
	m.controller = nil
	m.targets = nil
}

// managerListener tracks the lifecycle of one callbacks instance. Events
// from a superseded instance are ignored.
type managerListener struct {
	m  *TaskAnimationManager
	cb *AnimationCallbacks
}

func (l *managerListener) stale() bool {
	return l.m.callbacks != l.cb
}

func (l *managerListener) OnRecentsAnimationStart(c *AnimationController, targets []RemoteTarget) {
	if l.stale() {
		return
	}
	l.m.controller = c
	l.m.targets = targets
	if l.m.lastGesture != nil {
		l.m.lastGesture.SetState(StateRecentsAnimationStarted)
	}
}

func (l *managerListener) OnRecentsAnimationCanceled(map[int]*ThumbnailData) {
	if l.stale() {
		return
	}
	if l.m.lastGesture != nil {
		l.m.lastGesture.SetState(StateRecentsAnimationCanceled)
	}
	l.m.cleanUp()
	l.m.canceled = true
}

func (l *managerListener) OnRecentsAnimationFinished(c *AnimationController) {
	if l.stale() || l.m.controller != c {
		return
	}
	if l.m.lastGesture != nil {
		l.m.lastGesture.SetState(StateRecentsAnimationFinished)
	}
	l.m.cleanUp()
}
