package quickswipe

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// --- Device and environment ---

type fakeDevice struct {
	navBar   NavBarPosition
	gestural bool
	outside  bool // secondary pointers land outside the swipe region
}

func (d *fakeDevice) NavBarPosition() NavBarPosition { return d.navBar }
func (d *fakeDevice) IsFullyGesturalNavMode() bool   { return d.gestural }
func (d *fakeDevice) IsInSwipeUpTouchRegion(*MotionEvent, int) bool {
	return !d.outside
}

type fakeEnv struct {
	slop     float64
	minDisp  float64
	rotation int
}

func (e *fakeEnv) TouchSlop() float64                  { return e.slop }
func (e *fakeEnv) MotionPauseMinDisplacement() float64 { return e.minDisp }
func (e *fakeEnv) DisplayRotation() int                { return e.rotation }

// --- Interaction handler ---

type endedCall struct {
	velocity float64
	vec      Vec2
	down     Vec2
}

type fakeHandler struct {
	calls         []string
	started       []bool
	displacements []float64
	likely        []bool
	ended         []endedCall
	pauses        []bool
	endCallback   func()
	touchTime     time.Duration
}

func (h *fakeHandler) OnRecentsAnimationStart(*AnimationController, []RemoteTarget) {
	h.calls = append(h.calls, "animStart")
}
func (h *fakeHandler) OnRecentsAnimationCanceled(map[int]*ThumbnailData) {
	h.calls = append(h.calls, "animCanceled")
}
func (h *fakeHandler) OnRecentsAnimationFinished(*AnimationController) {
	h.calls = append(h.calls, "animFinished")
}
func (h *fakeHandler) OnGestureStarted(isLikely bool) {
	h.calls = append(h.calls, "started")
	h.started = append(h.started, isLikely)
}
func (h *fakeHandler) UpdateDisplacement(d float64) {
	h.displacements = append(h.displacements, d)
}
func (h *fakeHandler) SetIsLikelyToStartNewTask(isLikely bool) {
	h.likely = append(h.likely, isLikely)
}
func (h *fakeHandler) OnGestureEnded(v float64, vec Vec2, down Vec2) {
	h.calls = append(h.calls, "ended")
	h.ended = append(h.ended, endedCall{v, vec, down})
}
func (h *fakeHandler) OnGestureCancelled()          { h.calls = append(h.calls, "cancelled") }
func (h *fakeHandler) OnConsumerAboutToBeSwitched() { h.calls = append(h.calls, "aboutToSwitch") }
func (h *fakeHandler) SetGestureEndCallback(fn func()) {
	h.endCallback = fn
}
func (h *fakeHandler) LaunchIntent() LaunchIntent { return LaunchIntent{Target: "recents"} }
func (h *fakeHandler) OnMotionPauseChanged(isPaused bool) {
	h.pauses = append(h.pauses, isPaused)
}

func (h *fakeHandler) has(call string) bool {
	for _, c := range h.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (h *fakeHandler) lastDisplacement() float64 {
	if len(h.displacements) == 0 {
		return 0
	}
	return h.displacements[len(h.displacements)-1]
}

// --- Animation manager ---

type fakeAnimations struct {
	running   bool
	started   int
	continued int
	notified  int
	intent    LaunchIntent
	callbacks *AnimationCallbacks
}

func newFakeAnimations(running bool) *fakeAnimations {
	return &fakeAnimations{
		running:   running,
		callbacks: NewAnimationCallbacks(ControllerConfig{Main: NewMainQueue(), Logger: zerolog.Nop()}),
	}
}

func (a *fakeAnimations) IsRecentsAnimationRunning() bool { return a.running }
func (a *fakeAnimations) StartRecentsAnimation(_ *GestureState, intent LaunchIntent, l AnimationListener) *AnimationCallbacks {
	a.started++
	a.intent = intent
	a.callbacks.AddListener(l)
	return a.callbacks
}
func (a *fakeAnimations) ContinueRecentsAnimation(*GestureState) *AnimationCallbacks {
	a.continued++
	return a.callbacks
}
func (a *fakeAnimations) NotifyRecentsAnimationState(AnimationListener) { a.notified++ }

// --- Input ---

type fakeMonitor struct{ pilfered int }

func (m *fakeMonitor) PilferPointers() { m.pilfered++ }

type fakeReceiver struct{ modes []bool }

func (r *fakeReceiver) SetBatchingEnabled(enabled bool) { r.modes = append(r.modes, enabled) }

func (r *fakeReceiver) batching() bool {
	return len(r.modes) > 0 && r.modes[len(r.modes)-1]
}

type fakePause struct {
	disallow  []bool
	positions int
	clears    int
	listener  func(bool)
}

func (p *fakePause) AddPosition(*MotionEvent)               { p.positions++ }
func (p *fakePause) SetDisallowPause(d bool)                { p.disallow = append(p.disallow, d) }
func (p *fakePause) SetOnMotionPauseListener(fn func(bool)) { p.listener = fn }
func (p *fakePause) Clear()                                 { p.clears++ }

// --- Native controller ---

type fakeNative struct {
	mu    sync.Mutex
	calls []string
	log   *orderLog
}

func (n *fakeNative) record(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	n.mu.Lock()
	n.calls = append(n.calls, s)
	n.mu.Unlock()
	if n.log != nil {
		n.log.add("native." + s)
	}
}

func (n *fakeNative) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func (n *fakeNative) count(call string) int {
	c := 0
	for _, s := range n.Calls() {
		if s == call {
			c++
		}
	}
	return c
}

func (n *fakeNative) ScreenshotTask(taskID int) *ThumbnailData {
	n.record("screenshot(%d)", taskID)
	return &ThumbnailData{TaskID: taskID}
}
func (n *fakeNative) SetAnimationTargetsBehindSystemBars(b bool) { n.record("behindBars(%v)", b) }
func (n *fakeNative) RemoveTask(taskID int) bool {
	n.record("removeTask(%d)", taskID)
	return true
}
func (n *fakeNative) Finish(toHome, hint bool)          { n.record("finish(%v,%v)", toHome, hint) }
func (n *fakeNative) CleanupScreenshot()                { n.record("cleanupScreenshot") }
func (n *fakeNative) DetachNavigationBarFromApp(b bool) { n.record("detachNavBar(%v)", b) }
func (n *fakeNative) AnimateNavigationBarToApp(d time.Duration) {
	n.record("animateNavBar(%v)", d)
}
func (n *fakeNative) SetWillFinishToHome(b bool) { n.record("willFinishToHome(%v)", b) }
func (n *fakeNative) SetFinishTaskTransaction(taskID int, _ SurfaceTransaction, _ any) {
	n.record("finishTx(%d)", taskID)
}
func (n *fakeNative) HideCurrentInputMethod()        { n.record("hideIME") }
func (n *fakeNative) SetInputConsumerEnabled(b bool) { n.record("inputConsumer(%v)", b) }

// orderLog records events from several goroutines in order.
type orderLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *orderLog) add(s string) {
	l.mu.Lock()
	l.entries = append(l.entries, s)
	l.mu.Unlock()
}

func (l *orderLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

// --- Clock ---

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1000, 0)} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// --- Consumer fixture ---

type consumerFixture struct {
	device     *fakeDevice
	env        *fakeEnv
	animations *fakeAnimations
	gesture    *GestureState
	monitor    *fakeMonitor
	receiver   *fakeReceiver
	pause      *fakePause
	handlers   []*fakeHandler
	completed  int
	consumer   *SwipeConsumer
}

type fixtureOpts struct {
	navBar      NavBarPosition
	gestural    bool
	running     bool
	deferred    bool
	noHorizSwip bool
	slop        float64
	minDisp     float64
	debounce    *Debouncer
}

func newConsumerFixture(o fixtureOpts) *consumerFixture {
	if o.slop == 0 {
		o.slop = 10
	}
	f := &consumerFixture{
		device:     &fakeDevice{navBar: o.navBar, gestural: o.gestural},
		env:        &fakeEnv{slop: o.slop, minDisp: o.minDisp},
		animations: newFakeAnimations(o.running),
		monitor:    &fakeMonitor{},
		receiver:   &fakeReceiver{},
		pause:      &fakePause{},
	}
	mode := NavModeTwoButton
	if o.gestural {
		mode = NavModeGestural
	}
	f.gesture = NewGestureState(o.navBar, mode)
	f.consumer = NewSwipeConsumer(ConsumerConfig{
		Device:     f.device,
		Env:        f.env,
		Animations: f.animations,
		Gesture:    f.gesture,
		NewHandler: func(*GestureState, time.Duration) InteractionHandler {
			h := &fakeHandler{}
			f.handlers = append(f.handlers, h)
			return h
		},
		Monitor:                f.monitor,
		Receiver:               f.receiver,
		PauseDetector:          f.pause,
		CancelDebounce:         o.debounce,
		Settings:               DefaultConfig(),
		DeferredDownTarget:     o.deferred,
		DisableHorizontalSwipe: o.noHorizSwip,
		OnComplete:             func(*SwipeConsumer) { f.completed++ },
		Logger:                 zerolog.Nop(),
	})
	return f
}

func (f *consumerFixture) handler() *fakeHandler {
	if len(f.handlers) == 0 {
		return nil
	}
	return f.handlers[len(f.handlers)-1]
}

func (f *consumerFixture) feed(events ...*MotionEvent) {
	for _, ev := range events {
		f.consumer.OnMotionEvent(ev)
	}
}
