package main

import (
	"time"

	"github.com/phanxgames/quickswipe"
	"github.com/rs/zerolog"
)

// pipeline wires the gesture stack for one screen: input receiver, one
// consumer per gesture, the animation manager and the simulated system.
type pipeline struct {
	cfg    quickswipe.Config
	logger zerolog.Logger

	device     *screenDevice
	main       *quickswipe.MainQueue
	worker     *quickswipe.WorkerQueue
	animations *quickswipe.TaskAnimationManager
	debounce   *quickswipe.Debouncer
	receiver   *quickswipe.InputReceiver

	consumer *quickswipe.SwipeConsumer
	handlers []*settleHandler
	results  []quickswipe.EndTarget
}

func newPipeline(cfg quickswipe.Config, logger zerolog.Logger, width, height float64) (*pipeline, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	navBar, err := cfg.BarPosition()
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		cfg:    cfg,
		logger: logger,
		device: &screenDevice{width: width, height: height, navBar: navBar, mode: mode},
		main:   quickswipe.NewMainQueue(),
		worker: quickswipe.NewWorkerQueue("ui-helper", logger),
	}
	bridge := &simBridge{
		worker:  p.worker,
		native:  &simNative{logger: logger.With().Str("component", "native").Logger()},
		targets: []quickswipe.RemoteTarget{{TaskID: 1, Bounds: quickswipe.Vec2{X: width, Y: height}}},
		logger:  logger.With().Str("component", "bridge").Logger(),
	}
	p.animations = quickswipe.NewTaskAnimationManager(bridge, quickswipe.ControllerConfig{
		Main:   p.main,
		Worker: p.worker,
		Logger: logger,
	})
	p.debounce = quickswipe.NewDebouncer(p.main, cfg.CancelDebounce(), func() {
		p.animations.CancelRecentsAnimation(true)
	})
	p.receiver = quickswipe.NewInputReceiver(p.dispatch)
	return p, nil
}

// Close stops the worker queue.
func (p *pipeline) Close() {
	p.worker.Close()
}

// SetClock replaces the main queue clock, for deterministic replays.
func (p *pipeline) SetClock(now func() time.Time) {
	p.main.SetClock(now)
}

// dispatch routes one event to the current consumer, creating a fresh one on
// every down.
func (p *pipeline) dispatch(ev *quickswipe.MotionEvent) {
	if ev.Action == quickswipe.ActionDown {
		if p.consumer != nil {
			p.consumer.OnConsumerAboutToBeSwitched()
		}
		p.consumer = p.newConsumer()
	}
	if p.consumer != nil {
		p.consumer.OnMotionEvent(ev)
	}
}

func (p *pipeline) newConsumer() *quickswipe.SwipeConsumer {
	gs := quickswipe.NewGestureState(p.device.navBar, p.device.mode)
	travel := p.device.height
	if p.device.navBar.IsHorizontalAxis() {
		travel = p.device.width
	}
	return quickswipe.NewSwipeConsumer(quickswipe.ConsumerConfig{
		Device:     p.device,
		Env:        quickswipe.ConfigEnvironment{Config: p.cfg},
		Animations: p.animations,
		Gesture:    gs,
		NewHandler: func(gs *quickswipe.GestureState, touchTime time.Duration) quickswipe.InteractionHandler {
			h := &settleHandler{
				logger:       p.logger.With().Str("component", "handler").Stringer("gesture", gs.ID()).Logger(),
				homeDistance: travel / 4,
				travel:       travel,
				onDone: func(h *settleHandler) {
					p.results = append(p.results, h.Target())
				},
			}
			p.handlers = append(p.handlers, h)
			return h
		},
		Receiver:       p.receiver,
		CancelDebounce: p.debounce,
		Settings:       p.cfg,
		OnComplete: func(c *quickswipe.SwipeConsumer) {
			p.logger.Debug().Str("type", c.Type()).Msg("consumer complete")
		},
		Logger: p.logger,
	})
}

// Receive feeds one event from the input source.
func (p *pipeline) Receive(ev *quickswipe.MotionEvent) {
	p.receiver.Receive(ev)
}

// Tick runs one frame: batched input, main-queue work and the settle
// animations. With sync set, worker tasks posted so far complete before the
// main queue is pumped.
func (p *pipeline) Tick(dt float32, sync bool) {
	p.receiver.Flush()
	if sync {
		p.worker.Sync()
	}
	p.main.RunPending()

	live := p.handlers[:0]
	for _, h := range p.handlers {
		h.Tick(dt)
		if !h.Done() {
			live = append(live, h)
		}
	}
	clear(p.handlers[len(live):])
	p.handlers = live
}

// Idle reports whether no handler is active and no task is queued.
func (p *pipeline) Idle() bool {
	return len(p.handlers) == 0 && p.main.Pending() == 0
}

// Active returns the most recent unfinished handler, or nil.
func (p *pipeline) Active() *settleHandler {
	if len(p.handlers) == 0 {
		return nil
	}
	return p.handlers[len(p.handlers)-1]
}

// Results returns the end target of every finished interaction.
func (p *pipeline) Results() []quickswipe.EndTarget {
	return p.results
}
