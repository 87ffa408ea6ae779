// Package quickswipe recognizes system navigation swipes from a raw
// multi-pointer touch stream and drives a cancelable window-transition
// animation with the result.
//
// Two pieces do the work:
//
//   - [SwipeConsumer] consumes [MotionEvent] values, tracks the move and
//     pilfer slop gates, the swipe direction and the release velocity, and
//     drives an [InteractionHandler].
//   - [AnimationController] wraps the system animation handle. Its
//     [AnimationController.Finish] runs the native finish at most once and
//     delivers completion callbacks in order.
//
// # Execution contexts
//
// All gesture state lives on the foreground [MainQueue], which the host
// pumps once per frame with [MainQueue.RunPending]. Calls into the system go
// through a [WorkerQueue], a single goroutine with FIFO ordering. No state is
// shared between the two except through queue hand-offs.
//
//	main := quickswipe.NewMainQueue()
//	worker := quickswipe.NewWorkerQueue("ui-helper", logger)
//	defer worker.Close()
//
//	animations := quickswipe.NewTaskAnimationManager(bridge, quickswipe.ControllerConfig{
//		Main: main, Worker: worker, Logger: logger,
//	})
//	debounce := quickswipe.NewDebouncer(main, cfg.CancelDebounce(), func() {
//		animations.CancelRecentsAnimation(true)
//	})
//
//	consumer := quickswipe.NewSwipeConsumer(quickswipe.ConsumerConfig{
//		Device: device, Env: quickswipe.ConfigEnvironment{Config: cfg},
//		Animations: animations, Gesture: gs, NewHandler: newHandler,
//		CancelDebounce: debounce, Settings: cfg, Logger: logger,
//	})
//
// # Input
//
// [TouchSource] converts ebiten touch and mouse state into motion events and
// [InputReceiver] applies the consumer's batching hint. [Injector] and
// [ScriptRunner] produce synthetic strokes for tests and replays.
//
// Tunables are loaded with [LoadConfig] from defaults, a TOML file and
// QUICKSWIPE_* environment variables.
package quickswipe
