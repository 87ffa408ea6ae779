package quickswipe

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCancelDebounce delays the cancel issued after a gesture that never
// passed move slop.
const DefaultCancelDebounce = 100 * time.Millisecond

// Executor runs tasks in submission order on some context.
type Executor interface {
	Execute(fn func())
}

// --- Main queue ---

// Timer is a delayed task posted to a MainQueue.
type Timer struct {
	q        *MainQueue
	fn       func()
	due      time.Time
	canceled bool
}

// Cancel prevents the task from running. Safe to call more than once and
// after the task has run.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.q.mu.Lock()
	t.canceled = true
	t.q.mu.Unlock()
}

// MainQueue is the foreground scheduler. Any goroutine may post to it; tasks
// run only inside RunPending, which the host calls once per frame from the
// goroutine that owns UI state.
type MainQueue struct {
	mu      sync.Mutex
	tasks   []func()
	delayed []*Timer
	now     func() time.Time
}

// NewMainQueue creates a queue using the wall clock.
func NewMainQueue() *MainQueue {
	return &MainQueue{now: time.Now}
}

// SetClock replaces the time source used for delayed tasks.
func (q *MainQueue) SetClock(now func() time.Time) {
	q.mu.Lock()
	q.now = now
	q.mu.Unlock()
}

// Execute appends fn to the queue.
func (q *MainQueue) Execute(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// PostDelayed schedules fn to run on the first RunPending at or after now+d.
func (q *MainQueue) PostDelayed(fn func(), d time.Duration) *Timer {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := &Timer{q: q, fn: fn, due: q.now().Add(d)}
	q.delayed = append(q.delayed, t)
	return t
}

// Pending returns the number of queued immediate and live delayed tasks.
func (q *MainQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.tasks)
	for _, t := range q.delayed {
		if !t.canceled {
			n++
		}
	}
	return n
}

// RunPending runs every immediate task queued so far, then every due delayed
// task in due order. Tasks posted while running wait for the next call.
// Returns the number of tasks run.
func (q *MainQueue) RunPending() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	now := q.now()
	var due []*Timer
	keep := q.delayed[:0]
	for _, t := range q.delayed {
		switch {
		case t.canceled:
		case !t.due.After(now):
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	clear(q.delayed[len(keep):])
	q.delayed = keep
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	ran := len(tasks)
	sortTimers(due)
	for _, t := range due {
		q.mu.Lock()
		canceled := t.canceled
		t.canceled = true
		q.mu.Unlock()
		if canceled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// sortTimers orders timers by due time, stable for equal times. Lists are
// tiny so insertion sort is enough.
func sortTimers(ts []*Timer) {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j].due.Before(ts[j-1].due); j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}

// --- Worker queue ---

// WorkerQueue runs tasks on a single background goroutine in strict FIFO
// order. Execute never blocks.
type WorkerQueue struct {
	name   string
	logger zerolog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool
	done   chan struct{}
}

// NewWorkerQueue starts a worker goroutine.
func NewWorkerQueue(name string, logger zerolog.Logger) *WorkerQueue {
	w := &WorkerQueue{
		name:   name,
		logger: logger.With().Str("component", "worker").Str("queue", name).Logger(),
		done:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// Execute appends fn to the queue. Tasks posted after Close are dropped.
func (w *WorkerQueue) Execute(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Warn().Msg("task posted after close, dropped")
		return
	}
	w.tasks = append(w.tasks, fn)
	w.cond.Signal()
}

// Sync blocks until every task posted before the call has run.
func (w *WorkerQueue) Sync() {
	ch := make(chan struct{})
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.tasks = append(w.tasks, func() { close(ch) })
	w.cond.Signal()
	w.mu.Unlock()
	<-ch
}

// Close drains the queue and stops the worker.
func (w *WorkerQueue) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		w.cond.Signal()
	}
	w.mu.Unlock()
	<-w.done
}

func (w *WorkerQueue) loop() {
	defer close(w.done)
	for {
		w.mu.Lock()
		for len(w.tasks) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.tasks) == 0 {
			w.mu.Unlock()
			return
		}
		fn := w.tasks[0]
		w.tasks[0] = nil
		w.tasks = w.tasks[1:]
		w.mu.Unlock()
		w.run(fn)
	}
}

func (w *WorkerQueue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Interface("panic", r).Msg("worker task panicked")
		}
	}()
	fn()
}

// --- Debouncer ---

// Debouncer runs fn once after a delay on a MainQueue. Each Trigger cancels
// the pending run and schedules a new one. Main queue only.
type Debouncer struct {
	q       *MainQueue
	delay   time.Duration
	fn      func()
	pending *Timer
}

// NewDebouncer creates a debouncer. A non-positive delay selects
// DefaultCancelDebounce.
func NewDebouncer(q *MainQueue, delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultCancelDebounce
	}
	return &Debouncer{q: q, delay: delay, fn: fn}
}

// Trigger cancels any pending run and schedules a fresh one.
func (d *Debouncer) Trigger() {
	d.pending.Cancel()
	d.pending = d.q.PostDelayed(func() {
		d.pending = nil
		d.fn()
	}, d.delay)
}

// Cancel drops the pending run, if any.
func (d *Debouncer) Cancel() {
	d.pending.Cancel()
	d.pending = nil
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	return d.pending != nil
}
