package sched

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Task is one unit of deferred work.
type Task func()

// Scheduler executes posted tasks later, strictly one at a time, in FIFO
// posting order, on a context distinct from the poster's. Post must not
// block; it reports false when the task could not be queued.
type Scheduler interface {
	Post(t Task) bool
}

// DefaultQueueDepth is the Runner's queue capacity when none is given. It is
// deeper than the receive slot pool so a full pool's worth of frames plus
// interleaved status events fit without drops.
const DefaultQueueDepth = 64

// Runner is the default Scheduler: one worker goroutine draining a buffered
// channel.
type Runner struct {
	mu      sync.Mutex
	tasks   chan Task
	quit    chan struct{}
	wg      sync.WaitGroup
	started bool
	running atomic.Bool
	dropped atomic.Uint64
}

// NewRunner creates a stopped Runner with the given queue depth; depth <= 0
// selects DefaultQueueDepth.
func NewRunner(depth int) *Runner {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Runner{
		tasks: make(chan Task, depth),
		quit:  make(chan struct{}),
	}
}

// Start launches the worker. Calling Start on a running Runner is a no-op.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return
	}
	r.started = true
	r.running.Store(true)

	r.wg.Add(1)
	go r.run(r.quit)
}

// Stop shuts the worker down and waits for it to exit. Tasks still queued are
// discarded, not drained. Calling Stop on a stopped Runner is a no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return
	}
	r.started = false
	r.running.Store(false)

	close(r.quit)
	r.wg.Wait()
	r.quit = make(chan struct{})
}

// Post queues a task without blocking. It returns false, and counts the
// drop, when the Runner is stopped or the queue is full.
func (r *Runner) Post(t Task) bool {
	if !r.running.Load() {
		r.dropped.Add(1)
		return false
	}
	select {
	case r.tasks <- t:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Dropped returns how many posts were rejected since the Runner was created.
func (r *Runner) Dropped() uint64 {
	return r.dropped.Load()
}

func (r *Runner) run(quit <-chan struct{}) {
	defer r.wg.Done()
	for {
		select {
		case <-quit:
			return
		case t := <-r.tasks:
			r.exec(t)
		}
	}
}

// exec runs one task with panic isolation. A handler failure belongs to that
// handler's invocation; the queue keeps moving.
func (r *Runner) exec(t Task) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Runner.exec",
				"panic":    rec,
			}).Error("Deferred task panicked")
		}
	}()
	t()
}
