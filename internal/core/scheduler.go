package core

import (
	"context"
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Clock is the time source the simulators schedule against.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

// WallClock returns the Clock backed by the time package.
func WallClock() Clock { return wallClock{} }

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Scheduler runs delayed callbacks for one session. Callbacks never run
// concurrently with each other, and none runs once the scheduler is closed.
type Scheduler struct {
	clock  Clock
	ctx    context.Context
	cancel context.CancelFunc

	run sync.Mutex // held while a callback executes

	mu    sync.Mutex
	tasks map[*Task]struct{}
}

func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = WallClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		clock:  clock,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[*Task]struct{}),
	}
}

// Task is the handle of one scheduled callback.
type Task struct {
	s     *Scheduler
	timer Timer

	mu        sync.Mutex
	cancelled bool
	done      bool
}

// Schedule runs fn after d. On a closed scheduler it returns a task that
// never fires.
func (s *Scheduler) Schedule(d time.Duration, fn func()) *Task {
	t := &Task{s: s}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		t.cancelled = true
		return t
	}
	s.tasks[t] = struct{}{}
	t.timer = s.clock.AfterFunc(d, func() { s.fire(t, fn) })
	return t
}

func (s *Scheduler) fire(t *Task, fn func()) {
	s.mu.Lock()
	delete(s.tasks, t)
	s.mu.Unlock()

	s.run.Lock()
	defer s.run.Unlock()

	t.mu.Lock()
	if t.cancelled || s.ctx.Err() != nil {
		t.mu.Unlock()
		return
	}
	t.done = true
	t.mu.Unlock()

	fn()
}

// Cancel stops the task. It reports whether the callback was still pending.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	if t.cancelled || t.done {
		t.mu.Unlock()
		return false
	}
	t.cancelled = true
	t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.s.mu.Lock()
	delete(t.s.tasks, t)
	t.s.mu.Unlock()
	return true
}

// Pending reports whether the callback has neither run nor been cancelled.
func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.cancelled && !t.done && t.s.ctx.Err() == nil
}

// Len returns the number of callbacks waiting to fire.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// Closed reports whether Close has been called.
func (s *Scheduler) Closed() bool { return s.ctx.Err() != nil }

// Done is closed when the scheduler is closed.
func (s *Scheduler) Done() <-chan struct{} { return s.ctx.Done() }

// Close stops every outstanding timer. Callbacks already waiting on the run
// lock observe the closed context and return without effect.
func (s *Scheduler) Close() {
	s.cancel()

	s.mu.Lock()
	tasks := s.tasks
	s.tasks = make(map[*Task]struct{})
	s.mu.Unlock()

	for t := range tasks {
		t.mu.Lock()
		t.cancelled = true
		t.mu.Unlock()
		if t.timer != nil {
			t.timer.Stop()
		}
	}
}
