package round

import "time"

// Scheduler is a deterministic, tick-driven task queue. It owns a logical
// clock that only moves when Advance is called, so games can be stepped by
// a real ticker in production and by scripted durations in tests.
//
// Every task is stamped with the generation it was scheduled in. Bump starts
// a new generation; tasks from older generations are dropped without running.
// Not safe for concurrent use: a single goroutine owns the game state.
type Scheduler struct {
	now   time.Duration
	gen   uint64
	seq   uint64
	tasks []*task
}

type task struct {
	seq     uint64
	at      time.Duration
	every   time.Duration
	gen     uint64
	fn      func()
	stopped bool
}

// Handle refers to a scheduled task. The zero Handle refers to nothing.
type Handle struct {
	t *task
}

// Cancel stops the task. Safe to call on the zero Handle and more than once.
func (h Handle) Cancel() {
	if h.t != nil {
		h.t.stopped = true
	}
}

// Active reports whether the task will still run.
func (h Handle) Active() bool {
	return h.t != nil && !h.t.stopped
}

// NewScheduler creates a scheduler at time zero, generation zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's logical time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Generation returns the current generation.
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// Bump starts a new generation, cancelling every pending task.
func (s *Scheduler) Bump() uint64 {
	s.gen++
	for _, t := range s.tasks {
		t.stopped = true
	}
	s.tasks = nil
	return s.gen
}

// After schedules fn to run once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every d, starting d from now.
// A non-positive period degrades to a one-shot task.
func (s *Scheduler) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		return s.schedule(d, 0, fn)
	}
	return s.schedule(d, d, fn)
}

func (s *Scheduler) schedule(d, every time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &task{
		seq:   s.seq,
		at:    s.now + d,
		every: every,
		gen:   s.gen,
		fn:    fn,
	}
	s.tasks = append(s.tasks, t)
	return Handle{t: t}
}

// Pending returns the number of tasks that will still run.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped && t.gen == s.gen {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt, running due tasks in time order.
// Tasks scheduled while advancing run in the same call if they fall due.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.at
		if t.every > 0 {
			t.at += t.every
		} else {
			t.stopped = true
		}
		if t.gen != s.gen {
			t.stopped = true
			continue
		}
		t.fn()
	}

	s.now = target
	s.compact()
}

// nextDue returns the earliest live task due at or before target.
// Ties run in scheduling order.
func (s *Scheduler) nextDue(target time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.stopped || t.at > target {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// compact drops stopped and stale tasks.
func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped && t.gen == s.gen {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
