package glide

// Task is a continuation scheduled on a Scheduler. It runs at most once and
// can be cancelled any time before it fires.
type Task struct {
	at        float64
	seq       uint64
	fn        func()
	fired     bool
	cancelled bool
}

// Cancel prevents the task from running. No-op if it already ran.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
	t.fn = nil
}

// Pending reports whether the task is still waiting to run.
func (t *Task) Pending() bool {
	return t != nil && !t.fired && !t.cancelled
}

// Scheduler runs delayed continuations on the frame clock. Nothing blocks:
// callers schedule a func and the scheduler invokes it from Update once its
// delay has elapsed. A task scheduled during Update never runs in that same
// Update, so After(0, fn) and NextFrame(fn) both mean "next frame".
type Scheduler struct {
	now   float64
	seq   uint64
	tasks []*Task
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once delay seconds have elapsed.
func (s *Scheduler) After(delay float32, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Task{at: s.now + float64(delay), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// NextFrame schedules fn for the next Update.
func (s *Scheduler) NextFrame(fn func()) *Task {
	return s.After(0, fn)
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if t.Pending() {
			n++
		}
	}
	return n
}

// Update advances the clock by dt seconds and runs every due task in the
// order it was scheduled.
func (s *Scheduler) Update(dt float32) {
	s.now += float64(dt)
	limit := s.seq

	// Tasks appended by callbacks land past n and wait for the next Update.
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if !t.Pending() || t.seq > limit || t.at > s.now {
			continue
		}
		t.fired = true
		fn := t.fn
		t.fn = nil
		if fn != nil {
			fn()
		}
	}

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Pending() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
