package game

import (
	"sort"
	"sync"
	"time"
)

// Clock tells the scheduler what time it is.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

// VirtualClock only moves when told to. Tests use it to step through
// pacing delays without sleeping.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewVirtualClock creates a clock stopped at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now returns the current virtual time.
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type scheduledTask struct {
	due time.Time
	seq uint64
	fn  func()
}

// Scheduler queues deferred steps. Nothing runs on its own: the owner calls
// RunDue from its loop, so tasks execute on the owner's goroutine.
type Scheduler struct {
	clock Clock

	mu    sync.Mutex
	tasks []scheduledTask
	seq   uint64
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// After queues fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.tasks = append(s.tasks, scheduledTask{due: s.clock.Now().Add(d), seq: s.seq, fn: fn})
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due.Equal(s.tasks[j].due) {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].due.Before(s.tasks[j].due)
	})
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// RunDue runs every task that is due, including tasks queued by them that
// are already due, and returns how many ran.
func (s *Scheduler) RunDue() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].due.After(s.clock.Now()) {
			s.mu.Unlock()
			return ran
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()

		task.fn()
		ran++
	}
}

// Advance moves a virtual clock forward and runs what became due. With any
// other clock it only runs due tasks.
func (s *Scheduler) Advance(d time.Duration) int {
	if vc, ok := s.clock.(*VirtualClock); ok {
		vc.Advance(d)
	}
	return s.RunDue()
}

// Drain runs every queued task regardless of due time.
func (s *Scheduler) Drain() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return ran
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()

		task.fn()
		ran++
	}
}
