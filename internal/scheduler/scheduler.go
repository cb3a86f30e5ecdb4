// Package scheduler is a virtual clock with named logical timers.
//
// Time only moves when the owner calls Advance, so every callback runs on the
// owner's goroutine between frames and a run can be replayed exactly.
package scheduler

import (
	"fmt"
	"sort"
	"time"
)

type timer struct {
	name     string
	due      time.Duration
	interval time.Duration // zero for one-shot timers
	seq      uint64
	fn       func()
}

// Scheduler dispatches named one-shot and periodic timers against a virtual clock.
// It is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers map[string]*timer
}

// New returns an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{timers: make(map[string]*timer)}
}

// Now returns the virtual time elapsed since creation.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every arms a periodic timer that first fires one interval from now.
// Arming a name that is already active replaces it.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) {
	if interval <= 0 {
		panic(fmt.Sprintf("scheduler: timer %q has non-positive interval %v", name, interval))
	}
	s.arm(name, interval, interval, fn)
}

// After arms a one-shot timer.
func (s *Scheduler) After(name string, delay time.Duration, fn func()) {
	if delay <= 0 {
		panic(fmt.Sprintf("scheduler: timer %q has non-positive delay %v", name, delay))
	}
	s.arm(name, delay, 0, fn)
}

func (s *Scheduler) arm(name string, delay, interval time.Duration, fn func()) {
	s.seq++
	s.timers[name] = &timer{
		name:     name,
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
}

// Cancel stops the named timer. Unknown names are ignored.
func (s *Scheduler) Cancel(name string) {
	delete(s.timers, name)
}

// CancelAll stops every timer.
func (s *Scheduler) CancelAll() {
	for name := range s.timers {
		delete(s.timers, name)
	}
}

// Active reports whether the named timer is armed.
func (s *Scheduler) Active(name string) bool {
	_, ok := s.timers[name]
	return ok
}

// Pending returns the names of armed timers, sorted.
func (s *Scheduler) Pending() []string {
	names := make([]string, 0, len(s.timers))
	for name := range s.timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Advance moves the clock forward by dt, firing every timer that comes due in
// deadline order. Ties fire in the order the timers were armed. It returns the
// number of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			s.seq++
			t.due += t.interval
			t.seq = s.seq
		} else {
			delete(s.timers, t.name)
		}
		t.fn()
		fired++
	}
	s.now = target
	return fired
}

func (s *Scheduler) next(limit time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
