package task

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a deterministic Scheduler for tests. Time does not pass
// on its own; tasks fire only when Advance moves the fake clock past their
// deadline. Firing happens synchronously on the goroutine calling Advance.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	nextSeq int
	tasks   []*manualTask
	stopped bool
}

type manualTask struct {
	scheduler *ManualScheduler
	deadline  time.Duration
	seq       int
	fn        func()
	done      bool
}

// NewManualScheduler creates a ManualScheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Ensure ManualScheduler implements the Scheduler interface
var _ Scheduler = (*ManualScheduler)(nil)

// AfterFunc implements Scheduler.AfterFunc.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTask{
		scheduler: s,
		deadline:  s.now + d,
		seq:       s.nextSeq,
		fn:        fn,
	}
	s.nextSeq++

	if s.stopped {
		t.done = true
		return t
	}

	s.tasks = append(s.tasks, t)
	return t
}

// Cancel implements Handle.Cancel.
func (t *manualTask) Cancel() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves the fake clock forward by d and runs every task whose
// deadline has passed, in deadline order with scheduling order as the
// tie-break.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d

	var due []*manualTask
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if t.done {
			continue
		}
		if t.deadline <= s.now {
			t.done = true
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})
	s.mu.Unlock()

	// Run outside the lock so fired tasks may schedule or cancel freely.
	for _, t := range due {
		t.fn()
	}
}

// Stop implements Scheduler.Stop.
func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for _, t := range s.tasks {
		t.done = true
	}
	s.tasks = nil
}

// PendingCount reports how many tasks are scheduled but not yet fired or
// cancelled.
func (s *ManualScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}
