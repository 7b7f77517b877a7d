package task

import (
	"sync"
	"time"
)

// Handle identifies one scheduled task and allows cancelling it.
// Version: 1.0
type Handle interface {
	// Cancel stops the task from running if it has not fired yet.
	// Returns true if the cancellation prevented the task from running,
	// false if the task already fired or was already cancelled.
	Cancel() bool
}

// Scheduler schedules functions to run after a delay.
// Version: 1.0
type Scheduler interface {
	// AfterFunc schedules fn to run once after d elapses and returns a
	// handle that can cancel it before it fires.
	AfterFunc(d time.Duration, fn func()) Handle

	// Stop cancels all outstanding tasks. The scheduler must not be used
	// after Stop.
	Stop()
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct {
	mu      sync.Mutex
	stopped bool
	pending map[*timerHandle]struct{}
}

// NewTimerScheduler creates a TimerScheduler with no outstanding tasks.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		pending: make(map[*timerHandle]struct{}),
	}
}

// Ensure TimerScheduler implements the Scheduler interface
var _ Scheduler = (*TimerScheduler)(nil)

type timerHandle struct {
	scheduler *TimerScheduler
	timer     *time.Timer

	mu    sync.Mutex
	fired bool
}

// AfterFunc implements Scheduler.AfterFunc.
func (s *TimerScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	h := &timerHandle{scheduler: s}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		// A stopped scheduler accepts no work; hand back a handle that
		// reports the task as never having run.
		h.fired = false
		return h
	}

	h.timer = time.AfterFunc(d, func() {
		h.mu.Lock()
		if h.fired {
			h.mu.Unlock()
			return
		}
		h.fired = true
		h.mu.Unlock()

		s.forget(h)
		fn()
	})
	s.pending[h] = struct{}{}
	s.mu.Unlock()

	return h
}

// Cancel implements Handle.Cancel.
func (h *timerHandle) Cancel() bool {
	h.mu.Lock()
	if h.fired || h.timer == nil {
		h.mu.Unlock()
		return false
	}
	stopped := h.timer.Stop()
	if stopped {
		h.fired = true
	}
	h.mu.Unlock()

	if stopped {
		h.scheduler.forget(h)
	}
	return stopped
}

// Stop implements Scheduler.Stop.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	handles := make([]*timerHandle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	s.pending = make(map[*timerHandle]struct{})
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

func (s *TimerScheduler) forget(h *timerHandle) {
	s.mu.Lock()
	delete(s.pending, h)
	s.mu.Unlock()
}

// PendingCount reports how many tasks are scheduled but not yet fired or
// cancelled. Intended for tests and diagnostics.
func (s *TimerScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
