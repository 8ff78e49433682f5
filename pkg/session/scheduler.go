package session

import (
	"sync"
	"time"
)

// Scheduler arms single-shot callbacks keyed by session identifier. The
// Manager uses it to destroy records the moment they expire; injecting a
// fake implementation lets tests trigger expiry deterministically instead
// of waiting on wall-clock timers.
type Scheduler interface {
	// Schedule arms fn to run after d. Scheduling an id that already has
	// a pending callback replaces it.
	Schedule(id string, d time.Duration, fn func())

	// Cancel drops the pending callback for id, if any.
	Cancel(id string)

	// Stop cancels everything and rejects further scheduling.
	Stop()
}

// TimerScheduler is the default Scheduler, backed by time.AfterFunc.
type TimerScheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[string]*time.Timer)}
}

func (s *TimerScheduler) Schedule(id string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
}

func (s *TimerScheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
