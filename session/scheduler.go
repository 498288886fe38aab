package session

import (
	"sync"
	"time"

	"github.com/juruen/digitrec/timeutil"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler runs single-shot callbacks on a clock and lets them be
// cancelled by handle.
type Scheduler struct {
	clock timeutil.Clock

	mu     sync.Mutex
	next   Handle
	timers map[Handle]timeutil.Timer
}

func NewScheduler(clock timeutil.Clock) *Scheduler {
	return &Scheduler{
		clock:  clock,
		timers: make(map[Handle]timeutil.Timer),
	}
}

// Schedule calls f with the returned handle once delay has elapsed, unless
// the handle is cancelled first.
func (s *Scheduler) Schedule(delay time.Duration, f func(Handle)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.timers[h] = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		_, live := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()

		if live {
			f(h)
		}
	})
	return h
}

// Cancel stops h. Cancelling a fired, cancelled or zero handle does nothing.
func (s *Scheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
