package pang

import "sort"

// timerEpsilon absorbs accumulated rounding of fixed-step time.
const timerEpsilon = 1e-9

type timer struct {
	at  float64
	seq int
	fn  func()
}

// Scheduler runs one-shot callbacks after a delay in game time. It only
// advances when told to, so frozen time freezes every pending timer.
type Scheduler struct {
	now    float64
	seq    int
	timers []timer
}

// NewScheduler creates an empty scheduler at time 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current game time.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending returns the number of timers that have not fired yet.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// After schedules fn to run once delay game-time units from now.
func (s *Scheduler) After(delay float64, fn func()) {
	s.seq++
	s.timers = append(s.timers, timer{at: s.now + delay, seq: s.seq, fn: fn})
}

// Advance moves time forward and fires every due timer in due order.
// Timers scheduled by a callback fire in the same call if already due.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}

	for {
		due := s.popDue()
		if due == nil {
			return
		}
		due.fn()
	}
}

// Clear drops every pending timer.
func (s *Scheduler) Clear() {
	s.timers = s.timers[:0]
}

func (s *Scheduler) popDue() *timer {
	if len(s.timers) == 0 {
		return nil
	}

	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at != s.timers[j].at {
			return s.timers[i].at < s.timers[j].at
		}
		return s.timers[i].seq < s.timers[j].seq
	})

	if s.timers[0].at > s.now+timerEpsilon {
		return nil
	}

	t := s.timers[0]
	s.timers = s.timers[1:]
	return &t
}
