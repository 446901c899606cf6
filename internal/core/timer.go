package core

import (
	"sort"
	"time"
)

// FrameClock turns wall-clock samples into per-frame deltas.
type FrameClock struct {
	max  time.Duration
	last time.Time
}

// NewFrameClock constructs a clock whose deltas never exceed max. A
// non-positive max defaults to a quarter second, which keeps a stalled
// window from fast-forwarding every running animation on resume.
func NewFrameClock(max time.Duration) *FrameClock {
	if max <= 0 {
		max = 250 * time.Millisecond
	}
	return &FrameClock{max: max}
}

// Tick records now and returns the time elapsed since the previous tick.
// The first tick returns zero.
func (f *FrameClock) Tick(now time.Time) time.Duration {
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta < 0 {
		return 0
	}
	if delta > f.max {
		return f.max
	}
	return delta
}

// Scheduler runs fire-once callbacks once enough frame time has elapsed.
// Callbacks run on the caller's goroutine from inside Advance.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	pending []deferred
}

type deferred struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	s.pending = append(s.pending, deferred{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the scheduler forward by dt and runs every callback that
// became due, earliest first. Callbacks scheduled while advancing wait for
// the next call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	if len(s.pending) == 0 {
		return
	}
	var due, rest []deferred
	for _, d := range s.pending {
		if d.at <= s.now {
			due = append(due, d)
			continue
		}
		rest = append(rest, d)
	}
	if len(due) == 0 {
		return
	}
	s.pending = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, d := range due {
		d.fn()
	}
}

// Pending reports how many callbacks are waiting.
func (s *Scheduler) Pending() int { return len(s.pending) }
