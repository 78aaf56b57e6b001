package control

import "time"

// maxCatchUp bounds the ticks run for one update so a stalled frame does
// not snowball into a burst of simulation work.
const maxCatchUp = 5

// Scheduler converts elapsed wall time into fixed animation ticks.
type Scheduler struct {
	interval time.Duration
	acc      time.Duration
}

// NewScheduler returns a scheduler running fps ticks per second.
func NewScheduler(fps int) *Scheduler {
	return &Scheduler{interval: time.Second / time.Duration(max(fps, 1))}
}

// Interval returns the time between ticks.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Due adds dt and returns how many ticks should run now. Time beyond
// maxCatchUp ticks is dropped.
func (s *Scheduler) Due(dt time.Duration) int {
	s.acc += dt
	n := int(s.acc / s.interval)
	if n > maxCatchUp {
		s.acc = 0
		return maxCatchUp
	}
	s.acc -= time.Duration(n) * s.interval
	return n
}

// Reset drops accumulated time.
func (s *Scheduler) Reset() {
	s.acc = 0
}
