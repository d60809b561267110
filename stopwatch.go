package workdist

import "time"

// Stopwatch measures wall-clock time from its creation.
// It reads the monotonic clock, so Elapsed never goes backwards.
type Stopwatch struct {
	start time.Time
}

// NewStopwatch starts a stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{start: time.Now()}
}

// Elapsed returns the time since the stopwatch started.
func (s *Stopwatch) Elapsed() time.Duration {
	return max(time.Since(s.start), 0)
}

// Seconds returns Elapsed in seconds.
func (s *Stopwatch) Seconds() float64 {
	return s.Elapsed().Seconds()
}
