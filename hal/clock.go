package hal

import "time"

// monotonicClock reports milliseconds since construction. time.Since
// uses the monotonic reading, so wall-clock adjustments cannot move it
// backwards.
type monotonicClock struct {
	start time.Time
}

// NewClock returns the process-lifetime monotonic millisecond clock.
func NewClock() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) NowMs() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}
