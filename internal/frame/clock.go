package frame

import "time"

// SystemClock measures monotonic time since it was created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Elapsed() time.Duration {
	return time.Since(c.start)
}
