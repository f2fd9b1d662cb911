package frame

import "time"

// Limiter caps the frame rate when vsync is unavailable or disabled.
type Limiter struct {
	maxFPS int
	next   time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter returns a limiter for maxFPS frames per second. Zero or a
// negative value disables limiting.
func NewLimiter(maxFPS int) *Limiter {
	return &Limiter{maxFPS: maxFPS, now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next frame is due, sleeping for most of the gap and
// spinning for the last 200µs.
func (l *Limiter) Wait() {
	if l.maxFPS <= 0 {
		l.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(l.maxFPS)

	if l.next.IsZero() {
		l.next = l.now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := l.next.Sub(l.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			l.sleep(remaining - 200*time.Microsecond)
		}
		if !l.next.After(l.now()) {
			break
		}
	}

	// After a hitch, resync instead of rushing to catch up.
	if late := l.now().Sub(l.next); late > target {
		l.next = l.now().Add(target)
	}
}
