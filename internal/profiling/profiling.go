package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Recorder is a lightweight per-frame CPU profiler. Durations recorded under
// the same name within one frame accumulate.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	now    func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{
		totals: make(map[string]time.Duration),
		now:    time.Now,
	}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer rec.Track("renderer.Render")()
func (r *Recorder) Track(name string) func() {
	start := r.now()
	return func() {
		r.Add(name, r.now().Sub(start))
	}
}

// Add records d under name directly.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	r.totals[name] += d
	r.mu.Unlock()
}

// Reset clears the current frame. Call at the start of each frame.
func (r *Recorder) Reset() {
	r.mu.Lock()
	clear(r.totals)
	r.mu.Unlock()
}

// Snapshot returns a copy of the current frame totals.
func (r *Recorder) Snapshot() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.totals))
	for k, v := range r.totals {
		out[k] = v
	}
	return out
}

// Total sums every bucket of the current frame.
func (r *Recorder) Total() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	for _, v := range r.totals {
		sum += v
	}
	return sum
}

// TopN formats the n largest buckets of the current frame, largest first.
// Example: "renderer.Render:4.2ms, controls.Update:0.1ms"
func (r *Recorder) TopN(n int) string {
	ss := r.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, ms))
	}
	return strings.Join(parts, ", ")
}
