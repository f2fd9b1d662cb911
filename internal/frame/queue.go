package frame

import "sync"

// Queue is a Scheduler that collects frame callbacks until the main loop
// runs them, once per displayed frame.
type Queue struct {
	mu        sync.Mutex
	callbacks []func()
}

func NewQueue() *Queue {
	return &Queue{}
}

// RequestFrame queues fn for the next RunFrame.
func (q *Queue) RequestFrame(fn func()) {
	q.mu.Lock()
	q.callbacks = append(q.callbacks, fn)
	q.mu.Unlock()
}

// RunFrame runs the callbacks queued before the call. Callbacks queued while
// running are deferred to the next RunFrame. It returns how many ran.
func (q *Queue) RunFrame() int {
	q.mu.Lock()
	batch := q.callbacks
	q.callbacks = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.callbacks)
}
