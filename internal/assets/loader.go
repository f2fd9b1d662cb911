// Package assets loads textures and fonts in the background and hands the
// results back to the main thread.
//
// Decoding runs on worker goroutines. A finished load does not call its
// callback directly: the callback is queued and only runs inside Drain,
// which the main loop calls once per frame. Callbacks may therefore touch
// the scene and GL state without locking.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"pixel-pirates/internal/logging"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is reported by loads submitted after Shutdown.
var ErrClosed = errors.New("assets: loader closed")

// Pending tracks one load request.
type Pending struct {
	path string
	done chan struct{}
	err  error
}

func newPending(path string) *Pending {
	return &Pending{path: path, done: make(chan struct{})}
}

// Done is closed once decoding finished, successfully or not. On success
// the callback has been queued but may not have run yet.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the load error after Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

func (p *Pending) Path() string {
	return p.path
}

func (p *Pending) finish(err error) {
	p.err = err
	close(p.done)
}

// job decodes an asset and returns the continuation to run on the main thread.
type job struct {
	pending *Pending
	kind    string
	decode  func() (func(), error)
}

// Loader is a small worker pool for asset decoding.
type Loader struct {
	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	inflight sync.WaitGroup

	mu    sync.Mutex
	queue []func()

	// submitMu orders submissions against Shutdown so no job lands in the
	// channel after it has been drained.
	submitMu  sync.Mutex
	closed    bool
	closeOnce sync.Once
	log       *slog.Logger
}

// NewLoader starts a loader with the given number of workers (at least 1).
func NewLoader(workers int) *Loader {
	workers = max(workers, 1)
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	l := &Loader{
		jobs:   make(chan job, 16),
		ctx:    gctx,
		cancel: cancel,
		group:  group,
		log:    logging.For("assets"),
	}
	for range workers {
		group.Go(l.worker)
	}
	return l
}

func (l *Loader) worker() error {
	for {
		select {
		case j := <-l.jobs:
			l.run(j)
		case <-l.ctx.Done():
			return nil
		}
	}
}

func (l *Loader) run(j job) {
	defer l.inflight.Done()

	cont, err := j.decode()
	if err != nil {
		l.log.Warn("asset load failed", "kind", j.kind, "path", j.pending.path, "err", err)
		j.pending.finish(err)
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, cont)
	l.mu.Unlock()
	l.log.Debug("asset decoded", "kind", j.kind, "path", j.pending.path)
	j.pending.finish(nil)
}

func (l *Loader) submit(kind, path string, decode func() (func(), error)) *Pending {
	p := newPending(path)

	l.submitMu.Lock()
	defer l.submitMu.Unlock()
	if l.closed {
		p.finish(ErrClosed)
		return p
	}
	l.inflight.Add(1)
	// Workers keep running until Shutdown gets the lock, so the send
	// always completes.
	l.jobs <- job{pending: p, kind: kind, decode: decode}
	return p
}

// Drain runs every queued continuation on the calling goroutine and returns
// how many ran.
func (l *Loader) Drain() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Wait blocks until every submitted load has been decoded or has failed.
func (l *Loader) Wait() {
	l.inflight.Wait()
}

// Shutdown stops the workers. Loads still waiting for a worker are dropped.
func (l *Loader) Shutdown() {
	l.closeOnce.Do(func() {
		l.submitMu.Lock()
		l.closed = true
		l.submitMu.Unlock()

		l.cancel()
		if err := l.group.Wait(); err != nil {
			l.log.Warn("asset workers stopped with error", "err", err)
		}
		// Fail anything that never reached a worker.
		for {
			select {
			case j := <-l.jobs:
				j.pending.finish(fmt.Errorf("%w: %s", ErrClosed, j.pending.path))
				l.inflight.Done()
			default:
				return
			}
		}
	})
}
