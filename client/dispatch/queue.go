package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrQueueShutdown is the context cause seen by work started after
// [Queue.Shutdown].
var ErrQueueShutdown = errors.New("dispatch queue shut down")

// WorkFunc is the signature for async work.
type WorkFunc func(ctx context.Context) error

// Queue runs work on background goroutines with an optional
// concurrency limit.
type Queue struct {
	wg       sync.WaitGroup
	sem      chan struct{}
	shutdown atomic.Bool
	inFlight atomic.Int64
}

// NewQueue creates a Queue that runs at most maxConcurrent functions at
// a time. If maxConcurrent <= 0, concurrency is unlimited.
func NewQueue(maxConcurrent int) *Queue {
	q := &Queue{}
	if maxConcurrent > 0 {
		q.sem = make(chan struct{}, maxConcurrent)
	}
	return q
}

// Start launches fn in a new goroutine managed by the queue and returns
// a Result for tracking it.
func (q *Queue) Start(ctx context.Context, fn WorkFunc) *Result {
	ctx, cancel := context.WithCancelCause(ctx)
	r := &Result{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	q.wg.Add(1)
	q.inFlight.Add(1)
	go func() {
		defer func() {
			cancel(nil)
			close(r.done)
			q.inFlight.Add(-1)
			q.wg.Done()
		}()

		if q.shutdown.Load() {
			cancel(ErrQueueShutdown)
			r.err = fn(ctx)
			return
		}

		if q.sem != nil {
			select {
			case q.sem <- struct{}{}:
				defer func() {
					<-q.sem
				}()
			case <-ctx.Done():
			}
		}

		r.err = fn(ctx)
	}()

	return r
}

// Wait blocks until every function started on the queue has returned.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Shutdown makes work started from now on run with a cancelled context.
// Work already running is not interrupted.
func (q *Queue) Shutdown() {
	q.shutdown.Store(true)
}

// InFlight reports how many started functions have not yet returned.
func (q *Queue) InFlight() int {
	return int(q.inFlight.Load())
}
