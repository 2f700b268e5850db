package dispatch

import "context"

// Result represents an in-flight or completed async call.
type Result struct {
	done   chan struct{}
	err    error
	cancel context.CancelCauseFunc
}

// Done returns a channel that is closed when the call completes.
func (r *Result) Done() <-chan struct{} { return r.done }

// Err blocks until the call completes and returns its error.
func (r *Result) Err() error {
	<-r.done
	return r.err
}

// Cancel cancels the call's context. The call still completes, and
// its callback still runs, with the cancellation error.
func (r *Result) Cancel() {
	r.cancel(context.Canceled)
}
