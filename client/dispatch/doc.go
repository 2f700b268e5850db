// Package dispatch runs asynchronous API calls on background goroutines.
//
// A [Queue] bounds how many calls run at once and tracks every call it
// started so callers can wait for all of them:
//
//	q := dispatch.NewQueue(4)
//	r := q.Start(ctx, func(ctx context.Context) error {
//		return call(ctx)
//	})
//	// ... do other work ...
//	if err := r.Err(); err != nil { ... }
//	q.Wait()
//
// Every function handed to [Queue.Start] runs exactly once. When the queue
// is shut down, or the context ends while waiting for a slot, the function
// still runs but receives an already-cancelled context whose
// [context.Cause] reports why.
package dispatch
