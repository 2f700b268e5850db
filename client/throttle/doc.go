// Package throttle provides an [http.RoundTripper] that rate-limits
// outbound API calls using a token-bucket algorithm from
// [golang.org/x/time/rate].
//
// The client package installs it when built with client.WithThrottle;
// it can also wrap any transport directly:
//
//	rt, err := throttle.New(
//		throttle.Config{RPS: 10, Burst: 5},
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//
// When the bucket is empty, calls block until a token becomes available
// or the request context ends.
package throttle
