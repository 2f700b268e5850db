package throttle

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    Config
		expErr error
	}{
		{
			name:   "Invalid RPS (zero)",
			cfg:    Config{RPS: 0, Burst: 10},
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid RPS (negative)",
			cfg:    Config{RPS: -5, Burst: 10},
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid Burst (zero)",
			cfg:    Config{RPS: 10, Burst: 0},
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid Burst (negative)",
			cfg:    Config{RPS: 10, Burst: -5},
			expErr: ErrMustNotBeZero,
		},
		{
			name: "Valid input",
			cfg:  Config{RPS: 10, Burst: 20},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rt, err := New(tc.cfg, nil, http.DefaultTransport)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Errorf("exp nil err, got: %v", err)
			}
			if rt == nil {
				t.Error("exp non-nil RoundTripper")
			}
		})
	}
}

func TestLimiter_Behavior(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         Config
		numRequests int
		reqTimeout  time.Duration
		expErrs     int
		expErr      error
		minDuration time.Duration
	}{
		{
			name:        "Within Burst",
			cfg:         Config{RPS: 5, Burst: 5},
			numRequests: 5,
		},
		{
			name:        "Exceed Burst - Succeed Waiting",
			cfg:         Config{RPS: 10, Burst: 5},
			numRequests: 8,
			reqTimeout:  time.Second,
			// (8-5) calls / 10 RPS
			minDuration: 300 * time.Millisecond,
		},
		{
			name:        "Exceed Burst - Timeout Waiting",
			cfg:         Config{RPS: 5, Burst: 2},
			numRequests: 5,
			reqTimeout:  50 * time.Millisecond,
			expErrs:     3,
			expErr:      ErrWaitingFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			rt, err := New(tc.cfg, nil, http.DefaultTransport)
			if err != nil {
				t.Fatal(err)
			}
			hc := &http.Client{Transport: rt}

			var wg sync.WaitGroup
			errs := make([]error, tc.numRequests)
			start := time.Now()

			for i := range tc.numRequests {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					ctx := context.Background()
					if tc.reqTimeout > 0 {
						var cancel context.CancelFunc
						ctx, cancel = context.WithTimeout(ctx, tc.reqTimeout)
						defer cancel()
					}

					req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
					if err != nil {
						errs[idx] = err
						return
					}

					resp, err := hc.Do(req)
					if err != nil {
						errs[idx] = err
						return
					}
					resp.Body.Close()
				}(i)
			}

			wg.Wait()
			duration := time.Since(start)

			var failed int
			for _, err := range errs {
				if err == nil {
					continue
				}
				failed++
				if tc.expErr != nil && !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got %v", tc.expErr, err)
				}
			}

			if failed != tc.expErrs {
				t.Errorf("expected %d failed requests; got %d", tc.expErrs, failed)
			}
			if got := int(calls.Load()); got != tc.numRequests-failed {
				t.Errorf("expected %d server calls; got %d", tc.numRequests-failed, got)
			}
			if duration < tc.minDuration {
				t.Errorf("expected throttled duration >= %v; got %v", tc.minDuration, duration)
			}
		})
	}
}

func TestLimiter_PreCancelledContext(t *testing.T) {
	var called bool
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return nil, errors.New("unreachable")
	})

	rt, err := New(Config{RPS: 1, Burst: 1}, nil, next)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.invalid", nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = rt.RoundTrip(req)
	if !errors.Is(err, ErrContextEnded) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected ErrContextEnded wrapping context.Canceled, got: %v", err)
	}
	if called {
		t.Error("next transport should not be called with a cancelled context")
	}
}

func TestLimiter_LogsExhaustion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt, err := New(Config{RPS: 50, Burst: 1}, func() *slog.Logger { return logger }, next)
	if err != nil {
		t.Fatal(err)
	}

	for range 2 {
		req, err := http.NewRequest(http.MethodGet, "http://example.invalid/limited", nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := rt.RoundTrip(req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if !strings.Contains(buf.String(), "throttle tokens exhausted") {
		t.Errorf("expected exhaustion log, got: %s", buf.String())
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
