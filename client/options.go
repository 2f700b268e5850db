package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/quack/client/throttle"
)

// DefaultTimeout bounds each exchange made by the default transport.
const DefaultTimeout = 5 * time.Second

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	client            *http.Client
	rt                http.RoundTripper
	transport         Transport
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	maxBodySize       int64
	logger            *slog.Logger
	tracer            trace.Tracer
	requestID         bool
	headers           map[string]string
	maxConcurrent     int
	strictArrays      bool
}

// WithHTTPClient replaces the [http.Client] used by the default transport.
// The client is copied, so later changes to hc do not affect the [Client].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithRoundTripper sets the base [http.RoundTripper] of the default transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("round tripper must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTransport replaces the default [HTTPTransport] entirely. Options that
// configure the default transport are ignored when a Transport is given.
func WithTransport(t Transport) Option {
	return func(c *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		c.transport = t
		return nil
	}
}

// WithTimeout sets the overall exchange timeout of the default transport.
// Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects prevents the default transport from following redirects,
// so 3xx responses reach status validation.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithMaxBodySize caps how many response bytes the default transport reads.
func WithMaxBodySize(n int64) Option {
	return func(c *options) error {
		if n <= 0 {
			return fmt.Errorf("max body size[%d] must be greater than zero", n)
		}
		c.maxBodySize = n
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used to open one span per call.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		c.tracer = tracer
		return nil
	}
}

// WithRequestID stamps every request with a random X-Request-ID header
// unless the caller already set one.
func WithRequestID() Option {
	return func(c *options) error {
		c.requestID = true
		return nil
	}
}

// WithDefaultHeaders sets headers sent with every request. Headers given
// per call take precedence.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *options) error {
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
		return nil
	}
}

// WithMaxConcurrent bounds how many async calls run at once. Zero means unbounded.
func WithMaxConcurrent(n int) Option {
	return func(c *options) error {
		if n < 0 {
			return errors.New("max concurrent must not be negative")
		}
		c.maxConcurrent = n
		return nil
	}
}

// WithStrictArrays makes every array decode on the client strict: elements
// that fail to decode are reported instead of skipped.
func WithStrictArrays() Option {
	return func(c *options) error {
		c.strictArrays = true
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
