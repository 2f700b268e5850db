package client

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/quack/client/dispatch"
	"github.com/adamwoolhether/quack/client/throttle"
)

// RequestIDHeader is the header stamped on requests by [WithRequestID].
const RequestIDHeader = "X-Request-ID"

// execFn operates on a response that passed status validation.
type execFn func(resp *Response) error

// Client issues requests relative to a base URL through a [Transport].
// Its configuration is fixed by [Build], so a Client is safe for
// concurrent use.
type Client struct {
	baseURL      *url.URL
	timeout      time.Duration
	transport    Transport
	logger       *slog.Logger
	tracer       trace.Tracer
	requestID    bool
	headers      map[string]string
	strictArrays bool
	queue        *dispatch.Queue
}

// Build creates a Client for baseURL, which must be an absolute URL.
// If not specified, the client uses an [HTTPTransport] with a
// [DefaultTimeout] and [http.DefaultTransport] underneath.
func Build(baseURL string, optFns ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		baseURL:      u,
		timeout:      DefaultTimeout,
		logger:       slog.Default(),
		tracer:       noop.NewTracerProvider().Tracer("no-op tracer"),
		requestID:    opts.requestID,
		headers:      opts.headers,
		strictArrays: opts.strictArrays,
		queue:        dispatch.NewQueue(opts.maxConcurrent),
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.timeout != nil {
		client.timeout = *opts.timeout
	}

	if opts.transport != nil {
		client.transport = opts.transport
		return client, nil
	}

	hc := &http.Client{Timeout: client.timeout}
	if opts.client != nil {
		cpy := *opts.client
		hc = &cpy
		if opts.timeout != nil {
			hc.Timeout = *opts.timeout
		} else {
			client.timeout = hc.Timeout
		}
	}

	if opts.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rt http.RoundTripper
	switch {
	case opts.rt != nil:
		rt = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		rt = opts.client.Transport
	default:
		rt = http.DefaultTransport
	}
	if opts.userAgent != "" {
		rt = userAgent{value: opts.userAgent, base: rt}
	}
	if opts.throttle != nil {
		rt, err = throttle.New(*opts.throttle, func() *slog.Logger { return client.logger }, rt)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
	}
	hc.Transport = rt

	client.transport = NewHTTPTransport(hc, opts.maxBodySize, client.logger)

	return client, nil
}

// BaseURL returns a copy of the URL every request path is appended to.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Timeout returns the exchange timeout of the default transport.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// BuildPath appends params to path as a query string.
// It's just a convenience method that wraps the public BuildPath func.
func (c *Client) BuildPath(path string, params map[string]string) string {
	return BuildPath(path, params)
}

// Wait blocks until every async call started on the client has completed.
func (c *Client) Wait() {
	c.queue.Wait()
}

// Shutdown makes async calls started from now on fail with
// [dispatch.ErrQueueShutdown] without touching the network. Their
// callbacks still run.
func (c *Client) Shutdown() {
	c.queue.Shutdown()
}

// exec builds the request, dispatches it through the transport, validates
// the status code and runs fn on the response.
func (c *Client) exec(ctx context.Context, method Method, path string, settings callOpts, fn execFn) (err error) {
	ctx, span := c.tracer.Start(ctx, "client.respond", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if ctx.Err() != nil {
		return &TransportError{Err: context.Cause(ctx)}
	}

	req := NewRequest(method, path, c.mergeHeaders(settings.headers), settings.body)
	if settings.encoding != nil {
		req.Encoding = *settings.encoding
	}

	if err := req.validate(); err != nil {
		return err
	}

	if settings.modify != nil {
		req = settings.modify(req)
		if err := req.validate(); err != nil {
			return fmt.Errorf("modified request: %w", err)
		}
	}

	requestID := c.stampRequestID(&req)

	span.SetAttributes(
		attribute.String("http.method", string(req.Method)),
		attribute.String("http.path", req.URI),
	)

	start := time.Now()
	c.logger.Debug("request started", "method", req.Method, "path", req.URI, "request_id", requestID)

	resp, err := c.transport.Execute(ctx, c.baseURL, req)
	if err != nil {
		c.logger.Debug("request failed", "method", req.Method, "path", req.URI, "request_id", requestID, "error", err)
		return &TransportError{Err: err}
	}
	if resp == nil {
		return &NamedError{Name: NoResponse}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("request completed", "method", req.Method, "path", req.URI, "request_id", requestID, "statusCode", resp.StatusCode, "since", time.Since(start).String())

	if !settings.statusRange.Contains(resp.StatusCode) {
		return &StatusCodeError{
			StatusCode: resp.StatusCode,
			Response:   resp,
		}
	}

	if err := fn(resp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// mergeHeaders layers the per-call headers over the client defaults.
func (c *Client) mergeHeaders(headers map[string]string) map[string]string {
	if len(c.headers) == 0 {
		return headers
	}

	merged := maps.Clone(c.headers)
	maps.Copy(merged, headers)

	return merged
}

// stampRequestID sets the request ID header when enabled and absent,
// returning the ID the request carries.
func (c *Client) stampRequestID(req *Request) string {
	if id, ok := req.Header(RequestIDHeader); ok {
		return id
	}
	if !c.requestID {
		return ""
	}

	id := uuid.NewString()
	headers := maps.Clone(req.Headers)
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	headers[RequestIDHeader] = id
	req.Headers = headers

	return id
}
