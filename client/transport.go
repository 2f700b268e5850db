package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// DefaultMaxBodySize is the largest response body HTTPTransport reads
// unless configured otherwise with [WithMaxBodySize].
const DefaultMaxBodySize = 4 << 20 // 4MB

// Transport performs one HTTP exchange for a fully built [Request].
// Returning a nil *Response with a nil error is reported to callers as a
// [NamedError] named [NoResponse].
type Transport interface {
	Execute(ctx context.Context, baseURL *url.URL, req Request) (*Response, error)
}

// TransportFunc adapts an ordinary function to a [Transport].
type TransportFunc func(ctx context.Context, baseURL *url.URL, req Request) (*Response, error)

func (f TransportFunc) Execute(ctx context.Context, baseURL *url.URL, req Request) (*Response, error) {
	return f(ctx, baseURL, req)
}

// HTTPTransport is the default [Transport], built on [net/http].
type HTTPTransport struct {
	client      *http.Client
	maxBodySize int64
	logger      *slog.Logger
}

// NewHTTPTransport wraps hc. A nil hc uses a new [http.Client]; a
// non-positive maxBodySize uses [DefaultMaxBodySize].
func NewHTTPTransport(hc *http.Client, maxBodySize int64, logger *slog.Logger) *HTTPTransport {
	if hc == nil {
		hc = &http.Client{}
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPTransport{
		client:      hc,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// Execute sends req to baseURL+req.URI and reads the whole response body.
func (t *HTTPTransport) Execute(ctx context.Context, baseURL *url.URL, req Request) (*Response, error) {
	httpReq, err := newHTTPRequest(ctx, baseURL, req)
	if err != nil {
		return nil, err
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("exec http do: %w", err)
	}

	defer func() {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			t.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			t.logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > t.maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", t.maxBodySize)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// newHTTPRequest converts req into an *http.Request, encoding the body
// according to req.Encoding. Caller supplied headers win over the
// defaults set here.
func newHTTPRequest(ctx context.Context, baseURL *url.URL, req Request) (*http.Request, error) {
	target := baseURL.String() + req.URI

	var payload []byte
	var contentType string

	switch body := req.Body.(type) {
	case nil:
	case StringBody:
		payload = []byte(body)
		contentType = "text/plain; charset=utf-8"
	case DataBody:
		payload = body
		contentType = "application/octet-stream"
	case JSONBody:
		if req.Encoding == EncodingURL {
			form := formValues(body)
			if req.Method.queryOnly() {
				if len(form) > 0 {
					target = appendQuery(target, form.Encode())
				}
				break
			}
			payload = []byte(form.Encode())
			contentType = "application/x-www-form-urlencoded; charset=utf-8"
			break
		}

		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		payload = data
		contentType = "application/json"
	default:
		return nil, fmt.Errorf("unsupported body type %T", body)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), target, reader)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.Headers {
		// net/http sends Request.Host and ignores a Host header.
		if strings.EqualFold(k, "Host") {
			httpReq.Host = v
			continue
		}
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// formValues flattens a JSON body into url values. Nested objects become
// key[sub] entries, slices repeat their key, and every other value is
// rendered with fmt.
func formValues(body JSONBody) url.Values {
	values := make(url.Values, len(body))
	for k, raw := range body {
		addFormValue(values, k, raw)
	}

	return values
}

func addFormValue(values url.Values, key string, raw any) {
	switch v := raw.(type) {
	case map[string]any:
		for sub, elem := range v {
			addFormValue(values, key+"["+sub+"]", elem)
		}
	case JSONBody:
		addFormValue(values, key, map[string]any(v))
	case map[string]string:
		for sub, elem := range v {
			values.Add(key+"["+sub+"]", elem)
		}
	case []any:
		for _, elem := range v {
			addFormValue(values, key, elem)
		}
	case []string:
		for _, elem := range v {
			values.Add(key, elem)
		}
	case nil:
		values.Add(key, "")
	default:
		values.Add(key, fmt.Sprint(v))
	}
}

func appendQuery(target, query string) string {
	if strings.Contains(target, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}
