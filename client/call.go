package client

import (
	"errors"
	"fmt"
)

// CallOption is a functional option for a single Respond* call.
type CallOption func(*callOpts) error

type callOpts struct {
	body        Body
	headers     map[string]string
	statusRange StatusRange
	encoding    *Encoding
	modify      func(Request) Request
	modelParser ModelParser
	arrayParser ArrayParser
	strict      bool
}

func newCallOpts(optFns []CallOption) (callOpts, error) {
	settings := callOpts{statusRange: DefaultStatusRange}
	for _, opt := range optFns {
		if err := opt(&settings); err != nil {
			return callOpts{}, fmt.Errorf("applying call option: %w", err)
		}
	}
	return settings, nil
}

// WithBody sets the request payload.
func WithBody(body Body) CallOption {
	return func(opts *callOpts) error {
		opts.body = body
		return nil
	}
}

// WithHeaders adds headers to the request, replacing earlier values for the same keys.
func WithHeaders(headers map[string]string) CallOption {
	return func(opts *callOpts) error {
		if opts.headers == nil {
			opts.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			opts.headers[k] = v
		}
		return nil
	}
}

// WithHeader adds a single header to the request.
func WithHeader(key, value string) CallOption {
	return WithHeaders(map[string]string{key: value})
}

// WithStatusRange sets the valid status codes to the half-open range [lo, hi).
func WithStatusRange(lo, hi int) CallOption {
	return func(opts *callOpts) error {
		if lo >= hi {
			return fmt.Errorf("status range [%d, %d) is empty", lo, hi)
		}
		opts.statusRange = StatusRange{Min: lo, Max: hi}
		return nil
	}
}

// WithEncoding overrides the default body encoding chosen by [NewRequest].
func WithEncoding(enc Encoding) CallOption {
	return func(opts *callOpts) error {
		opts.encoding = &enc
		return nil
	}
}

// WithRequestModification registers fn to run on the built [Request]
// right before it is dispatched. The returned Request replaces the
// built one completely.
func WithRequestModification(fn func(Request) Request) CallOption {
	return func(opts *callOpts) error {
		if fn == nil {
			return errors.New("request modification must not be nil")
		}
		opts.modify = fn
		return nil
	}
}

// WithModelParser replaces the default single-model decoding for this call.
func WithModelParser(p ModelParser) CallOption {
	return func(opts *callOpts) error {
		if p == nil {
			return errors.New("model parser must not be nil")
		}
		opts.modelParser = p
		return nil
	}
}

// WithArrayParser replaces the default array decoding for this call.
func WithArrayParser(p ArrayParser) CallOption {
	return func(opts *callOpts) error {
		if p == nil {
			return errors.New("array parser must not be nil")
		}
		opts.arrayParser = p
		return nil
	}
}

// WithStrict reports every element that fails to decode instead of
// skipping it. It applies to the built-in array parsers only.
func WithStrict() CallOption {
	return func(opts *callOpts) error {
		opts.strict = true
		return nil
	}
}
