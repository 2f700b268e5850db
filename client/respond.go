package client

import (
	"context"

	"github.com/adamwoolhether/quack/client/dispatch"
)

// Respond calls path and decodes the response body into exactly one M.
// It fails with [ErrModelParsing] when the body cannot be decoded.
//
//	repo, err := client.Respond[Repo](ctx, c, client.MethodGet, "/repos/golang/go")
func Respond[M any, PM ModelPtr[M]](ctx context.Context, c *Client, method Method, path string, opts ...CallOption) (M, error) {
	var zero M

	settings, err := newCallOpts(opts)
	if err != nil {
		return zero, err
	}

	var models []M
	err = c.exec(ctx, method, path, settings, func(resp *Response) error {
		parser := settings.modelParser
		if parser == nil {
			parser = DefaultModelParser
		}
		return parser.ParseModel(resp.Body, decoderFor[M, PM](&models))
	})
	if err != nil {
		return zero, err
	}

	// A custom parser may return without decoding anything.
	if len(models) == 0 {
		return zero, ErrModelParsing
	}

	return models[0], nil
}

// RespondWithArray calls path and decodes the response body into zero or
// more Ms. By default the body must be a JSON array and elements that
// fail to decode are skipped; see [WithStrict] and [WithArrayParser].
func RespondWithArray[M any, PM ModelPtr[M]](ctx context.Context, c *Client, method Method, path string, opts ...CallOption) ([]M, error) {
	settings, err := newCallOpts(opts)
	if err != nil {
		return nil, err
	}

	parser := settings.arrayParser
	if parser == nil {
		parser = JSONArrayParser{}
	}
	if s, ok := parser.(strictable); ok && (settings.strict || c.strictArrays) {
		parser = s.strict()
	}

	models := make([]M, 0)
	err = c.exec(ctx, method, path, settings, func(resp *Response) error {
		return parser.ParseArray(resp.Body, decoderFor[M, PM](&models))
	})
	if err != nil {
		return nil, err
	}

	return models, nil
}

// RespondVoid calls path and only validates the status code. The body is
// discarded without being decoded.
func RespondVoid(ctx context.Context, c *Client, method Method, path string, opts ...CallOption) error {
	settings, err := newCallOpts(opts)
	if err != nil {
		return err
	}

	return c.exec(ctx, method, path, settings, func(*Response) error {
		return nil
	})
}

// RespondAsync is the asynchronous form of [Respond]. The call runs on a
// background goroutine and completion, if not nil, is invoked exactly once
// on that goroutine with the result.
func RespondAsync[M any, PM ModelPtr[M]](ctx context.Context, c *Client, method Method, path string, completion func(M, error), opts ...CallOption) *dispatch.Result {
	return c.queue.Start(ctx, func(ctx context.Context) error {
		m, err := Respond[M, PM](ctx, c, method, path, opts...)
		if completion != nil {
			completion(m, err)
		}
		return err
	})
}

// RespondWithArrayAsync is the asynchronous form of [RespondWithArray].
func RespondWithArrayAsync[M any, PM ModelPtr[M]](ctx context.Context, c *Client, method Method, path string, completion func([]M, error), opts ...CallOption) *dispatch.Result {
	return c.queue.Start(ctx, func(ctx context.Context) error {
		models, err := RespondWithArray[M, PM](ctx, c, method, path, opts...)
		if completion != nil {
			completion(models, err)
		}
		return err
	})
}

// RespondVoidAsync is the asynchronous form of [RespondVoid].
func RespondVoidAsync(ctx context.Context, c *Client, method Method, path string, completion func(error), opts ...CallOption) *dispatch.Result {
	return c.queue.Start(ctx, func(ctx context.Context) error {
		err := RespondVoid(ctx, c, method, path, opts...)
		if completion != nil {
			completion(err)
		}
		return err
	})
}
