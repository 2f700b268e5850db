package client_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/adamwoolhether/quack/client"
)

func TestKindOf(t *testing.T) {
	testCases := map[string]struct {
		err error
		exp client.Kind
	}{
		"nil":                {err: nil, exp: client.KindUnknown},
		"foreign":            {err: errors.New("other"), exp: client.KindUnknown},
		"modelParsing":       {err: client.ErrModelParsing, exp: client.KindModelParsing},
		"wrappedJSONParsing": {err: fmt.Errorf("decoding: %w", client.ErrJSONParsing), exp: client.KindJSONParsing},
		"invalidMethod":      {err: fmt.Errorf("%w: %q", client.ErrInvalidHTTPMethod, "X Y"), exp: client.KindInvalidHTTPMethod},
		"named":              {err: &client.NamedError{Name: client.NoResponse}, exp: client.KindNamed},
		"transport":          {err: &client.TransportError{Err: context.DeadlineExceeded}, exp: client.KindTransport},
		"statusCode":         {err: &client.StatusCodeError{StatusCode: 500}, exp: client.KindInvalidStatusCode},
		"element":            {err: &client.ElementError{Index: 3, Err: client.ErrModelParsing}, exp: client.KindModelParsing},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := client.KindOf(tc.err); got != tc.exp {
				t.Errorf("KindOf() = %v, want %v", got, tc.exp)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if got := client.KindTransport.String(); got != "transport" {
		t.Errorf("exp %q, got %q", "transport", got)
	}
	if got := client.Kind(99).String(); got != "kind(99)" {
		t.Errorf("exp %q, got %q", "kind(99)", got)
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	err := &client.TransportError{Err: context.Canceled}

	if !errors.Is(err, client.ErrTransport) {
		t.Error("expected ErrTransport in chain")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected the underlying error in chain")
	}
}

func TestStatusCodeError_BodyCapped(t *testing.T) {
	body := strings.Repeat("x", 10_000)
	err := &client.StatusCodeError{
		StatusCode: 500,
		Response:   &client.Response{StatusCode: 500, Body: []byte(body)},
	}

	msg := err.Error()
	if !strings.Contains(msg, "500") {
		t.Errorf("expected status code in message, got: %q", msg[:64])
	}
	if strings.Count(msg, "x") != 4<<10 {
		t.Errorf("expected body capped at %d bytes, got %d", 4<<10, strings.Count(msg, "x"))
	}
	if len(err.Response.Body) != len(body) {
		t.Error("full body should remain on the response")
	}
}

func TestElementError_Error(t *testing.T) {
	testCases := map[string]struct {
		err *client.ElementError
		exp string
	}{
		"index": {
			err: &client.ElementError{Index: 2, Err: client.ErrModelParsing},
			exp: "element 2: model parsing failed",
		},
		"key": {
			err: &client.ElementError{Index: 0, Key: "foo", Err: client.ErrModelParsing},
			exp: `element 0 (key "foo"): model parsing failed`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, got)
			}
		})
	}
}
