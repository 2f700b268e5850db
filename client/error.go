package client

import (
	"errors"
	"fmt"
	"strconv"
)

// maxErrBodySize caps the amount of response body rendered when
// formatting a [StatusCodeError]. The full body stays available on
// [StatusCodeError.Response].
const maxErrBodySize = 4 << 10 // 4KB

// NoResponse is the name carried by the [NamedError] returned when a
// transport yields neither a response nor an error.
const NoResponse = "No Response"

var (
	// ErrModelParsing indicates a response body could not be decoded into the model.
	ErrModelParsing = errors.New("model parsing failed")
	// ErrJSONParsing indicates a response body did not have the JSON shape a parser requires.
	ErrJSONParsing = errors.New("json parsing failed")
	// ErrInvalidHTTPMethod indicates the request method is not a valid HTTP token.
	ErrInvalidHTTPMethod = errors.New("invalid http method")
	// ErrInvalidStatusCode is the sentinel error wrapped by [StatusCodeError].
	ErrInvalidStatusCode = errors.New("invalid status code")
	// ErrTransport is the sentinel error wrapped by [TransportError].
	ErrTransport = errors.New("transport failure")
	// ErrNamed is the sentinel error wrapped by [NamedError].
	ErrNamed = errors.New("named error")
)

// Kind classifies every error produced by the request pipeline.
type Kind int

const (
	KindUnknown Kind = iota
	KindModelParsing
	KindJSONParsing
	KindNamed
	KindTransport
	KindInvalidStatusCode
	KindInvalidHTTPMethod
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindModelParsing:      "model_parsing",
	KindJSONParsing:       "json_parsing",
	KindNamed:             "named",
	KindTransport:         "transport",
	KindInvalidStatusCode: "invalid_status_code",
	KindInvalidHTTPMethod: "invalid_http_method",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf reports the [Kind] of err. Errors that did not originate in the
// pipeline report [KindUnknown].
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidStatusCode):
		return KindInvalidStatusCode
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrInvalidHTTPMethod):
		return KindInvalidHTTPMethod
	case errors.Is(err, ErrJSONParsing):
		return KindJSONParsing
	case errors.Is(err, ErrModelParsing):
		return KindModelParsing
	case errors.Is(err, ErrNamed):
		return KindNamed
	default:
		return KindUnknown
	}
}

// StatusCodeError is returned when the response status code falls
// outside the call's valid range. The full response is attached.
type StatusCodeError struct {
	StatusCode int
	Response   *Response
}

func (e *StatusCodeError) Error() string {
	var body []byte
	if e.Response != nil {
		body = e.Response.Body
	}
	if len(body) > maxErrBodySize {
		body = body[:maxErrBodySize]
	}
	return fmt.Sprintf("%v: %d, body: %s", ErrInvalidStatusCode, e.StatusCode, body)
}

func (e *StatusCodeError) Unwrap() error {
	return ErrInvalidStatusCode
}

// TransportError wraps a failure reported by the [Transport].
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// NamedError is a failure described only by a name, such as [NoResponse].
type NamedError struct {
	Name string
}

func (e *NamedError) Error() string {
	return e.Name
}

func (e *NamedError) Unwrap() error {
	return ErrNamed
}

// ElementError reports one element that failed to decode during a strict
// array parse. Index is the element's position in the payload; Key is set
// when the element came from a JSON object.
type ElementError struct {
	Index int
	Key   string
	Err   error
}

func (e *ElementError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("element %d (key %q): %v", e.Index, e.Key, e.Err)
	}
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
