package client

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Method is an HTTP request method. Any valid HTTP token is accepted,
// so extension methods can be written as Method("PURGE").
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// Valid reports whether m is a syntactically valid HTTP method.
func (m Method) Valid() bool {
	return m != "" && httpguts.ValidHeaderFieldName(string(m))
}

// queryOnly reports whether parameters for m belong in the query string
// rather than the request body.
func (m Method) queryOnly() bool {
	switch m {
	case MethodGet, MethodHead, MethodDelete:
		return true
	}
	return false
}

// Encoding selects how a [Request] body is put on the wire.
type Encoding int

const (
	// EncodingURL encodes a JSONBody as url parameters: in the query string
	// for GET, HEAD and DELETE, as a form body for every other method.
	EncodingURL Encoding = iota
	// EncodingJSON encodes a JSONBody as a compact JSON document.
	EncodingJSON
	// EncodingRaw sends StringBody and DataBody payloads untouched.
	EncodingRaw
)

func (e Encoding) String() string {
	switch e {
	case EncodingURL:
		return "url"
	case EncodingJSON:
		return "json"
	case EncodingRaw:
		return "raw"
	}
	return fmt.Sprintf("encoding(%d)", int(e))
}

// Request describes one outbound call. URI is relative to the client's
// base URL and is joined to it by plain concatenation.
//
// A Request is built per call and may be replaced by the hook given to
// [WithRequestModification] before it reaches the [Transport].
type Request struct {
	Method   Method
	URI      string
	Headers  map[string]string
	Body     Body
	Encoding Encoding
}

// NewRequest builds a Request with the default encoding for body:
// JSON for a JSONBody on a body-carrying method, raw for string and
// data bodies, url encoding otherwise.
func NewRequest(method Method, uri string, headers map[string]string, body Body) Request {
	return Request{
		Method:   method,
		URI:      uri,
		Headers:  maps.Clone(headers),
		Body:     body,
		Encoding: defaultEncoding(method, body),
	}
}

func defaultEncoding(method Method, body Body) Encoding {
	switch body.(type) {
	case JSONBody:
		if method.queryOnly() {
			return EncodingURL
		}
		return EncodingJSON
	case StringBody, DataBody:
		return EncodingRaw
	}
	return EncodingURL
}

// Header returns the value of the named header, matched case-insensitively.
func (r Request) Header(name string) (string, bool) {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// validate checks the parts of the request the transport cannot repair.
func (r Request) validate() error {
	if !r.Method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidHTTPMethod, r.Method)
	}

	for k, v := range r.Headers {
		if !httpguts.ValidHeaderFieldName(k) || !httpguts.ValidHeaderFieldValue(v) {
			return &NamedError{Name: fmt.Sprintf("Invalid Header %q", k)}
		}
	}

	return nil
}
