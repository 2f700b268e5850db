package client

import "net/http"

// Response is the result of one HTTP exchange as reported by a [Transport].
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// StatusRange is a half-open interval of valid status codes: Min is
// inclusive, Max exclusive.
type StatusRange struct {
	Min int
	Max int
}

// DefaultStatusRange accepts every 2xx status.
var DefaultStatusRange = StatusRange{Min: 200, Max: 300}

// Contains reports whether code falls within the range.
func (r StatusRange) Contains(code int) bool {
	return code >= r.Min && code < r.Max
}
