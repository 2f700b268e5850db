package client

import "net/url"

// BuildPath appends params to path as a percent-encoded query string.
// Keys are emitted in sorted order. path is returned unchanged when
// params is empty.
func BuildPath(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	query := make(url.Values, len(params))
	for k, v := range params {
		query.Set(k, v)
	}

	return path + "?" + query.Encode()
}
