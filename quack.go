// Package quack exposes the client builder.
package quack

import (
	"github.com/adamwoolhether/quack/client"
)

// NewClient instantiates a new *client.Client for baseURL with the provided options.
// If not specified, the default http.Client and http.Transport are used.
func NewClient(baseURL string, opts ...client.Option) (*client.Client, error) {
	return client.Build(baseURL, opts...)
}
