// Package httpclient builds the HTTP clients used for upstream map services.
package httpclient

import (
	"net/http"
	"time"
)

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// NewUpstreamClient creates a client that identifies itself with userAgent
// on every request. OpenStreetMap services reject anonymous clients.
func NewUpstreamClient(timeout time.Duration, userAgent string) *http.Client {
	client := NewDefaultHTTPClient(timeout)
	client.Transport = &userAgentTransport{
		base:      http.DefaultTransport,
		userAgent: userAgent,
	}
	return client
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip sets User-Agent unless the request already carries one
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}
