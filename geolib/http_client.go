package geolib

import (
	"net/http"

	"golang.org/x/time/rate"
)

// httpClient decorates a plain http.Client: it stamps the canonical
// request headers and paces outgoing requests with a rate limiter
// shared across all transports of one Client.
type httpClient struct {
	userAgent   string
	token       string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// An absent token is permitted and sent as empty.
	req.Header.Set("Authorization", "Bearer "+h.token)

	if err := h.rateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	return h.client.Do(req)
}

// NewHTTPClient wraps a client so every request carries the library
// headers and respects the given rate limit. It is exported for callers
// which want to reuse the exact transport behavior outside of Client.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate for a meaning of
// the limiter parameters.
func NewHTTPClient(client *http.Client,
	userAgent, token string,
	rateLimiter *rate.Limiter) HTTPClient {
	return httpClient{
		userAgent:   userAgent,
		token:       token,
		client:      client,
		rateLimiter: rateLimiter,
	}
}
