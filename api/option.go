package api

import (
	"log/slog"
	"net/http"
	"time"
)

// Option customizes HTTPClient.
type Option func(c *HTTPClient)

// WithHTTPClient sets the underlying http client (e.g. one using the session transport).
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout of the default http client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}
