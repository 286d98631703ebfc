package transport

import (
	"context"
	"net/http"
)

type Option func(*RoundTripper)

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(r *RoundTripper) {
		r.transport = transport
	}
}

// WithOnUnauthorized sets the callback run when an authorized request is
// rejected with 401; by default the credential is reset.
func WithOnUnauthorized(fn func(ctx context.Context)) Option {
	return func(r *RoundTripper) {
		r.onUnauthorized = fn
	}
}
