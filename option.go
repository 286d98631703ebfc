package tokensale

import (
	"log/slog"
	"net/http"

	"github.com/viant/tokensale/storage"
)

// Option customizes NewSession.
type Option func(s *sessionOptions)

type sessionOptions struct {
	logger    *slog.Logger
	storage   storage.Storage
	transport http.RoundTripper
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *sessionOptions) {
		s.logger = logger
	}
}

// WithStorage injects a storage instead of opening the configured URL, so
// several sessions can share one backend.
func WithStorage(store storage.Storage) Option {
	return func(s *sessionOptions) {
		s.storage = store
	}
}

// WithTransport sets the base HTTP transport used under the session transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(s *sessionOptions) {
		s.transport = transport
	}
}
