package auth

import (
	"log/slog"

	"github.com/viant/tokensale/paths"
)

type options struct {
	logger          *slog.Logger
	restorationPath string
}

// Option customizes Token and Store construction.
type Option func(o *options)

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPasswordRestorationPath sets the page path sent with password reset requests.
func WithPasswordRestorationPath(path string) Option {
	return func(o *options) {
		o.restorationPath = path
	}
}

func newOptions(opts []Option) *options {
	ret := &options{
		logger:          slog.Default(),
		restorationPath: paths.NewPasswordCreationPagePathForBackend(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}
