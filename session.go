package tokensale

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/viant/tokensale/api"
	"github.com/viant/tokensale/auth"
	"github.com/viant/tokensale/config"
	"github.com/viant/tokensale/paths"
	"github.com/viant/tokensale/storage"
	"github.com/viant/tokensale/transport"
)

// Session bundles the wired session components.
type Session struct {
	Store  *auth.Store
	Token  *auth.Token
	Client *api.HTTPClient
	// HTTP authorizes calls to other backend resources with the session credential.
	HTTP    *http.Client
	Storage storage.Storage
	Logger  *slog.Logger
}

// NewSession creates a Session configured by cfg. The stored session can be
// inspected and cleared without a backend; flows need cfg.BaseURL (see
// config.Config.Validate).
func NewSession(ctx context.Context, cfg *config.Config, options ...Option) (*Session, error) {
	opts := &sessionOptions{logger: slog.Default(), transport: http.DefaultTransport}
	for _, opt := range options {
		opt(opts)
	}

	store := opts.storage
	if store == nil {
		var err error
		if store, err = storage.Open(ctx, cfg.StorageURL); err != nil {
			return nil, err
		}
	}
	store = storage.WithPrefix(store, cfg.StoragePrefix)

	authOptions := []auth.Option{auth.WithLogger(opts.logger)}
	restorationPath := cfg.RestorationPath
	if restorationPath == "" {
		restorationPath = paths.NewPasswordCreationPagePathForBackend()
	}
	authOptions = append(authOptions, auth.WithPasswordRestorationPath(paths.Join(cfg.PublicURL, restorationPath)))

	token, err := auth.NewToken(ctx, store, authOptions...)
	if err != nil {
		_ = storage.Close(store)
		return nil, err
	}

	// the store is created after the client it depends on
	var authStore *auth.Store
	roundTripper := transport.New(token,
		transport.WithTransport(opts.transport),
		transport.WithOnUnauthorized(func(ctx context.Context) {
			if authStore != nil {
				authStore.Logout(ctx)
				return
			}
			token.Reset(ctx)
		}))
	httpClient := &http.Client{Transport: roundTripper, Timeout: cfg.Timeout}
	// auth flows report a rejection through the store errors and keep the session
	client := api.NewHTTPClient(cfg.BaseURL,
		api.WithHTTPClient(&http.Client{Transport: opts.transport, Timeout: cfg.Timeout}),
		api.WithLogger(opts.logger))

	if authStore, err = auth.New(ctx, client, token, authOptions...); err != nil {
		_ = storage.Close(store)
		return nil, err
	}
	return &Session{
		Store:   authStore,
		Token:   token,
		Client:  client,
		HTTP:    httpClient,
		Storage: store,
		Logger:  opts.logger,
	}, nil
}

// Close releases the storage connection.
func (s *Session) Close() error {
	return storage.Close(s.Storage)
}
