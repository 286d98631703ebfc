package transport

import (
	"context"
	"net/http"

	"github.com/viant/tokensale/auth"
	"golang.org/x/oauth2"
)

// RoundTripper adds "Authorization: Bearer <token>" while the session holds a credential.
type RoundTripper struct {
	token          *auth.Token
	transport      http.RoundTripper
	onUnauthorized func(ctx context.Context)
}

func New(token *auth.Token, options ...Option) *RoundTripper {
	ret := &RoundTripper{
		token:     token,
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.onUnauthorized == nil {
		ret.onUnauthorized = token.Reset
	}
	return ret
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	value, ok := r.token.Value()
	if !ok || value == "" {
		return r.transport.RoundTrip(req)
	}
	authorized := &oauth2.Transport{Source: r.token, Base: r.transport}
	resp, err := authorized.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	// the backend no longer accepts the credential
	if resp.StatusCode == http.StatusUnauthorized {
		r.onUnauthorized(req.Context())
	}
	return resp, nil
}

// Client returns an http.Client using r.
func (r *RoundTripper) Client() *http.Client {
	return &http.Client{Transport: r}
}
