package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tokensale/api"
	"github.com/viant/tokensale/api/mock"
	"github.com/viant/tokensale/auth"
	"github.com/viant/tokensale/storage"
)

func TestRoundTripper(t *testing.T) {
	ctx := context.Background()
	service := mock.NewService()
	service.AddUser("a@b.com", "p4ssword")
	server := mock.NewHTTPTestServer(service)
	defer server.Close()

	token, err := auth.NewToken(ctx, storage.NewMemory())
	require.NoError(t, err)
	client := New(token).Client()

	profile := func() (*http.Response, map[string]any) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+mock.ProfilePath, nil)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		body := map[string]any{}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return resp, body
	}

	resp, _ := profile()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login, err := api.NewHTTPClient(server.URL).Login(ctx, &api.Credentials{Email: "a@b.com", Password: "p4ssword"})
	require.NoError(t, err)
	token.Set(ctx, login.Data.Token)

	resp, body := profile()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "1", body["id"])

	token.Set(ctx, "forged")
	resp, _ = profile()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_, ok := token.Value()
	assert.False(t, ok, "rejected credential is reset")
}

func TestRoundTripper_OnUnauthorized(t *testing.T) {
	ctx := context.Background()
	service := mock.NewService()
	server := mock.NewHTTPTestServer(service)
	defer server.Close()

	token, err := auth.NewToken(ctx, storage.NewMemory())
	require.NoError(t, err)
	token.Set(ctx, "forged")
	called := 0
	client := New(token, WithTransport(http.DefaultTransport), WithOnUnauthorized(func(ctx context.Context) {
		called++
	})).Client()

	resp, err := client.Get(server.URL + mock.ProfilePath)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, 1, called)
	_, ok := token.Value()
	assert.True(t, ok)
}
