package tokensale

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tokensale/api"
	"github.com/viant/tokensale/api/mock"
	"github.com/viant/tokensale/auth"
	"github.com/viant/tokensale/config"
	"github.com/viant/tokensale/storage"
)

func newConfig(t *testing.T, baseURL string) *config.Config {
	cfg := &config.Config{
		BaseURL:    baseURL,
		PublicURL:  "https://sale.example.com",
		StorageURL: filepath.Join(t.TempDir(), "session.json"),
	}
	cfg.Init()
	return cfg
}

func TestNewSession(t *testing.T) {
	ctx := context.Background()
	offline, err := NewSession(ctx, &config.Config{}, WithStorage(storage.NewMemory()))
	require.NoError(t, err)
	offline.Store.Logout(ctx)
	assert.Equal(t, auth.State{}, offline.Store.State())

	_, err = NewSession(ctx, &config.Config{BaseURL: "http://localhost", StorageURL: "ftp://host/x"})
	assert.ErrorIs(t, err, storage.ErrUnsupportedScheme)
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()
	service := mock.NewService()
	user := service.AddUser("alice@example.com", "secret-password")
	server := mock.NewHTTPTestServer(service)
	defer server.Close()
	cfg := newConfig(t, server.URL)

	session, err := NewSession(ctx, cfg)
	require.NoError(t, err)
	result := session.Store.Login(ctx, api.Credentials{Email: user.Email, Password: user.Password})
	require.True(t, result.Success)
	require.NoError(t, session.Close())

	restored, err := NewSession(ctx, cfg)
	require.NoError(t, err)
	defer restored.Close()
	state := restored.Store.State()
	assert.Equal(t, user.Email, state.Email)
	assert.Equal(t, "1", state.ID)
	assert.True(t, state.IsAuthenticated)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+mock.ProfilePath, nil)
	require.NoError(t, err)
	resp, err := restored.HTTP.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSession_Unauthorized(t *testing.T) {
	ctx := context.Background()
	service := mock.NewService()
	server := mock.NewHTTPTestServer(service)
	defer server.Close()

	session, err := NewSession(ctx, newConfig(t, server.URL), WithStorage(storage.NewMemory()))
	require.NoError(t, err)
	session.Store.SetEmail(ctx, "bob@example.com")
	session.Store.SetID(ctx, "7")
	session.Store.SetToken(ctx, "revoked")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+mock.ProfilePath, nil)
	require.NoError(t, err)
	resp, err := session.HTTP.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	state := session.Store.State()
	assert.False(t, state.IsAuthenticated)
	assert.Empty(t, state.Email)
	assert.Empty(t, state.ID)
	_, ok, err := session.Storage.GetItem(ctx, storage.KeyEmail)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_RestorationPath(t *testing.T) {
	ctx := context.Background()
	service := mock.NewService()
	service.AddUser("carol@example.com", "secret-password")
	server := mock.NewHTTPTestServer(service)
	defer server.Close()

	session, err := NewSession(ctx, newConfig(t, server.URL), WithStorage(storage.NewMemory()))
	require.NoError(t, err)
	session.Store.ResetPassword(ctx, api.PasswordReset{Email: "carol@example.com"})
	assert.True(t, session.Store.State().IsPasswordReset)
	assert.Equal(t, []string{"https://sale.example.com/auth/create-new-password/"}, service.RestorationPaths())
}

func TestSession_AuthFlowRejectionKeepsSession(t *testing.T) {
	ctx := context.Background()
	service := mock.NewService()
	service.CreateNewPasswordHandler = func(w http.ResponseWriter, r *http.Request) {
		mock.WriteJSON(w, http.StatusUnauthorized, map[string]any{"reason": "Invalid token."})
	}
	server := mock.NewHTTPTestServer(service)
	defer server.Close()

	session, err := NewSession(ctx, newConfig(t, server.URL), WithStorage(storage.NewMemory()))
	require.NoError(t, err)
	session.Store.SetEmail(ctx, "bob@example.com")
	session.Store.SetID(ctx, "7")
	session.Store.SetToken(ctx, "session-token")

	session.Store.CreateNewPassword(ctx, api.NewPassword{Token: "expired", Password: "long-enough", ConfirmationPassword: "long-enough"})

	state := session.Store.State()
	assert.Equal(t, "Invalid token.", state.Errors.Common)
	assert.False(t, state.IsNewPasswordCreated)
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "bob@example.com", state.Email)
	assert.Equal(t, "7", state.ID)
	value, ok, err := session.Storage.GetItem(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "session-token", value)
}
