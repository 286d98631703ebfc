package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tokensale/storage"
)

func TestNewToken(t *testing.T) {
	ctx := context.Background()

	_, err := NewToken(ctx, nil)
	assert.True(t, errors.Is(err, ErrMissingParameters))

	store := storage.NewMemory()
	token, err := NewToken(ctx, store)
	require.NoError(t, err)
	_, ok := token.Value()
	assert.False(t, ok)

	require.NoError(t, store.SetItem(ctx, storage.KeyToken, "persisted"))
	token, err = NewToken(ctx, store)
	require.NoError(t, err)
	value, ok := token.Value()
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestToken_SetReset(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	token, err := NewToken(ctx, store)
	require.NoError(t, err)

	for _, value := range []string{"a", "b", "b", "c"} {
		token.Set(ctx, value)
		persisted, ok, err := store.GetItem(ctx, storage.KeyToken)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, value, persisted)
	}

	token.Reset(ctx)
	_, ok, _ := store.GetItem(ctx, storage.KeyToken)
	assert.False(t, ok)
	_, ok = token.Value()
	assert.False(t, ok)

	// an empty credential is held but not persisted
	token.Set(ctx, "")
	_, ok = token.Value()
	assert.True(t, ok)
	_, ok, _ = store.GetItem(ctx, storage.KeyToken)
	assert.False(t, ok)
}

func TestToken_OnChange(t *testing.T) {
	ctx := context.Background()
	token, err := NewToken(ctx, storage.NewMemory())
	require.NoError(t, err)

	type change struct {
		value string
		ok    bool
	}
	var changes []change
	token.OnChange(func(_ context.Context, value string, ok bool) {
		changes = append(changes, change{value, ok})
	})
	token.Set(ctx, "a")
	token.Set(ctx, "a")
	token.Reset(ctx)
	token.Reset(ctx)
	assert.Equal(t, []change{{"a", true}, {"", false}}, changes)
}

func TestToken_Claims(t *testing.T) {
	ctx := context.Background()
	token, err := NewToken(ctx, storage.NewMemory())
	require.NoError(t, err)

	_, err = token.Token()
	assert.True(t, errors.Is(err, ErrNoToken))
	_, err = token.Claims()
	assert.True(t, errors.Is(err, ErrNoToken))

	token.Set(ctx, "opaque-session-key")
	oauthToken, err := token.Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-session-key", oauthToken.AccessToken)
	assert.True(t, oauthToken.Expiry.IsZero())
	assert.False(t, token.Expired(time.Now()))

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": expiry.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	token.Set(ctx, signed)

	claims, err := token.Claims()
	require.NoError(t, err)
	assert.Equal(t, "42", claims["sub"])
	oauthToken, err = token.Token()
	require.NoError(t, err)
	assert.Equal(t, "Bearer", oauthToken.TokenType)
	assert.True(t, expiry.Equal(oauthToken.Expiry))
	assert.False(t, token.Expired(time.Now()))
	assert.True(t, token.Expired(expiry.Add(time.Second)))
}

func TestToken_PersistsInCommitOrder(t *testing.T) {
	ctx := context.Background()
	store := &blockingStorage{
		Memory:  storage.NewMemory(),
		key:     storage.KeyToken,
		value:   "first",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	token, err := NewToken(ctx, store)
	require.NoError(t, err)

	setDone := make(chan struct{})
	go func() {
		defer close(setDone)
		token.Set(ctx, "first")
	}()
	<-store.entered
	resetDone := make(chan struct{})
	go func() {
		defer close(resetDone)
		token.Reset(ctx)
	}()
	close(store.release)
	<-setDone
	<-resetDone

	_, ok := token.Value()
	assert.False(t, ok)
	_, ok, err = store.GetItem(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}
