package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/tokensale/storage"
	"golang.org/x/oauth2"
)

// ChangeListener observes token changes; ok is false once the token is reset.
type ChangeListener func(ctx context.Context, value string, ok bool)

// Token holds the session credential and keeps storage in sync with it.
type Token struct {
	storage storage.Storage
	logger  *slog.Logger
	// commitMu orders changes with their storage writes; taken before mu.
	commitMu  sync.Mutex
	mu        sync.RWMutex
	value     *string
	listeners []ChangeListener
}

// NewToken creates a Token initialized from the "token" storage key.
func NewToken(ctx context.Context, store storage.Storage, opts ...Option) (*Token, error) {
	if store == nil {
		return nil, fmt.Errorf("token storage: %w", ErrMissingParameters)
	}
	options := newOptions(opts)
	ret := &Token{storage: store, logger: options.logger}
	value, ok, err := store.GetItem(ctx, storage.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if ok {
		ret.value = &value
	}
	return ret, nil
}

// Storage returns the storage the token persists to.
func (t *Token) Storage() storage.Storage {
	return t.storage
}

// Value returns the credential; ok is false when there is none.
func (t *Token) Value() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.value == nil {
		return "", false
	}
	return *t.value, true
}

// Set replaces the credential and persists it.
func (t *Token) Set(ctx context.Context, value string) {
	t.commit(ctx, &value)
}

// Reset drops the credential and removes it from storage.
func (t *Token) Reset(ctx context.Context) {
	t.commit(ctx, nil)
}

func (t *Token) commit(ctx context.Context, value *string) {
	t.commitMu.Lock()
	changed := t.swap(value)
	t.persist(ctx, value)
	t.commitMu.Unlock()
	if changed {
		t.notify(ctx, value)
	}
}

// swap replaces the value, the caller holds commitMu.
func (t *Token) swap(value *string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed := (t.value == nil) != (value == nil) || (value != nil && *t.value != *value)
	if value != nil {
		v := *value
		value = &v
	}
	t.value = value
	return changed
}

// OnChange registers a standing reaction run after every change.
func (t *Token) OnChange(listener ChangeListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// an empty credential is never written, same as an absent one
func (t *Token) persist(ctx context.Context, value *string) {
	var err error
	if value != nil && *value != "" {
		err = t.storage.SetItem(ctx, storage.KeyToken, *value)
	} else {
		err = t.storage.RemoveItem(ctx, storage.KeyToken)
	}
	if err != nil {
		t.logger.Warn("failed to persist token", "error", err)
	}
}

func (t *Token) notify(ctx context.Context, value *string) {
	t.mu.RLock()
	listeners := append([]ChangeListener(nil), t.listeners...)
	t.mu.RUnlock()
	for _, listener := range listeners {
		if value == nil {
			listener(ctx, "", false)
			continue
		}
		listener(ctx, *value, true)
	}
}

// Token implements oauth2.TokenSource so the credential can authorize HTTP calls.
func (t *Token) Token() (*oauth2.Token, error) {
	value, ok := t.Value()
	if !ok || value == "" {
		return nil, ErrNoToken
	}
	ret := &oauth2.Token{AccessToken: value, TokenType: "Bearer"}
	if expiry, ok := t.ExpiresAt(); ok {
		ret.Expiry = expiry
	}
	return ret, nil
}

// Claims decodes the credential as a JWT without verifying its signature;
// the backend is the only party validating it.
func (t *Token) Claims() (jwt.MapClaims, error) {
	value, ok := t.Value()
	if !ok || value == "" {
		return nil, ErrNoToken
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim when the credential is a JWT carrying one.
func (t *Token) ExpiresAt() (time.Time, bool) {
	claims, err := t.Claims()
	if err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the credential carries an exp claim before now.
func (t *Token) Expired(now time.Time) bool {
	expiry, ok := t.ExpiresAt()
	return ok && !now.Before(expiry)
}
