package storage

import (
	"context"
	"errors"

	"github.com/viant/tokensale/internal/collection"
)

// Well known session keys.
const (
	KeyToken = "token"
	KeyEmail = "email"
	KeyID    = "id"
)

// ErrUnsupportedScheme is returned by Open for an unknown storage URL scheme.
var ErrUnsupportedScheme = errors.New("unsupported storage scheme")

// Storage is a pluggable persistence layer for session values.
// The in-memory default is fine for tests; swap with a file, Redis or SQLite
// backend to survive restarts.
type Storage interface {
	// GetItem returns the value stored under key, ok is false when absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key; removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Closer is implemented by backends holding a connection.
type Closer interface {
	Close() error
}

// Close closes s when it holds resources.
func Close(s Storage) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

// Memory keeps values in process memory.
type Memory struct {
	items *collection.SyncMap[string, string]
}

func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := m.items.Get(key)
	return v, ok, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.items.Put(key, value)
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// Len returns number of stored items.
func (m *Memory) Len() int {
	return m.items.Len()
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{items: collection.NewSyncMap[string, string]()}
}

type prefixed struct {
	Storage
	prefix string
}

func (p *prefixed) GetItem(ctx context.Context, key string) (string, bool, error) {
	return p.Storage.GetItem(ctx, p.prefix+key)
}

func (p *prefixed) SetItem(ctx context.Context, key, value string) error {
	return p.Storage.SetItem(ctx, p.prefix+key, value)
}

func (p *prefixed) RemoveItem(ctx context.Context, key string) error {
	return p.Storage.RemoveItem(ctx, p.prefix+key)
}

func (p *prefixed) Close() error {
	return Close(p.Storage)
}

// WithPrefix namespaces every key of s, so several sessions can share a backend.
func WithPrefix(s Storage, prefix string) Storage {
	if prefix == "" {
		return s
	}
	return &prefixed{Storage: s, prefix: prefix}
}
