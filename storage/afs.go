package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
)

// Snapshot persists all items as one JSON document at an afs URL
// (file path, file:// or mem://), rewriting it on every change. It is a
// lightweight way to survive process restarts in a CLI.
type Snapshot struct {
	mu    sync.RWMutex
	fs    afs.Service
	URL   string
	items map[string]string
}

type snapshotDocument struct {
	Items map[string]string `json:"items"`
}

// NewSnapshot creates a Storage persisted at URL, loading existing items.
func NewSnapshot(ctx context.Context, URL string) (*Snapshot, error) {
	return newSnapshot(ctx, afs.New(), URL)
}

func newSnapshot(ctx context.Context, fs afs.Service, URL string) (*Snapshot, error) {
	s := &Snapshot{fs: fs, URL: URL, items: map[string]string{}}
	if err := s.load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load session snapshot %v: %w", URL, err)
	}
	return s, nil
}

func (s *Snapshot) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Snapshot) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.items[key]; ok && prev == value {
		return nil
	}
	s.items[key] = value
	return s.save(ctx)
}

func (s *Snapshot) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	return s.save(ctx)
}

// ---- persistence ----

func (s *Snapshot) save(ctx context.Context) error {
	data, err := json.MarshalIndent(snapshotDocument{Items: s.items}, "", "  ")
	if err != nil {
		return err
	}
	if err = s.fs.Upload(ctx, s.URL, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save session snapshot %v: %w", s.URL, err)
	}
	return nil
}

func (s *Snapshot) load(ctx context.Context) error {
	ok, err := s.fs.Exists(ctx, s.URL)
	if err != nil || !ok {
		return err
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var doc snapshotDocument
	if err = json.Unmarshal(data, &doc); err != nil {
		return err
	}
	for k, v := range doc.Items {
		s.items[k] = v
	}
	return nil
}
