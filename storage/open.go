package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs/url"
)

// Open creates a Storage from URL:
//
//	""  or memory://          in-process map
//	/path, file://, mem://    JSON snapshot written with viant/afs
//	redis://, rediss://       Redis
//	sqlite:///path/session.db SQLite
func Open(ctx context.Context, URL string) (Storage, error) {
	if URL == "" {
		return NewMemory(), nil
	}
	switch scheme := url.Scheme(URL, "file"); scheme {
	case "memory":
		return NewMemory(), nil
	case "file", "mem":
		return NewSnapshot(ctx, URL)
	case "redis", "rediss":
		return NewRedisURL(URL)
	case "sqlite":
		return NewSQLite(ctx, strings.TrimPrefix(URL, "sqlite://"))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedScheme, scheme)
	}
}
