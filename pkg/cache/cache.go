// Package cache stores raw map-provider responses so repeated builds of the
// same area do not hit the provider again.
//
// Only response bodies are cached, keyed by the query that produced them.
// Built graphs are never stored here.
//
// Implementations:
//   - FileCache: sharded JSON files under a directory (CLI default)
//   - RedisCache: a Redis server shared by several API instances
//   - NullCache: caching disabled
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TTLQuery is the default lifetime of a cached provider response.
const TTLQuery = 24 * time.Hour

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// QueryKey returns the key for the response of query sent to endpoint.
	QueryKey(endpoint, query string) string
}

// DefaultKeyer produces keys of the form "overpass:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// QueryKey hashes endpoint and query together, so two providers never share
// entries.
func (DefaultKeyer) QueryKey(endpoint, query string) string {
	return hashKey("overpass", endpoint, query)
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend   string // file, redis or none
	Dir       string // FileCache directory
	RedisAddr string // RedisCache server address
}

// Open creates the cache described by opts. An empty backend means none.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		fc, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		return NewRedisCache(ctx, opts.RedisAddr)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
