// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about fetch runs,
// cache lookups and provider requests, without the library depending on any
// particular metrics backend:
//
//	func main() {
//	    observability.SetFetchHooks(&prometheusFetchHooks{})
//	    // ... run application
//	}
//
// Libraries call the registered hooks:
//
//	observability.Fetch().OnTileComplete(ctx, i, n, len(res.Elements), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Fetch Hooks
// =============================================================================

// FetchHooks receives events from the tiled fetch orchestrator.
type FetchHooks interface {
	// OnFetchStart is called once per run with the number of tiles to query.
	OnFetchStart(ctx context.Context, tiles int)

	// OnTileComplete is called after each tile query, successful or not.
	OnTileComplete(ctx context.Context, index, total, elements int, duration time.Duration, err error)

	// OnFetchComplete is called when the run ends.
	OnFetchComplete(ctx context.Context, elements int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from response cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from provider requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetchStart(context.Context, int) {}
func (NoopFetchHooks) OnTileComplete(context.Context, int, int, int, time.Duration, error) {
}
func (NoopFetchHooks) OnFetchComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	fetchHooks FetchHooks = NoopFetchHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetFetchHooks registers custom fetch hooks. Nil is ignored.
func SetFetchHooks(h FetchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fetchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Fetch returns the registered fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	fetchHooks = NoopFetchHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
