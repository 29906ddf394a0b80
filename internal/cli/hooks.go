package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/matzehuels/roadgraph/pkg/observability"
)

// fetchReporter shows tile progress on a spinner and counts cache hits.
// It is registered as the global fetch and cache hook for one command run.
type fetchReporter struct {
	observability.NoopCacheHooks
	spinner *Spinner
	hits    atomic.Int32
	misses  atomic.Int32
}

func newFetchReporter(s *Spinner) *fetchReporter {
	return &fetchReporter{spinner: s}
}

// install registers r and returns a function restoring the no-op hooks.
func (r *fetchReporter) install() func() {
	observability.SetFetchHooks(r)
	observability.SetCacheHooks(r)
	return observability.Reset
}

func (r *fetchReporter) OnFetchStart(_ context.Context, tiles int) {
	if tiles > 1 {
		r.spinner.SetMessage(fmt.Sprintf("Fetching %d tiles...", tiles))
	}
}

func (r *fetchReporter) OnTileComplete(_ context.Context, index, total, elements int, _ time.Duration, err error) {
	if err != nil || total < 2 {
		return
	}
	r.spinner.SetMessage(fmt.Sprintf("Fetched tile %d/%d (%d elements)...", index, total, elements))
}

func (r *fetchReporter) OnFetchComplete(context.Context, int, time.Duration, error) {}

func (r *fetchReporter) OnCacheHit(context.Context, string)  { r.hits.Add(1) }
func (r *fetchReporter) OnCacheMiss(context.Context, string) { r.misses.Add(1) }

// cached reports whether every lookup was answered from the cache.
func (r *fetchReporter) cached() bool {
	return r.hits.Load() > 0 && r.misses.Load() == 0
}

var (
	_ observability.FetchHooks = (*fetchReporter)(nil)
	_ observability.CacheHooks = (*fetchReporter)(nil)
)
