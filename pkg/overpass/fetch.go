package overpass

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/geo"
	"github.com/matzehuels/roadgraph/pkg/observability"
)

// Fetcher retrieves every highway element inside a bounding box, splitting
// large boxes into tiles.
type Fetcher struct {
	Querier  Querier
	TileSize float64 // maximum tile edge in degrees; geo.DefaultTileSize when 0
	Logger   *log.Logger
}

// NewFetcher creates a Fetcher. A nil logger selects log.Default().
func NewFetcher(q Querier, tileSize float64, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{Querier: q, TileSize: tileSize, Logger: logger}
}

// FetchStats describes a completed fetch run.
type FetchStats struct {
	Tiles    int
	Elements int
	Duration time.Duration
}

// Fetch validates b and queries it. Boxes within geo.TilingThreshold are
// fetched with one query and returned as is. Larger boxes are split with
// geo.SplitBounds and the tiles are queried one after another, never in
// parallel, then merged with Merge.
//
// The first failing tile aborts the run: its error is returned and results
// of earlier tiles are dropped.
func (f *Fetcher) Fetch(ctx context.Context, b geo.BoundingBox) (*Result, FetchStats, error) {
	if err := geo.Validate(b); err != nil {
		return nil, FetchStats{}, err
	}

	start := time.Now()
	tiles := []geo.BoundingBox{b}
	if geo.NeedsTiling(b) {
		tiles = geo.SplitBounds(b, f.TileSize)
	}
	stats := FetchStats{Tiles: len(tiles)}
	hooks := observability.Fetch()
	hooks.OnFetchStart(ctx, len(tiles))

	if len(tiles) == 1 {
		res, err := f.fetchTile(ctx, tiles[0], 1, 1)
		if err != nil {
			hooks.OnFetchComplete(ctx, 0, time.Since(start), err)
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeTransport, err, "overpass query")
			}
			return nil, stats, err
		}
		stats.Elements = len(res.Elements)
		stats.Duration = time.Since(start)
		hooks.OnFetchComplete(ctx, stats.Elements, stats.Duration, nil)
		return res, stats, nil
	}

	f.logger().Info("splitting area into tiles", "tiles", len(tiles), "tile_size", f.tileSize())

	results := make([]*Result, 0, len(tiles))
	for i, tile := range tiles {
		res, err := f.fetchTile(ctx, tile, i+1, len(tiles))
		if err != nil {
			hooks.OnFetchComplete(ctx, 0, time.Since(start), err)
			return nil, stats, errors.Wrap(errors.ErrCodeTransport, err, "tile %d of %d", i+1, len(tiles))
		}
		results = append(results, res)
	}

	merged := Merge(results...)
	stats.Elements = len(merged.Elements)
	stats.Duration = time.Since(start)
	hooks.OnFetchComplete(ctx, stats.Elements, stats.Duration, nil)
	f.logger().Debug("merged tiles", "tiles", len(tiles), "elements", stats.Elements)
	return merged, stats, nil
}

func (f *Fetcher) fetchTile(ctx context.Context, tile geo.BoundingBox, index, total int) (*Result, error) {
	query, err := BuildQuery(tile)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := f.Querier.Query(ctx, query)
	if err == nil && res == nil {
		res = &Result{}
	}
	elements := 0
	if res != nil {
		elements = len(res.Elements)
	}
	observability.Fetch().OnTileComplete(ctx, index, total, elements, time.Since(start), err)
	if err != nil {
		f.logger().Warn("tile fetch failed", "tile", index, "of", total, "err", err)
		return nil, err
	}

	f.logger().Debug("fetched tile", "tile", index, "of", total, "elements", elements,
		"duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

func (f *Fetcher) logger() *log.Logger {
	if f.Logger == nil {
		return log.Default()
	}
	return f.Logger
}

func (f *Fetcher) tileSize() float64 {
	if f.TileSize <= 0 {
		return geo.DefaultTileSize
	}
	return f.TileSize
}
