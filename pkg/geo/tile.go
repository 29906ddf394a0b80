package geo

import "math"

const (
	// DefaultTileSize is the default maximum tile edge in degrees (≈5 km).
	DefaultTileSize = 0.05

	// TileOverlapFraction is the share of the tile size each tile is grown by
	// on every side, so ways crossing a tile border are fetched whole.
	TileOverlapFraction = 0.1

	// TilingThreshold is the span in degrees above which a box is fetched in tiles.
	TilingThreshold = 0.1
)

// NeedsTiling reports whether b spans more than TilingThreshold in latitude
// or longitude.
func NeedsTiling(b BoundingBox) bool {
	return b.LatSpan() > TilingThreshold || b.LonSpan() > TilingThreshold
}

// SplitBounds partitions b into a grid of tiles no larger than maxTile
// degrees per edge, each grown by TileOverlapFraction*maxTile on every side
// and clamped to the legal coordinate range. A non-positive maxTile selects
// DefaultTileSize.
//
// A box that fits in one tile is returned unchanged as the only element.
// Tiles are ordered row by row from south to north, west to east within a
// row. The union of the tiles covers b and every tile has North > South and
// East > West.
func SplitBounds(b BoundingBox, maxTile float64) []BoundingBox {
	if maxTile <= 0 || !isFinite(maxTile) {
		maxTile = DefaultTileSize
	}

	latSpan, lonSpan := b.LatSpan(), b.LonSpan()
	if latSpan <= maxTile && lonSpan <= maxTile {
		return []BoundingBox{b}
	}

	rows := max(1, int(math.Ceil(latSpan/maxTile)))
	cols := max(1, int(math.Ceil(lonSpan/maxTile)))
	latStep := latSpan / float64(rows)
	lonStep := lonSpan / float64(cols)
	overlap := maxTile * TileOverlapFraction

	tiles := make([]BoundingBox, 0, rows*cols)
	for r := range rows {
		south := b.South + float64(r)*latStep
		north := b.South + float64(r+1)*latStep
		if r == rows-1 {
			north = b.North
		}
		for c := range cols {
			west := b.West + float64(c)*lonStep
			east := b.West + float64(c+1)*lonStep
			if c == cols-1 {
				east = b.East
			}
			tiles = append(tiles, BoundingBox{
				North: math.Min(north+overlap, 90),
				South: math.Max(south-overlap, -90),
				East:  math.Min(east+overlap, 180),
				West:  math.Max(west-overlap, -180),
			})
		}
	}
	return tiles
}
