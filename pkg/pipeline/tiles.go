package pipeline

import (
	"context"
	"encoding/json"
	"image"

	"github.com/jiro4989/tkfmw/pkg/cache"
	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
	"github.com/jiro4989/tkfmw/pkg/observability"
)

// TileLayout is the computed grid for an image plus the position of
// every tile, in index order. It answers position queries without
// keeping pixel data around.
type TileLayout struct {
	Grid      geometry.Grid    `json:"grid"`
	Positions []geometry.Point `json:"positions"`
}

// Position returns the offset for a tile index, applying the same
// single-wraparound rule as [geometry.TilePosition].
func (t TileLayout) Position(index int) geometry.Point {
	return t.Grid.Position(index)
}

// TileLayout computes the tile grid for an image, consulting the cache
// so repeated queries skip the image decode.
func (r *Runner) TileLayout(ctx context.Context, input string, rows, cols int) (TileLayout, bool, error) {
	if err := errors.ValidateGrid(rows, cols); err != nil {
		return TileLayout{}, false, err
	}

	hash, err := imgio.ContentHash(input)
	if err != nil {
		return TileLayout{}, false, err
	}
	key := r.Keyer.TileKey(hash, cache.TileKeyOpts{Rows: rows, Cols: cols})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var layout TileLayout
		if json.Unmarshal(data, &layout) == nil {
			observability.Cache().OnCacheHit(ctx, "tile")
			return layout, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "tile")

	img, err := imgio.Load(input)
	if err != nil {
		return TileLayout{}, false, err
	}
	layout, err := tileLayoutFor(img, rows, cols)
	if err != nil {
		return TileLayout{}, false, err
	}

	if data, err := json.Marshal(layout); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultLayoutTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "tile", len(data))
		}
	}
	return layout, false, nil
}

// SplitTiles loads an image and cuts it into a rows×cols grid.
// Pixel data is never cached; only the layout metadata is.
func (r *Runner) SplitTiles(ctx context.Context, input string, rows, cols int) ([]imgio.Tile, geometry.Grid, error) {
	img, err := imgio.Load(input)
	if err != nil {
		return nil, geometry.Grid{}, err
	}
	return imgio.SplitTiles(ctx, img, rows, cols)
}

func tileLayoutFor(img image.Image, rows, cols int) (TileLayout, error) {
	grid := geometry.Grid{
		Rows:       rows,
		Cols:       cols,
		TileWidth:  img.Bounds().Dx() / cols,
		TileHeight: img.Bounds().Dy() / rows,
	}
	if err := errors.ValidateTileSize(grid.TileWidth, grid.TileHeight); err != nil {
		return TileLayout{}, err
	}

	layout := TileLayout{
		Grid:      grid,
		Positions: make([]geometry.Point, grid.Capacity()),
	}
	for i := range layout.Positions {
		layout.Positions[i] = grid.Position(i)
	}
	return layout, nil
}
