package imgio

import (
	"context"
	"image"
	"time"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/observability"
)

// Tile is one cell cut from a source image, carrying its linear index
// and top-left offset in the source.
type Tile struct {
	Index int            `json:"index"`
	Pos   geometry.Point `json:"pos"`
	Image *image.NRGBA   `json:"-"`
}

// SplitTiles cuts img into a rows×cols grid of equally sized tiles in
// row-major order. The tile size is the image size divided by the grid;
// a remainder of pixels on the right/bottom edge is dropped.
func SplitTiles(ctx context.Context, img image.Image, rows, cols int) ([]Tile, geometry.Grid, error) {
	if err := errors.ValidateGrid(rows, cols); err != nil {
		return nil, geometry.Grid{}, err
	}

	observability.Layout().OnTileSplitStart(ctx, rows, cols)
	start := time.Now()

	grid := geometry.Grid{
		Rows:       rows,
		Cols:       cols,
		TileWidth:  img.Bounds().Dx() / cols,
		TileHeight: img.Bounds().Dy() / rows,
	}
	if err := errors.ValidateTileSize(grid.TileWidth, grid.TileHeight); err != nil {
		observability.Layout().OnTileSplitComplete(ctx, rows, cols, 0, time.Since(start), err)
		return nil, geometry.Grid{}, err
	}

	tiles := make([]Tile, grid.Capacity())
	for i := range tiles {
		pos := grid.Position(i)
		src := geometry.Rect{X: pos.X, Y: pos.Y, Width: grid.TileWidth, Height: grid.TileHeight}
		tiles[i] = Tile{
			Index: i,
			Pos:   pos,
			Image: CropRect(img, src),
		}
	}

	observability.Layout().OnTileSplitComplete(ctx, rows, cols, len(tiles), time.Since(start), nil)
	return tiles, grid, nil
}
