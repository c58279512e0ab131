package geometry

// Grid describes a row-major grid of fixed-size tiles.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// TileWidth and TileHeight are the pixel size of one tile.
	TileWidth  int `json:"tile_width"`
	TileHeight int `json:"tile_height"`
}

// Capacity returns the number of cells in the grid.
func (g Grid) Capacity() int { return g.Rows * g.Cols }

// Position returns the pixel offset of the tile at index.
// See [TilePosition] for the index rules.
func (g Grid) Position(index int) Point {
	return TilePosition(index, g.Rows, g.Cols, g.TileWidth, g.TileHeight)
}

// TilePosition maps a linear tile index to the top-left pixel offset of
// that tile in a rows×cols grid of width×height tiles.
//
// A non-positive index or a grid without capacity yields the origin.
// An index at or past the grid capacity is reduced by the capacity once
// (a single wraparound, not a full modulo), so indexes in
// [capacity, 2*capacity) land back on the first pass over the grid.
func TilePosition(index, rows, cols, width, height int) Point {
	if index <= 0 || rows*cols <= 0 {
		return Point{}
	}
	if capacity := rows * cols; index >= capacity {
		index -= capacity
	}
	return Point{
		X: (index % cols) * width,
		Y: (index / cols) * height,
	}
}
