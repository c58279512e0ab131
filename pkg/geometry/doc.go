// Package geometry provides the rectangle arithmetic underlying tkfmw.
//
// All types are plain immutable values in image pixel space: a computed
// [Rect], [Point] or [Layer] has no lifecycle beyond function return and
// no dependency on any drawing backend.
//
// # Tile positions
//
// [TilePosition] maps a linear tile index into a row-major grid of
// fixed-size tiles to the pixel offset of that tile's top-left corner.
// Indexes past the grid capacity wrap around once.
//
// # Layer partitions
//
// [Partition] splits a bounding box into a focus rectangle and the four
// background rectangles surrounding it:
//
//	+------------+-------+
//	|    top     |       |
//	+----+-------+ right |
//	|    | focus |       |
//	|left+-------+-------+
//	|    |     bottom    |
//	+----+---------------+
//
// The five rectangles tile the bounding box exactly. When the focus
// rectangle touches an edge some background rectangles collapse to zero
// area; zero-area rectangles are valid values, not errors.
package geometry
