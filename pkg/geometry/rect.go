package geometry

import "image"

// Point is a position in image pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned region in image pixel space.
// Coordinates produced by this package are always non-negative.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the number of pixels covered by the rectangle.
func (r Rect) Area() int { return r.Width * r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Min returns the top-left corner of the rectangle.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner of the rectangle (exclusive).
func (r Rect) Max() Point { return Point{X: r.X + r.Width, Y: r.Y + r.Height} }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ImageRect converts the rectangle to the stdlib image.Rectangle form
// used by drawing and cropping backends.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FromImageRect converts a stdlib image.Rectangle to a Rect.
func FromImageRect(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Clamp returns the rectangle adjusted to fit inside a maxWidth×maxHeight
// bounding box. Negative coordinates and sizes are raised to zero, the
// size is capped to the bounds, and the origin is shifted so the
// rectangle sits flush against the right or bottom edge instead of
// spilling past it. If either bound is non-positive the zero Rect is
// returned.
func (r Rect) Clamp(maxWidth, maxHeight int) Rect {
	if maxWidth <= 0 || maxHeight <= 0 {
		return Rect{}
	}
	r.X = max(r.X, 0)
	r.Y = max(r.Y, 0)
	r.Width = min(max(r.Width, 0), maxWidth)
	r.Height = min(max(r.Height, 0), maxHeight)
	if r.X+r.Width > maxWidth {
		r.X = maxWidth - r.Width
	}
	if r.Y+r.Height > maxHeight {
		r.Y = maxHeight - r.Height
	}
	return r
}
