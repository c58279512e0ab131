// Package canvas provides the drawing surface used to render crops,
// layer previews, and tile sheets.
//
// The [Surface] interface keeps callers independent of the rendering
// backend; [Context] implements it on top of fogleman/gg. Pure geometry
// lives in pkg/geometry - this package only turns computed rectangles
// into pixels.
package canvas

import (
	"image"
	"image/color"

	"github.com/jiro4989/tkfmw/pkg/geometry"
)

// Surface is a mutable pixel surface the toolkit draws on.
// Implementations are not safe for concurrent use.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() geometry.Point

	// Clear fills the whole surface with c.
	Clear(c color.Color)

	// Fill paints the rectangle r with c. Translucent colors blend over
	// existing content.
	Fill(r geometry.Rect, c color.Color)

	// Outline strokes the edges of r with c at the given line width.
	Outline(r geometry.Rect, c color.Color, width float64)

	// DrawImage draws img with its top-left corner at p.
	DrawImage(img image.Image, p geometry.Point)

	// DrawImageRect draws the src region of img at p.
	DrawImageRect(img image.Image, src geometry.Rect, p geometry.Point)

	// Image returns the current surface content.
	Image() image.Image
}
