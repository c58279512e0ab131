package canvas

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
)

// Context is a gg-backed Surface.
type Context struct {
	dc     *gg.Context
	width  int
	height int
}

// NewContext creates an empty transparent surface of the given size.
func NewContext(width, height int) *Context {
	return &Context{
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
	}
}

// NewContextForImage creates a surface initialized with img.
func NewContextForImage(img image.Image) *Context {
	return &Context{
		dc:     gg.NewContextForImage(img),
		width:  img.Bounds().Dx(),
		height: img.Bounds().Dy(),
	}
}

// Size returns the surface dimensions in pixels.
func (c *Context) Size() geometry.Point {
	return geometry.Point{X: c.width, Y: c.height}
}

// Clear fills the whole surface with col.
func (c *Context) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// Fill paints r with col.
func (c *Context) Fill(r geometry.Rect, col color.Color) {
	if r.Empty() {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
	c.dc.Fill()
}

// Outline strokes the edges of r with col.
func (c *Context) Outline(r geometry.Rect, col color.Color, width float64) {
	if r.Empty() || width <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
	c.dc.Stroke()
}

// DrawImage draws img with its top-left corner at p.
func (c *Context) DrawImage(img image.Image, p geometry.Point) {
	c.dc.DrawImage(img, p.X, p.Y)
}

// DrawImageRect draws the src region of img at p.
func (c *Context) DrawImageRect(img image.Image, src geometry.Rect, p geometry.Point) {
	if src.Empty() {
		return
	}
	c.dc.DrawImage(imgio.CropRect(img, src), p.X, p.Y)
}

// Image returns the current surface content.
func (c *Context) Image() image.Image {
	return c.dc.Image()
}

// Ensure Context implements Surface.
var _ Surface = (*Context)(nil)
