package canvas

import (
	"image"
	"image/color"

	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
)

// LayerOption configures layer preview rendering.
type LayerOption func(*layerRenderer)

type layerRenderer struct {
	dim    color.Color
	border color.Color
	width  float64
}

// WithDimColor sets the translucent color painted over the background
// regions (default black at ~55% opacity).
func WithDimColor(c color.Color) LayerOption {
	return func(r *layerRenderer) { r.dim = c }
}

// WithBorder strokes the focus rectangle with c at the given width.
func WithBorder(c color.Color, width float64) LayerOption {
	return func(r *layerRenderer) {
		r.border = c
		r.width = width
	}
}

// DrawLayer renders a layer preview: the full image with the four
// background regions dimmed so the focus region stands out.
func DrawLayer(s Surface, img image.Image, l geometry.Layer, opts ...LayerOption) {
	r := layerRenderer{
		dim:   color.NRGBA{A: 140},
		width: 2,
	}
	for _, opt := range opts {
		opt(&r)
	}

	s.DrawImage(img, geometry.Point{})
	for _, bg := range l.Backgrounds() {
		s.Fill(bg, r.dim)
	}
	if r.border != nil {
		s.Outline(l.Focus, r.border, r.width)
	}
}

// DrawTiles blits tiles onto s at their grid positions. Together with
// [imgio.SplitTiles] this reassembles the source image; with a reordered
// slice it renders an arbitrary tile arrangement.
func DrawTiles(s Surface, tiles []imgio.Tile) {
	for _, t := range tiles {
		if t.Image == nil {
			continue
		}
		s.DrawImage(t.Image, t.Pos)
	}
}
