package canvas

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func sample(img image.Image, x, y int) color.NRGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestContextSize(t *testing.T) {
	c := NewContext(40, 30)
	if got := c.Size(); got != (geometry.Point{X: 40, Y: 30}) {
		t.Errorf("Size() = %+v, want {40 30}", got)
	}
}

func TestContextClear(t *testing.T) {
	c := NewContext(10, 10)
	c.Clear(color.NRGBA{R: 255, A: 255})

	px := sample(c.Image(), 5, 5)
	if px.R != 255 || px.G != 0 || px.B != 0 {
		t.Errorf("pixel after Clear = %+v, want red", px)
	}
}

func TestContextFill(t *testing.T) {
	c := NewContext(20, 20)
	c.Clear(color.NRGBA{A: 255}) // black
	c.Fill(geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10}, color.NRGBA{G: 255, A: 255})

	inside := sample(c.Image(), 10, 10)
	if inside.G != 255 {
		t.Errorf("pixel inside filled rect = %+v, want green", inside)
	}
	outside := sample(c.Image(), 2, 2)
	if outside.G != 0 {
		t.Errorf("pixel outside filled rect = %+v, want black", outside)
	}

	// Empty rects are a no-op, not a panic.
	c.Fill(geometry.Rect{X: 5, Y: 5, Width: 0, Height: 10}, color.NRGBA{B: 255, A: 255})
}

func TestContextDrawImage(t *testing.T) {
	c := NewContext(20, 20)
	c.Clear(color.NRGBA{A: 255})
	c.DrawImage(solidImage(5, 5, color.NRGBA{B: 255, A: 255}), geometry.Point{X: 10, Y: 10})

	px := sample(c.Image(), 12, 12)
	if px.B != 255 {
		t.Errorf("pixel inside drawn image = %+v, want blue", px)
	}
	px = sample(c.Image(), 5, 5)
	if px.B != 0 {
		t.Errorf("pixel outside drawn image = %+v, want black", px)
	}
}

func TestContextForImage(t *testing.T) {
	src := solidImage(8, 6, color.NRGBA{R: 200, A: 255})
	c := NewContextForImage(src)

	if got := c.Size(); got != (geometry.Point{X: 8, Y: 6}) {
		t.Errorf("Size() = %+v, want {8 6}", got)
	}
	if px := sample(c.Image(), 4, 3); px.R != 200 {
		t.Errorf("pixel = %+v, want source content", px)
	}
}

func TestDrawLayerDimsBackground(t *testing.T) {
	src := solidImage(100, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	l := geometry.Partition(30, 30, 40, 40, 100, 100)

	c := NewContext(100, 100)
	DrawLayer(c, src, l, WithDimColor(color.NRGBA{A: 128}))

	focus := sample(c.Image(), 50, 50)
	if focus.R != 255 {
		t.Errorf("focus pixel = %+v, want undimmed white", focus)
	}
	bg := sample(c.Image(), 5, 5)
	if bg.R >= 255 {
		t.Errorf("background pixel = %+v, want dimmed", bg)
	}
}

func TestDrawLayerBorder(t *testing.T) {
	src := solidImage(50, 50, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	l := geometry.Partition(10, 10, 20, 20, 50, 50)

	c := NewContext(50, 50)
	DrawLayer(c, src, l, WithDimColor(color.NRGBA{}), WithBorder(color.NRGBA{R: 255, A: 255}, 2))

	// A pixel on the focus edge should show the border color.
	edge := sample(c.Image(), 10, 20)
	if edge.R != 255 || edge.G == 255 {
		t.Errorf("border pixel = %+v, want red stroke", edge)
	}
}

func TestDrawTilesReassemblesImage(t *testing.T) {
	// Splitting an image into tiles and drawing them back recreates it.
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), A: 255})
		}
	}

	tiles, _, err := imgio.SplitTiles(context.Background(), src, 2, 2)
	if err != nil {
		t.Fatalf("SplitTiles: %v", err)
	}

	c := NewContext(20, 20)
	DrawTiles(c, tiles)

	for _, p := range []geometry.Point{{X: 3, Y: 3}, {X: 15, Y: 3}, {X: 3, Y: 15}, {X: 15, Y: 15}} {
		want := sample(src, p.X, p.Y)
		got := sample(c.Image(), p.X, p.Y)
		if got != want {
			t.Errorf("pixel at %+v = %+v, want %+v", p, got, want)
		}
	}
}

func TestScale(t *testing.T) {
	src := solidImage(40, 20, color.NRGBA{G: 255, A: 255})
	dst := Scale(src, 20, 10)

	if dst.Bounds().Dx() != 20 || dst.Bounds().Dy() != 10 {
		t.Fatalf("scaled size = %v", dst.Bounds())
	}
	if px := sample(dst, 10, 5); px.G != 255 {
		t.Errorf("scaled pixel = %+v, want green", px)
	}
}

func TestThumbnail(t *testing.T) {
	src := solidImage(200, 100, color.NRGBA{B: 255, A: 255})

	thumb := Thumbnail(src, 50, 50)
	if thumb.Bounds().Dx() != 50 || thumb.Bounds().Dy() != 25 {
		t.Errorf("thumbnail size = %v, want 50x25", thumb.Bounds())
	}

	// Already small enough: returned unchanged.
	small := solidImage(10, 10, color.NRGBA{A: 255})
	if got := Thumbnail(small, 50, 50); got != image.Image(small) {
		t.Error("small image should be returned as-is")
	}
}
