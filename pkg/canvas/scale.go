package canvas

import (
	"image"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"
)

// Scale resamples img to width×height with Catmull-Rom interpolation.
// Used for preview thumbnails; crops themselves are never resampled.
func Scale(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), stddraw.Over, nil)
	return dst
}

// Thumbnail scales img down to fit within maxWidth×maxHeight while
// keeping the aspect ratio. Images already inside the box are returned
// unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight int) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if maxWidth <= 0 || maxHeight <= 0 || w == 0 || h == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	return Scale(img, max(int(float64(w)*scale), 1), max(int(float64(h)*scale), 1))
}
