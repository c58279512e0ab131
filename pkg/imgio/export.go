package imgio

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
)

// Save encodes img to path. The format is chosen from the extension
// (png, jpg, jpeg, gif, tif, tiff, bmp).
func Save(img image.Image, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "unsupported output format for %s", path)
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "failed to save %s", path)
	}
	return nil
}

// Encode writes img to w in the named format ("png" or "jpg").
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "unsupported format %q", format)
	}
	if err := imaging.Encode(w, img, f); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "failed to encode %s", format)
	}
	return nil
}

// CropRect returns the part of img covered by r. The rectangle is
// interpreted in the image's own coordinate space.
func CropRect(img image.Image, r geometry.Rect) *image.NRGBA {
	return imaging.Crop(img, r.ImageRect().Add(img.Bounds().Min))
}

// WriteLayerJSON encodes a layer partition as indented JSON and writes
// it to w. The output can be re-imported with [ReadLayerJSON].
func WriteLayerJSON(l geometry.Layer, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayerJSON decodes a layer partition previously written by
// [WriteLayerJSON].
func ReadLayerJSON(r io.Reader) (geometry.Layer, error) {
	var l geometry.Layer
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return geometry.Layer{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse layer JSON")
	}
	return l, nil
}

// ExportLayerJSON writes a layer to a JSON file at path.
// This is a convenience wrapper around [WriteLayerJSON] for file-based output.
func ExportLayerJSON(l geometry.Layer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayerJSON(l, f)
}
