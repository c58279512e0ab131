// Package pipeline provides the core load → layout → render pipeline
// for tkfmw.
//
// This package implements the flow shared by the CLI and the HTTP API:
// load a source image, compute the layer partition for a focus
// rectangle, and render artifacts (cropped image, dimmed preview,
// thumbnail, layer JSON). Centralizing it keeps behavior and caching
// consistent across entry points.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:  "photo.png",
//	    Focus:  geometry.Rect{X: 100, Y: 80, Width: 640, Height: 480},
//	    Formats: []string{"png", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	crop := result.Artifacts["png"]
//
// Run individual stages:
//
//	img, hash, err := runner.Load(ctx, opts.Input)
//	layer, err := runner.ComputeLayer(ctx, hash, opts)
package pipeline

import (
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
)

// Defaults shared by CLI and API.
const (
	// DefaultDimAlpha is the background dim opacity for previews.
	DefaultDimAlpha = 0.55

	// DefaultThumbSize is the bounding box edge for thumbnails.
	DefaultThumbSize = 256
)

// Format constants for output artifacts.
const (
	FormatPNG     = "png"
	FormatJPG     = "jpg"
	FormatJSON    = "json"
	FormatPreview = "preview"
	FormatThumb   = "thumb"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatPNG:     true,
	FormatJPG:     true,
	FormatJSON:    true,
	FormatPreview: true,
	FormatThumb:   true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpg, json, preview, thumb)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the source image path.
	Input string `json:"input"`

	// Focus is the candidate focus rectangle. It is clamped to the
	// bounds during layout.
	Focus geometry.Rect `json:"focus"`

	// MaxWidth/MaxHeight bound the partition. Zero means the source
	// image's own size.
	MaxWidth  int `json:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`

	// Formats selects the artifacts to render.
	Formats []string `json:"formats,omitempty"`

	// DimAlpha is the preview background dim opacity in [0,1].
	DimAlpha float64 `json:"dim_alpha,omitempty"`

	// ThumbSize is the thumbnail bounding box edge in pixels.
	ThumbSize int `json:"thumb_size,omitempty"`

	// Refresh skips cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input image is required")
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.DimAlpha < 0 || o.DimAlpha > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "dim_alpha must be in [0,1], got %v", o.DimAlpha)
	}
	if o.DimAlpha == 0 {
		o.DimAlpha = DefaultDimAlpha
	}
	if o.ThumbSize == 0 {
		o.ThumbSize = DefaultThumbSize
	}
	if o.ThumbSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "thumb_size must be positive, got %d", o.ThumbSize)
	}
	o.validated = true
	return nil
}

// wantsFormat reports whether format was requested.
func (o *Options) wantsFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// dimColor converts DimAlpha to the translucent overlay color.
func (o *Options) dimColor() color.Color {
	return color.NRGBA{A: uint8(o.DimAlpha * 255)}
}
