package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/jiro4989/tkfmw/pkg/cache"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
)

// writeTestImage saves a gradient PNG and returns its path.
func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "src.png")
	if err := imgio.Save(img, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name:    "missing input",
			opts:    Options{},
			wantErr: true,
		},
		{
			name:    "valid minimal",
			opts:    Options{Input: "photo.png"},
			wantErr: false,
		},
		{
			name:    "bad format",
			opts:    Options{Input: "photo.png", Formats: []string{"bmp3"}},
			wantErr: true,
		},
		{
			name:    "dim alpha out of range",
			opts:    Options{Input: "photo.png", DimAlpha: 1.5},
			wantErr: true,
		},
		{
			name:    "path traversal",
			opts:    Options{Input: "../../etc/passwd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaultsApplied(t *testing.T) {
	opts := Options{Input: "photo.png"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("default formats = %v, want [png]", opts.Formats)
	}
	if opts.DimAlpha != DefaultDimAlpha {
		t.Errorf("default dim alpha = %v", opts.DimAlpha)
	}
	if opts.ThumbSize != DefaultThumbSize {
		t.Errorf("default thumb size = %v", opts.ThumbSize)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	input := writeTestImage(t, 100, 80)

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(ctx, Options{
		Input:   input,
		Focus:   geometry.Rect{X: 20, Y: 10, Width: 40, Height: 30},
		Formats: []string{FormatPNG, FormatJSON, FormatPreview},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.ImageHash == "" {
		t.Error("missing image hash")
	}
	if result.Bounds != (geometry.Point{X: 100, Y: 80}) {
		t.Errorf("Bounds = %+v, want image size", result.Bounds)
	}
	if result.Layer.Focus != (geometry.Rect{X: 20, Y: 10, Width: 40, Height: 30}) {
		t.Errorf("Focus = %+v", result.Layer.Focus)
	}

	// Cropped artifact decodes to the focus size.
	crop, err := imgio.Decode(bytes.NewReader(result.Artifacts[FormatPNG]))
	if err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	if crop.Bounds().Dx() != 40 || crop.Bounds().Dy() != 30 {
		t.Errorf("crop size = %v, want 40x30", crop.Bounds())
	}

	// Layer JSON round-trips.
	layer, err := imgio.ReadLayerJSON(bytes.NewReader(result.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("decode layer json: %v", err)
	}
	if layer != result.Layer {
		t.Errorf("layer artifact = %+v, want %+v", layer, result.Layer)
	}

	// Preview covers the full bounds.
	preview, err := imgio.Decode(bytes.NewReader(result.Artifacts[FormatPreview]))
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if preview.Bounds().Dx() != 100 || preview.Bounds().Dy() != 80 {
		t.Errorf("preview size = %v, want 100x80", preview.Bounds())
	}
}

func TestExecuteExplicitBounds(t *testing.T) {
	input := writeTestImage(t, 100, 80)

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:    input,
		Focus:    geometry.Rect{X: 30, Y: 30, Width: 30, Height: 30},
		MaxWidth: 50, MaxHeight: 50,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Bounds != (geometry.Point{X: 50, Y: 50}) {
		t.Errorf("Bounds = %+v, want {50 50}", result.Bounds)
	}
	// Focus was clamped against the explicit bounds.
	if got := result.Layer.Focus; got.X+got.Width > 50 || got.Y+got.Height > 50 {
		t.Errorf("focus not clamped: %+v", got)
	}
}

func TestExecuteUsesCache(t *testing.T) {
	ctx := context.Background()
	input := writeTestImage(t, 60, 60)

	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fileCache, nil, nil)

	opts := Options{
		Input:   input,
		Focus:   geometry.Rect{X: 10, Y: 10, Width: 20, Height: 20},
		Formats: []string{FormatPNG, FormatJSON},
	}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should not hit cache: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatPNG], second.Artifacts[FormatPNG]) {
		t.Error("cached artifact differs from computed one")
	}

	// Refresh bypasses cache reads.
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run should not hit cache: %+v", third.CacheInfo)
	}
}

func TestExecuteMissingInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "missing.png"),
	})
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}
