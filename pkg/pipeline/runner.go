package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jiro4989/tkfmw/pkg/cache"
	"github.com/jiro4989/tkfmw/pkg/canvas"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
	"github.com/jiro4989/tkfmw/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ImageHash is the content hash of the source image.
	ImageHash string

	// Bounds is the bounding box the layer partitions.
	Bounds geometry.Point

	// Layer is the computed partition.
	Layer geometry.Layer

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layer partition came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	img, hash, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.ImageHash = hash
	result.Stats.LoadTime = time.Since(loadStart)

	maxW, maxH := opts.MaxWidth, opts.MaxHeight
	if maxW <= 0 {
		maxW = img.Bounds().Dx()
	}
	if maxH <= 0 {
		maxH = img.Bounds().Dy()
	}
	result.Bounds = geometry.Point{X: maxW, Y: maxH}

	logger.Debug("loaded image",
		"input", opts.Input,
		"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layer, layoutHit, err := r.computeLayerWithCacheInfo(ctx, hash, opts, maxW, maxH)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layer = layer
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layer",
		"focus", layer.Focus,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, img, layer, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the source image and its content hash.
func (r *Runner) Load(ctx context.Context, input string) (image.Image, string, error) {
	hash, err := imgio.ContentHash(input)
	if err != nil {
		return nil, "", err
	}
	img, err := imgio.Load(input)
	if err != nil {
		return nil, "", err
	}
	return img, hash, nil
}

// ComputeLayer computes the layer partition for the options, consulting
// the cache first.
func (r *Runner) ComputeLayer(ctx context.Context, imageHash string, opts Options, maxW, maxH int) (geometry.Layer, error) {
	layer, _, err := r.computeLayerWithCacheInfo(ctx, imageHash, opts, maxW, maxH)
	return layer, err
}

func (r *Runner) computeLayerWithCacheInfo(ctx context.Context, imageHash string, opts Options, maxW, maxH int) (geometry.Layer, bool, error) {
	key := r.Keyer.LayoutKey(imageHash, cache.LayoutKeyOpts{
		FocusX:    opts.Focus.X,
		FocusY:    opts.Focus.Y,
		Width:     opts.Focus.Width,
		Height:    opts.Focus.Height,
		MaxWidth:  maxW,
		MaxHeight: maxH,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var layer geometry.Layer
			if json.Unmarshal(data, &layer) == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return layer, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Layout().OnPartitionStart(ctx, maxW, maxH)
	start := time.Now()
	layer := geometry.PartitionRect(opts.Focus, maxW, maxH)
	observability.Layout().OnPartitionComplete(ctx, maxW, maxH, time.Since(start))

	if data, err := json.Marshal(layer); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultLayoutTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return layer, false, nil
}

// renderWithCacheInfo renders all requested artifacts, reading each from
// the cache where possible. The second return is true only when every
// artifact came from cache.
func (r *Runner) renderWithCacheInfo(ctx context.Context, img image.Image, layer geometry.Layer, opts Options) (map[string][]byte, bool, error) {
	layerData, err := json.Marshal(layer)
	if err != nil {
		return nil, false, err
	}
	layerHash := cache.Hash(append([]byte(opts.Input), layerData...))

	observability.Render().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layerHash, cache.ArtifactKeyOpts{
			Format: format,
			Dim:    opts.DimAlpha,
			Scale:  float64(opts.ThumbSize),
		})

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		data, err := r.renderArtifact(img, layer, opts, format)
		if err != nil {
			observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.DefaultArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit && len(opts.Formats) > 0, nil
}

// renderArtifact produces a single artifact format.
func (r *Runner) renderArtifact(img image.Image, layer geometry.Layer, opts Options, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatPNG, FormatJPG:
		crop := imgio.CropRect(img, layer.Focus)
		if err := imgio.Encode(&buf, crop, format); err != nil {
			return nil, err
		}

	case FormatJSON:
		if err := imgio.WriteLayerJSON(layer, &buf); err != nil {
			return nil, err
		}

	case FormatPreview:
		bounds := layer.Bounds()
		surface := canvas.NewContext(bounds.X, bounds.Y)
		canvas.DrawLayer(surface, img, layer, canvas.WithDimColor(opts.dimColor()))
		if err := imgio.Encode(&buf, surface.Image(), FormatPNG); err != nil {
			return nil, err
		}

	case FormatThumb:
		thumb := canvas.Thumbnail(imgio.CropRect(img, layer.Focus), opts.ThumbSize, opts.ThumbSize)
		if err := imgio.Encode(&buf, thumb, FormatPNG); err != nil {
			return nil, err
		}

	default:
		return nil, ValidateFormat(format)
	}

	return buf.Bytes(), nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
