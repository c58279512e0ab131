package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jiro4989/tkfmw/pkg/pipeline"
)

// cropCommand creates the crop command for running the full pipeline.
func (c *CLI) cropCommand() *cobra.Command {
	var (
		focus    string
		formats  string
		output   string
		maxW     int
		maxH     int
		dimAlpha float64
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "crop [image]",
		Short: "Crop an image to a focus rectangle",
		Long: `Crop an image to a focus rectangle and render artifacts.

The focus rectangle is clamped to the image bounds. Formats:

  png      cropped image as PNG
  jpg      cropped image as JPEG
  json     layer partition as JSON
  preview  full image with backgrounds dimmed
  thumb    thumbnail of the crop

Results are cached by image content hash, so repeated crops of the
same image with the same focus are instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Input:     args[0],
				MaxWidth:  maxW,
				MaxHeight: maxH,
				Formats:   parseFormats(formats),
				DimAlpha:  dimAlpha,
				Refresh:   refresh,
			}
			rect, err := parseRect(focus)
			if err != nil {
				return err
			}
			opts.Focus = rect
			return c.runCrop(cmd, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "f", "", "focus rectangle as x,y,width,height (required)")
	cmd.Flags().StringVarP(&formats, "formats", "F", "png", "comma-separated output formats")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input name)")
	cmd.Flags().IntVar(&maxW, "max-width", 0, "partition bound (default: image width)")
	cmd.Flags().IntVar(&maxH, "max-height", 0, "partition bound (default: image height)")
	cmd.Flags().Float64Var(&dimAlpha, "dim", pipeline.DefaultDimAlpha, "preview background dim opacity [0,1]")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	_ = cmd.MarkFlagRequired("focus")

	return cmd
}

func (c *CLI) runCrop(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Cropping %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Crop failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
	}

	printSuccess("Crop complete")
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(base, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printLayerStats(result.Layer, result.Bounds.X, result.Bounds.Y, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Split into tiles", appName+" tile split "+opts.Input)

	return nil
}

// artifactPath names an output file for a rendered format.
func artifactPath(base, format string) string {
	switch format {
	case pipeline.FormatPNG:
		return base + ".crop.png"
	case pipeline.FormatJPG:
		return base + ".crop.jpg"
	case pipeline.FormatJSON:
		return base + ".layer.json"
	case pipeline.FormatPreview:
		return base + ".preview.png"
	case pipeline.FormatThumb:
		return base + ".thumb.png"
	}
	return base + "." + format
}
