package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
)

// layerCommand creates the layer command for computing focus partitions.
func (c *CLI) layerCommand() *cobra.Command {
	var (
		focus  string
		maxW   int
		maxH   int
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "layer",
		Short: "Partition a canvas into a focus rectangle and four backgrounds",
		Long: `Partition a canvas into a focus rectangle and four background regions.

The focus rectangle is clamped to the bounds; the four backgrounds tile
the remaining area with no gaps and no overlap. Bounds come from
--max-width/--max-height, from the image given with --input, or from
the config file, in that order of preference.

The result is printed as JSON, or written to a file with --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayer(focus, maxW, maxH, input, output)
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "f", "", "focus rectangle as x,y,width,height (required)")
	cmd.Flags().IntVar(&maxW, "max-width", 0, "canvas width (default: image or config)")
	cmd.Flags().IntVar(&maxH, "max-height", 0, "canvas height (default: image or config)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "image whose dimensions bound the partition")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("focus")

	return cmd
}

func (c *CLI) runLayer(focus string, maxW, maxH int, input, output string) error {
	rect, err := parseRect(focus)
	if err != nil {
		return err
	}

	maxW, maxH, err = c.resolveBounds(maxW, maxH, input)
	if err != nil {
		return err
	}

	layer := geometry.PartitionRect(rect, maxW, maxH)
	c.Logger.Debug("computed layer", "focus", formatRect(layer.Focus), "bounds", fmt.Sprintf("%dx%d", maxW, maxH))

	if output != "" {
		if err := imgio.ExportLayerJSON(layer, output); err != nil {
			return err
		}
		printSuccess("Layer written")
		printFile(output)
		printLayerStats(layer, maxW, maxH, false)
		return nil
	}

	return imgio.WriteLayerJSON(layer, os.Stdout)
}

// resolveBounds picks partition bounds from flags, the input image, or
// the config, in that order.
func (c *CLI) resolveBounds(maxW, maxH int, input string) (int, int, error) {
	if maxW > 0 && maxH > 0 {
		return maxW, maxH, nil
	}
	if input != "" {
		img, err := imgio.Load(input)
		if err != nil {
			return 0, 0, err
		}
		return img.Bounds().Dx(), img.Bounds().Dy(), nil
	}
	maxW, maxH = c.Config.Canvas.MaxWidth, c.Config.Canvas.MaxHeight
	if err := errors.ValidateBounds(maxW, maxH); err != nil {
		return 0, 0, err
	}
	return maxW, maxH, nil
}
