package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
)

// tileCommand creates the tile command group.
func (c *CLI) tileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tile",
		Short: "Compute tile positions and split images into grids",
	}

	cmd.AddCommand(c.tilePosCommand())
	cmd.AddCommand(c.tileSplitCommand())

	return cmd
}

// tilePosCommand creates the "tile pos" subcommand.
func (c *CLI) tilePosCommand() *cobra.Command {
	var (
		rows   int
		cols   int
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "pos [index...]",
		Short: "Print the pixel position of tile indices on a grid",
		Long: `Print the pixel position of tile indices on a grid.

Indices count left to right, top to bottom. An index one full cycle
past the end wraps back to the start. Each position is printed as
"x y", one line per index.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows == 0 {
				rows = c.Config.Grid.Rows
			}
			if cols == 0 {
				cols = c.Config.Grid.Cols
			}
			for _, arg := range args {
				index, err := strconv.Atoi(arg)
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "invalid index %q", arg)
				}
				pos := geometry.TilePosition(index, rows, cols, width, height)
				fmt.Printf("%d %d\n", pos.X, pos.Y)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "r", 0, "grid rows (default from config)")
	cmd.Flags().IntVarP(&cols, "cols", "c", 0, "grid columns (default from config)")
	cmd.Flags().IntVarP(&width, "tile-width", "W", 0, "tile width in pixels")
	cmd.Flags().IntVarP(&height, "tile-height", "H", 0, "tile height in pixels")

	return cmd
}

// tileSplitCommand creates the "tile split" subcommand.
func (c *CLI) tileSplitCommand() *cobra.Command {
	var (
		rows    int
		cols    int
		outDir  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "split [image]",
		Short: "Split an image into grid tiles",
		Long: `Split an image into rows x cols tiles.

Tile size is the image size divided by the grid; remainder pixels on
the right and bottom edges are dropped. Tiles are written as PNG files
named <image>.tile-<index>.png in the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows == 0 {
				rows = c.Config.Grid.Rows
			}
			if cols == 0 {
				cols = c.Config.Grid.Cols
			}
			return c.runTileSplit(cmd, args[0], rows, cols, outDir, noCache)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "r", 0, "grid rows (default from config)")
	cmd.Flags().IntVarP(&cols, "cols", "c", 0, "grid columns (default from config)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for tile files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runTileSplit(cmd *cobra.Command, input string, rows, cols int, outDir string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	tiles, grid, err := runner.SplitTiles(ctx, input, rows, cols)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	base := filepath.Base(input)
	base = base[:len(base)-len(filepath.Ext(base))]
	for _, tile := range tiles {
		path := filepath.Join(outDir, fmt.Sprintf("%s.tile-%d.png", base, tile.Index))
		if err := imgio.Save(tile.Image, path); err != nil {
			return err
		}
		printFile(path)
	}
	prog.done(fmt.Sprintf("Split %s into %d tiles (%dx%d px each)",
		input, len(tiles), grid.TileWidth, grid.TileHeight))

	return nil
}
