package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/imgio"
	"github.com/jiro4989/tkfmw/pkg/session"
)

// Picker styles
var (
	pickFocusStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	pickGroundStyle = lipgloss.NewStyle().Foreground(colorDim)
	pickLabelStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// PickModel - Interactive focus rectangle selection
// =============================================================================

// PickModel is the bubbletea model for interactively choosing a focus
// rectangle over an image. Movement and resizing happen in image
// pixels; the preview is a character-cell downscale.
type PickModel struct {
	// MaxWidth and MaxHeight are the image dimensions in pixels.
	MaxWidth  int
	MaxHeight int

	// Focus is the current candidate rectangle in image pixels.
	Focus geometry.Rect

	// Step is the movement/resize increment in pixels.
	Step int

	// Accepted is true once the user confirmed with enter.
	Accepted bool

	cols int
	rows int
}

// NewPickModel creates a picker for an image of the given size with a
// centered initial focus covering half of each dimension.
func NewPickModel(maxWidth, maxHeight int) PickModel {
	w, h := maxWidth/2, maxHeight/2
	return PickModel{
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
		Focus:     geometry.Rect{X: (maxWidth - w) / 2, Y: (maxHeight - h) / 2, Width: w, Height: h},
		Step:      maxWidth / 50,
		cols:      48,
		rows:      16,
	}
}

func (m PickModel) Init() tea.Cmd {
	return nil
}

func (m PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		step := m.Step
		if step < 1 {
			step = 1
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.Focus.X -= step
		case "right", "l":
			m.Focus.X += step
		case "up", "k":
			m.Focus.Y -= step
		case "down", "j":
			m.Focus.Y += step
		case "H":
			m.Focus.Width -= step
		case "L":
			m.Focus.Width += step
		case "K":
			m.Focus.Height -= step
		case "J":
			m.Focus.Height += step
		case "+", "=":
			m.Step *= 2
		case "-":
			if m.Step > 1 {
				m.Step /= 2
			}
		case "enter":
			if !m.Focus.Clamp(m.MaxWidth, m.MaxHeight).Empty() {
				m.Accepted = true
				return m, tea.Quit
			}
		}
		m.Focus = m.Focus.Clamp(m.MaxWidth, m.MaxHeight)
	case tea.WindowSizeMsg:
		m.cols = msg.Width - 4
		if m.cols > 72 {
			m.cols = 72
		}
		if m.cols < 16 {
			m.cols = 16
		}
		m.rows = msg.Height - 8
		if m.rows > 24 {
			m.rows = 24
		}
		if m.rows < 6 {
			m.rows = 6
		}
	}
	return m, nil
}

func (m PickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pick Focus Rectangle"))
	b.WriteString("\n")
	b.WriteString(pickGroundStyle.Render("h/j/k/l move  H/J/K/L resize  +/- step  ⏎ accept  q quit"))
	b.WriteString("\n\n")

	// Cell (cx, cy) covers the pixel block starting at
	// (cx*MaxWidth/cols, cy*MaxHeight/rows); a cell is part of the
	// focus when its block's center falls inside the rectangle.
	focus := m.Focus.Clamp(m.MaxWidth, m.MaxHeight)
	for cy := 0; cy < m.rows; cy++ {
		b.WriteString("  ")
		py := (cy*m.MaxHeight + m.MaxHeight/2) / m.rows
		for cx := 0; cx < m.cols; cx++ {
			px := (cx*m.MaxWidth + m.MaxWidth/2) / m.cols
			if focus.Contains(geometry.Point{X: px, Y: py}) {
				b.WriteString(pickFocusStyle.Render("█"))
			} else {
				b.WriteString(pickGroundStyle.Render("·"))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pickLabelStyle.Render(fmt.Sprintf("  %s of %dx%d  step %dpx",
		formatRect(focus), m.MaxWidth, m.MaxHeight, m.Step)))

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// pickCommand creates the interactive focus picker command.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		output string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "pick [image]",
		Short: "Interactively pick a focus rectangle on an image",
		Long: `Interactively pick a focus rectangle on an image.

Opens a terminal picker showing a scaled preview of the image bounds.
Adjust the rectangle with h/j/k/l (move) and H/J/K/L (resize), then
accept with enter. The resulting layer partition is printed as JSON or
written with --output. With --save, the selection is stored as a crop
session for later use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd, args[0], output, save)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layer JSON to this file")
	cmd.Flags().BoolVar(&save, "save", false, "store the selection as a crop session")

	return cmd
}

func (c *CLI) runPick(cmd *cobra.Command, input, output string, save bool) error {
	ctx := cmd.Context()

	img, err := imgio.Load(input)
	if err != nil {
		return err
	}
	maxW, maxH := img.Bounds().Dx(), img.Bounds().Dy()

	prog, err := tea.NewProgram(NewPickModel(maxW, maxH)).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	model, ok := prog.(PickModel)
	if !ok || !model.Accepted {
		printInfo("Selection cancelled")
		return nil
	}

	layer := geometry.PartitionRect(model.Focus, maxW, maxH)

	if save {
		hash, err := imgio.ContentHash(input)
		if err != nil {
			return err
		}
		store, err := c.newStore(ctx)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		defer store.Close(ctx)

		sess := session.New(input, hash, layer, c.Config.Session.TTL.Duration)
		if err := store.Set(ctx, sess); err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		printSuccess("Session saved")
		printDetail("ID: %s", sess.ID)
		printNewline()
		printNextStep("Crop", fmt.Sprintf("%s crop %s -f %d,%d,%d,%d",
			appName, input, layer.Focus.X, layer.Focus.Y, layer.Focus.Width, layer.Focus.Height))
		return nil
	}

	if output != "" {
		if err := imgio.ExportLayerJSON(layer, output); err != nil {
			return err
		}
		printSuccess("Layer written")
		printFile(output)
		return nil
	}

	return imgio.WriteLayerJSON(layer, os.Stdout)
}
