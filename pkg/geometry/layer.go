package geometry

// Layer is a focus rectangle plus the four background rectangles that
// tile the remainder of the bounding box around it. The backgrounds
// interlock pinwheel-fashion: each one absorbs the corner clockwise of
// its side, so the five rectangles cover the box exactly once.
type Layer struct {
	Focus  Rect `json:"focus"`
	Top    Rect `json:"top"`
	Right  Rect `json:"right"`
	Bottom Rect `json:"bottom"`
	Left   Rect `json:"left"`
}

// Bounds returns the size of the bounding box the layer tiles.
func (l Layer) Bounds() Point {
	return Point{
		X: l.Left.Width + l.Bottom.Width,
		Y: l.Top.Height + l.Left.Height,
	}
}

// Backgrounds returns the four background rectangles in top, right,
// bottom, left order.
func (l Layer) Backgrounds() [4]Rect {
	return [4]Rect{l.Top, l.Right, l.Bottom, l.Left}
}

// CoveredArea returns the total pixel area of the focus and background
// rectangles. For any layer produced by [Partition] this equals
// maxWidth*maxHeight.
func (l Layer) CoveredArea() int {
	area := l.Focus.Area()
	for _, r := range l.Backgrounds() {
		area += r.Area()
	}
	return area
}

// Partition splits a maxWidth×maxHeight bounding box into a clamped
// focus rectangle and four surrounding background rectangles.
//
// The candidate focus rectangle is clamped with [Rect.Clamp]: negative
// values are raised to zero, the size is capped to the bounds, and the
// origin shifts left/up so the rectangle fits flush against the far
// edges. The backgrounds are then exact functions of the clamped focus:
//
//   - Top covers the strip above the focus, from the left edge to the
//     focus's right edge.
//   - Right covers everything right of the focus for the combined
//     height of top and focus.
//   - Bottom covers the strip below the focus, from the focus's left
//     edge to the right bound.
//   - Left covers the full remaining height left of the focus column.
//
// If either bound is non-positive the zero Layer is returned.
func Partition(x, y, width, height, maxWidth, maxHeight int) Layer {
	if maxWidth <= 0 || maxHeight <= 0 {
		return Layer{}
	}

	focus := Rect{X: x, Y: y, Width: width, Height: height}.Clamp(maxWidth, maxHeight)
	right := focus.X + focus.Width
	bottom := focus.Y + focus.Height

	return Layer{
		Focus:  focus,
		Top:    Rect{X: 0, Y: 0, Width: right, Height: focus.Y},
		Right:  Rect{X: right, Y: 0, Width: maxWidth - right, Height: bottom},
		Bottom: Rect{X: focus.X, Y: bottom, Width: maxWidth - focus.X, Height: maxHeight - bottom},
		Left:   Rect{X: 0, Y: focus.Y, Width: focus.X, Height: maxHeight - focus.Y},
	}
}

// PartitionRect is a convenience form of [Partition] taking the focus
// candidate as a Rect.
func PartitionRect(focus Rect, maxWidth, maxHeight int) Layer {
	return Partition(focus.X, focus.Y, focus.Width, focus.Height, maxWidth, maxHeight)
}
