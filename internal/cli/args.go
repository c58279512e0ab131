package cli

import (
	"strconv"
	"strings"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/geometry"
	"github.com/jiro4989/tkfmw/pkg/pipeline"
)

// parseRect parses a rectangle flag of the form "x,y,width,height".
func parseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, errors.New(errors.ErrCodeInvalidRect,
			"invalid rectangle %q (expected x,y,width,height)", s)
	}

	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geometry.Rect{}, errors.Wrap(errors.ErrCodeInvalidRect, err,
				"invalid rectangle %q", s)
		}
		vals[i] = n
	}

	return geometry.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	return strings.Split(s, ",")
}
