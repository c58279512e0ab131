package errors

import (
	"strings"
	"unicode"
)

// ValidateGrid validates tile grid dimensions.
// Rows and columns must both be positive for the grid to have capacity.
func ValidateGrid(rows, cols int) error {
	if rows <= 0 {
		return New(ErrCodeInvalidGrid, "grid rows must be positive, got %d", rows)
	}
	if cols <= 0 {
		return New(ErrCodeInvalidGrid, "grid cols must be positive, got %d", cols)
	}
	return nil
}

// ValidateTileSize validates the pixel size of one grid tile.
func ValidateTileSize(width, height int) error {
	if width <= 0 {
		return New(ErrCodeInvalidGrid, "tile width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidGrid, "tile height must be positive, got %d", height)
	}
	return nil
}

// ValidateBounds validates a bounding box for layer partitioning.
func ValidateBounds(maxWidth, maxHeight int) error {
	if maxWidth <= 0 || maxHeight <= 0 {
		return New(ErrCodeInvalidRect, "bounds must be positive, got %dx%d", maxWidth, maxHeight)
	}
	return nil
}

// ValidatePath validates a filesystem path supplied by a user for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == 0 || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain traversal sequences")
	}

	return nil
}
