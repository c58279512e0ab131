package errors

import (
	"strings"
	"testing"
)

func TestValidateGrid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{name: "valid", rows: 2, cols: 3, wantErr: false},
		{name: "zero rows", rows: 0, cols: 3, wantErr: true},
		{name: "zero cols", rows: 2, cols: 0, wantErr: true},
		{name: "negative", rows: -1, cols: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrid(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGrid(%d, %d) error = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGrid) {
				t.Errorf("error code = %s, want %s", GetCode(err), ErrCodeInvalidGrid)
			}
		})
	}
}

func TestValidateTileSize(t *testing.T) {
	if err := ValidateTileSize(16, 16); err != nil {
		t.Errorf("ValidateTileSize(16, 16) = %v", err)
	}
	if err := ValidateTileSize(0, 16); err == nil {
		t.Error("zero width should fail")
	}
	if err := ValidateTileSize(16, -1); err == nil {
		t.Error("negative height should fail")
	}
}

func TestValidateBounds(t *testing.T) {
	if err := ValidateBounds(100, 100); err != nil {
		t.Errorf("ValidateBounds(100, 100) = %v", err)
	}
	if err := ValidateBounds(0, 100); err == nil {
		t.Error("zero width bound should fail")
	}
	if err := ValidateBounds(100, -2); err == nil {
		t.Error("negative height bound should fail")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "simple file", path: "photo.png", wantErr: false},
		{name: "nested path", path: "images/out/photo.png", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "traversal", path: "../etc/passwd", wantErr: true},
		{name: "null byte", path: "photo\x00.png", wantErr: true},
		{name: "too long", path: strings.Repeat("a", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
