package geometry

import (
	"image"
	"testing"
)

func TestRectArea(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want int
	}{
		{name: "unit", rect: Rect{Width: 1, Height: 1}, want: 1},
		{name: "wide", rect: Rect{X: 5, Y: 5, Width: 10, Height: 3}, want: 30},
		{name: "zero width", rect: Rect{Width: 0, Height: 10}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Area(); got != tt.want {
				t.Errorf("Area() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero-width rect should be empty")
	}
	if (Rect{Width: 1, Height: 1}).Empty() {
		t.Error("unit rect should not be empty")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{name: "inside", p: Point{X: 15, Y: 15}, want: true},
		{name: "top-left corner", p: Point{X: 10, Y: 10}, want: true},
		{name: "bottom-right corner is exclusive", p: Point{X: 30, Y: 30}, want: false},
		{name: "outside", p: Point{X: 5, Y: 15}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectImageRectRoundTrip(t *testing.T) {
	r := Rect{X: 3, Y: 4, Width: 10, Height: 20}
	ir := r.ImageRect()
	if ir != image.Rect(3, 4, 13, 24) {
		t.Fatalf("ImageRect() = %v", ir)
	}
	if back := FromImageRect(ir); back != r {
		t.Errorf("FromImageRect(ImageRect()) = %+v, want %+v", back, r)
	}
}

func TestRectClamp(t *testing.T) {
	tests := []struct {
		name       string
		rect       Rect
		maxW, maxH int
		want       Rect
	}{
		{
			name: "degenerate bounds",
			rect: Rect{X: 1, Y: 2, Width: 3, Height: 4},
			maxW: 0, maxH: 10,
			want: Rect{},
		},
		{
			name: "already inside",
			rect: Rect{X: 10, Y: 10, Width: 20, Height: 20},
			maxW: 100, maxH: 100,
			want: Rect{X: 10, Y: 10, Width: 20, Height: 20},
		},
		{
			name: "shift against right edge",
			rect: Rect{X: 95, Y: 0, Width: 20, Height: 10},
			maxW: 100, maxH: 100,
			want: Rect{X: 80, Y: 0, Width: 20, Height: 10},
		},
		{
			name: "cap oversized to bounds",
			rect: Rect{X: 40, Y: 40, Width: 300, Height: 300},
			maxW: 100, maxH: 100,
			want: Rect{X: 0, Y: 0, Width: 100, Height: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Clamp(tt.maxW, tt.maxH); got != tt.want {
				t.Errorf("Clamp(%d, %d) = %+v, want %+v", tt.maxW, tt.maxH, got, tt.want)
			}
		})
	}
}
