package geometry_test

import (
	"fmt"

	"github.com/jiro4989/tkfmw/pkg/geometry"
)

func ExampleTilePosition() {
	// The sixth tile (index 5) of a 2×3 grid of 10×20 tiles sits in the
	// third column of the second row.
	p := geometry.TilePosition(5, 2, 3, 10, 20)
	fmt.Printf("x=%d y=%d\n", p.X, p.Y)
	// Output: x=20 y=20
}

func ExamplePartition() {
	l := geometry.Partition(30, 20, 40, 40, 100, 100)
	fmt.Printf("focus:  %+v\n", l.Focus)
	fmt.Printf("top:    %+v\n", l.Top)
	fmt.Printf("right:  %+v\n", l.Right)
	fmt.Printf("bottom: %+v\n", l.Bottom)
	fmt.Printf("left:   %+v\n", l.Left)
	// Output:
	// focus:  {X:30 Y:20 Width:40 Height:40}
	// top:    {X:0 Y:0 Width:70 Height:20}
	// right:  {X:70 Y:0 Width:30 Height:60}
	// bottom: {X:30 Y:60 Width:70 Height:40}
	// left:   {X:0 Y:20 Width:30 Height:80}
}
