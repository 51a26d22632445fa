package layout_test

import (
	"fmt"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

func ExampleNode_Flatten() {
	metal1 := tech.LayerID{Layer: 1}

	// A leaf cell with a single 10x2 trace.
	cell := layout.NewNode("trace")
	cell.Polygons.Add(metal1, geometry.Box(0, -1, 10, 1))

	// Mount the cell twice, the second copy shifted right.
	root := layout.NewNode("top")
	root.AddChild(cell, geometry.Placement{})
	root.AddChild(cell, geometry.Placement{Position: geometry.Pt(20, 0)})

	flat := root.Flatten()
	bounds := flat.Bounds()

	fmt.Println("polygons:", flat.Count())
	fmt.Printf("bounds: (%g, %g) to (%g, %g)\n", bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	// Output:
	// polygons: 2
	// bounds: (0, -1) to (30, 1)
}
