package layout_test

import (
	"fmt"

	"github.com/strandlab/strandplot/pkg/core/layout"
)

func ExampleDraw() {
	res, _ := layout.Draw("((((....))))", layout.Options{})

	fmt.Println("Bases:", len(res.Layout.Bases))
	fmt.Println("Loops:", len(res.Layout.Loops))
	fmt.Println("Segments:", len(res.Segments))
	// Output:
	// Bases: 12
	// Loops: 5
	// Segments: 12
}

func ExampleDraw_empty() {
	// A structure with no pairs is valid but has nothing to lay out
	res, err := layout.Draw("....", layout.Options{})

	fmt.Println("Result:", res)
	fmt.Println("Error:", err)
	// Output:
	// Result: <nil>
	// Error: <nil>
}
