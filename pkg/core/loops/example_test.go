package loops_test

import (
	"fmt"

	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

func ExampleDecompose() {
	// Two hairpins hanging off a multibranch loop
	pt, _ := structure.Parse("((..)(..))")
	infos := loops.Decompose(pt)

	fmt.Println("Loops:", len(infos))
	fmt.Println("External children:", infos[0].Children)
	fmt.Println("Multiloop bonds:", infos[1].NumBonds())
	// Output:
	// Loops: 4
	// External children: [{0 9}]
	// Multiloop bonds: 3
}

func ExampleLoopInfo_Contains() {
	pt, _ := structure.Parse("((...))")
	infos := loops.Decompose(pt)

	// infos[2] is the hairpin loop closed by pair (1, 5)
	hairpin := infos[2]
	fmt.Println("Closed by:", *hairpin.Parent)
	fmt.Println("Unpaired:", hairpin.Unpaired)
	fmt.Println("Contains 3:", hairpin.Contains(3))
	fmt.Println("Contains 0:", hairpin.Contains(0))
	// Output:
	// Closed by: {1 5}
	// Unpaired: [2 3 4]
	// Contains 3: true
	// Contains 0: false
}
