package generate_test

import (
	"fmt"

	"github.com/matzehuels/treelayout/pkg/generate"
	"github.com/matzehuels/treelayout/pkg/tree"
)

func ExampleGenerate() {
	//     0
	//    / \
	//   1   2
	//       |
	//       3
	t := tree.MustNew([]int{tree.NoParent, 0, 0, 2}, nil)

	l, err := generate.Generate(t, generate.Options{})
	if err != nil {
		panic(err)
	}

	fmt.Println("Vertices:", l.Vertices())
	fmt.Printf("Box: %+v\n", l.Bounds())
	// Output:
	// Vertices: [(0, 0.5) (1, 0) (1, 1) (2, 1)]
	// Box: {MinOffset:0 MaxOffset:1 MinDepth:0 MaxDepth:2}
}
