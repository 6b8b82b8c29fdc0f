package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/treelayout/pkg/generate"
	"github.com/matzehuels/treelayout/pkg/render/nodelink"
	"github.com/matzehuels/treelayout/pkg/tree"
)

func ExampleToDOT() {
	t := tree.MustNew([]int{tree.NoParent, 0}, []string{"app", "db"})
	l := generate.MustGenerate(t, generate.Options{})

	fmt.Print(nodelink.ToDOT(l, t, nodelink.Options{Scale: 50}))
	// Output:
	// digraph G {
	//   bgcolor="transparent";
	//   splines=false;
	//   node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.4, fixedsize=true];
	//   edge [arrowhead=none];
	//
	//   "0" [label="app", pos="0.00,0.00!"];
	//   "1" [label="db", pos="0.00,-50.00!"];
	//
	//   "0" -> "1";
	// }
}
