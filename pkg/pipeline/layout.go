package pipeline

import (
	"github.com/matzehuels/treelayout/pkg/generate"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// GenerateLayout computes the layout of t without caching.
func GenerateLayout(t *tree.Tree, opts Options) (*treelayout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	l, err := generate.Generate(t, opts.GenerateOptions())
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("generated layout",
		"vertices", l.Size(),
		"height", t.Height(),
		"width", l.Width())
	return l, nil
}
