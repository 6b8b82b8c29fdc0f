package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/pipeline"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// layoutFlags are the spacing flags shared by layout and preview.
type layoutFlags struct {
	depthSpacing  float64
	offsetSpacing float64
	rootGap       float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.depthSpacing, "depth-spacing", 0, "distance between levels (default from config)")
	cmd.Flags().Float64Var(&f.offsetSpacing, "offset-spacing", 0, "distance between neighboring leaves (default from config)")
	cmd.Flags().Float64Var(&f.rootGap, "root-gap", 0, "extra space between the trees of a forest")
}

// apply overrides opts with the flags the user set explicitly.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("depth-spacing") {
		opts.DepthSpacing = f.depthSpacing
	}
	if cmd.Flags().Changed("offset-spacing") {
		opts.OffsetSpacing = f.offsetSpacing
	}
	if cmd.Flags().Changed("root-gap") {
		opts.RootGap = f.rootGap
	}
}

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute a layout for a tree",
		Long: `Compute a layout for a tree.

The input is a tree in JSON, either as a parent array:

  {"parents": [-1, 0, 0], "labels": ["root", "a", "b"]}

or as a vertex list:

  {"vertices": [{"id": 0, "parent": -1, "label": "root"}, ...]}

The output is a layout.json with the bounding box and one (depth, offset)
position per vertex, which 'render' turns into images.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.PipelineOptions()
			flags.apply(cmd, &opts)
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")
	flags.register(cmd)

	return cmd
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	t, err := tree.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := startSpinner(ctx, os.Stderr, "Computing layout...")

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		spin.fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spin.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if err := treelayout.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	out := c.ui()
	out.success("Layout complete")
	out.files(outputPath)
	out.stats(t.Size(), t.Height(), cacheHit)
	out.next("Render", fmt.Sprintf("%s render %s --tree %s", appName, outputPath, input))

	return nil
}

// layoutPath derives "<input>.layout.json" from a tree file name.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
