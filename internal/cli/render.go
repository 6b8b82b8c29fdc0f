package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/pipeline"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// renderCommand creates the render command for turning layouts into images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		treePath string
		output   string
		formats  string
		noCache  bool
		refresh  bool
		o        pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a layout to SVG, DOT, PNG, PDF, JSON or text",
		Long: `Render a layout produced by 'layout'.

The tree supplies edges and labels. Without --tree, vertices are drawn
unconnected.

PNG and PDF output require rsvg-convert (librsvg) on PATH.
The graphviz style draws SVG through Graphviz with every vertex pinned.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.PipelineOptions()
			if fs := pipeline.ParseFormats(formats); len(fs) > 0 {
				opts.Formats = fs
			}
			if cmd.Flags().Changed("style") {
				opts.Style = o.Style
			}
			if cmd.Flags().Changed("width") {
				opts.Width = o.Width
			}
			if cmd.Flags().Changed("height") {
				opts.Height = o.Height
			}
			if cmd.Flags().Changed("labels") {
				opts.Labels = o.Labels
			}
			opts.Scale = o.Scale
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args[0], treePath, output, noCache, opts)
		},
	}

	cmd.Flags().StringVar(&treePath, "tree", "", "tree file supplying edges and labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without .layout.json)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated formats: svg, dot, png, pdf, json, txt (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached artifacts exist")
	cmd.Flags().StringVar(&o.Style, "style", pipeline.DefaultStyle, "visual style: simple, outline, graphviz")
	cmd.Flags().Float64Var(&o.Width, "width", pipeline.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&o.Height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().BoolVar(&o.Labels, "labels", false, "draw vertex labels")
	cmd.Flags().Float64Var(&o.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// runRender loads the layout and tree, renders every format and writes files.
func (c *CLI) runRender(ctx context.Context, input, treePath, output string, noCache bool, opts pipeline.Options) error {
	l, err := treelayout.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	t, err := loadRenderTree(treePath, l.Size())
	if err != nil {
		return err
	}

	if needsConverter(opts.Formats) && !render.Available() {
		c.ui().warn("rsvg-convert not found; PNG and PDF output will fail")
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, t, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	base := output
	if base == "" {
		base = renderBase(input)
	}
	var written []string
	for _, format := range opts.Formats {
		path := base + "." + artifactExt(format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	prog.done("wrote outputs", "files", len(written), "cached", cacheHit)

	out := c.ui()
	out.success("Render complete")
	out.files(written...)
	out.stats(t.Size(), t.Height(), cacheHit)
	return nil
}

// loadRenderTree reads the tree at path, or returns n unconnected vertices.
func loadRenderTree(path string, n int) (*tree.Tree, error) {
	if path == "" {
		parents := make([]int, n)
		for i := range parents {
			parents[i] = tree.NoParent
		}
		return tree.New(parents, nil)
	}
	t, err := tree.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", path, err)
	}
	if t.Size() != n {
		return nil, fmt.Errorf("tree %s has %d vertices, layout has %d", path, t.Size(), n)
	}
	return t, nil
}

// renderBase strips ".layout.json" (or the extension) from a layout path.
func renderBase(input string) string {
	if base, ok := strings.CutSuffix(input, ".layout.json"); ok {
		return base
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// artifactExt returns the file extension for a format. JSON output gets its
// own suffix so it never overwrites the input tree or layout.
func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return "render.json"
	}
	return format
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF)
}
