// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP server.
//
// The pipeline has two stages:
//
//  1. Layout: compute a [treelayout.Layout] for a [tree.Tree]
//  2. Render: turn the layout into artifacts (SVG, DOT, PNG, PDF, JSON, text)
//
// Both stages are cached through a [cache.Cache] under content-addressed
// keys, so repeated requests for the same tree and options are served
// without recomputation.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, t, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.Layout(ctx, t, opts)
//	artifacts, err := runner.Render(ctx, l, t, opts)
//
// [treelayout.Layout]: github.com/matzehuels/treelayout/pkg/treelayout.Layout
// [tree.Tree]: github.com/matzehuels/treelayout/pkg/tree.Tree
// [cache.Cache]: github.com/matzehuels/treelayout/pkg/cache.Cache
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treelayout/pkg/cache"
	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/generate"
	"github.com/matzehuels/treelayout/pkg/render/svg"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = svg.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = svg.DefaultHeight

	// DefaultMargin is the default frame margin in pixels.
	DefaultMargin = svg.DefaultMargin

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultTextCols and DefaultTextRows size the plain text rendering.
	DefaultTextCols = 80
	DefaultTextRows = 24

	// DefaultStyle is the default visual style.
	DefaultStyle = svg.StyleSimple
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// StyleGraphviz renders SVG through Graphviz instead of the built-in
// renderer. Positions are pinned, so the drawing matches the layout.
const StyleGraphviz = "graphviz"

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	svg.StyleSimple:  true,
	svg.StyleOutline: true,
	StyleGraphviz:    true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatDOT:  "text/vnd.graphviz",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatText: "text/plain; charset=utf-8",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	DepthSpacing  float64 `json:"depth_spacing,omitempty"`
	OffsetSpacing float64 `json:"offset_spacing,omitempty"`
	RootGap       float64 `json:"root_gap,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Margin  float64  `json:"margin,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the input tree.
	Tree *tree.Tree

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Layout is the computed layout.
	Layout *treelayout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	Height      int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return tlerrors.New(tlerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, formatList())
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return tlerrors.New(tlerrors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, outline, graphviz)", style)
	}
	return nil
}

func formatList() string {
	var fs []string
	for f := range ValidFormats {
		fs = append(fs, f)
	}
	slices.Sort(fs)
	return strings.Join(fs, ", ")
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates. An empty string yields nil.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates both stages.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.DepthSpacing == 0 {
		o.DepthSpacing = generate.DefaultDepthSpacing
	}
	if o.OffsetSpacing == 0 {
		o.OffsetSpacing = generate.DefaultOffsetSpacing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.GenerateOptions().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"width", o.Width},
		{"height", o.Height},
		{"scale", o.Scale},
	} {
		if err := tlerrors.ValidatePositive(f.name, f.v); err != nil {
			return tlerrors.Wrap(tlerrors.ErrCodeInvalidOptions, err, "invalid render options")
		}
	}
	if o.Margin < 0 || 2*o.Margin >= min(o.Width, o.Height) {
		return tlerrors.New(tlerrors.ErrCodeInvalidOptions, "margin %g does not fit a %gx%g frame", o.Margin, o.Width, o.Height)
	}
	return nil
}

// GenerateOptions returns the layout generator options.
func (o *Options) GenerateOptions() generate.Options {
	return generate.Options{
		DepthSpacing:  o.DepthSpacing,
		OffsetSpacing: o.OffsetSpacing,
		RootGap:       o.RootGap,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		DepthSpacing:  o.DepthSpacing,
		OffsetSpacing: o.OffsetSpacing,
		RootGap:       o.RootGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Width:  o.Width,
		Height: o.Height,
		Margin: o.Margin,
		Scale:  o.Scale,
		Labels: o.Labels,
	}
}
