package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

// converter names the librsvg command line tool. Tests point it elsewhere.
var converter = "rsvg-convert"

const installHint = `install librsvg:
  macOS:  brew install librsvg
  Linux:  apt install librsvg2-bin`

// Available reports whether the converter is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG rasterizes an SVG document. scale multiplies the SVG's own size, so
// 2 yields an image twice as wide and high.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if err := tlerrors.ValidatePositive("scale", scale); err != nil {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInvalidOptions, err, "png scale")
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', -1, 64))
}

// convert pipes svg through the converter. The process is killed when ctx
// is cancelled.
func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if !Available() {
		return nil, tlerrors.New(tlerrors.ErrCodeUnsupported, "%s output needs %s; %s", format, converter, installHint)
	}

	cmd := exec.CommandContext(ctx, converter, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInternal, err, "%s %s: %s", converter, format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
