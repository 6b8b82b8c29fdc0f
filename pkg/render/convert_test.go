package render

import (
	"bytes"
	"context"
	"testing"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><circle cx="5" cy="5" r="4"/></svg>`

func TestConvertMissingTool(t *testing.T) {
	old := converter
	converter = "rsvg-convert-does-not-exist"
	defer func() { converter = old }()

	if Available() {
		t.Fatal("Available() = true for missing binary")
	}
	_, err := ToPDF(context.Background(), []byte(tinySVG))
	if !tlerrors.Is(err, tlerrors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGRejectsScale(t *testing.T) {
	_, err := ToPNG(context.Background(), []byte(tinySVG), 0)
	if !tlerrors.Is(err, tlerrors.ErrCodeInvalidOptions) {
		t.Errorf("ToPNG(scale=0) error = %v, want INVALID_OPTIONS", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 1)
	if err != nil {
		t.Fatalf("ToPNG() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG() output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF() output is not a PDF")
	}
}

func TestConvertCancelled(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ToPDF(ctx, []byte(tinySVG)); err == nil {
		t.Error("ToPDF() with cancelled context succeeded")
	}
}
