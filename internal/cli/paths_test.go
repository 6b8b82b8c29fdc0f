package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/treelayout/pkg/config"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestFileCacheDirFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/var/cache/trees"

	dir, err := fileCacheDir(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/var/cache/trees" {
		t.Errorf("fileCacheDir() = %q, want configured dir", dir)
	}
}

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{layoutPath, "trees/org.json", "trees/org.layout.json"},
		{layoutPath, "org", "org.layout.json"},
		{renderBase, "trees/org.layout.json", "trees/org"},
		{renderBase, "positions.json", "positions"},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
