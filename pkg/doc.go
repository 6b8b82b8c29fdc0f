// Package pkg provides the libraries behind treelayout, a tool for computing
// and drawing two-dimensional layouts of rooted trees and forests.
//
// # Overview
//
// A layout assigns every vertex of a tree a (depth, offset) position and
// records a bounding box around them. The pkg directory is organized into
// three areas:
//
//  1. Domain types: [treelayout] (positions and layouts) and [tree] (the
//     parent-array tree the layout is computed for)
//  2. Algorithms: [generate] (tidy tree layout), [render] (SVG, DOT, text,
//     PNG and PDF output), [loss] and [mapping]
//  3. Infrastructure: [pipeline], [cache], [storage], [config], [server],
//     [observability], [errors] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	tree.json
//	    ↓
//	[tree] package (parse and validate the parent array)
//	    ↓
//	[generate] package (assign depth and offset per vertex)
//	    ↓
//	[treelayout] package (positions plus bounding box)
//	    ↓
//	[render] packages (SVG/DOT/PNG/PDF/JSON/text output)
//
// [pipeline] ties these steps together with caching and is shared by the
// CLI and the HTTP server so both produce identical results.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/treelayout/pkg/generate"
//	    "github.com/matzehuels/treelayout/pkg/render/svg"
//	    "github.com/matzehuels/treelayout/pkg/tree"
//	)
//
//	// 1. Build a tree from a parent array
//	t, _ := tree.New([]int{tree.NoParent, 0, 0}, []string{"root", "a", "b"})
//
//	// 2. Compute the layout
//	l, _ := generate.Generate(t, generate.Options{})
//
//	// 3. Render to SVG
//	out, _ := svg.Render(l, t, svg.WithLabels())
//
// A layout can also be built by hand:
//
//	l := treelayout.New(2, 0, 1, 0, 1)
//	l.At(0).SetOffset(0.5)
//	l.At(1).SetDepth(1)
//
// # Infrastructure
//
// [cache] stores computed layouts and rendered artifacts under content
// hashes. FileCache serves the CLI, RedisCache serves shared deployments and
// NullCache disables caching.
//
// [storage] persists named layouts for the HTTP API, in memory or in MongoDB.
//
// [observability] exposes hooks for pipeline, cache and HTTP events.
//
// [treelayout]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/treelayout
// [tree]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/tree
// [generate]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/generate
// [render]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/render
// [loss]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/loss
// [mapping]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/mapping
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/storage
// [config]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/buildinfo
package pkg
