// Package pkg provides the core libraries for Strandplot RNA structure drawing.
//
// # Overview
//
// Strandplot turns dot-bracket secondary structure notation into 2-D plots
// where helices are straight ladders and loops are circles. The pkg directory
// is organized into five main areas:
//
//  1. [core] - Domain logic (notation parsing, loop decomposition, geometry, rendering)
//  2. [cache] - Caching backends (file, memory, Redis, MongoDB)
//  3. [pipeline] - Orchestration (parse → layout → render)
//  4. [draw] - Serialization types for computed layouts
//  5. [theme] - TOML style themes for the rendering options
//
// # Architecture
//
// The typical data flow through Strandplot:
//
//	Dot-bracket notation ("((((...))))")
//	         ↓
//	    [core/structure] package (pair table)
//	         ↓
//	    [core/loops] package (loop decomposition)
//	         ↓
//	    [core/geometry] + [core/layout] packages (circle radii, coordinates)
//	         ↓
//	    [core/segments] package (backbone lines and arcs)
//	         ↓
//	    [core/render] package (SVG, PNG, loop-tree DOT)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
// Compute a layout and render it to SVG:
//
//	import (
//	    "github.com/strandlab/strandplot/pkg/core/layout"
//	    "github.com/strandlab/strandplot/pkg/core/render/svg"
//	)
//
//	// 1. Compute coordinates
//	res, _ := layout.Draw("((((...))))", layout.Options{AlignStem: true})
//
//	// 2. Render to SVG
//	out := svg.Render(res, "GGGGAAACCCC", svg.DefaultOptions())
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/structure] - Dot-bracket-plus parsing. Builds the pair table and nick
// positions from notation containing (), dots, and + strand separators.
//
// [core/loops] - Loop decomposition. Walks the pair table and produces the
// tree of loops (exterior, hairpin, interior, multibranch) with their closing
// pairs, child helices, unpaired bases, and nicks.
//
// [core/geometry] - Circle geometry. Solves loop radii with Newton-Raphson so
// that paired and unpaired arc chords fit on a common circle.
//
// [core/layout] - Coordinate assignment. Places every base in the plane by
// recursing through the loop tree, plus optional exterior stem alignment.
//
// [core/segments] - Backbone path extraction. Converts consecutive base
// positions into straight lines along helices and arcs around loops, split at
// nicks.
//
// ## Rendering
//
// [render/svg] - The primary sink. Scalable vector output with pair bonds,
// backbone paths, strand-end arrows, base markers, labels, and legends.
//
// [render/raster] - Native PNG sink sharing the SVG framing and colors.
//
// [render/looptree] - Loop-tree diagrams rendered through Graphviz, useful
// for debugging decompositions.
//
// ## Infrastructure
//
// [cache] - Pluggable caching for layouts and rendered artifacts. FileCache
// for the CLI, RedisCache and MongoCache for the server, NullCache to
// disable caching entirely.
//
// [pipeline] - Complete drawing pipeline (parse → layout → render) used by
// CLI and server. Ensures consistent behavior across all entry points.
//
// [draw] - Serialization types for layout results (JSON coordinates, pairs,
// nicks, and backbone segments).
//
// [theme] - TOML theme loading and validation on top of the rendering options.
//
// [errors] - Coded errors with user-facing messages shared by CLI and server.
//
// [observability] - Lightweight hooks for cache and HTTP instrumentation.
//
// # Common Workflows
//
// Run the whole pipeline with caching:
//
//	cc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(cc, nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Structure: "((((...))))",
//	    Sequence:  "GGGGAAACCCC",
//	    Format:    pipeline.FormatSVG,
//	})
//
// Load a theme and override a flag:
//
//	opts, _ := theme.Load("dark.toml")
//	opts.ShowLabels = true
//
// Inspect the loop tree:
//
//	infos := loops.Decompose(pt)
//	dot := looptree.ToDOT(infos, looptree.Options{Detailed: true})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/core/layout/...      # Specific package
//	go test -run Example               # Examples only
//
// [core]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core
// [core/structure]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/structure
// [core/loops]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/loops
// [core/geometry]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/geometry
// [core/layout]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/layout
// [core/segments]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/segments
// [render/svg]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/render/svg
// [render/raster]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/render/raster
// [render/looptree]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/core/render/looptree
// [cache]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/pipeline
// [draw]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/draw
// [theme]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/theme
// [errors]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/strandlab/strandplot/pkg/observability
package pkg
