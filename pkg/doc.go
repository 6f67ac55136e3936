// Package pkg provides the core libraries for astscope program visualization.
//
// # Overview
//
// Astscope turns a source snippet into a picture of its structure: either
// the abstract syntax tree or the control-flow graph of its first function.
// The pkg directory is organized along the pipeline:
//
//  1. [tree] - Parse source into a generic, serializable syntax tree
//  2. [convert] - Convert trees into labeled graphs with stable identities
//  3. [cfg] - Build control-flow graphs from function bodies
//  4. [catalog] - Classify node kinds into display categories
//  5. [printer] - Pretty-print trees as indented text
//  6. [render/dot] - Emit Graphviz DOT and rasterize to SVG/PNG
//  7. [pipeline] - Orchestrate parse → convert → render with caching
//  8. [cache], [store] - Render cache and snapshot persistence
//
// # Architecture
//
// The typical data flow:
//
//	source text
//	     |
//	[tree] or [cfg]  (parse)
//	     |
//	[convert]        (graph with catalog categories)
//	     |
//	[render/dot]     (DOT, then SVG/PNG via graphviz)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//		Source:  "x := 42",
//		Formats: []string{pipeline.FormatSVG},
//	})
//
// The [pipeline] package is the entry point for most callers; the CLI and
// the HTTP server are both thin wrappers around it.
package pkg
