// Package pipeline provides the core visualization pipeline for astscope.
//
// The pipeline turns source text into display artifacts in three stages:
//
//  1. Parse: the external parser produces a syntax tree or a
//     control-flow graph from the source text
//  2. Convert: the tree/CFG becomes a flat node/edge graph artifact
//  3. Render: the artifact becomes DOT, SVG, PNG, JSON, or pretty text
//
// Both the CLI and the HTTP API run the same [Runner] so caching and
// validation behave identically in both entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "x := 42",
//	    Mode:    pipeline.ModeAST,
//	    Formats: []string{pipeline.FormatSVG},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/astscope/pkg/catalog"
	"github.com/matzehuels/astscope/pkg/errors"
	"github.com/matzehuels/astscope/pkg/graph"
)

// =============================================================================
// Modes and Formats
// =============================================================================

// Visualization modes.
const (
	// ModeAST visualizes the syntax tree of the source.
	ModeAST = "ast"

	// ModeCFG visualizes the control-flow graph of the source.
	ModeCFG = "cfg"
)

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "text"
)

// ValidModes is the set of supported visualization modes.
var ValidModes = map[string]bool{
	ModeAST: true,
	ModeCFG: true,
}

// ValidFormats is the set of supported output formats.
// FormatText is only valid in ModeAST; ValidateForRender enforces that.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
}

// DefaultMode is the default visualization mode.
const DefaultMode = ModeAST

// DefaultFormat is the default output format.
const DefaultFormat = FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source is the program text to visualize.
	Source string `json:"source"`

	// Mode selects ast or cfg visualization.
	Mode string `json:"mode,omitempty"`

	// Formats are the requested output formats.
	Formats []string `json:"formats,omitempty"`

	// Title is rendered above the graph drawing.
	Title string `json:"title,omitempty"`

	// RankDir is the graph layout direction (default top-to-bottom).
	RankDir string `json:"rank_dir,omitempty"`

	// ShowExplanations appends catalog explanations in text output.
	ShowExplanations bool `json:"show_explanations,omitempty"`

	// Plain disables styling in text output.
	Plain bool `json:"plain,omitempty"`

	// CatalogPath points at a TOML catalog override file.
	CatalogPath string `json:"catalog_path,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the converted node/edge artifact.
	Graph graph.Graph

	// DOT is the emitted Graphviz source.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// SourceHash is the content hash of the input source.
	SourceHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ConvertTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit  bool // Whether the converted graph came from cache
	RenderHit bool // Whether all rendered artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid mode: %q (must be one of: ast, cfg)", mode)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, svg, png, json, text)", format)
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

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidSource, "source is required")
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if f == FormatText && o.Mode != ModeAST {
			return errors.New(errors.ErrCodeInvalidFormat,
				"text output is only available in ast mode")
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Catalog builds the effective classification catalog: the built-in
// tables, with the override file merged on top when configured.
func (o *Options) Catalog() (*catalog.Catalog, error) {
	c := catalog.Default()
	if o.CatalogPath != "" {
		if err := c.MergeFile(o.CatalogPath); err != nil {
			return nil, err
		}
	}
	return c, nil
}
